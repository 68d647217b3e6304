package modules

import (
	"time"

	"github.com/peermart/peermart-go/lib/ipfs"
	"github.com/peermart/peermart-go/node/config"
)

func IPFSUploader(cfg *config.Client) (*ipfs.Uploader, error) {
	return ipfs.NewUploader(cfg.IPFS.APIURL, nil)
}

func IPFSFetcher(cfg *config.Client) *ipfs.Fetcher {
	return ipfs.NewFetcher(cfg.IPFS.Gateways, time.Duration(cfg.IPFS.FetchTimeout))
}
