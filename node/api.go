package node

import (
	"go.uber.org/fx"

	"github.com/peermart/peermart-go/api"
	"github.com/peermart/peermart-go/chain/wallet"
	"github.com/peermart/peermart-go/gateway"
	"github.com/peermart/peermart-go/lib/ipfs"
	"github.com/peermart/peermart-go/market"
	"github.com/peermart/peermart-go/market/flow"
	"github.com/peermart/peermart-go/node/config"
	"github.com/peermart/peermart-go/notify"
)

// Client is the assembled marketplace client.
type Client struct {
	fx.In

	Config    *config.Client
	Eth       api.EthNode
	Target    wallet.ChainParams
	Addresses gateway.Addresses
	Wallet    *wallet.Manager
	Gateway   *gateway.Node
	Market    *market.Market
	Flows     *flow.Flows
	Uploader  *ipfs.Uploader
	Fetcher   *ipfs.Fetcher
	Notify    notify.Sink
}
