package ipfs

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/ipfs/boxo/files"
	"github.com/ipfs/go-cid"
	"github.com/ipfs/kubo/client/rpc"
	"github.com/ipfs/kubo/core/coreiface/options"
	"go.opencensus.io/stats"
	"golang.org/x/xerrors"

	"github.com/peermart/peermart-go/metrics"
)

// Uploader adds content through the RPC API of an IPFS node.
type Uploader struct {
	api *rpc.HttpApi
}

func NewUploader(apiURL string, client *http.Client) (*Uploader, error) {
	if client == nil {
		client = http.DefaultClient
	}
	api, err := rpc.NewURLApiWithClient(strings.TrimSuffix(apiURL, "/"), client)
	if err != nil {
		return nil, xerrors.Errorf("creating ipfs api client: %w", err)
	}
	return &Uploader{api: api}, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// Upload adds the content of r and returns its content id. Content is added
// with CIDv1 and raw leaves so that single-block objects can be verified on
// fetch.
func (u *Uploader) Upload(ctx context.Context, name string, r io.Reader) (cid.Cid, error) {
	body := &countingReader{r: r}

	p, err := u.api.Unixfs().Add(ctx, files.NewReaderFile(body),
		options.Unixfs.CidVersion(1),
		options.Unixfs.RawLeaves(true),
	)
	if err != nil {
		return cid.Undef, xerrors.Errorf("adding %s: %w", name, err)
	}
	c := p.RootCid()

	stats.Record(ctx, metrics.IPFSUploadBytes.M(body.n))
	log.Infow("uploaded content", "name", name, "cid", c, "size", humanize.IBytes(uint64(body.n)))
	return c, nil
}
