package ipfs

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"go.opencensus.io/stats"
	"go.opencensus.io/tag"
	"golang.org/x/xerrors"

	"github.com/peermart/peermart-go/build"
	"github.com/peermart/peermart-go/metrics"
)

// MaxFetchSize bounds the size of a fetched object.
const MaxFetchSize = 32 << 20

var ErrContentMismatch = xerrors.New("content does not match its cid")

// Fetcher retrieves content through public gateway mirrors, trying them in
// order until one serves the object.
type Fetcher struct {
	mirrors []string
	client  *http.Client
}

func NewFetcher(mirrors []string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		mirrors: mirrors,
		client:  &http.Client{Timeout: timeout},
	}
}

func (f *Fetcher) Mirrors() []string { return f.mirrors }

// Fetch returns the content of ref and the URL that served it.
func (f *Fetcher) Fetch(ctx context.Context, ref string) ([]byte, string, error) {
	r, err := ParseRef(ref)
	if err != nil {
		return nil, "", err
	}
	urls, err := Resolve(ref, f.mirrors)
	if err != nil {
		return nil, "", err
	}

	var merr error
	for _, u := range urls {
		data, err := f.fetch(ctx, u)
		if err == nil && r.Path == "" {
			err = verify(r.Cid, data)
		}
		if err != nil {
			merr = multierror.Append(merr, xerrors.Errorf("fetch error %s: %w", u, err))
			if ctx.Err() != nil {
				break
			}
			continue
		}

		if merr != nil {
			log.Warnw("fetch encountered errors on earlier mirrors", "ref", ref, "errors", merr)
		}
		return data, u, nil
	}

	return nil, "", xerrors.Errorf("failed to fetch %s (tried %v): %w", ref, urls, merr)
}

func (f *Fetcher) fetch(ctx context.Context, u string) (data []byte, err error) {
	start := build.Clock.Now()
	defer func() {
		tctx := metrics.Tagged(ctx, tag.Upsert(metrics.Gateway, hostOf(u)))
		if err != nil {
			stats.Record(tctx, metrics.IPFSFetchFailure.M(1))
			return
		}
		stats.Record(tctx, metrics.IPFSFetchDuration.M(metrics.SinceInMilliseconds(start)))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, xerrors.Errorf("request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, xerrors.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() // nolint

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, xerrors.Errorf("non-2xx code: %d", resp.StatusCode)
	}

	data, err = io.ReadAll(io.LimitReader(resp.Body, MaxFetchSize+1))
	if err != nil {
		return nil, xerrors.Errorf("reading body: %w", err)
	}
	if len(data) > MaxFetchSize {
		return nil, xerrors.Errorf("object larger than %d bytes", MaxFetchSize)
	}
	return data, nil
}

// verify checks data against c when c addresses the raw bytes directly.
// Chunked dag-pb objects cannot be checked without the dag.
func verify(c cid.Cid, data []byte) error {
	pref := c.Prefix()
	if pref.Codec != cid.Raw {
		return nil
	}
	mh, err := multihash.Sum(data, pref.MhType, pref.MhLength)
	if err != nil {
		return xerrors.Errorf("hashing content: %w", err)
	}
	if !cid.NewCidV1(cid.Raw, mh).Equals(c) {
		return ErrContentMismatch
	}
	return nil
}

func hostOf(u string) string {
	pu, err := url.Parse(u)
	if err != nil {
		return "unknown"
	}
	return pu.Host
}
