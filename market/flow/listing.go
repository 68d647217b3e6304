package flow

import (
	"context"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"

	"github.com/peermart/peermart-go/api"
	"github.com/peermart/peermart-go/build"
	"github.com/peermart/peermart-go/chain/contracts"
	"github.com/peermart/peermart-go/chain/types"
	"github.com/peermart/peermart-go/chain/wallet"
	"github.com/peermart/peermart-go/gateway"
	"github.com/peermart/peermart-go/lib/ipfs"
	"github.com/peermart/peermart-go/lib/retry"
)

// ListingRequest describes a new product. Price and ImageRef must already be
// normalized, see NormalizePrice and NormalizeImage.
type ListingRequest struct {
	Name        string
	ImageRef    string
	Price       types.USDC
	Description string
	Inventory   uint64
}

type ListingResult struct {
	Receipt *api.EthTxReceipt
	// Settled is closed once the seller's products have been re-read after
	// the new listing became visible, or after the settling delay.
	Settled <-chan struct{}
}

// NormalizePrice scales a whole-unit decimal price to stablecoin minor units.
func NormalizePrice(s string) (types.USDC, error) {
	p, err := types.ParseUSDC(strings.TrimSpace(s))
	if err != nil {
		return types.USDC{}, invalid("Invalid price", err.Error())
	}
	if p.Minor().Sign() <= 0 {
		return types.USDC{}, invalid("Invalid price", "price must be greater than zero")
	}
	return p, nil
}

// NormalizeImage turns a content id or gateway URL into an ipfs:// reference.
// Plain https URLs outside any gateway are kept as they are.
func NormalizeImage(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if r, err := ipfs.ParseRef(ref); err == nil {
		return r.String(), nil
	}
	if strings.HasPrefix(ref, "https://") {
		return ref, nil
	}
	return "", invalid("Invalid image", "expected a content id, an ipfs:// reference or an https URL")
}

func (r ListingRequest) validate() error {
	switch {
	case strings.TrimSpace(r.Name) == "":
		return invalid("Missing name", "a product name is required")
	case r.Price.Minor().Sign() <= 0:
		return invalid("Invalid price", "price must be greater than zero")
	case r.Inventory == 0:
		return invalid("Invalid inventory", "inventory must be at least 1")
	case !strings.HasPrefix(r.ImageRef, ipfs.Scheme) && !strings.HasPrefix(r.ImageRef, "https://"):
		return invalid("Invalid image", "image must be an ipfs:// reference or an https URL")
	}
	return nil
}

// List creates a product for the session seller. Once the listing is mined
// the seller's products are refreshed in the background.
func (f *Flows) List(ctx context.Context, req ListingRequest) (*ListingResult, error) {
	key := func(s *wallet.Session) string { return "list/" + s.Address.Hex() }

	var (
		receipt *api.EthTxReceipt
		before  uint64
		seller  common.Address
	)
	err := f.run(ctx, KindList, key, func(ctx context.Context, op *Op) (string, error) {
		if err := req.validate(); err != nil {
			return "", err
		}
		seller = op.Session.Address

		s, err := f.market.Sellers.Lookup(ctx, seller)
		if err != nil {
			return "", err
		}
		switch {
		case s == nil:
			return "", invalid("Register first", "only registered sellers can list products")
		case s.Blocked != nil:
			return "", invalid("Seller blocked", s.Blocked.Reason)
		}

		before, err = f.market.Catalog.Count(ctx)
		if err != nil {
			return "", err
		}

		receipt, err = f.gw.Write(ctx, gateway.Call{
			Contract: contracts.Marketplace,
			Method:   contracts.MethodCreateProduct,
			Args: []interface{}{
				strings.TrimSpace(req.Name),
				req.ImageRef,
				req.Price.Minor(),
				req.Description,
				types.NewInt(req.Inventory).Int,
			},
			Session: op.Session,
			Label:   "List product",
		})
		if err != nil {
			return "", err
		}
		return "Product listed", nil
	})
	if err != nil {
		return nil, err
	}

	settled := make(chan struct{})
	f.wg.Add(1)
	go f.settle(seller, before+1, settled)

	return &ListingResult{Receipt: receipt, Settled: settled}, nil
}

// settle waits until the product count reaches want, falling back to the
// settling delay, and then refreshes the seller's products.
func (f *Flows) settle(seller common.Address, want uint64, done chan<- struct{}) {
	defer f.wg.Done()
	defer close(done)

	ctx := f.ctx
	n, err := retry.Retry(ctx, f.settings.SettleAttempts, f.settings.SettlePollInterval, retry.On(retry.ErrNotYet), func(ctx context.Context) (uint64, error) {
		n, err := f.market.Catalog.Count(ctx)
		if err != nil {
			return 0, err
		}
		if n < want {
			return n, xerrors.Errorf("product count %d, want %d: %w", n, want, retry.ErrNotYet)
		}
		return n, nil
	})
	if err != nil {
		log.Infow("new listing not visible yet, waiting for settling delay", "seller", seller, "count", n, "want", want, "error", err)
		select {
		case <-build.Clock.After(f.settings.SettlingDelay):
		case <-ctx.Done():
			return
		}
	}

	if _, err := f.market.Catalog.RefreshSeller(ctx, seller); err != nil {
		log.Warnw("refreshing seller products after listing", "seller", seller, "error", err)
	}
}
