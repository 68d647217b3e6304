package market

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"golang.org/x/xerrors"

	"github.com/peermart/peermart-go/chain/contracts"
	"github.com/peermart/peermart-go/chain/types"
	"github.com/peermart/peermart-go/gateway"
	"github.com/peermart/peermart-go/notify"
)

// Catalog aggregates product listings. The buyer catalog holds products
// with inventory left; the seller view holds every product of the session
// address, sold out or not.
type Catalog struct {
	r        Reader
	sessions SessionSource
	sink     notify.Sink
	src      Source[types.Product]

	available *Feed[*types.Product]
	mine      *Feed[*types.Product]
}

func NewCatalog(r Reader, sessions SessionSource, sink notify.Sink) *Catalog {
	return &Catalog{
		r:         r,
		sessions:  sessions,
		sink:      sink,
		src:       NewProductSource(r),
		available: NewFeed[*types.Product](nil),
		mine:      NewFeed[*types.Product](currentVersion(sessions)),
	}
}

func currentVersion(sessions SessionSource) func(uint64) bool {
	return func(v uint64) bool {
		return v == sessions.Version()
	}
}

// Feed publishes the buyer catalog.
func (c *Catalog) Feed() *Feed[*types.Product] { return c.available }

// SellerFeed publishes the session seller's products.
func (c *Catalog) SellerFeed() *Feed[*types.Product] { return c.mine }

// Refresh rebuilds the buyer catalog.
func (c *Catalog) Refresh(ctx context.Context) ([]*types.Product, error) {
	seq := c.available.Begin()
	version := c.sessions.Version()

	items, rep, err := Scan(ctx, "products", c.src, (*types.Product).Available)
	if err != nil {
		return nil, err
	}
	reportSkipped(c.sink, "products", rep)

	c.available.Publish(Snapshot[*types.Product]{Seq: seq, Version: version, Items: items, Report: rep})
	return items, nil
}

// RefreshSeller rebuilds the list of products listed by seller, including
// sold out ones. The result is only published to SellerFeed when seller is
// the session address.
func (c *Catalog) RefreshSeller(ctx context.Context, seller common.Address) ([]*types.Product, error) {
	seq := c.mine.Begin()
	version := c.sessions.Version()

	items, rep, err := Scan(ctx, "seller-products", c.src, func(p *types.Product) bool {
		return p.Seller == seller
	})
	if err != nil {
		return nil, err
	}
	reportSkipped(c.sink, "products", rep)

	if sess := c.sessions.Session(); sess != nil && sess.Address == seller {
		c.mine.Publish(Snapshot[*types.Product]{Seq: seq, Version: version, Items: items, Report: rep})
	}
	return items, nil
}

// Product reads a single product. A missing product is an error.
func (c *Catalog) Product(ctx context.Context, id uint64) (*types.Product, error) {
	v, err := c.r.Read(ctx, gateway.Call{
		Contract: contracts.Marketplace,
		Method:   contracts.MethodProducts,
		Args:     []interface{}{new(big.Int).SetUint64(id)},
		Label:    "Load product",
	})
	if err != nil {
		return nil, err
	}
	p, err := contracts.DecodeProduct(v)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, xerrors.Errorf("product %d: %w", id, ErrNotFound)
	}
	return p, nil
}

// Count returns the number of product ids assigned so far.
func (c *Catalog) Count(ctx context.Context) (uint64, error) {
	return c.src.Count(ctx)
}

// Find returns the product with id from the latest buyer catalog.
func (c *Catalog) Find(id uint64) (*types.Product, bool) {
	return lo.Find(c.available.Items(), func(p *types.Product) bool {
		return p.ID == id
	})
}

func reportSkipped(sink notify.Sink, what string, rep ScanReport) {
	if rep.Skipped == 0 || sink == nil {
		return
	}
	sink.Show(notify.Warn(notify.CategoryNetwork, "Some "+what+" could not be loaded",
		fmt.Sprintf("%d of %d records were skipped", rep.Skipped, rep.Total)))
}
