package market

import (
	"context"
	"sync"

	"golang.org/x/xerrors"

	"github.com/peermart/peermart-go/chain/types"
	"github.com/peermart/peermart-go/chain/wallet"
	"github.com/peermart/peermart-go/notify"
)

var ErrNotFound = xerrors.New("not found")

// Market bundles the aggregators and keeps the personalized ones in step
// with the wallet session.
type Market struct {
	Catalog   *Catalog
	Purchases *PurchaseLedger
	Sellers   *SellerRegistry

	r        Reader
	sessions SessionSource

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(r Reader, sessions SessionSource, sink notify.Sink) *Market {
	ctx, cancel := context.WithCancel(context.Background())
	return &Market{
		Catalog:   NewCatalog(r, sessions, sink),
		Purchases: NewPurchaseLedger(r, sessions, sink),
		Sellers:   NewSellerRegistry(r, sessions, sink),
		r:         r,
		sessions:  sessions,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Terms reads the marketplace constants.
func (m *Market) Terms(ctx context.Context) (*types.MarketTerms, error) {
	return Terms(ctx, m.r)
}

// HandleSessionChange clears the personalized collections on disconnect and
// repopulates them in the background on connect. It does not block.
func (m *Market) HandleSessionChange(change wallet.SessionChange) {
	if change.Session == nil {
		m.Purchases.Feed().Clear(change.Version)
		m.Sellers.Feed().Clear(change.Version)
		m.Catalog.SellerFeed().Clear(change.Version)
		return
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.repopulate(m.ctx, change.Session)
	}()
}

func (m *Market) repopulate(ctx context.Context, sess *wallet.Session) {
	if _, err := m.Purchases.Refresh(ctx); err != nil {
		log.Warnw("refreshing purchases after session change", "error", err)
	}
	seller, err := m.Sellers.RefreshSelf(ctx)
	if err != nil {
		log.Warnw("refreshing seller profile after session change", "error", err)
		return
	}
	if seller == nil {
		m.Catalog.SellerFeed().Clear(sess.Version)
		return
	}
	if _, err := m.Catalog.RefreshSeller(ctx, sess.Address); err != nil {
		log.Warnw("refreshing seller products after session change", "error", err)
	}
}

// Close stops background refreshes and waits for them to return.
func (m *Market) Close() error {
	m.cancel()
	m.wg.Wait()
	return nil
}
