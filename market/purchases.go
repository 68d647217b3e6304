package market

import (
	"context"
	"math/big"
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"golang.org/x/xerrors"

	"github.com/peermart/peermart-go/chain/contracts"
	"github.com/peermart/peermart-go/chain/types"
	"github.com/peermart/peermart-go/gateway"
	"github.com/peermart/peermart-go/notify"
)

// PurchaseLedger aggregates the session buyer's purchases, newest first.
type PurchaseLedger struct {
	r        Reader
	sessions SessionSource
	sink     notify.Sink

	// source builds the purchase source for a buyer; replaced in tests.
	source func(buyer common.Address) Source[types.Purchase]

	feed *Feed[*types.Purchase]
}

func NewPurchaseLedger(r Reader, sessions SessionSource, sink notify.Sink) *PurchaseLedger {
	return &PurchaseLedger{
		r:        r,
		sessions: sessions,
		sink:     sink,
		source: func(buyer common.Address) Source[types.Purchase] {
			return NewPurchaseSource(r, buyer)
		},
		feed: NewFeed[*types.Purchase](currentVersion(sessions)),
	}
}

func (l *PurchaseLedger) Feed() *Feed[*types.Purchase] { return l.feed }

// Refresh rebuilds the ledger for the session buyer. Without a session the
// ledger is cleared.
func (l *PurchaseLedger) Refresh(ctx context.Context) ([]*types.Purchase, error) {
	sess := l.sessions.Session()
	if sess == nil {
		l.feed.Clear(l.sessions.Version())
		return nil, nil
	}

	seq := l.feed.Begin()
	items, rep, err := Scan(ctx, "purchases", l.source(sess.Address), (*types.Purchase).Consistent)
	if err != nil {
		return nil, err
	}
	reportSkipped(l.sink, "purchases", rep)

	slices.SortStableFunc(items, func(a, b *types.Purchase) int {
		switch {
		case a.ProductID > b.ProductID:
			return -1
		case a.ProductID < b.ProductID:
			return 1
		default:
			return 0
		}
	})

	l.feed.Publish(Snapshot[*types.Purchase]{Seq: seq, Version: sess.Version, Items: items, Report: rep})
	return items, nil
}

// Pending returns the purchases of the latest snapshot still held in escrow.
func (l *PurchaseLedger) Pending() []*types.Purchase {
	return lo.Filter(l.feed.Items(), func(p *types.Purchase, _ int) bool {
		return p.Pending()
	})
}

// Get reads the current state of buyer's purchase of product id. A missing
// purchase is an error.
func (l *PurchaseLedger) Get(ctx context.Context, id uint64, buyer common.Address) (*types.Purchase, error) {
	v, err := l.r.Read(ctx, gateway.Call{
		Contract: contracts.Marketplace,
		Method:   contracts.MethodPurchases,
		Args:     []interface{}{new(big.Int).SetUint64(id), buyer},
		Label:    "Load purchase",
	})
	if err != nil {
		return nil, err
	}
	p, err := contracts.DecodePurchase(v)
	if err != nil {
		return nil, err
	}
	if p == nil || p.Buyer != buyer {
		return nil, xerrors.Errorf("purchase of product %d by %s: %w", id, buyer, ErrNotFound)
	}
	return p, nil
}
