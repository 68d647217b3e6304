package flow

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	"github.com/peermart/peermart-go/chain/contracts"
	"github.com/peermart/peermart-go/chain/types"
	"github.com/peermart/peermart-go/chain/wallet"
	"github.com/peermart/peermart-go/gateway"
	"github.com/peermart/peermart-go/market"
)

// confirm, cancel and report of one purchase share a key so that only one of
// them can be outstanding.
func escrowKey(id uint64) string { return fmt.Sprintf("escrow/%d", id) }

// Confirm releases the escrowed payment for product id to the seller.
func (f *Flows) Confirm(ctx context.Context, id uint64) error {
	return f.resolve(ctx, KindConfirm, id, contracts.MethodConfirmPayment, "Confirm delivery", "Payment confirmed")
}

// Cancel cancels the session buyer's pending purchase of product id.
func (f *Flows) Cancel(ctx context.Context, id uint64) error {
	return f.resolve(ctx, KindCancel, id, contracts.MethodCancelPurchase, "Cancel purchase", "Purchase canceled")
}

func (f *Flows) resolve(ctx context.Context, kind Kind, id uint64, method, label, done string) error {
	err := f.run(ctx, kind, func(*wallet.Session) string { return escrowKey(id) }, func(ctx context.Context, op *Op) (string, error) {
		p, err := f.pending(ctx, id, op.Session.Address)
		if err != nil {
			return "", err
		}

		if _, err := f.gw.Write(ctx, gateway.Call{
			Contract: contracts.Marketplace,
			Method:   method,
			Args:     []interface{}{types.NewInt(p.ProductID).Int},
			Session:  op.Session,
			Label:    label,
		}); err != nil {
			return "", err
		}
		return done, nil
	})
	if err != nil {
		return err
	}

	f.refresh(ctx, string(kind), f.refreshPurchases)
	return nil
}

// pending reads the purchase and checks that funds are escrowed and delivery
// has not been confirmed yet.
func (f *Flows) pending(ctx context.Context, id uint64, buyer common.Address) (*types.Purchase, error) {
	p, err := f.market.Purchases.Get(ctx, id, buyer)
	switch {
	case xerrors.Is(err, market.ErrNotFound):
		return nil, invalid("No such purchase", fmt.Sprintf("%s has no purchase of product %d", buyer, id))
	case err != nil:
		return nil, err
	}

	switch {
	case p.IsSold:
		return nil, invalid("Purchase already completed", fmt.Sprintf("delivery of product %d was already confirmed", id))
	case !p.IsPaid:
		return nil, invalid("Purchase not paid", fmt.Sprintf("no payment is held in escrow for product %d", id))
	}
	return p, nil
}

// Report records a canceled purchase of product id against its seller. The
// session buyer must have canceled the purchase and not reported it yet.
func (f *Flows) Report(ctx context.Context, id uint64) error {
	err := f.run(ctx, KindReport, func(*wallet.Session) string { return escrowKey(id) }, func(ctx context.Context, op *Op) (string, error) {
		canceled, reported, err := f.reportStatus(ctx, id, op.Session.Address)
		if err != nil {
			return "", err
		}
		switch {
		case !canceled:
			return "", invalid("Nothing to report", fmt.Sprintf("you have not canceled a purchase of product %d", id))
		case reported:
			return "", invalid("Already reported", fmt.Sprintf("the canceled purchase of product %d was already reported", id))
		}

		if _, err := f.gw.Write(ctx, gateway.Call{
			Contract: contracts.Marketplace,
			Method:   contracts.MethodReportCanceledPurchase,
			Args:     []interface{}{types.NewInt(id).Int},
			Session:  op.Session,
			Label:    "Report seller",
		}); err != nil {
			return "", err
		}
		return "Seller reported", nil
	})
	if err != nil {
		return err
	}

	f.refresh(ctx, string(KindReport), f.refreshPurchases)
	return nil
}

func (f *Flows) reportStatus(ctx context.Context, id uint64, buyer common.Address) (canceled, reported bool, err error) {
	args := []interface{}{types.NewInt(id).Int, buyer}

	var g errgroup.Group
	g.Go(func() error {
		v, err := f.gw.Read(ctx, gateway.Call{
			Contract: contracts.Marketplace,
			Method:   contracts.MethodBuyerCanceled,
			Args:     args,
			Label:    "Load purchase status",
		})
		if err != nil {
			return err
		}
		canceled, err = v.Bool(0)
		return err
	})
	g.Go(func() error {
		v, err := f.gw.Read(ctx, gateway.Call{
			Contract: contracts.Marketplace,
			Method:   contracts.MethodHasReported,
			Args:     args,
			Label:    "Load report status",
		})
		if err != nil {
			return err
		}
		reported, err = v.Bool(0)
		return err
	})
	err = g.Wait()
	return canceled, reported, err
}
