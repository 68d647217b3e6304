package flow

import (
	"context"
	"fmt"

	"github.com/peermart/peermart-go/chain/contracts"
	"github.com/peermart/peermart-go/chain/types"
	"github.com/peermart/peermart-go/chain/wallet"
	"github.com/peermart/peermart-go/gateway"
)

func purchaseKey(id uint64) string { return fmt.Sprintf("purchase/%d", id) }

// Purchase grants the marketplace an allowance of price and then buys one
// unit of product id. The purchase is only submitted after the allowance
// grant has been mined.
func (f *Flows) Purchase(ctx context.Context, id uint64, price types.USDC) error {
	err := f.run(ctx, KindPurchase, func(*wallet.Session) string { return purchaseKey(id) }, func(ctx context.Context, op *Op) (string, error) {
		if id == 0 {
			return "", invalid("Unknown product", "product id must be positive")
		}
		if price.IsZero() {
			return "", invalid("Invalid price", "purchase price must be positive")
		}

		if _, err := f.gw.Write(ctx, gateway.Call{
			Contract: contracts.Stablecoin,
			Method:   contracts.MethodApprove,
			Args:     []interface{}{f.addrs.Marketplace, price.Minor()},
			Session:  op.Session,
			Label:    "Approve USDC",
		}); err != nil {
			log.Infow("allowance grant failed, purchase not submitted", "product", id, "op", op.ID)
			return "", err
		}

		if _, err := f.gw.Write(ctx, gateway.Call{
			Contract: contracts.Marketplace,
			Method:   contracts.MethodPurchaseProduct,
			Args:     []interface{}{types.NewInt(id).Int},
			Session:  op.Session,
			Label:    "Purchase",
		}); err != nil {
			return "", err
		}
		return "Purchase successful", nil
	})
	if err != nil {
		return err
	}

	f.refresh(ctx, "purchase", f.refreshPurchases, f.refreshCatalog)
	return nil
}
