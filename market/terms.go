package market

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	"github.com/peermart/peermart-go/chain/contracts"
	"github.com/peermart/peermart-go/chain/types"
	"github.com/peermart/peermart-go/gateway"
)

func readConst(ctx context.Context, r Reader, method string) (contracts.Values, error) {
	return r.Read(ctx, gateway.Call{
		Contract: contracts.Marketplace,
		Method:   method,
		Label:    "Load market terms",
	})
}

// Terms reads the marketplace fee and penalty constants.
func Terms(ctx context.Context, r Reader) (*types.MarketTerms, error) {
	var t types.MarketTerms

	uints := []struct {
		method string
		dst    *uint64
	}{
		{contracts.MethodFeePercentage, &t.FeePercentage},
		{contracts.MethodPenaltyPercentage, &t.PenaltyPercentage},
		{contracts.MethodCancellationPenaltyPercentage, &t.CancellationPenaltyPercentage},
		{contracts.MethodBlockReportsThreshold, &t.BlockReportsThreshold},
	}

	var g errgroup.Group
	for _, u := range uints {
		g.Go(func() error {
			v, err := readConst(ctx, r, u.method)
			if err != nil {
				return err
			}
			*u.dst, err = v.Uint64(0)
			return err
		})
	}
	g.Go(func() error {
		v, err := readConst(ctx, r, contracts.MethodUSDCDecimals)
		if err != nil {
			return err
		}
		t.StablecoinDecimals, err = v.Uint8(0)
		return err
	})
	g.Go(func() error {
		v, err := readConst(ctx, r, contracts.MethodTotalFeesCollected)
		if err != nil {
			return err
		}
		fees, err := v.Big(0)
		if err != nil {
			return err
		}
		t.TotalFeesCollected = types.USDC(types.BigFromBig(fees))
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, xerrors.Errorf("reading market terms: %w", err)
	}
	return &t, nil
}

// StablecoinBalance reads the stablecoin balance of owner.
func StablecoinBalance(ctx context.Context, r Reader, owner common.Address) (types.USDC, error) {
	v, err := r.Read(ctx, gateway.Call{
		Contract: contracts.Stablecoin,
		Method:   contracts.MethodBalanceOf,
		Args:     []interface{}{owner},
		Label:    "Load USDC balance",
	})
	if err != nil {
		return types.USDC{}, err
	}
	b, err := v.Big(0)
	if err != nil {
		return types.USDC{}, err
	}
	return types.USDC(types.BigFromBig(b)), nil
}

// Allowance reads how much of owner's stablecoin spender may move.
func Allowance(ctx context.Context, r Reader, owner, spender common.Address) (types.USDC, error) {
	v, err := r.Read(ctx, gateway.Call{
		Contract: contracts.Stablecoin,
		Method:   contracts.MethodAllowance,
		Args:     []interface{}{owner, spender},
		Label:    "Load USDC allowance",
	})
	if err != nil {
		return types.USDC{}, err
	}
	b, err := v.Big(0)
	if err != nil {
		return types.USDC{}, err
	}
	return types.USDC(types.BigFromBig(b)), nil
}
