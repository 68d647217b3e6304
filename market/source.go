package market

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	logging "github.com/ipfs/go-log/v2"

	"github.com/peermart/peermart-go/chain/contracts"
	"github.com/peermart/peermart-go/chain/types"
	"github.com/peermart/peermart-go/chain/wallet"
	"github.com/peermart/peermart-go/gateway"
)

var log = logging.Logger("market")

// Reader is the read half of the contract gateway.
type Reader interface {
	Read(ctx context.Context, call gateway.Call) (contracts.Values, error)
}

// SessionSource exposes the current session and its version.
type SessionSource interface {
	Session() *wallet.Session
	Version() uint64
}

// Source is an id-indexed entity collection. Ids run from 1 to Count.
// Fetch returns (nil, nil) when the id holds no entity.
type Source[T any] interface {
	Count(ctx context.Context) (uint64, error)
	Fetch(ctx context.Context, id uint64) (*T, error)
}

func productCount(ctx context.Context, r Reader) (uint64, error) {
	v, err := r.Read(ctx, gateway.Call{
		Contract: contracts.Marketplace,
		Method:   contracts.MethodProductCount,
		Label:    "Load product count",
	})
	if err != nil {
		return 0, err
	}
	return v.Uint64(0)
}

// ProductSource reads products(id) for every listed id.
type ProductSource struct {
	r Reader
}

func NewProductSource(r Reader) *ProductSource {
	return &ProductSource{r: r}
}

func (s *ProductSource) Count(ctx context.Context) (uint64, error) {
	return productCount(ctx, s.r)
}

func (s *ProductSource) Fetch(ctx context.Context, id uint64) (*types.Product, error) {
	v, err := s.r.Read(ctx, gateway.Call{
		Contract: contracts.Marketplace,
		Method:   contracts.MethodProducts,
		Args:     []interface{}{new(big.Int).SetUint64(id)},
		Quiet:    true,
	})
	if err != nil {
		return nil, err
	}
	return contracts.DecodeProduct(v)
}

// PurchaseSource reads one buyer's purchase record for every product id and
// joins it with the product it refers to.
type PurchaseSource struct {
	r        Reader
	buyer    common.Address
	products *ProductSource
}

func NewPurchaseSource(r Reader, buyer common.Address) *PurchaseSource {
	return &PurchaseSource{r: r, buyer: buyer, products: NewProductSource(r)}
}

func (s *PurchaseSource) Count(ctx context.Context) (uint64, error) {
	return productCount(ctx, s.r)
}

func (s *PurchaseSource) Fetch(ctx context.Context, id uint64) (*types.Purchase, error) {
	v, err := s.r.Read(ctx, gateway.Call{
		Contract: contracts.Marketplace,
		Method:   contracts.MethodPurchases,
		Args:     []interface{}{new(big.Int).SetUint64(id), s.buyer},
		Quiet:    true,
	})
	if err != nil {
		return nil, err
	}
	p, err := contracts.DecodePurchase(v)
	if err != nil || p == nil {
		return nil, err
	}
	if p.Buyer != s.buyer {
		return nil, nil
	}

	prod, err := s.products.Fetch(ctx, id)
	if err != nil {
		log.Warnw("purchase kept without product snapshot", "id", id, "error", err)
		return p, nil
	}
	if prod != nil {
		p.ProductName = prod.Name
		p.ProductPrice = prod.Price
		p.SellerName = prod.SellerName
		p.ImageRef = prod.ImageRef
	}
	return p, nil
}
