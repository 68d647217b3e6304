package contracts

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"

	"github.com/peermart/peermart-go/chain/types"
)

// ErrDecode marks a ledger response that could not be turned into a record.
var ErrDecode = errors.New("malformed contract response")

// Values are the decoded outputs of one contract call, in ABI order.
type Values []interface{}

func (v Values) need(n int) error {
	if len(v) < n {
		return xerrors.Errorf("expected %d outputs, got %d: %w", n, len(v), ErrDecode)
	}
	return nil
}

func (v Values) Big(i int) (*big.Int, error) {
	if err := v.need(i + 1); err != nil {
		return nil, err
	}
	b, ok := v[i].(*big.Int)
	if !ok || b == nil {
		return nil, xerrors.Errorf("output %d: expected uint256, got %T: %w", i, v[i], ErrDecode)
	}
	return b, nil
}

func (v Values) Uint64(i int) (uint64, error) {
	b, err := v.Big(i)
	if err != nil {
		return 0, err
	}
	if !b.IsUint64() {
		return 0, xerrors.Errorf("output %d: %s overflows uint64: %w", i, b, ErrDecode)
	}
	return b.Uint64(), nil
}

func (v Values) Uint8(i int) (uint8, error) {
	if err := v.need(i + 1); err != nil {
		return 0, err
	}
	u, ok := v[i].(uint8)
	if !ok {
		return 0, xerrors.Errorf("output %d: expected uint8, got %T: %w", i, v[i], ErrDecode)
	}
	return u, nil
}

func (v Values) String(i int) (string, error) {
	if err := v.need(i + 1); err != nil {
		return "", err
	}
	s, ok := v[i].(string)
	if !ok {
		return "", xerrors.Errorf("output %d: expected string, got %T: %w", i, v[i], ErrDecode)
	}
	return s, nil
}

func (v Values) Address(i int) (common.Address, error) {
	if err := v.need(i + 1); err != nil {
		return common.Address{}, err
	}
	a, ok := v[i].(common.Address)
	if !ok {
		return common.Address{}, xerrors.Errorf("output %d: expected address, got %T: %w", i, v[i], ErrDecode)
	}
	return a, nil
}

func (v Values) Bool(i int) (bool, error) {
	if err := v.need(i + 1); err != nil {
		return false, err
	}
	b, ok := v[i].(bool)
	if !ok {
		return false, xerrors.Errorf("output %d: expected bool, got %T: %w", i, v[i], ErrDecode)
	}
	return b, nil
}

// decoder accumulates the first failure so record decoders read linearly.
type decoder struct {
	v   Values
	err error
}

func (d *decoder) big(i int) *big.Int {
	if d.err != nil {
		return nil
	}
	b, err := d.v.Big(i)
	d.err = err
	return b
}

func (d *decoder) u64(i int) uint64 {
	if d.err != nil {
		return 0
	}
	u, err := d.v.Uint64(i)
	d.err = err
	return u
}

func (d *decoder) str(i int) string {
	if d.err != nil {
		return ""
	}
	s, err := d.v.String(i)
	d.err = err
	return s
}

func (d *decoder) addr(i int) common.Address {
	if d.err != nil {
		return common.Address{}
	}
	a, err := d.v.Address(i)
	d.err = err
	return a
}

func (d *decoder) flag(i int) bool {
	if d.err != nil {
		return false
	}
	b, err := d.v.Bool(i)
	d.err = err
	return b
}

// DecodeProduct decodes the outputs of products(uint256). A zero id means the
// slot holds no product and yields (nil, nil).
func DecodeProduct(v Values) (*types.Product, error) {
	d := &decoder{v: v}
	p := &types.Product{
		ID:          d.u64(0),
		Name:        d.str(1),
		ImageRef:    d.str(2),
		Price:       types.USDC(types.BigFromBig(d.big(3))),
		Seller:      d.addr(4),
		SellerName:  d.str(5),
		Description: d.str(6),
		Inventory:   d.u64(7),
		TotalSold:   d.u64(8),
	}
	if d.err != nil {
		return nil, xerrors.Errorf("decoding product: %w", d.err)
	}
	if p.ID == 0 {
		return nil, nil
	}
	return p, nil
}

// DecodePurchase decodes the outputs of purchases(uint256,address). A zero
// product id is the contract's "no purchase" sentinel and yields (nil, nil).
func DecodePurchase(v Values) (*types.Purchase, error) {
	d := &decoder{v: v}
	p := &types.Purchase{
		ProductID: d.u64(0),
		Buyer:     d.addr(1),
		IsPaid:    d.flag(2),
		IsSold:    d.flag(3),
	}
	if d.err != nil {
		return nil, xerrors.Errorf("decoding purchase: %w", d.err)
	}
	if p.ProductID == 0 {
		return nil, nil
	}
	if !p.Consistent() {
		return nil, xerrors.Errorf("purchase %d is sold but not paid: %w", p.ProductID, ErrDecode)
	}
	return p, nil
}

// DecodeSeller joins the outputs of sellers(address) and sellerContacts(address).
// An empty name is an unregistered address and yields (nil, nil).
func DecodeSeller(addr common.Address, profile, contacts Values) (*types.Seller, error) {
	d := &decoder{v: profile}
	s := &types.Seller{
		Address:            addr,
		Name:               d.str(0),
		ProfileURI:         d.str(1),
		ConfirmedPurchases: d.u64(2),
		CanceledPurchases:  d.u64(3),
		ReportedPurchases:  d.u64(4),
		Rating:             d.u64(5),
	}
	if d.err != nil {
		return nil, xerrors.Errorf("decoding seller profile: %w", d.err)
	}

	d = &decoder{v: contacts}
	s.Location = d.str(0)
	s.PhoneNumber = d.str(1)
	if d.err != nil {
		return nil, xerrors.Errorf("decoding seller contacts: %w", d.err)
	}

	if !s.Registered() {
		return nil, nil
	}
	return s, nil
}

// DecodeBlockedSeller decodes the outputs of blockedSellers(address).
func DecodeBlockedSeller(v Values) (*types.BlockedSeller, error) {
	d := &decoder{v: v}
	b := &types.BlockedSeller{
		Address: d.addr(0),
		Reason:  d.str(1),
	}
	if d.err != nil {
		return nil, xerrors.Errorf("decoding blocked seller: %w", d.err)
	}
	return b, nil
}
