package types

import (
	"github.com/ethereum/go-ethereum/common"
)

// Product is a marketplace listing as currently recorded on the ledger.
type Product struct {
	ID          uint64
	Name        string
	ImageRef    string
	Price       USDC
	Seller      common.Address
	SellerName  string
	Description string
	Inventory   uint64
	TotalSold   uint64
}

// Available reports whether the product can be offered in the buyer catalog.
func (p *Product) Available() bool {
	return p.Inventory > 0
}

// Purchase is a buyer's escrow record for one product, with a display snapshot
// of the product taken when the purchase was read.
type Purchase struct {
	ProductID uint64
	Buyer     common.Address
	IsPaid    bool
	IsSold    bool

	ProductName  string
	ProductPrice USDC
	SellerName   string
	ImageRef     string
}

// Consistent reports whether the escrow flags obey isSold => isPaid.
func (p *Purchase) Consistent() bool {
	return !p.IsSold || p.IsPaid
}

// Pending reports whether funds are escrowed and delivery is not yet confirmed.
func (p *Purchase) Pending() bool {
	return p.IsPaid && !p.IsSold
}

// Seller is a registered seller profile joined with its contact details.
type Seller struct {
	Address            common.Address
	Name               string
	ProfileURI         string
	ConfirmedPurchases uint64
	CanceledPurchases  uint64
	ReportedPurchases  uint64
	Rating             uint64
	Location           string
	PhoneNumber        string

	// Blocked is set when the marketplace owner has blocked the seller.
	Blocked *BlockedSeller
}

// Registered reports whether the record belongs to a registered seller. Contract
// storage is zero-initialized for every address, so an empty name means none.
func (s *Seller) Registered() bool {
	return s.Name != ""
}

type BlockedSeller struct {
	Address common.Address
	Reason  string
}

// MarketTerms are the marketplace contract's fee and penalty constants.
type MarketTerms struct {
	FeePercentage                 uint64
	PenaltyPercentage             uint64
	CancellationPenaltyPercentage uint64
	BlockReportsThreshold         uint64
	StablecoinDecimals            uint8
	TotalFeesCollected            USDC
}
