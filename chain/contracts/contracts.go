package contracts

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Contract selects one of the two deployed contracts the client talks to.
type Contract int

const (
	Marketplace Contract = iota
	Stablecoin
)

func (c Contract) String() string {
	switch c {
	case Marketplace:
		return "marketplace"
	case Stablecoin:
		return "stablecoin"
	default:
		return fmt.Sprintf("contract(%d)", int(c))
	}
}

// Marketplace methods.
const (
	MethodProductCount           = "productCount"
	MethodProducts               = "products"
	MethodPurchases              = "purchases"
	MethodSellers                = "sellers"
	MethodSellerContacts         = "sellerContacts"
	MethodIsSellerBlocked        = "isSellerBlocked"
	MethodBlockedSellers         = "blockedSellers"
	MethodBuyerCanceled          = "buyerCanceled"
	MethodHasReported            = "hasReported"
	MethodPurchaseProduct        = "purchaseProduct"
	MethodCreateProduct          = "createProduct"
	MethodRegisterSeller         = "registerSeller"
	MethodConfirmPayment         = "confirmPayment"
	MethodCancelPurchase         = "cancelPurchase"
	MethodReportCanceledPurchase = "reportCanceledPurchase"

	MethodFeePercentage                 = "FEE_PERCENTAGE"
	MethodPenaltyPercentage             = "PENALTY_PERCENTAGE"
	MethodCancellationPenaltyPercentage = "CANCELLATION_PENALTY_PERCENTAGE"
	MethodBlockReportsThreshold         = "SELLER_BLOCK_REPORTS_THRESHOLD"
	MethodUSDCDecimals                  = "USDC_DECIMALS"
	MethodTotalFeesCollected            = "totalFeesCollected"
)

// Stablecoin methods.
const (
	MethodApprove   = "approve"
	MethodAllowance = "allowance"
	MethodBalanceOf = "balanceOf"
	MethodDecimals  = "decimals"
	MethodSymbol    = "symbol"
)

var (
	marketplaceABI abi.ABI
	stablecoinABI  abi.ABI
)

func init() {
	var err error
	if marketplaceABI, err = abi.JSON(strings.NewReader(MarketplaceABI)); err != nil {
		panic(fmt.Sprintf("parsing marketplace abi: %s", err))
	}
	if stablecoinABI, err = abi.JSON(strings.NewReader(StablecoinABI)); err != nil {
		panic(fmt.Sprintf("parsing stablecoin abi: %s", err))
	}
}

// ABI returns the parsed interface of the given contract.
func ABI(c Contract) *abi.ABI {
	switch c {
	case Stablecoin:
		return &stablecoinABI
	default:
		return &marketplaceABI
	}
}

// IsView reports whether method is a read-only method of c.
func IsView(c Contract, method string) bool {
	m, ok := ABI(c).Methods[method]
	if !ok {
		return false
	}
	return m.IsConstant()
}
