package wallet

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/xerrors"
)

var (
	// ErrCapabilityMissing is returned when no signing provider is installed.
	ErrCapabilityMissing = xerrors.New("no signing provider available")
	// ErrUserRejected is returned when the account holder declines a request.
	ErrUserRejected = xerrors.New("request rejected by user")
	// ErrUnrecognizedChain is returned by SwitchChain when the provider has
	// no record of the requested chain. The caller is expected to AddChain
	// and retry.
	ErrUnrecognizedChain = xerrors.New("unrecognized chain")
	ErrNetworkMismatch   = xerrors.New("wallet is not on the target network")
	ErrNoAccounts        = xerrors.New("provider returned no accounts")
	ErrUnauthorized      = xerrors.New("account not authorized")
)

type Currency struct {
	Name     string
	Symbol   string
	Decimals uint8
}

// ChainParams describes a network so that a provider can register it.
type ChainParams struct {
	ChainID           uint64
	ChainName         string
	NativeCurrency    Currency
	RPCURLs           []string
	BlockExplorerURLs []string
}

func (p ChainParams) Validate() error {
	if p.ChainID == 0 {
		return xerrors.New("chain id must be set")
	}
	if len(p.RPCURLs) == 0 {
		return xerrors.Errorf("chain %d: at least one rpc url is required", p.ChainID)
	}
	return nil
}

type EventKind int

const (
	AccountsChanged EventKind = iota
	ChainChanged
)

func (k EventKind) String() string {
	switch k {
	case AccountsChanged:
		return "accountsChanged"
	case ChainChanged:
		return "chainChanged"
	default:
		return "unknown"
	}
}

// Event is pushed by a provider when the account holder changes accounts or
// networks outside of the client's control.
type Event struct {
	Kind     EventKind
	Accounts []common.Address
	ChainID  uint64
}

// Signer signs transactions on behalf of one authorized account.
type Signer interface {
	Address() common.Address
	ChainID() uint64
	SignTx(ctx context.Context, tx *ethtypes.Transaction) (*ethtypes.Transaction, error)
}

// Provider is the external signing capability. Accounts never prompts;
// RequestAccounts may ask the account holder for approval.
type Provider interface {
	Accounts(ctx context.Context) ([]common.Address, error)
	RequestAccounts(ctx context.Context) ([]common.Address, error)
	ChainID(ctx context.Context) (uint64, error)
	SwitchChain(ctx context.Context, chainID uint64) error
	AddChain(ctx context.Context, params ChainParams) error
	Balance(ctx context.Context, addr common.Address) (*big.Int, error)
	Signer(ctx context.Context, addr common.Address) (Signer, error)
	Events() <-chan Event
}
