package gateway

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/xerrors"

	"github.com/peermart/peermart-go/chain/contracts"
	"github.com/peermart/peermart-go/chain/wallet"
	"github.com/peermart/peermart-go/notify"
)

// Kind classifies a failed contract call.
type Kind int

const (
	KindUnknown Kind = iota
	// CapabilityMissing means no signing provider is installed.
	CapabilityMissing
	// NoSession means a write was attempted without a connected session.
	NoSession
	// StaleSession means the session the caller captured was replaced before
	// the write was submitted.
	StaleSession
	UserRejected
	NetworkMismatch
	ContractReverted
	DecodeError
	TransientReadFailure
	// SubmitFailure covers transport failures while submitting a transaction
	// or waiting for its inclusion.
	SubmitFailure
)

func (k Kind) String() string {
	switch k {
	case CapabilityMissing:
		return "capability-missing"
	case NoSession:
		return "no-session"
	case StaleSession:
		return "stale-session"
	case UserRejected:
		return "user-rejected"
	case NetworkMismatch:
		return "network-mismatch"
	case ContractReverted:
		return "contract-reverted"
	case DecodeError:
		return "decode-error"
	case TransientReadFailure:
		return "transient-read-failure"
	case SubmitFailure:
		return "submit-failure"
	default:
		return "unknown"
	}
}

// Category maps the kind onto the user-facing notification category.
func (k Kind) Category() notify.Category {
	switch k {
	case CapabilityMissing, NoSession, StaleSession:
		return notify.CategoryValidation
	case UserRejected:
		return notify.CategoryWalletRejected
	case ContractReverted:
		return notify.CategoryContractReverted
	default:
		return notify.CategoryNetwork
	}
}

type Error struct {
	Kind     Kind
	Contract contracts.Contract
	Method   string
	// Reason is the decoded revert reason or custom error name, if known.
	Reason string
	Err    error
}

func (e *Error) Error() string {
	s := fmt.Sprintf("%s.%s: %s", e.Contract, e.Method, e.Kind)
	if e.Reason != "" {
		s += " (" + e.Reason + ")"
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Detail is the short explanation shown to the account holder.
func (e *Error) Detail() string {
	switch e.Kind {
	case CapabilityMissing:
		return "no wallet installed"
	case NoSession:
		return "connect a wallet first"
	case StaleSession:
		return "wallet changed, please retry"
	case UserRejected:
		return "request rejected in wallet"
	case NetworkMismatch:
		return "wallet is on the wrong network"
	case ContractReverted:
		if e.Reason != "" {
			return "reverted: " + e.Reason
		}
		return "transaction reverted"
	case DecodeError:
		return "unexpected contract response"
	default:
		if e.Err != nil {
			return e.Err.Error()
		}
		return e.Kind.String()
	}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var gerr *Error
	if xerrors.As(err, &gerr) {
		return gerr.Kind
	}
	return KindUnknown
}

func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

const revertedPrefix = "execution reverted:"

// classify maps a failure from the endpoint or the signer onto a kind.
// fallback is used when nothing more specific is recognized.
func classify(err error, fallback Kind) (Kind, string) {
	switch {
	case xerrors.Is(err, wallet.ErrUserRejected):
		return UserRejected, ""
	case xerrors.Is(err, wallet.ErrNetworkMismatch):
		return NetworkMismatch, ""
	case xerrors.Is(err, wallet.ErrCapabilityMissing):
		return CapabilityMissing, ""
	case xerrors.Is(err, contracts.ErrDecode):
		return DecodeError, ""
	case xerrors.Is(err, context.DeadlineExceeded):
		return fallback, ""
	}

	msg := err.Error()
	if reason, ok := contracts.RevertReasonFromMessage(msg); ok {
		return ContractReverted, reason
	}
	lower := strings.ToLower(msg)
	if i := strings.Index(lower, revertedPrefix); i >= 0 {
		return ContractReverted, strings.TrimSpace(msg[i+len(revertedPrefix):])
	}
	if strings.Contains(lower, "revert") {
		return ContractReverted, ""
	}
	return fallback, ""
}
