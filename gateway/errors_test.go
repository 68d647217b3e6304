package gateway

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/peermart/peermart-go/chain/wallet"
	"github.com/peermart/peermart-go/notify"
)

func TestClassify(t *testing.T) {
	selector := hexutil.Encode(crypto.Keccak256([]byte("SellerAlreadyRegistered()"))[:4])

	for _, tc := range []struct {
		name   string
		err    error
		kind   Kind
		reason string
	}{
		{"rejected", xerrors.Errorf("signing: %w", wallet.ErrUserRejected), UserRejected, ""},
		{"wrong network", wallet.ErrNetworkMismatch, NetworkMismatch, ""},
		{"reason string", xerrors.New("execution reverted: Not the seller"), ContractReverted, "Not the seller"},
		{"custom error", xerrors.New("call failed, data " + selector), ContractReverted, "SellerAlreadyRegistered"},
		{"deadline", context.DeadlineExceeded, SubmitFailure, ""},
		{"transport", xerrors.New("dial tcp: connection refused"), SubmitFailure, ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			kind, reason := classify(tc.err, SubmitFailure)
			require.Equal(t, tc.kind, kind)
			require.Equal(t, tc.reason, reason)
		})
	}
}

func TestKindCategory(t *testing.T) {
	require.Equal(t, notify.CategoryWalletRejected, UserRejected.Category())
	require.Equal(t, notify.CategoryContractReverted, ContractReverted.Category())
	require.Equal(t, notify.CategoryNetwork, TransientReadFailure.Category())
	require.Equal(t, notify.CategoryNetwork, NetworkMismatch.Category())
	require.Equal(t, notify.CategoryValidation, NoSession.Category())
}

func TestErrorDetail(t *testing.T) {
	err := xerrors.Errorf("confirming: %w", &Error{Kind: ContractReverted, Method: "confirmPayment", Reason: "NotBuyer"})
	require.Equal(t, ContractReverted, KindOf(err))

	var gerr *Error
	require.True(t, xerrors.As(err, &gerr))
	require.Equal(t, "reverted: NotBuyer", gerr.Detail())
	require.Equal(t, KindUnknown, KindOf(xerrors.New("plain")))
}
