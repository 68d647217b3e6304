package api

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestEthNodeStructUnset(t *testing.T) {
	ctx := context.Background()
	var s EthNodeStruct

	_, err := s.EthChainId(ctx)
	require.ErrorIs(t, err, ErrNotSupported)

	_, err = s.EthGetTransactionReceipt(ctx, common.Hash{})
	require.ErrorIs(t, err, ErrNotSupported)

	s.Internal.EthBlockNumber = func(context.Context) (EthUint64, error) { return 7, nil }
	n, err := s.EthBlockNumber(ctx)
	require.NoError(t, err)
	require.Equal(t, EthUint64(7), n)
}
