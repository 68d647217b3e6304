package api

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

//go:generate go run github.com/golang/mock/mockgen -destination=mocks/mock_ethnode.go -package=mocks . EthNode

// EthNode is the subset of the Ethereum JSON-RPC API the client consumes from
// the ledger endpoint.
type EthNode interface {
	// EthChainId returns the chain id the endpoint serves.
	EthChainId(ctx context.Context) (EthUint64, error)
	EthBlockNumber(ctx context.Context) (EthUint64, error)
	EthGetBalance(ctx context.Context, address common.Address, blkParam string) (EthBigInt, error)
	// EthGetTransactionCount is used with BlockPending to pick the next nonce.
	EthGetTransactionCount(ctx context.Context, sender common.Address, blkParam string) (EthUint64, error)
	EthGasPrice(ctx context.Context) (EthBigInt, error)
	EthEstimateGas(ctx context.Context, tx EthCall) (EthUint64, error)
	// EthCall executes a view call without creating a transaction.
	EthCall(ctx context.Context, tx EthCall, blkParam string) (EthBytes, error)
	EthSendRawTransaction(ctx context.Context, rawTx EthBytes) (common.Hash, error)
	// EthGetTransactionReceipt returns nil while the transaction is not mined.
	EthGetTransactionReceipt(ctx context.Context, txHash common.Hash) (*EthTxReceipt, error)
}
