package api

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"
)

var ErrNotSupported = xerrors.New("method not supported")

// EthNodeStruct is the JSON-RPC client proxy for EthNode.
type EthNodeStruct struct {
	Internal EthNodeMethods
}

type EthNodeMethods struct {
	EthChainId func(p0 context.Context) (EthUint64, error)

	EthBlockNumber func(p0 context.Context) (EthUint64, error)

	EthGetBalance func(p0 context.Context, p1 common.Address, p2 string) (EthBigInt, error)

	EthGetTransactionCount func(p0 context.Context, p1 common.Address, p2 string) (EthUint64, error)

	EthGasPrice func(p0 context.Context) (EthBigInt, error)

	EthEstimateGas func(p0 context.Context, p1 EthCall) (EthUint64, error)

	EthCall func(p0 context.Context, p1 EthCall, p2 string) (EthBytes, error)

	EthSendRawTransaction func(p0 context.Context, p1 EthBytes) (common.Hash, error)

	EthGetTransactionReceipt func(p0 context.Context, p1 common.Hash) (*EthTxReceipt, error)
}

func (s *EthNodeStruct) EthChainId(p0 context.Context) (EthUint64, error) {
	if s.Internal.EthChainId == nil {
		return *new(EthUint64), ErrNotSupported
	}
	return s.Internal.EthChainId(p0)
}

func (s *EthNodeStruct) EthBlockNumber(p0 context.Context) (EthUint64, error) {
	if s.Internal.EthBlockNumber == nil {
		return *new(EthUint64), ErrNotSupported
	}
	return s.Internal.EthBlockNumber(p0)
}

func (s *EthNodeStruct) EthGetBalance(p0 context.Context, p1 common.Address, p2 string) (EthBigInt, error) {
	if s.Internal.EthGetBalance == nil {
		return *new(EthBigInt), ErrNotSupported
	}
	return s.Internal.EthGetBalance(p0, p1, p2)
}

func (s *EthNodeStruct) EthGetTransactionCount(p0 context.Context, p1 common.Address, p2 string) (EthUint64, error) {
	if s.Internal.EthGetTransactionCount == nil {
		return *new(EthUint64), ErrNotSupported
	}
	return s.Internal.EthGetTransactionCount(p0, p1, p2)
}

func (s *EthNodeStruct) EthGasPrice(p0 context.Context) (EthBigInt, error) {
	if s.Internal.EthGasPrice == nil {
		return *new(EthBigInt), ErrNotSupported
	}
	return s.Internal.EthGasPrice(p0)
}

func (s *EthNodeStruct) EthEstimateGas(p0 context.Context, p1 EthCall) (EthUint64, error) {
	if s.Internal.EthEstimateGas == nil {
		return *new(EthUint64), ErrNotSupported
	}
	return s.Internal.EthEstimateGas(p0, p1)
}

func (s *EthNodeStruct) EthCall(p0 context.Context, p1 EthCall, p2 string) (EthBytes, error) {
	if s.Internal.EthCall == nil {
		return *new(EthBytes), ErrNotSupported
	}
	return s.Internal.EthCall(p0, p1, p2)
}

func (s *EthNodeStruct) EthSendRawTransaction(p0 context.Context, p1 EthBytes) (common.Hash, error) {
	if s.Internal.EthSendRawTransaction == nil {
		return *new(common.Hash), ErrNotSupported
	}
	return s.Internal.EthSendRawTransaction(p0, p1)
}

func (s *EthNodeStruct) EthGetTransactionReceipt(p0 context.Context, p1 common.Hash) (*EthTxReceipt, error) {
	if s.Internal.EthGetTransactionReceipt == nil {
		return nil, ErrNotSupported
	}
	return s.Internal.EthGetTransactionReceipt(p0, p1)
}

var _ EthNode = new(EthNodeStruct)
