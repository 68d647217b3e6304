package client

import (
	"context"
	"net/http"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/filecoin-project/go-jsonrpc"

	"github.com/peermart/peermart-go/api"
)

// EthNamespace is the JSON-RPC namespace of the Ethereum API.
const EthNamespace = "eth"

// EthMethodName maps a proxy method such as EthGetTransactionReceipt to its
// wire name, eth_getTransactionReceipt.
func EthMethodName(namespace, method string) string {
	method = strings.TrimPrefix(method, "Eth")
	r, size := utf8.DecodeRuneInString(method)
	return namespace + "_" + string(unicode.ToLower(r)) + method[size:]
}

// NewEthRPC creates a new http jsonrpc client for an Ethereum endpoint.
func NewEthRPC(ctx context.Context, addr string, requestHeader http.Header, timeout time.Duration) (api.EthNode, jsonrpc.ClientCloser, error) {
	var res api.EthNodeStruct
	opts := []jsonrpc.Option{
		jsonrpc.WithMethodNameFormatter(EthMethodName),
	}
	if timeout > 0 {
		opts = append(opts, jsonrpc.WithTimeout(timeout))
	}

	closer, err := jsonrpc.NewMergeClient(ctx, addr, EthNamespace,
		[]interface{}{
			&res.Internal,
		},
		requestHeader,
		opts...,
	)

	return &res, closer, err
}
