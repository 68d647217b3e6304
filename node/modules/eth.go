package modules

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	logging "github.com/ipfs/go-log/v2"
	"go.uber.org/fx"
	"golang.org/x/xerrors"

	"github.com/peermart/peermart-go/api"
	"github.com/peermart/peermart-go/api/client"
	"github.com/peermart/peermart-go/chain/wallet"
	"github.com/peermart/peermart-go/gateway"
	"github.com/peermart/peermart-go/node/config"
	"github.com/peermart/peermart-go/node/modules/helpers"
)

var log = logging.Logger("modules")

// rpcTimeout bounds a single JSON-RPC request to the ledger endpoint.
const rpcTimeout = 30 * time.Second

func EthNode(mctx helpers.MetricsCtx, lc fx.Lifecycle, cfg *config.Client) (api.EthNode, error) {
	node, closer, err := client.NewEthRPC(mctx, cfg.Chain.RPCURL, nil, rpcTimeout)
	if err != nil {
		return nil, xerrors.Errorf("creating ledger rpc client for %s: %w", cfg.Chain.RPCURL, err)
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			closer()
			return nil
		},
	})
	return node, nil
}

// TargetChain describes the configured network to the wallet.
func TargetChain(cfg *config.Client) (wallet.ChainParams, error) {
	p := wallet.ChainParams{
		ChainID:   cfg.Chain.ChainID,
		ChainName: cfg.Chain.ChainName,
		NativeCurrency: wallet.Currency{
			Name:     cfg.Chain.CurrencyName,
			Symbol:   cfg.Chain.CurrencySymbol,
			Decimals: uint8(cfg.Chain.CurrencyDecimals),
		},
		RPCURLs: []string{cfg.Chain.RPCURL},
	}
	if cfg.Chain.ExplorerURL != "" {
		p.BlockExplorerURLs = []string{cfg.Chain.ExplorerURL}
	}
	return p, p.Validate()
}

func ContractAddresses(cfg *config.Client) (gateway.Addresses, error) {
	if !common.IsHexAddress(cfg.Contracts.Marketplace) {
		return gateway.Addresses{}, xerrors.Errorf("invalid marketplace contract address %q", cfg.Contracts.Marketplace)
	}
	if !common.IsHexAddress(cfg.Contracts.Stablecoin) {
		return gateway.Addresses{}, xerrors.Errorf("invalid stablecoin contract address %q", cfg.Contracts.Stablecoin)
	}
	return gateway.Addresses{
		Marketplace: common.HexToAddress(cfg.Contracts.Marketplace),
		Stablecoin:  common.HexToAddress(cfg.Contracts.Stablecoin),
	}, nil
}
