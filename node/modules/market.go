package modules

import (
	"context"
	"time"

	"go.uber.org/fx"

	"github.com/peermart/peermart-go/api"
	"github.com/peermart/peermart-go/chain/wallet"
	"github.com/peermart/peermart-go/gateway"
	"github.com/peermart/peermart-go/market"
	"github.com/peermart/peermart-go/market/flow"
	"github.com/peermart/peermart-go/node/config"
	"github.com/peermart/peermart-go/notify"
)

func Gateway(cfg *config.Client, eth api.EthNode, m *wallet.Manager, sink notify.Sink, addrs gateway.Addresses) *gateway.Node {
	return gateway.NewNode(eth, m, sink, gateway.Options{
		Addresses:        addrs,
		RateLimit:        cfg.Gateway.RateLimit,
		RateLimitTimeout: time.Duration(cfg.Gateway.RateLimitTimeout),
		ReceiptTimeout:   time.Duration(cfg.Gateway.ConfirmTimeout),
		PollInterval:     time.Duration(cfg.Gateway.ReceiptPollInterval),
	})
}

func Market(lc fx.Lifecycle, gw *gateway.Node, m *wallet.Manager, sink notify.Sink) *market.Market {
	mk := market.New(gw, m, sink)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return mk.Close()
		},
	})
	return mk
}

func FlowSettings(cfg *config.Client) flow.Settings {
	return flow.Settings{
		SettleAttempts:     cfg.Market.SettleAttempts,
		SettlePollInterval: time.Duration(cfg.Market.SettlePollInterval),
		SettlingDelay:      time.Duration(cfg.Market.SettlingDelay),
	}
}

func Flows(lc fx.Lifecycle, gw *gateway.Node, m *wallet.Manager, mk *market.Market, sink notify.Sink, addrs gateway.Addresses, settings flow.Settings) *flow.Flows {
	f := flow.New(gw, m, mk, sink, addrs, settings)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return f.Close()
		},
	})
	return f
}

// FollowSession rebinds the gateway and refreshes the personalized market
// collections on every session change. The gateway is rebound first so that
// refreshes already read through the new binding.
func FollowSession(lc fx.Lifecycle, m *wallet.Manager, gw *gateway.Node, mk *market.Market) {
	unsubGateway := m.Subscribe(gw.Rebind)
	unsubMarket := m.Subscribe(mk.HandleSessionChange)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			unsubMarket()
			unsubGateway()
			return nil
		},
	})
}
