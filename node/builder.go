package node

import (
	"context"
	"errors"

	logging "github.com/ipfs/go-log/v2"
	"go.uber.org/fx"
	"golang.org/x/xerrors"

	"github.com/peermart/peermart-go/api"
	"github.com/peermart/peermart-go/chain/wallet"
	"github.com/peermart/peermart-go/gateway"
	"github.com/peermart/peermart-go/lib/ipfs"
	"github.com/peermart/peermart-go/market"
	"github.com/peermart/peermart-go/market/flow"
	"github.com/peermart/peermart-go/node/config"
	"github.com/peermart/peermart-go/node/modules"
	"github.com/peermart/peermart-go/node/modules/helpers"
	"github.com/peermart/peermart-go/notify"
)

//nolint:deadcode,varcheck
var log = logging.Logger("builder")

// special is a type used to give keys to modules which
// can't really be identified by the returned type
type special struct{ id int }

type invoke int

// Invokes are called in the order they are defined.
//
//nolint:golint
const (
	// ServeMetricsKey starts the metrics endpoint before anything records.
	ServeMetricsKey = invoke(iota)

	// FollowSessionKey must come before StartSessionKey so that a restored
	// session reaches the gateway and the market.
	FollowSessionKey
	StartSessionKey

	ExtractApiKey

	_nInvokes // keep this last
)

type Settings struct {
	// modules is a map of constructors for DI
	//
	// In most cases the index will be a reflect. Type of element returned by
	// the constructor, but for some 'constructors' it's hard to specify what's
	// the return type should be (or the constructor returns fx group)
	modules map[interface{}]fx.Option

	// invokes are separate from modules as they can't be referenced by return
	// type, and must be applied in correct order
	invokes []fx.Option

	Config bool // Config option applied
	Client bool // Client option applied
}

func defaults() []Option {
	return []Option{
		Override(new(helpers.MetricsCtx), context.Background),
		Override(new(notify.Sink), modules.LogNotifications),
		Override(new(wallet.Approver), modules.EnvApprover),
	}
}

// ClientAPI assembles the marketplace client and populates out once the node
// is started.
func ClientAPI(out *Client) Option {
	return Options(
		ApplyIf(func(s *Settings) bool { return s.Config },
			Error(errors.New("the ClientAPI option must be set before Config option")),
		),
		func(s *Settings) error { s.Client = true; return nil },

		Override(new(api.EthNode), modules.EthNode),
		Override(new(wallet.ChainParams), modules.TargetChain),
		Override(new(gateway.Addresses), modules.ContractAddresses),

		Override(new(wallet.Provider), modules.WalletProvider),
		Override(new(*wallet.Manager), modules.SessionManager),

		Override(new(*gateway.Node), modules.Gateway),
		Override(new(*market.Market), modules.Market),
		Override(new(flow.Settings), modules.FlowSettings),
		Override(new(*flow.Flows), modules.Flows),

		Override(new(*ipfs.Uploader), modules.IPFSUploader),
		Override(new(*ipfs.Fetcher), modules.IPFSFetcher),

		Override(FollowSessionKey, modules.FollowSession),
		Override(StartSessionKey, modules.StartSession),

		func(s *Settings) error {
			s.invokes[ExtractApiKey] = fx.Populate(out)
			return nil
		},
	)
}

// Config sets up constructors based on the provided Config
func Config(cfg *config.Client) Option {
	return Options(
		func(s *Settings) error { s.Config = true; return nil },
		Override(new(*config.Client), cfg),

		If(cfg.Metrics.ListenAddress != "",
			Override(ServeMetricsKey, modules.ServeMetrics),
		),
	)
}

// Provider replaces the signing provider, e.g. with a test double.
func Provider(p wallet.Provider) Option {
	return Override(new(wallet.Provider), func() wallet.Provider { return p })
}

// Notifications replaces the notification sink.
func Notifications(sink notify.Sink) Option {
	return Override(new(notify.Sink), func() notify.Sink { return sink })
}

// Approver replaces how account access is approved.
func Approver(a wallet.Approver) Option {
	return Override(new(wallet.Approver), func() wallet.Approver { return a })
}

type StopFunc func(context.Context) error

// New builds and starts a new marketplace client
func New(ctx context.Context, opts ...Option) (StopFunc, error) {
	settings := Settings{
		modules: map[interface{}]fx.Option{},
		invokes: make([]fx.Option, _nInvokes),
	}

	// apply module options in the right order
	if err := Options(Options(defaults()...), Options(opts...))(&settings); err != nil {
		return nil, xerrors.Errorf("applying node options failed: %w", err)
	}
	if !settings.Client {
		return nil, xerrors.New("no client option given")
	}
	if !settings.Config {
		return nil, xerrors.New("no config option given")
	}

	// gather constructors for fx.Options
	ctors := make([]fx.Option, 0, len(settings.modules))
	for _, opt := range settings.modules {
		ctors = append(ctors, opt)
	}

	// fill holes in invokes for use in fx.Options
	for i, opt := range settings.invokes {
		if opt == nil {
			settings.invokes[i] = fx.Options()
		}
	}

	app := fx.New(
		fx.Options(ctors...),
		fx.Options(settings.invokes...),

		fx.NopLogger,
	)

	if err := app.Start(ctx); err != nil {
		// comment fx.NopLogger few lines above for easier debugging
		return nil, xerrors.Errorf("starting node: %w", err)
	}

	return app.Stop, nil
}
