package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	logging "github.com/ipfs/go-log/v2"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/peermart/peermart-go/node"
	"github.com/peermart/peermart-go/node/config"
	"github.com/peermart/peermart-go/notify"
)

var log = logging.Logger("cli")

const (
	metadataTraceContext = "traceContext"
	metadataContext      = "context"
	metadataConfig       = "config"
)

// The flags every command understands. cmd/peermart installs them on the app.
var (
	FlagConfig = &cli.StringFlag{
		Name:    "config",
		Usage:   "path to the client configuration file",
		EnvVars: []string{"PEERMART_CONFIG"},
		Value:   "~/.peermart/config.toml",
	}
	FlagLogLevel = &cli.StringFlag{
		Name:    "log-level",
		Usage:   "log level for all subsystems (debug, info, warn, error)",
		EnvVars: []string{"PEERMART_LOG_LEVEL"},
	}
	FlagMetricsListen = &cli.StringFlag{
		Name:  "metrics-listen",
		Usage: "serve prometheus metrics on this address, e.g. 127.0.0.1:9464",
	}
)

// ReqContext returns context for cli execution. Calling it for the first time
// installs SIGTERM handler that will close returned context.
// Not safe for concurrent execution.
func ReqContext(cctx *cli.Context) context.Context {
	if uctx, ok := cctx.App.Metadata[metadataContext]; ok {
		return uctx.(context.Context)
	}

	tCtx := context.Background()
	if mtCtx, ok := cctx.App.Metadata[metadataTraceContext]; ok {
		tCtx = mtCtx.(context.Context)
	}

	ctx, done := context.WithCancel(tCtx)
	sigChan := make(chan os.Signal, 2)
	go func() {
		<-sigChan
		done()
	}()
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	if cctx.App.Metadata == nil {
		cctx.App.Metadata = map[string]interface{}{}
	}
	cctx.App.Metadata[metadataContext] = ctx
	return ctx
}

// GetConfig loads the configuration named by --config, applies the
// environment and the command line overrides. The result is cached on the app.
func GetConfig(cctx *cli.Context) (*config.Client, error) {
	if c, ok := cctx.App.Metadata[metadataConfig]; ok {
		return c.(*config.Client), nil
	}

	cfg, err := config.Load(cctx.String(FlagConfig.Name))
	if err != nil {
		return nil, xerrors.Errorf("loading config: %w", err)
	}
	if cctx.IsSet(FlagMetricsListen.Name) {
		cfg.Metrics.ListenAddress = cctx.String(FlagMetricsListen.Name)
	}

	if cctx.App.Metadata == nil {
		cctx.App.Metadata = map[string]interface{}{}
	}
	cctx.App.Metadata[metadataConfig] = cfg
	return cfg, nil
}

type closer func()

// GetClient assembles a marketplace client for the duration of one command.
// Notifications are printed to the app's error writer.
func GetClient(cctx *cli.Context) (*node.Client, closer, error) {
	cfg, err := GetConfig(cctx)
	if err != nil {
		return nil, nil, err
	}

	ctx := ReqContext(cctx)

	var c node.Client
	stop, err := node.New(ctx,
		node.ClientAPI(&c),
		node.Config(cfg),
		node.Notifications(notify.NewConsole(cctx.App.ErrWriter)),
		node.Approver(TerminalApprover(cfg.Wallet.PassphraseEnv, cctx.App.ErrWriter)),
	)
	if err != nil {
		return nil, nil, xerrors.Errorf("starting client: %w", err)
	}

	return &c, func() {
		if err := stop(context.Background()); err != nil {
			log.Warnw("stopping client", "error", err)
		}
	}, nil
}

var Commands = []*cli.Command{
	walletCmd,
	productsCmd,
	purchasesCmd,
	sellerCmd,
	infoCmd,
	imageCmd,
	watchCmd,
	configCmd,
}
