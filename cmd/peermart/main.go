package main

import (
	"os"

	logging "github.com/ipfs/go-log/v2"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/peermart/peermart-go/build"
	lcli "github.com/peermart/peermart-go/cli"
	"github.com/peermart/peermart-go/lib/pmlog"
)

var log = logging.Logger("main")

func main() {
	pmlog.SetupLogLevels()

	// .env only fills variables that are not set yet
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnw("loading .env", "error", err)
	}

	app := &cli.App{
		Name:                 "peermart",
		Usage:                "Peer-to-peer marketplace client with stablecoin escrow",
		Version:              build.UserVersion(),
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			lcli.FlagConfig,
			lcli.FlagLogLevel,
			lcli.FlagMetricsListen,
		},
		Before: func(cctx *cli.Context) error {
			if lvl := cctx.String(lcli.FlagLogLevel.Name); lvl != "" {
				return pmlog.SetLevel(".*", lvl)
			}
			return nil
		},
		Commands:  lcli.Commands,
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
	}

	lcli.RunApp(app)
}
