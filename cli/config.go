package cli

import (
	"github.com/urfave/cli/v2"

	"github.com/peermart/peermart-go/node/config"
)

var configCmd = &cli.Command{
	Name:  "config",
	Usage: "Manage the client configuration",
	Subcommands: []*cli.Command{
		configDefault,
		configInit,
	},
}

var configDefault = &cli.Command{
	Name:  "default",
	Usage: "Print the default configuration",
	Action: func(cctx *cli.Context) error {
		b, err := config.ConfigComment(config.Default())
		if err != nil {
			return err
		}
		NewAppFmt(cctx.App).Print(string(b))
		return nil
	},
}

var configInit = &cli.Command{
	Name:  "init",
	Usage: "Write the default configuration to the --config path",
	Action: func(cctx *cli.Context) error {
		path := cctx.String(FlagConfig.Name)
		if err := config.WriteFile(path, config.Default()); err != nil {
			return err
		}
		NewAppFmt(cctx.App).Printf("Wrote %s\n", path)
		return nil
	},
}
