package cli

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"
)

type PrintHelpErr struct {
	Err error
	Ctx *cli.Context
}

func (e *PrintHelpErr) Error() string {
	return e.Err.Error()
}

func (e *PrintHelpErr) Unwrap() error {
	return e.Err
}

func (e *PrintHelpErr) Is(o error) bool {
	_, ok := o.(*PrintHelpErr)
	return ok
}

func ShowHelp(cctx *cli.Context, err error) error {
	return &PrintHelpErr{Err: err, Ctx: cctx}
}

// errReported is returned by commands whose failure was already shown as a
// notification, so RunApp only sets the exit code.
var errReported = xerrors.New("action failed")

// flowErr maps a flow failure to the command result. Flows report every
// failure to the notification sink before returning it.
func flowErr(err error) error {
	if err == nil {
		return nil
	}
	log.Debugw("flow failed", "error", err)
	return errReported
}

func RunApp(app *cli.App) {
	if err := app.Run(os.Args); err != nil {
		switch {
		case xerrors.Is(err, errReported):
		case os.Getenv("PEERMART_DEV") != "":
			log.Warnf("%+v", err)
		default:
			_, _ = fmt.Fprintf(app.ErrWriter, "ERROR: %s\n\n", err)
		}
		var phe *PrintHelpErr
		if xerrors.As(err, &phe) {
			_ = cli.ShowCommandHelp(phe.Ctx, phe.Ctx.Command.Name)
		}
		os.Exit(1)
	}
}
