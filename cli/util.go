package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/hako/durafmt"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
	"golang.org/x/xerrors"

	"github.com/peermart/peermart-go/api"
	"github.com/peermart/peermart-go/build"
	"github.com/peermart/peermart-go/chain/types"
	"github.com/peermart/peermart-go/chain/wallet"
	"github.com/peermart/peermart-go/node"
)

// Set the global default, to be overridden by individual cli flags in order
func init() {
	color.NoColor = os.Getenv("GOLOG_LOG_FMT") != "color" &&
		!isatty.IsTerminal(os.Stdout.Fd()) &&
		!isatty.IsCygwinTerminal(os.Stdout.Fd())
}

type AppFmt struct {
	app   *cli.App
	Stdin io.Reader
}

func NewAppFmt(a *cli.App) *AppFmt {
	var stdin io.Reader
	istdin, ok := a.Metadata["stdin"]
	if ok {
		stdin = istdin.(io.Reader)
	} else {
		stdin = os.Stdin
	}
	return &AppFmt{app: a, Stdin: stdin}
}

func (a *AppFmt) Print(args ...interface{}) {
	_, _ = fmt.Fprint(a.app.Writer, args...)
}

func (a *AppFmt) Println(args ...interface{}) {
	_, _ = fmt.Fprintln(a.app.Writer, args...)
}

func (a *AppFmt) Printf(fmtstr string, args ...interface{}) {
	_, _ = fmt.Fprintf(a.app.Writer, fmtstr, args...)
}

func (a *AppFmt) Scan(args ...interface{}) (int, error) {
	return fmt.Fscan(a.Stdin, args...)
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
}

// TerminalApprover unlocks accounts with the passphrase in the environment
// variable env when it is set, and otherwise asks on the terminal.
func TerminalApprover(env string, prompt io.Writer) wallet.Approver {
	return func(ctx context.Context, addr common.Address) (string, error) {
		if env != "" {
			if pass, ok := os.LookupEnv(env); ok {
				return pass, nil
			}
		}

		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			return "", xerrors.Errorf("no terminal to unlock %s and $%s is not set: %w", addr, env, wallet.ErrUserRejected)
		}

		_, _ = fmt.Fprintf(prompt, "Passphrase for %s: ", addr)
		pass, err := term.ReadPassword(fd)
		_, _ = fmt.Fprintln(prompt)
		if err != nil {
			return "", xerrors.Errorf("reading passphrase: %w", err)
		}
		if len(pass) == 0 {
			return "", wallet.ErrUserRejected
		}
		return string(pass), nil
	}
}

func readNewPassphrase(prompt io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", xerrors.New("a terminal is required to choose a passphrase")
	}

	_, _ = fmt.Fprint(prompt, "New passphrase: ")
	first, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(prompt)
	if err != nil {
		return "", err
	}
	_, _ = fmt.Fprint(prompt, "Repeat passphrase: ")
	second, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(prompt)
	if err != nil {
		return "", err
	}
	if string(first) != string(second) {
		return "", xerrors.New("passphrases do not match")
	}
	if len(first) == 0 {
		return "", xerrors.New("empty passphrase")
	}
	return string(first), nil
}

// connect asks the wallet for a session, reporting a failure the way the
// session manager classified it.
func connect(ctx context.Context, c *node.Client) (*wallet.Session, error) {
	if sess := c.Wallet.Session(); sess != nil {
		return sess, nil
	}
	sess, err := c.Wallet.Connect(ctx)
	if err != nil {
		return nil, xerrors.Errorf("connecting wallet: %w", err)
	}
	return sess, nil
}

func parseID(cctx *cli.Context, what string) (uint64, error) {
	if cctx.NArg() != 1 {
		return 0, ShowHelp(cctx, xerrors.Errorf("expected one %s id", what))
	}
	id, err := strconv.ParseUint(cctx.Args().First(), 10, 64)
	if err != nil || id == 0 {
		return 0, ShowHelp(cctx, xerrors.Errorf("invalid %s id %q", what, cctx.Args().First()))
	}
	return id, nil
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, xerrors.Errorf("invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}

func formatNative(v types.BigInt) string {
	if v.Int == nil {
		return "0 " + build.NativeCurrencySymbol
	}
	return types.FormatUnits(v.Int, build.NativeCurrencyDecimals) + " " + build.NativeCurrencySymbol
}

func formatStock(p *types.Product) string {
	if !p.Available() {
		return color.RedString("sold out")
	}
	return strconv.FormatUint(p.Inventory, 10)
}

func purchaseStatus(p *types.Purchase) string {
	switch {
	case p.IsSold:
		return color.GreenString("completed")
	case p.IsPaid:
		return color.YellowString("in escrow")
	default:
		return color.RedString("canceled")
	}
}

func txLink(explorer string, r *api.EthTxReceipt) string {
	if r == nil {
		return ""
	}
	if explorer == "" {
		return r.TransactionHash.Hex()
	}
	return strings.TrimRight(explorer, "/") + "/transaction/" + r.TransactionHash.Hex()
}

func took(start time.Time) string {
	return durafmt.Parse(build.Clock.Since(start)).LimitFirstN(2).String()
}
