package cli

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/peermart/peermart-go/api"
	"github.com/peermart/peermart-go/chain/types"
	"github.com/peermart/peermart-go/market"
)

var walletCmd = &cli.Command{
	Name:  "wallet",
	Usage: "Manage the wallet session",
	Subcommands: []*cli.Command{
		walletNew,
		walletList,
		walletConnect,
		walletStatus,
		walletDisconnect,
	},
}

func openKeystore(cctx *cli.Context) (*keystore.KeyStore, error) {
	cfg, err := GetConfig(cctx)
	if err != nil {
		return nil, err
	}
	if cfg.Wallet.KeystoreDir == "" {
		return nil, xerrors.New("no keystore directory configured")
	}
	return keystore.NewKeyStore(cfg.Wallet.KeystoreDir, keystore.StandardScryptN, keystore.StandardScryptP), nil
}

var walletNew = &cli.Command{
	Name:  "new",
	Usage: "Generate a new account in the keystore",
	Action: func(cctx *cli.Context) error {
		ks, err := openKeystore(cctx)
		if err != nil {
			return err
		}

		pass, err := readNewPassphrase(cctx.App.ErrWriter)
		if err != nil {
			return err
		}

		acc, err := ks.NewAccount(pass)
		if err != nil {
			return xerrors.Errorf("creating account: %w", err)
		}

		NewAppFmt(cctx.App).Println(acc.Address.Hex())
		return nil
	},
}

var walletList = &cli.Command{
	Name:  "list",
	Usage: "List keystore accounts",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "addr-only",
			Usage:   "Only print addresses",
			Aliases: []string{"a"},
		},
	},
	Action: func(cctx *cli.Context) error {
		ks, err := openKeystore(cctx)
		if err != nil {
			return err
		}
		afmt := NewAppFmt(cctx.App)

		accs := ks.Accounts()
		if cctx.Bool("addr-only") {
			for _, acc := range accs {
				afmt.Println(acc.Address.Hex())
			}
			return nil
		}

		c, closer, err := GetClient(cctx)
		if err != nil {
			return err
		}
		defer closer()
		ctx := ReqContext(cctx)

		tw := newTabWriter(cctx.App.Writer)
		_, _ = fmt.Fprintln(tw, "Address\tBalance\tUSDC\tDefault")
		for _, acc := range accs {
			bal, err := c.Eth.EthGetBalance(ctx, acc.Address, api.BlockLatest)
			if err != nil {
				return xerrors.Errorf("getting balance of %s: %w", acc.Address, err)
			}
			usdc, err := market.StablecoinBalance(ctx, c.Gateway, acc.Address)
			if err != nil {
				return err
			}
			def := ""
			if c.Config.Wallet.Account != "" && common.HexToAddress(c.Config.Wallet.Account) == acc.Address {
				def = "X"
			}
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", acc.Address.Hex(), formatNative(types.BigFromBig(bal.Int)), usdc.Unitless(), def)
		}
		return tw.Flush()
	},
}

var walletConnect = &cli.Command{
	Name:  "connect",
	Usage: "Unlock an account and establish a session on the target network",
	Action: func(cctx *cli.Context) error {
		c, closer, err := GetClient(cctx)
		if err != nil {
			return err
		}
		defer closer()
		ctx := ReqContext(cctx)

		sess, err := connect(ctx, c)
		if err != nil {
			return err
		}
		return printSession(cctx, c.Wallet.Target().ChainName, sess.Address.Hex(), formatNative(sess.Balance), sess.Version)
	},
}

var walletStatus = &cli.Command{
	Name:  "status",
	Usage: "Show the session state without prompting the wallet",
	Action: func(cctx *cli.Context) error {
		c, closer, err := GetClient(cctx)
		if err != nil {
			return err
		}
		defer closer()
		ctx := ReqContext(cctx)
		afmt := NewAppFmt(cctx.App)

		target := c.Wallet.Target()
		afmt.Printf("Network:\t%s (%d)\n", target.ChainName, target.ChainID)
		if !c.Wallet.Capable() {
			afmt.Printf("Wallet:\t\t%s\n", color.YellowString("no signing provider, read-only"))
			return nil
		}

		sess := c.Wallet.Session()
		if sess == nil {
			afmt.Printf("Wallet:\t\t%s\n", c.Wallet.State())
			return nil
		}

		usdc, err := market.StablecoinBalance(ctx, c.Gateway, sess.Address)
		if err != nil {
			return err
		}
		if err := printSession(cctx, target.ChainName, sess.Address.Hex(), formatNative(sess.Balance), sess.Version); err != nil {
			return err
		}
		afmt.Printf("USDC:\t\t%s\n", usdc)
		return nil
	},
}

var walletDisconnect = &cli.Command{
	Name:  "disconnect",
	Usage: "Drop the current session and lock the account",
	Action: func(cctx *cli.Context) error {
		c, closer, err := GetClient(cctx)
		if err != nil {
			return err
		}
		defer closer()

		was := c.Wallet.State()
		c.Wallet.Disconnect()
		NewAppFmt(cctx.App).Printf("Wallet:\t\t%s (was %s)\n", c.Wallet.State(), was)
		return nil
	},
}

func printSession(cctx *cli.Context, network, addr, balance string, version uint64) error {
	afmt := NewAppFmt(cctx.App)
	afmt.Printf("Wallet:\t\t%s\n", color.GreenString("connected"))
	afmt.Printf("Network:\t%s\n", network)
	afmt.Printf("Address:\t%s\n", addr)
	afmt.Printf("Balance:\t%s\n", balance)
	afmt.Printf("Session:\t%d\n", version)
	return nil
}
