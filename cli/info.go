package cli

import (
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/peermart/peermart-go/build"
	"github.com/peermart/peermart-go/market"
)

var infoCmd = &cli.Command{
	Name:  "info",
	Usage: "Print marketplace terms and network information",
	Action: func(cctx *cli.Context) error {
		c, closer, err := GetClient(cctx)
		if err != nil {
			return err
		}
		defer closer()
		ctx := ReqContext(cctx)
		afmt := NewAppFmt(cctx.App)

		head, err := c.Eth.EthBlockNumber(ctx)
		if err != nil {
			return xerrors.Errorf("getting chain head: %w", err)
		}

		afmt.Printf("Client:\t\t%s (contract api %s)\n", build.UserVersion(), build.ContractAPIVersion)
		afmt.Printf("Network:\t%s (%d)\n", c.Target.ChainName, c.Target.ChainID)
		afmt.Printf("Head:\t\t%s\n", humanize.Comma(int64(head)))
		afmt.Printf("Marketplace:\t%s\n", c.Addresses.Marketplace.Hex())
		afmt.Printf("Stablecoin:\t%s\n", c.Addresses.Stablecoin.Hex())

		terms, err := c.Market.Terms(ctx)
		if err != nil {
			return errReported
		}
		afmt.Println()
		afmt.Printf("Fee:\t\t%d%%\n", terms.FeePercentage)
		afmt.Printf("Penalty:\t%d%%\n", terms.PenaltyPercentage)
		afmt.Printf("Cancel penalty:\t%d%%\n", terms.CancellationPenaltyPercentage)
		afmt.Printf("Block after:\t%s reports\n", humanize.Comma(int64(terms.BlockReportsThreshold)))
		afmt.Printf("Fees collected:\t%s\n", terms.TotalFeesCollected)

		sess := c.Wallet.Session()
		if sess == nil {
			return nil
		}
		bal, err := market.StablecoinBalance(ctx, c.Gateway, sess.Address)
		if err != nil {
			return errReported
		}
		allowance, err := market.Allowance(ctx, c.Gateway, sess.Address, c.Addresses.Marketplace)
		if err != nil {
			return errReported
		}
		afmt.Println()
		afmt.Printf("Account:\t%s\n", color.GreenString(sess.Address.Hex()))
		afmt.Printf("USDC:\t\t%s\n", bal)
		afmt.Printf("Allowance:\t%s\n", allowance)
		return nil
	},
}
