package cli

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/peermart/peermart-go/chain/types"
	"github.com/peermart/peermart-go/market/flow"
)

var sellerCmd = &cli.Command{
	Name:  "seller",
	Usage: "Register and inspect sellers",
	Subcommands: []*cli.Command{
		sellerRegister,
		sellerShow,
	},
}

var sellerRegister = &cli.Command{
	Name:  "register",
	Usage: "Register the connected account as a seller",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "name",
			Usage:    "display name",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "handle",
			Usage:    "social handle (@name) or profile URL",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "location",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "phone",
			Required: true,
		},
	},
	Action: func(cctx *cli.Context) error {
		c, closer, err := GetClient(cctx)
		if err != nil {
			return err
		}
		defer closer()
		ctx := ReqContext(cctx)

		if _, err := connect(ctx, c); err != nil {
			return err
		}

		err = c.Flows.Register(ctx, flow.RegistrationRequest{
			Name:        cctx.String("name"),
			Handle:      cctx.String("handle"),
			Location:    cctx.String("location"),
			PhoneNumber: cctx.String("phone"),
		})
		if err != nil {
			return flowErr(err)
		}

		if s := c.Market.Sellers.Current(); s != nil {
			printSeller(cctx, s)
		}
		return nil
	},
}

var sellerShow = &cli.Command{
	Name:      "show",
	Usage:     "Show a seller profile, the connected account's by default",
	ArgsUsage: "[address]",
	Action: func(cctx *cli.Context) error {
		c, closer, err := GetClient(cctx)
		if err != nil {
			return err
		}
		defer closer()
		ctx := ReqContext(cctx)

		var addr common.Address
		if cctx.Args().Present() {
			if addr, err = parseAddress(cctx.Args().First()); err != nil {
				return ShowHelp(cctx, err)
			}
		} else {
			sess, err := connect(ctx, c)
			if err != nil {
				return err
			}
			addr = sess.Address
		}

		s, err := c.Market.Sellers.Lookup(ctx, addr)
		if err != nil {
			return errReported
		}
		if s == nil {
			return xerrors.Errorf("%s is not a registered seller", addr)
		}
		printSeller(cctx, s)
		return nil
	},
}

func printSeller(cctx *cli.Context, s *types.Seller) {
	afmt := NewAppFmt(cctx.App)
	afmt.Printf("Seller:\t\t%s\n", color.New(color.Bold).Sprint(s.Name))
	afmt.Printf("Address:\t%s\n", s.Address.Hex())
	if s.ProfileURI != "" {
		afmt.Printf("Profile:\t%s\n", s.ProfileURI)
	}
	afmt.Printf("Location:\t%s\n", s.Location)
	afmt.Printf("Phone:\t\t%s\n", s.PhoneNumber)
	afmt.Printf("Rating:\t\t%d\n", s.Rating)
	afmt.Printf("Confirmed:\t%d\n", s.ConfirmedPurchases)
	afmt.Printf("Canceled:\t%d\n", s.CanceledPurchases)
	afmt.Printf("Reported:\t%d\n", s.ReportedPurchases)
	if s.Blocked != nil {
		afmt.Printf("Blocked:\t%s\n", color.RedString(s.Blocked.Reason))
	}
}
