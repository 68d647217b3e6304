package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/peermart/peermart-go/market"
	"github.com/peermart/peermart-go/market/flow"
)

var purchasesCmd = &cli.Command{
	Name:  "purchases",
	Usage: "Buy products and resolve escrowed purchases",
	Description: `Every write waits for its transaction receipt for at most
Gateway.ConfirmTimeout (2m by default). When the wait times out the command
fails with a network error, but the transaction was already submitted and may
still be mined. Check "peermart purchases list" before retrying.`,
	Subcommands: []*cli.Command{
		purchasesList,
		purchasesBuy,
		purchasesConfirm,
		purchasesCancel,
		purchasesReport,
	},
}

var purchasesList = &cli.Command{
	Name:  "list",
	Usage: "List the connected buyer's purchases",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "pending",
			Usage: "only show purchases still in escrow",
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

		items, err := c.Market.Purchases.Refresh(ctx)
		if err != nil {
			return errReported
		}
		if cctx.Bool("pending") {
			items = c.Market.Purchases.Pending()
		}
		if len(items) == 0 {
			NewAppFmt(cctx.App).Println("No purchases")
			return nil
		}

		tw := newTabWriter(cctx.App.Writer)
		_, _ = fmt.Fprintln(tw, "Product\tName\tPrice\tSeller\tStatus")
		for _, p := range items {
			_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", p.ProductID, p.ProductName, p.ProductPrice, p.SellerName, purchaseStatus(p))
		}
		return tw.Flush()
	},
}

var purchasesBuy = &cli.Command{
	Name:      "buy",
	Usage:     "Approve the stablecoin spend and buy a product",
	ArgsUsage: "<product id>",
	Action: func(cctx *cli.Context) error {
		id, err := parseID(cctx, "product")
		if err != nil {
			return err
		}

		c, closer, err := GetClient(cctx)
		if err != nil {
			return err
		}
		defer closer()
		ctx := ReqContext(cctx)

		p, err := c.Market.Catalog.Product(ctx, id)
		if err != nil {
			if xerrors.Is(err, market.ErrNotFound) {
				return err
			}
			return errReported
		}
		if !p.Available() {
			return xerrors.Errorf("product %d is sold out", id)
		}

		if _, err := connect(ctx, c); err != nil {
			return err
		}
		return flowErr(c.Flows.Purchase(ctx, id, p.Price))
	},
}

var purchasesConfirm = &cli.Command{
	Name:      "confirm",
	Usage:     "Confirm delivery and release the escrowed funds to the seller",
	ArgsUsage: "<product id>",
	Action: func(cctx *cli.Context) error {
		return escrowAction(cctx, func(f *flow.Flows, id uint64) error {
			return f.Confirm(ReqContext(cctx), id)
		})
	},
}

var purchasesCancel = &cli.Command{
	Name:      "cancel",
	Usage:     "Cancel a purchase still in escrow",
	ArgsUsage: "<product id>",
	Action: func(cctx *cli.Context) error {
		return escrowAction(cctx, func(f *flow.Flows, id uint64) error {
			return f.Cancel(ReqContext(cctx), id)
		})
	},
}

var purchasesReport = &cli.Command{
	Name:      "report",
	Usage:     "Report the seller of a canceled purchase",
	ArgsUsage: "<product id>",
	Action: func(cctx *cli.Context) error {
		return escrowAction(cctx, func(f *flow.Flows, id uint64) error {
			return f.Report(ReqContext(cctx), id)
		})
	},
}

func escrowAction(cctx *cli.Context, act func(f *flow.Flows, id uint64) error) error {
	id, err := parseID(cctx, "product")
	if err != nil {
		return err
	}

	c, closer, err := GetClient(cctx)
	if err != nil {
		return err
	}
	defer closer()

	if _, err := connect(ReqContext(cctx), c); err != nil {
		return err
	}
	return flowErr(act(c.Flows, id))
}
