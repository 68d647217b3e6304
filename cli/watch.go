package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/peermart/peermart-go/build"
	"github.com/peermart/peermart-go/chain/wallet"
)

var watchCmd = &cli.Command{
	Name:  "watch",
	Usage: "Follow the catalog and the connected account's purchases",
	Flags: []cli.Flag{
		&cli.DurationFlag{
			Name:  "interval",
			Usage: "how often to refresh",
			Value: 30 * time.Second,
		},
		&cli.BoolFlag{
			Name:  "connect",
			Usage: "connect the wallet and follow its purchases too",
		},
	},
	Action: func(cctx *cli.Context) error {
		c, closer, err := GetClient(cctx)
		if err != nil {
			return err
		}
		defer closer()
		ctx := ReqContext(cctx)
		afmt := NewAppFmt(cctx.App)

		unsub := c.Wallet.Subscribe(func(ch wallet.SessionChange) {
			if ch.Session == nil {
				afmt.Printf("%s session %d ended\n", color.YellowString("wallet"), ch.Version)
				return
			}
			afmt.Printf("%s session %d for %s\n", color.GreenString("wallet"), ch.Version, ch.Session.Address.Hex())
		})
		defer unsub()

		if cctx.Bool("connect") {
			if _, err := connect(ctx, c); err != nil {
				return err
			}
		}

		catalog, stopCatalog := c.Market.Catalog.Feed().Subscribe()
		defer stopCatalog()
		purchases, stopPurchases := c.Market.Purchases.Feed().Subscribe()
		defer stopPurchases()

		refresh := func() {
			_, _ = c.Market.Catalog.Refresh(ctx)
			if c.Wallet.Session() != nil {
				_, _ = c.Market.Purchases.Refresh(ctx)
			}
		}
		refresh()

		ticker := build.Clock.Ticker(cctx.Duration("interval"))
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				refresh()
			case s := <-catalog:
				afmt.Printf("%s %d products (%s)\n", color.CyanString("catalog"), len(s.Items), humanize.Time(s.Time))
				if s.Report.Skipped > 0 {
					afmt.Printf("  %s\n", s.Report)
				}
				if err := printProducts(cctx, s.Items); err != nil {
					return err
				}
			case s := <-purchases:
				pending := 0
				for _, p := range s.Items {
					if p.Pending() {
						pending++
					}
				}
				afmt.Printf("%s %d purchases, %d in escrow\n", color.CyanString("purchases"), len(s.Items), pending)
				if pending > 0 {
					tw := newTabWriter(cctx.App.Writer)
					for _, p := range s.Items {
						if p.Pending() {
							_, _ = fmt.Fprintf(tw, "  %d\t%s\t%s\n", p.ProductID, p.ProductName, p.ProductPrice)
						}
					}
					if err := tw.Flush(); err != nil {
						return err
					}
				}
			}
		}
	},
}
