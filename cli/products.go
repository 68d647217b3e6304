package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/peermart/peermart-go/build"
	"github.com/peermart/peermart-go/chain/types"
	"github.com/peermart/peermart-go/lib/ipfs"
	"github.com/peermart/peermart-go/market/flow"
)

var productsCmd = &cli.Command{
	Name:  "products",
	Usage: "Browse and list products",
	Subcommands: []*cli.Command{
		productsList,
		productsShow,
		productsMine,
		productsSell,
	},
}

func printProducts(cctx *cli.Context, items []*types.Product) error {
	tw := newTabWriter(cctx.App.Writer)
	_, _ = fmt.Fprintln(tw, "ID\tName\tPrice\tStock\tSold\tSeller")
	for _, p := range items {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n", p.ID, p.Name, p.Price, formatStock(p), p.TotalSold, p.SellerName)
	}
	return tw.Flush()
}

var productsList = &cli.Command{
	Name:  "list",
	Usage: "List products with stock left",
	Action: func(cctx *cli.Context) error {
		c, closer, err := GetClient(cctx)
		if err != nil {
			return err
		}
		defer closer()
		ctx := ReqContext(cctx)

		items, err := c.Market.Catalog.Refresh(ctx)
		if err != nil {
			return errReported
		}
		if len(items) == 0 {
			NewAppFmt(cctx.App).Println("No products available")
			return nil
		}
		return printProducts(cctx, items)
	},
}

var productsShow = &cli.Command{
	Name:      "show",
	Usage:     "Show a single product",
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
		afmt := NewAppFmt(cctx.App)

		p, err := c.Market.Catalog.Product(ctx, id)
		if err != nil {
			return err
		}

		afmt.Printf("Product:\t%d\n", p.ID)
		afmt.Printf("Name:\t\t%s\n", color.New(color.Bold).Sprint(p.Name))
		afmt.Printf("Price:\t\t%s\n", p.Price)
		afmt.Printf("Stock:\t\t%s\n", formatStock(p))
		afmt.Printf("Sold:\t\t%d\n", p.TotalSold)
		afmt.Printf("Seller:\t\t%s (%s)\n", p.SellerName, p.Seller.Hex())
		if p.Description != "" {
			afmt.Printf("Description:\t%s\n", p.Description)
		}

		urls, err := ipfs.Resolve(p.ImageRef, c.Fetcher.Mirrors())
		if err != nil {
			afmt.Printf("Image:\t\t%s\n", p.ImageRef)
			return nil
		}
		for i, u := range urls {
			label := "Image:\t\t"
			if i > 0 {
				label = "\t\t"
			}
			afmt.Printf("%s%s\n", label, u)
		}
		return nil
	},
}

var productsMine = &cli.Command{
	Name:  "mine",
	Usage: "List the connected seller's products, including sold out ones",
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

		items, err := c.Market.Catalog.RefreshSeller(ctx, sess.Address)
		if err != nil {
			return errReported
		}
		if len(items) == 0 {
			NewAppFmt(cctx.App).Println("No products listed")
			return nil
		}
		return printProducts(cctx, items)
	},
}

var productsSell = &cli.Command{
	Name:  "sell",
	Usage: "List a new product",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "name",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "price",
			Usage:    "unit price in USDC, e.g. 12.5",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:  "inventory",
			Usage: "number of units for sale",
			Value: 1,
		},
		&cli.StringFlag{
			Name: "description",
		},
		&cli.StringFlag{
			Name:  "image",
			Usage: "image reference: a cid, an ipfs:// reference or an https URL",
		},
		&cli.PathFlag{
			Name:  "image-file",
			Usage: "upload this file to IPFS and use it as the image",
		},
		&cli.BoolFlag{
			Name:  "no-wait",
			Usage: "return once the transaction is included, without waiting for the listing to show up",
		},
	},
	Action: func(cctx *cli.Context) error {
		afmt := NewAppFmt(cctx.App)

		price, err := flow.NormalizePrice(cctx.String("price"))
		if err != nil {
			return ShowHelp(cctx, err)
		}

		c, closer, err := GetClient(cctx)
		if err != nil {
			return err
		}
		defer closer()
		ctx := ReqContext(cctx)

		image := cctx.String("image")
		if path := cctx.Path("image-file"); path != "" {
			if image != "" {
				return ShowHelp(cctx, xerrors.New("--image and --image-file are mutually exclusive"))
			}
			ref, err := uploadFile(cctx, c.Uploader, path)
			if err != nil {
				return err
			}
			image = ref
		}
		image, err = flow.NormalizeImage(image)
		if err != nil {
			return ShowHelp(cctx, err)
		}

		if _, err := connect(ctx, c); err != nil {
			return err
		}

		start := build.Clock.Now()
		res, err := c.Flows.List(ctx, flow.ListingRequest{
			Name:        cctx.String("name"),
			ImageRef:    image,
			Price:       price,
			Description: cctx.String("description"),
			Inventory:   cctx.Uint64("inventory"),
		})
		if err != nil {
			return flowErr(err)
		}
		afmt.Printf("Transaction:\t%s\n", txLink(c.Config.Chain.ExplorerURL, res.Receipt))

		if cctx.Bool("no-wait") {
			return nil
		}

		select {
		case <-res.Settled:
		case <-ctx.Done():
			return ctx.Err()
		}
		afmt.Printf("Listed in %s\n", took(start))
		if items := c.Market.Catalog.SellerFeed().Items(); len(items) > 0 {
			return printProducts(cctx, items[:1])
		}
		return nil
	},
}

func uploadFile(cctx *cli.Context, up *ipfs.Uploader, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", xerrors.Errorf("opening image: %w", err)
	}
	defer f.Close() //nolint:errcheck

	c, err := up.Upload(ReqContext(cctx), filepath.Base(path), f)
	if err != nil {
		return "", xerrors.Errorf("uploading image: %w", err)
	}
	return ipfs.Scheme + c.String(), nil
}
