package cli

import (
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/peermart/peermart-go/lib/ipfs"
)

var imageCmd = &cli.Command{
	Name:  "image",
	Usage: "Store and resolve product images on IPFS",
	Subcommands: []*cli.Command{
		imageUpload,
		imageURL,
		imageFetch,
	},
}

var imageUpload = &cli.Command{
	Name:      "upload",
	Usage:     "Add a file to IPFS and print its ipfs:// reference",
	ArgsUsage: "<file>",
	Action: func(cctx *cli.Context) error {
		if cctx.NArg() != 1 {
			return ShowHelp(cctx, xerrors.New("expected a file"))
		}

		cfg, err := GetConfig(cctx)
		if err != nil {
			return err
		}
		up, err := ipfs.NewUploader(cfg.IPFS.APIURL, nil)
		if err != nil {
			return err
		}

		ref, err := uploadFile(cctx, up, cctx.Args().First())
		if err != nil {
			return err
		}
		NewAppFmt(cctx.App).Println(ref)
		return nil
	},
}

var imageURL = &cli.Command{
	Name:      "url",
	Usage:     "Print the gateway URLs of an image reference",
	ArgsUsage: "<ref>",
	Action: func(cctx *cli.Context) error {
		if cctx.NArg() != 1 {
			return ShowHelp(cctx, xerrors.New("expected an image reference"))
		}

		cfg, err := GetConfig(cctx)
		if err != nil {
			return err
		}

		urls, err := ipfs.Resolve(cctx.Args().First(), cfg.IPFS.Gateways)
		if err != nil {
			return err
		}
		afmt := NewAppFmt(cctx.App)
		for _, u := range urls {
			afmt.Println(u)
		}
		return nil
	},
}

var imageFetch = &cli.Command{
	Name:      "fetch",
	Usage:     "Download an image through the first responsive gateway",
	ArgsUsage: "<ref>",
	Flags: []cli.Flag{
		&cli.PathFlag{
			Name:     "out",
			Aliases:  []string{"o"},
			Usage:    "write the image to this file",
			Required: true,
		},
	},
	Action: func(cctx *cli.Context) error {
		if cctx.NArg() != 1 {
			return ShowHelp(cctx, xerrors.New("expected an image reference"))
		}

		cfg, err := GetConfig(cctx)
		if err != nil {
			return err
		}
		f := ipfs.NewFetcher(cfg.IPFS.Gateways, time.Duration(cfg.IPFS.FetchTimeout))

		data, from, err := f.Fetch(ReqContext(cctx), cctx.Args().First())
		if err != nil {
			return err
		}
		if err := os.WriteFile(cctx.Path("out"), data, 0644); err != nil {
			return xerrors.Errorf("writing image: %w", err)
		}
		NewAppFmt(cctx.App).Printf("Fetched %s from %s\n", humanize.IBytes(uint64(len(data))), from)
		return nil
	},
}
