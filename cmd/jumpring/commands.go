package main

import (
	"fmt"
	"os"

	"github.com/ipfs/go-cid"
	"github.com/urfave/cli/v2"

	"xdao.co/jumpring/config"
	"xdao.co/jumpring/contract"
	"xdao.co/jumpring/dna"
	"xdao.co/jumpring/model"
	"xdao.co/jumpring/node"
	"xdao.co/jumpring/storage/registry"
	"xdao.co/jumpring/storage/snapshot"
)

func senderFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "sender",
		Usage:    "identity of the caller",
		Required: true,
	}
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "instantiate the contract; the sender becomes the owner",
		Flags: []cli.Flag{
			senderFlag(),
			&cli.UintFlag{Name: "dna-length", Value: 8, Usage: "cyborg DNA length (0..32)"},
			&cli.UintFlag{Name: "dna-modulus", Value: 10, Usage: "cyborg DNA modulus (1..255)"},
		},
		Action: func(cctx *cli.Context) error {
			modulus := cctx.Uint("dna-modulus")
			if modulus > 255 {
				return model.NewError(model.KindOutOfRange, fmt.Sprintf("dna-modulus %d exceeds 255", modulus))
			}
			return withNode(cctx, func(n *node.Node, _ config.Config) error {
				resp, err := n.Instantiate(cctx.Context,
					contract.MessageInfo{Sender: model.Identity(cctx.String("sender"))},
					contract.InstantiateMsg{DNALength: cctx.Uint("dna-length"), DNAModulus: uint8(modulus)})
				if err != nil {
					return err
				}
				return printJSON(cctx.App.Writer, resp)
			})
		},
	}
}

func imbibeCmd() *cli.Command {
	return &cli.Command{
		Name:  "imbibe",
		Usage: "register the sender as an imbiber",
		Flags: []cli.Flag{
			senderFlag(),
			&cli.StringFlag{Name: "name", Required: true, Usage: "imbiber display name"},
			&cli.StringFlag{Name: "species", Value: "Human", Usage: "species display name"},
			&cli.StringFlag{Name: "sapience", Value: "None", Usage: "None, Low, Medium or High"},
		},
		Action: func(cctx *cli.Context) error {
			level, err := model.ParseSapienceLevel(cctx.String("sapience"))
			if err != nil {
				return err
			}
			msg := contract.ExecuteMsg{ImbibePotion: &contract.ImbibePotion{
				Name:    cctx.String("name"),
				Species: model.Species{Name: cctx.String("species"), SapienceLevel: level},
			}}
			return execute(cctx, contract.MessageInfo{Sender: model.Identity(cctx.String("sender"))}, msg)
		},
	}
}

func stepCmd() *cli.Command {
	return &cli.Command{
		Name:  "step",
		Usage: "step through a portal's jump ring",
		Flags: []cli.Flag{
			senderFlag(),
			&cli.StringFlag{Name: "portal", Required: true},
			&cli.StringFlag{Name: "destination", Required: true},
			&cli.StringFlag{Name: "traveler", Usage: "traveler display name"},
			&cli.StringFlag{Name: "home", Usage: "traveler home identity"},
			&cli.StringFlag{Name: "traveler-species", Value: "Human", Usage: "traveler species display name"},
			&cli.StringFlag{Name: "traveler-sapience", Value: "None", Usage: "traveler sapience claim: None, Low, Medium or High"},
			&cli.BoolFlag{Name: "cyberdized", Usage: "traveler profile is cyberdized"},
			&cli.StringSliceFlag{Name: "funds", Usage: "attached coins, e.g. 1PORT (repeatable)"},
		},
		Action: func(cctx *cli.Context) error {
			info, msg, err := stepMsg(cctx)
			if err != nil {
				return err
			}
			return execute(cctx, info, msg)
		},
	}
}

func stepMsg(cctx *cli.Context) (contract.MessageInfo, contract.ExecuteMsg, error) {
	level, err := model.ParseSapienceLevel(cctx.String("traveler-sapience"))
	if err != nil {
		return contract.MessageInfo{}, contract.ExecuteMsg{}, err
	}
	var funds []model.Coin
	for _, s := range cctx.StringSlice("funds") {
		c, err := model.ParseCoin(s)
		if err != nil {
			return contract.MessageInfo{}, contract.ExecuteMsg{}, err
		}
		funds = append(funds, c)
	}
	msg := contract.ExecuteMsg{StepThroughJumpRing: &contract.StepThroughJumpRing{
		Portal:      model.Identity(cctx.String("portal")),
		Destination: model.Identity(cctx.String("destination")),
		Traveler: model.Traveler{
			Name:       cctx.String("traveler"),
			Home:       model.Identity(cctx.String("home")),
			Species:    model.Species{Name: cctx.String("traveler-species"), SapienceLevel: level},
			Cyberdized: cctx.Bool("cyberdized"),
		},
	}}
	return contract.MessageInfo{Sender: model.Identity(cctx.String("sender")), Funds: funds}, msg, nil
}

func execute(cctx *cli.Context, info contract.MessageInfo, msg contract.ExecuteMsg) error {
	return withNode(cctx, func(n *node.Node, cfg config.Config) error {
		log.Debugw("execute", "command", msg.Name(), "sender", info.Sender, "contract", cfg.Contract)
		resp, err := n.Execute(cctx.Context, info, msg)
		if err != nil {
			return err
		}
		return printJSON(cctx.App.Writer, resp)
	})
}

func query(cctx *cli.Context, msg contract.QueryMsg) error {
	return withNode(cctx, func(n *node.Node, _ config.Config) error {
		res, err := n.Query(cctx.Context, msg)
		if err != nil {
			return err
		}
		return printJSON(cctx.App.Writer, res)
	})
}

func swigsCmd() *cli.Command {
	return &cli.Command{
		Name:  "swigs",
		Usage: "print the remaining registration budget",
		Action: func(cctx *cli.Context) error {
			return query(cctx, contract.QueryMsg{NumberOfSwigs: &contract.NumberOfSwigs{}})
		},
	}
}

func imbiberCmd() *cli.Command {
	return &cli.Command{
		Name:      "imbiber",
		Usage:     "print the record registered for an address",
		ArgsUsage: "<address>",
		Action: func(cctx *cli.Context) error {
			if cctx.NArg() != 1 {
				return fmt.Errorf("expected exactly one address")
			}
			return query(cctx, contract.QueryMsg{Imbiber: &contract.ImbiberQuery{Address: model.Identity(cctx.Args().First())}})
		},
	}
}

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:  "root",
		Usage: "print the state root CID",
		Action: func(cctx *cli.Context) error {
			return withNode(cctx, func(n *node.Node, _ config.Config) error {
				root, err := n.Root(cctx.Context)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cctx.App.Writer, root)
				return err
			})
		},
	}
}

func exportCmd() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "write a deterministic state snapshot",
		ArgsUsage: "<file.tar>",
		Action: func(cctx *cli.Context) error {
			if cctx.NArg() != 1 {
				return fmt.Errorf("expected exactly one output file")
			}
			store, err := openStore(cctx)
			if err != nil {
				return err
			}
			defer store.Close()

			f, err := os.Create(cctx.Args().First())
			if err != nil {
				return err
			}
			root, err := snapshot.Export(cctx.Context, f, store)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cctx.App.Writer, root)
			return err
		},
	}
}

func importCmd() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "restore a snapshot into an empty backend",
		ArgsUsage: "<file.tar>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "expect-root", Usage: "fail unless the snapshot root equals this CID"},
		},
		Action: func(cctx *cli.Context) error {
			if cctx.NArg() != 1 {
				return fmt.Errorf("expected exactly one input file")
			}
			var opts snapshot.ImportOptions
			if s := cctx.String("expect-root"); s != "" {
				c, err := cid.Decode(s)
				if err != nil {
					return fmt.Errorf("invalid --expect-root: %w", err)
				}
				opts.ExpectRoot = c
			}

			store, err := openStore(cctx)
			if err != nil {
				return err
			}
			defer store.Close()

			f, err := os.Open(cctx.Args().First())
			if err != nil {
				return err
			}
			defer f.Close()

			root, err := snapshot.Import(cctx.Context, f, store, opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cctx.App.Writer, root)
			return err
		},
	}
}

func dnaCmd() *cli.Command {
	return &cli.Command{
		Name:      "dna",
		Usage:     "derive the cyborg DNA of an identity",
		ArgsUsage: "<identity>",
		Flags: []cli.Flag{
			&cli.UintFlag{Name: "length", Value: 8},
			&cli.UintFlag{Name: "modulus", Value: 10},
		},
		Action: func(cctx *cli.Context) error {
			if cctx.NArg() != 1 {
				return fmt.Errorf("expected exactly one identity")
			}
			modulus := cctx.Uint("modulus")
			if modulus > 255 {
				return model.NewError(model.KindOutOfRange, fmt.Sprintf("modulus %d exceeds 255", modulus))
			}
			out, err := dna.Derive(cctx.Args().First(), cctx.Uint("length"), uint8(modulus))
			if err != nil {
				return err
			}
			ints := make([]int, len(out))
			for i, b := range out {
				ints[i] = int(b)
			}
			return printJSON(cctx.App.Writer, ints)
		},
	}
}

func backendsCmd() *cli.Command {
	return &cli.Command{
		Name:  "backends",
		Usage: "list the state backends linked into this binary",
		Action: func(cctx *cli.Context) error {
			for _, b := range registry.List(registry.UsageCLI) {
				if b.Description == "" {
					fmt.Fprintf(cctx.App.Writer, "%s\n", b.Name)
					continue
				}
				fmt.Fprintf(cctx.App.Writer, "%s\t%s\n", b.Name, b.Description)
			}
			return nil
		},
	}
}
