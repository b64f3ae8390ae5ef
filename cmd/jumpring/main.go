package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	logging "github.com/ipfs/go-log/v2"
	"github.com/urfave/cli/v2"

	"xdao.co/jumpring/model"
	"xdao.co/jumpring/storage/registry"

	_ "xdao.co/jumpring/storage/badger"
	_ "xdao.co/jumpring/storage/leveldb"
)

var log = logging.Logger("jumpring/cli")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	app := &cli.App{
		Name:      "jumpring",
		Usage:     "imbiber registry and jump ring gate",
		Writer:    out,
		ErrWriter: errOut,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "TOML config file",
				EnvVars: []string{"JUMPRING_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "backend",
				Usage: fmt.Sprintf("state backend, overrides config (%v)", registry.Names(registry.UsageCLI)),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level, overrides config",
			},
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "write node metrics in textfile format after the command",
			},
		}, registry.Flags(registry.UsageCLI)...),
		Commands: []*cli.Command{
			initCmd(),
			imbibeCmd(),
			stepCmd(),
			swigsCmd(),
			imbiberCmd(),
			rootCmd(),
			exportCmd(),
			importCmd(),
			dnaCmd(),
			backendsCmd(),
		},
		ExitErrHandler: func(*cli.Context, error) {},
	}

	if err := app.Run(append([]string{"jumpring"}, args...)); err != nil {
		if kind := model.KindOf(err); kind != "" {
			fmt.Fprintf(errOut, "error (%s): %v\n", kind, err)
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return 1
	}
	return 0
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
