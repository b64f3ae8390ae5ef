package main

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"xdao.co/jumpring/config"
	"xdao.co/jumpring/metrics"
	"xdao.co/jumpring/model"
	"xdao.co/jumpring/node"
	"xdao.co/jumpring/rpc"
	"xdao.co/jumpring/state"
	"xdao.co/jumpring/storage/registry"
)

func loadConfig(cctx *cli.Context) (config.Config, error) {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		return cfg, err
	}
	if cctx.IsSet("backend") {
		cfg.Backend = cctx.String("backend")
	}
	if cctx.IsSet("log-level") {
		cfg.LogLevel = cctx.String("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, cfg.ApplyLogLevel()
}

func openStore(cctx *cli.Context) (*state.Store, error) {
	cfg, err := loadConfig(cctx)
	if err != nil {
		return nil, err
	}
	return cfg.OpenStore(registry.UsageCLI, registry.ConfigFromCLI(cctx, cfg.Backend))
}

// withNode runs fn against a node built from config and flags. The node is
// drained before returning, so reply errors raised by deliveries fn
// triggered are part of the result.
func withNode(cctx *cli.Context, fn func(n *node.Node, cfg config.Config) error) (err error) {
	cfg, err := loadConfig(cctx)
	if err != nil {
		return err
	}
	store, err := cfg.OpenStore(registry.UsageCLI, registry.ConfigFromCLI(cctx, cfg.Backend))
	if err != nil {
		return err
	}

	dir := rpc.NewDirectory(cfg.PeerTargets(), rpc.DialOptions{Timeout: cfg.DispatchTimeout})
	m := metrics.New()
	n, err := node.New(cctx.Context, store, node.Options{
		Contract:        model.Identity(cfg.Contract),
		Authority:       model.Identity(cfg.Authority),
		Querier:         dir,
		Transport:       dir,
		DispatchTimeout: cfg.DispatchTimeout,
		Metrics:         m,
	})
	if err != nil {
		return multierr.Combine(err, store.Close(), dir.Close())
	}
	defer func() {
		err = multierr.Combine(err, n.Drain(), n.Close(), dir.Close())
		if path := cctx.String("metrics-file"); path != "" {
			err = multierr.Append(err, m.WriteTextfile(path))
		}
	}()

	return fn(n, cfg)
}
