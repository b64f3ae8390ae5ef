// Package config loads node configuration from a TOML file and the
// environment.
//
// Sources are layered: Default, then the file (if any), then JUMPRING_*
// environment variables. Backends are selected by registry name; binaries
// still link the backends they accept via blank imports.
//
// Example:
//
//	contract = "wasm1jumpring"
//	backend = "leveldb"
//	log_level = "info"
//	dispatch_timeout = "10s"
//
//	[backend_config]
//	leveldb-dir = "/var/lib/jumpring"
//
//	[peers]
//	wasm1portal = "127.0.0.1:7777"
//	wasm_secret_address_do_not_reveal_to_anyone = "127.0.0.1:7777"
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	logging "github.com/ipfs/go-log/v2"

	"xdao.co/jumpring/model"
	"xdao.co/jumpring/state"
	"xdao.co/jumpring/storage/registry"
)

type Config struct {
	// Contract is the identity the node executes as.
	Contract string `toml:"contract" env:"JUMPRING_CONTRACT"`
	// Authority overrides the address notified of registrations.
	Authority string `toml:"authority" env:"JUMPRING_AUTHORITY"`

	Backend       string            `toml:"backend" env:"JUMPRING_BACKEND"`
	BackendConfig map[string]string `toml:"backend_config"`

	LogLevel        string        `toml:"log_level" env:"JUMPRING_LOG_LEVEL"`
	DispatchTimeout time.Duration `toml:"dispatch_timeout" env:"JUMPRING_DISPATCH_TIMEOUT"`

	// Peers maps contract identities to gRPC targets.
	Peers map[string]string `toml:"peers"`
}

func Default() Config {
	return Config{
		Contract:        "wasm1jumpring",
		Backend:         "leveldb",
		LogLevel:        "info",
		DispatchTimeout: 10 * time.Second,
	}
}

// Load layers path (optional) and the environment over Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
		if undec := md.Undecoded(); len(undec) > 0 {
			return cfg, fmt.Errorf("config: unknown key %q in %s", undec[0].String(), path)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("config: parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Contract == "" {
		return errors.New("config: contract identity is required")
	}
	if c.Backend == "" {
		return errors.New("config: backend is required")
	}
	if _, err := logging.LevelFromString(c.LogLevel); err != nil {
		return fmt.Errorf("config: invalid log_level %q", c.LogLevel)
	}
	if c.DispatchTimeout < 0 {
		return fmt.Errorf("config: negative dispatch_timeout %s", c.DispatchTimeout)
	}
	for id, target := range c.Peers {
		if id == "" || target == "" {
			return fmt.Errorf("config: peer %q has an empty identity or target", id)
		}
	}
	return nil
}

// PeerTargets returns Peers keyed by identity.
func (c Config) PeerTargets() map[model.Identity]string {
	out := make(map[model.Identity]string, len(c.Peers))
	for id, target := range c.Peers {
		out[model.Identity(id)] = target
	}
	return out
}

// OpenStore opens the configured backend. overrides (typically CLI flags)
// take precedence over BackendConfig.
func (c Config) OpenStore(usage registry.Usage, overrides map[string]string) (*state.Store, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if !registry.Known(c.Backend) {
		return nil, fmt.Errorf("config: backend %q is not linked into this binary (have %v)", c.Backend, registry.Names(usage))
	}
	merged := make(map[string]string, len(c.BackendConfig)+len(overrides))
	for k, v := range c.BackendConfig {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	b, err := registry.OpenWithConfig(c.Backend, usage, merged)
	if err != nil {
		return nil, fmt.Errorf("config: open backend %q: %w", c.Backend, err)
	}
	return state.New(b), nil
}

// ApplyLogLevel sets the level of every jumpring logger.
func (c Config) ApplyLogLevel() error {
	return logging.SetLogLevelRegex("jumpring/.*", c.LogLevel)
}
