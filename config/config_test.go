package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"xdao.co/jumpring/model"
	"xdao.co/jumpring/storage/registry"

	_ "xdao.co/jumpring/storage/memory"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jumpring.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `
contract = "wasm1ring"
backend = "badger"
log_level = "debug"
dispatch_timeout = "3s"

[backend_config]
badger-dir = "/tmp/state"

[peers]
wasm1portal = "127.0.0.1:7777"
`)
	t.Setenv("JUMPRING_BACKEND", "memory")
	t.Setenv("JUMPRING_DISPATCH_TIMEOUT", "250ms")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "wasm1ring", cfg.Contract)
	require.Equal(t, "memory", cfg.Backend)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, 250*time.Millisecond, cfg.DispatchTimeout)
	require.Equal(t, map[string]string{"badger-dir": "/tmp/state"}, cfg.BackendConfig)
	require.Equal(t, map[model.Identity]string{"wasm1portal": "127.0.0.1:7777"}, cfg.PeerTargets())
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":   `colour = "blue"`,
		"bad log level": `log_level = "chatty"`,
		"empty peer":    "[peers]\nwasm1portal = \"\"",
		"no contract":   `contract = ""`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			require.Error(t, err)
		})
	}
}

func TestOpenStore(t *testing.T) {
	cfg := Default()
	cfg.Backend = "memory"
	s, err := cfg.OpenStore(registry.UsageEmbedded, nil)
	require.NoError(t, err)
	defer s.Close()

	has, err := s.View().HasImbiber(context.Background(), "wasm1nobody")
	require.NoError(t, err)
	require.False(t, has)

	cfg.Backend = "nonesuch"
	_, err = cfg.OpenStore(registry.UsageEmbedded, nil)
	require.Error(t, err)
}
