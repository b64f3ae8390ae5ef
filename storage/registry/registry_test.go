package registry_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"xdao.co/jumpring/storage"
	"xdao.co/jumpring/storage/memory"
	"xdao.co/jumpring/storage/registry"
)

func TestRegisterValidation(t *testing.T) {
	require.Error(t, registry.Register(registry.Backend{}))
	require.Error(t, registry.Register(registry.Backend{Name: "nope", Usage: registry.UsageCLI}))
	require.Error(t, registry.Register(registry.Backend{
		Name: "no-usage",
		Open: func(map[string]string) (storage.Backend, error) { return memory.New(), nil },
	}))
	// memory registers itself in init().
	require.Error(t, registry.Register(registry.Backend{
		Name:  "memory",
		Usage: registry.UsageEmbedded,
		Open:  func(map[string]string) (storage.Backend, error) { return memory.New(), nil },
	}))
}

func TestOpenWithConfigMergesDefaults(t *testing.T) {
	var seen map[string]string
	registry.MustRegister(registry.Backend{
		Name:  "probe",
		Usage: registry.UsageEmbedded,
		Options: []registry.Option{
			{Name: "probe-a", Default: "1"},
			{Name: "probe-b", Default: "2"},
		},
		Open: func(cfg map[string]string) (storage.Backend, error) {
			seen = cfg
			return memory.New(), nil
		},
	})

	_, err := registry.OpenWithConfig("probe", registry.UsageEmbedded, map[string]string{"probe-b": "9"})
	require.NoError(t, err)
	require.Equal(t, map[string]string{"probe-a": "1", "probe-b": "9"}, seen)

	_, err = registry.OpenWithConfig("probe", registry.UsageCLI, nil)
	require.Error(t, err, "usage mismatch must be rejected")

	_, err = registry.OpenWithConfig("missing", registry.UsageEmbedded, nil)
	require.Error(t, err)
}

func TestListFiltersByUsage(t *testing.T) {
	require.Contains(t, registry.Names(registry.UsageEmbedded), "memory")
	require.NotContains(t, registry.Names(registry.UsageCLI), "memory")
	require.True(t, registry.Known("memory"))
	require.Len(t, registry.Flags(registry.UsageEmbedded), countOptions(registry.List(registry.UsageEmbedded)))
}

func countOptions(bs []registry.Backend) int {
	n := 0
	for _, b := range bs {
		n += len(b.Options)
	}
	return n
}
