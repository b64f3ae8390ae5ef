package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/urfave/cli/v2"

	"xdao.co/jumpring/storage"
)

// Usage restricts which programs should accept a given backend.
//
// Backends are linked at build time: a backend registers itself via init(),
// and is enabled in a binary by importing the backend package (often as a
// blank import).
type Usage uint8

const (
	// UsageCLI marks backends that persist across process runs, as the
	// one-shot CLI needs.
	UsageCLI Usage = 1 << iota
	// UsageEmbedded marks backends usable by programs embedding the node
	// package, tests included.
	UsageEmbedded
)

func (u Usage) allows(want Usage) bool { return u&want != 0 }

// Option is one backend-specific setting. It is exposed both as a CLI flag
// (--Name) and as a config key (Name).
type Option struct {
	Name    string
	Usage   string
	Default string
}

// Backend is a build-time plugin that can open a storage.Backend.
//
// Backends typically register themselves in init():
//
//	registry.MustRegister(registry.Backend{ ... })
type Backend struct {
	Name        string
	Description string
	Usage       Usage
	Options     []Option

	// Open constructs the backend from option values keyed by Option.Name.
	// Missing keys carry their Option.Default.
	Open func(cfg map[string]string) (storage.Backend, error)
}

var (
	mu       sync.RWMutex
	backends = map[string]Backend{}
)

// Register registers a backend.
func Register(b Backend) error {
	if b.Name == "" {
		return fmt.Errorf("registry: backend name is required")
	}
	if b.Open == nil {
		return fmt.Errorf("registry: backend %q missing Open", b.Name)
	}
	if b.Usage == 0 {
		return fmt.Errorf("registry: backend %q missing Usage", b.Name)
	}

	mu.Lock()
	defer mu.Unlock()
	if _, exists := backends[b.Name]; exists {
		return fmt.Errorf("registry: backend %q already registered", b.Name)
	}
	backends[b.Name] = b
	return nil
}

// MustRegister is like Register but panics on error.
func MustRegister(b Backend) {
	if err := Register(b); err != nil {
		panic(err)
	}
}

// List returns backends matching usage, sorted by name.
func List(usage Usage) []Backend {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Backend, 0, len(backends))
	for _, b := range backends {
		if b.Usage.allows(usage) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns backend names matching usage, sorted.
func Names(usage Usage) []string {
	bs := List(usage)
	n := make([]string, 0, len(bs))
	for _, b := range bs {
		n = append(n, b.Name)
	}
	return n
}

// Known reports whether a backend with this name is linked into the binary.
func Known(name string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Flags returns one string flag per option of every backend matching usage,
// so a single parse pass accepts all of them.
func Flags(usage Usage) []cli.Flag {
	var out []cli.Flag
	for _, b := range List(usage) {
		for _, o := range b.Options {
			out = append(out, &cli.StringFlag{
				Name:  o.Name,
				Usage: fmt.Sprintf("%s (for --backend=%s)", o.Usage, b.Name),
				Value: o.Default,
			})
		}
	}
	return out
}

// ConfigFromCLI collects the option values of the named backend from parsed
// flags.
func ConfigFromCLI(cctx *cli.Context, name string) map[string]string {
	mu.RLock()
	b, ok := backends[name]
	mu.RUnlock()
	if !ok {
		return nil
	}
	cfg := make(map[string]string, len(b.Options))
	for _, o := range b.Options {
		if cctx.IsSet(o.Name) {
			cfg[o.Name] = cctx.String(o.Name)
		}
	}
	return cfg
}

// OpenWithConfig opens the named backend if it exists and matches usage.
// Values in cfg override option defaults.
func OpenWithConfig(name string, usage Usage, cfg map[string]string) (storage.Backend, error) {
	mu.RLock()
	b, ok := backends[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown backend %q", name)
	}
	if !b.Usage.allows(usage) {
		return nil, fmt.Errorf("backend %q not supported in this binary", name)
	}

	merged := make(map[string]string, len(b.Options))
	for _, o := range b.Options {
		merged[o.Name] = o.Default
	}
	for k, v := range cfg {
		merged[k] = v
	}
	return b.Open(merged)
}
