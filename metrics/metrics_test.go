package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	m := New()
	m.ObserveCommand("imbibe_potion", "")
	m.ObserveCommand("imbibe_potion", "ResourceExhausted")
	m.ObserveCommand("imbibe_potion", "")
	m.ObserveOutbound(nil)
	m.ObserveOutbound(errors.New("down"))
	m.ObserveRejected()
	m.SetSwigs(2)

	require.Equal(t, 2.0, testutil.ToFloat64(m.Commands.WithLabelValues("imbibe_potion", ResultOK)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Commands.WithLabelValues("imbibe_potion", "ResourceExhausted")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Outbound.WithLabelValues(ResultError)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.DownstreamRejected))
	require.Equal(t, 2.0, testutil.ToFloat64(m.SwigsRemaining))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveCommand("x", "")
	m.ObserveOutbound(nil)
	m.ObserveRejected()
	m.SetSwigs(1)
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.SetSwigs(3)
	path := filepath.Join(t.TempDir(), "jumpring.prom")
	require.NoError(t, m.WriteTextfile(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(b), "jumpring_swigs_remaining 3"), string(b))
}
