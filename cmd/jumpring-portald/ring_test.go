package main

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"xdao.co/jumpring/contract"
	"xdao.co/jumpring/model"
)

func TestRing_TravelKeepsRecentArrivals(t *testing.T) {
	r, err := newRing(model.SapienceMedium, false, 2, prometheus.NewRegistry())
	require.NoError(t, err)
	fixed := time.Unix(1700000000, 0)
	r.now = func() time.Time { return fixed }

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, r.Travel(ctx, "wasm1jumpring", model.Identity(fmt.Sprintf("wasm1dest%d", i))))
	}

	_, ok := r.lastArrival("wasm1dest0")
	require.False(t, ok, "oldest destination is evicted")
	a, ok := r.lastArrival("wasm1dest2")
	require.True(t, ok)
	require.Equal(t, arrival{Sender: "wasm1jumpring", To: "wasm1dest2", At: fixed}, a)
	require.Equal(t, 3.0, testutil.ToFloat64(r.travels))

	level, err := r.MinimumSapience(ctx)
	require.NoError(t, err)
	require.Equal(t, model.SapienceMedium, level)
}

func TestRing_Snitch(t *testing.T) {
	ctx := context.Background()
	s := contract.Snitch{Address: "wasm1hugh", Name: "Hugh"}

	r, err := newRing(model.SapienceLow, false, 8, nil)
	require.NoError(t, err)
	require.NoError(t, r.Snitch(ctx, "wasm1jumpring", s))

	r, err = newRing(model.SapienceLow, true, 8, nil)
	require.NoError(t, err)
	err = r.Snitch(ctx, "wasm1jumpring", s)
	require.True(t, model.IsKind(err, model.KindDownstreamRejected), "got %v", err)
	require.Equal(t, 1.0, testutil.ToFloat64(r.notifications.WithLabelValues("rejected")))
}

func TestNewRing_RejectsBadCacheSize(t *testing.T) {
	_, err := newRing(model.SapienceLow, false, 0, nil)
	require.Error(t, err)
}

func TestRun_RejectsBadFlags(t *testing.T) {
	var out, errOut bytes.Buffer
	require.Equal(t, 1, run([]string{"--minimum-sapience", "Godlike"}, &out, &errOut))
	require.Contains(t, errOut.String(), "Godlike")
}
