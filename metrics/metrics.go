// Package metrics holds the Prometheus collectors of a jumpring node.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const pre = "jumpring_"

// Result label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics groups all node collectors.
type Metrics struct {
	Commands           *prometheus.CounterVec
	Outbound           *prometheus.CounterVec
	DownstreamRejected prometheus.Counter
	SwigsRemaining     prometheus.Gauge

	reg *prometheus.Registry
}

// New builds the collectors and registers them on a private registry.
func New() *Metrics {
	m := &Metrics{
		Commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: pre + "commands_total",
			Help: "Commands processed, by command and error kind (\"ok\" on success).",
		}, []string{"command", "result"}),
		Outbound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: pre + "outbound_total",
			Help: "Outbound deliveries, by result.",
		}, []string{"result"}),
		DownstreamRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: pre + "downstream_rejected_total",
			Help: "Authority notifications reported back as failed.",
		}),
		SwigsRemaining: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: pre + "swigs_remaining",
			Help: "Registration budget left after the last command.",
		}),
		reg: prometheus.NewRegistry(),
	}
	m.reg.MustRegister(m.Commands, m.Outbound, m.DownstreamRejected, m.SwigsRemaining)
	return m
}

// Gatherer exposes the registry for scraping or text export.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.reg
}

// WriteTextfile writes the current values in the node_exporter textfile
// format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}

// ObserveCommand counts one command. kind is empty on success.
func (m *Metrics) ObserveCommand(command, kind string) {
	if m == nil {
		return
	}
	if kind == "" {
		kind = ResultOK
	}
	m.Commands.WithLabelValues(command, kind).Inc()
}

// ObserveOutbound counts one delivery attempt.
func (m *Metrics) ObserveOutbound(err error) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.Outbound.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveRejected() {
	if m == nil {
		return
	}
	m.DownstreamRejected.Inc()
}

func (m *Metrics) SetSwigs(n uint8) {
	if m == nil {
		return
	}
	m.SwigsRemaining.Set(float64(n))
}
