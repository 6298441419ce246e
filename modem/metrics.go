package modem

import (
	"github.com/prometheus/client_golang/prometheus"

	"i4.energy/across/simgw/at"
)

// Metrics counts modem traffic. A nil *Metrics records nothing.
type Metrics struct {
	commands  *prometheus.CounterVec
	lines     *prometheus.CounterVec
	truncated prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "simgw_commands_total",
				Help: "Commands and continuations sent to the modem, by result",
			},
			[]string{"result"},
		),
		lines: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "simgw_lines_total",
				Help: "Non-terminal lines received from the modem, by whether a hook claimed them",
			},
			[]string{"dispatch"},
		),
		truncated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "simgw_lines_truncated_total",
				Help: "Lines longer than the line buffer that were cut short",
			},
		),
	}
	reg.MustRegister(m.commands, m.lines, m.truncated)
	return m
}

func (m *Metrics) observeCommand(r at.Result) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(r.String()).Inc()
}

func (m *Metrics) observeLine(matched, truncated bool) {
	if m == nil {
		return
	}
	if matched {
		m.lines.WithLabelValues("matched").Inc()
	} else {
		m.lines.WithLabelValues("unmatched").Inc()
	}
	if truncated {
		m.truncated.Inc()
	}
}
