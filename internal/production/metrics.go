package production

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/comalice/gearbox/internal/core"
)

const (
	outcomeAccepted = "accepted"
	outcomeRejected = "rejected"
)

// MetricsPublisher counts steps and tracks the latest speed and gear.
type MetricsPublisher struct {
	// StepsTotal counts applied operations.
	// Labels: op (increase-speed, ...), outcome (accepted, rejected)
	StepsTotal *prometheus.CounterVec

	// Speed is the speed after the most recent step.
	Speed prometheus.Gauge

	// Gear is the gear after the most recent step.
	Gear prometheus.Gauge
}

// NewMetricsPublisher registers the gearbox metrics on reg.
func NewMetricsPublisher(reg prometheus.Registerer) *MetricsPublisher {
	factory := promauto.With(reg)
	return &MetricsPublisher{
		StepsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gearbox",
				Name:      "steps_total",
				Help:      "Total number of transmission operations by outcome",
			},
			[]string{"op", "outcome"},
		),
		Speed: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "gearbox",
				Name:      "speed",
				Help:      "Speed after the most recent operation",
			},
		),
		Gear: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "gearbox",
				Name:      "gear",
				Help:      "Gear after the most recent operation",
			},
		),
	}
}

func (m *MetricsPublisher) Publish(ctx context.Context, step core.Step) error {
	outcome := outcomeAccepted
	if !step.Accepted {
		outcome = outcomeRejected
	}
	m.StepsTotal.WithLabelValues(step.Op.String(), outcome).Inc()
	m.Speed.Set(float64(step.After.Speed))
	m.Gear.Set(float64(step.After.Gear))
	return nil
}

// WriteMetricsFile writes everything g gathers to path in the Prometheus
// text format, for node_exporter's textfile collector.
func WriteMetricsFile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}
