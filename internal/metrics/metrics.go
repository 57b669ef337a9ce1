package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const (
	Save    = "save"
	Restore = "restore"

	OK    = "ok"
	Error = "error"
)

// Observer is the process wide metrics collector.
var Observer = NewMetrics()

func init() {
	prometheus.MustRegister(Observer.prometheus.Collectors()...)
}

// Metrics records training and checkpoint events.
type Metrics struct {
	prometheus Prometheus
}

// NewMetrics creates a new unregistered metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		prometheus: NewPrometheusMetrics(),
	}
}

// Checkpoint counts a checkpoint operation.
func (m *Metrics) Checkpoint(op string, err error) {
	status := OK
	if err != nil {
		status = Error
	}
	m.prometheus.Checkpoints.WithLabelValues(op, status).Inc()
}

// Step counts a training step for the given model.
func (m *Metrics) Step(model string) {
	m.prometheus.Steps.WithLabelValues(model).Inc()
}

// Loss records the latest loss for the given model.
func (m *Metrics) Loss(model string, loss float64) {
	m.prometheus.Loss.WithLabelValues(model).Set(loss)
}

// Accuracy records the latest accuracy for the given model.
func (m *Metrics) Accuracy(model string, accuracy float64) {
	m.prometheus.Accuracy.WithLabelValues(model).Set(accuracy)
}

// Serve exposes the registered metrics on the given port.
// It blocks until the server fails.
func Serve(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.Info().Int("port", port).Msg("serving metrics")
	return http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
}
