package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "notes"

// Prometheus holds the collectors of the training and checkpoint processes.
type Prometheus struct {
	Checkpoints *prometheus.CounterVec
	Steps       *prometheus.CounterVec
	Loss        *prometheus.GaugeVec
	Accuracy    *prometheus.GaugeVec
}

// NewPrometheusMetrics creates the collectors.
func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Checkpoints: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "checkpoints",
				Help:      "checkpoint operations by type and outcome",
			}, []string{"op", "status"}),
		Steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "train_steps",
				Help:      "mini-batch gradient steps",
			}, []string{"model"}),
		Loss: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "loss",
				Help:      "mean loss of the last epoch",
			}, []string{"model"}),
		Accuracy: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "accuracy",
				Help:      "accuracy evaluated without dropout",
			}, []string{"model"}),
	}
}

// Collectors returns all collectors for registration.
func (p Prometheus) Collectors() []prometheus.Collector {
	return []prometheus.Collector{p.Checkpoints, p.Steps, p.Loss, p.Accuracy}
}
