package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Checkpoint(t *testing.T) {
	m := NewMetrics()

	m.Checkpoint(Save, nil)
	m.Checkpoint(Save, nil)
	m.Checkpoint(Restore, errors.New("not found"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.prometheus.Checkpoints.WithLabelValues(Save, OK)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.prometheus.Checkpoints.WithLabelValues(Save, Error)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.prometheus.Checkpoints.WithLabelValues(Restore, Error)))
}

func TestMetrics_Training(t *testing.T) {
	m := NewMetrics()

	m.Step("net")
	m.Step("net")
	m.Loss("net", 0.5)
	m.Loss("net", 0.25)
	m.Accuracy("net", 0.9)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.prometheus.Steps.WithLabelValues("net")))
	assert.Equal(t, 0.25, testutil.ToFloat64(m.prometheus.Loss.WithLabelValues("net")))
	assert.Equal(t, 0.9, testutil.ToFloat64(m.prometheus.Accuracy.WithLabelValues("net")))
}
