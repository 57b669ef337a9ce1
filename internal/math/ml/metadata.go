package ml

import (
	"gonum.org/v1/gonum/stat"
)

// Metadata carries the outcome of a training run.
type Metadata struct {
	Samples  int
	Epochs   int
	Accuracy float64
	Loss     []float64
}

// NewMetadata creates an empty metadata struct.
func NewMetadata() Metadata {
	return Metadata{
		Loss: make([]float64, 0),
	}
}

// LastLoss returns the mean loss of the last epoch.
func (m Metadata) LastLoss() float64 {
	if len(m.Loss) == 0 {
		return 0
	}
	return m.Loss[len(m.Loss)-1]
}

// MeanLoss returns the average of the epoch losses.
func (m Metadata) MeanLoss() float64 {
	if len(m.Loss) == 0 {
		return 0
	}
	return stat.Mean(m.Loss, nil)
}
