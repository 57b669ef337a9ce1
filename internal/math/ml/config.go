package ml

import "fmt"

// Config defines the network layout and the training parameters.
type Config struct {
	Features     int     `json:"features"`
	Hidden       int     `json:"hidden"`
	Classes      int     `json:"classes"`
	KeepProb     float64 `json:"keep_prob"`
	LearningRate float64 `json:"learning_rate"`
	Epochs       int     `json:"epochs"`
	BatchSize    int     `json:"batch_size"`
	Clip         float64 `json:"clip"`
	StdDev       float64 `json:"stddev"`
	Seed         int64   `json:"seed"`
}

// DefaultConfig returns the config used for training with dropout.
func DefaultConfig() Config {
	return Config{
		Features:     2,
		Hidden:       32,
		Classes:      3,
		KeepProb:     0.5,
		LearningRate: 0.1,
		Epochs:       50,
		BatchSize:    16,
		Clip:         5,
		StdDev:       0.1,
	}
}

// Validate checks the config for inconsistent values.
func (c Config) Validate() error {
	if c.Features <= 0 || c.Hidden <= 0 || c.Classes <= 0 {
		return fmt.Errorf("invalid layout: features=%d hidden=%d classes=%d", c.Features, c.Hidden, c.Classes)
	}
	if c.KeepProb <= 0 || c.KeepProb > 1 {
		return fmt.Errorf("invalid keep_prob %v: %w", c.KeepProb, ErrInvalidKeepProb)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("invalid learning_rate %v", c.LearningRate)
	}
	if c.Epochs <= 0 {
		return fmt.Errorf("invalid epochs %d", c.Epochs)
	}
	if c.StdDev <= 0 {
		return fmt.Errorf("invalid stddev %v", c.StdDev)
	}
	return nil
}
