package ml

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/drakos74/go-ex-machina/xmath"
	xml "github.com/drakos74/go-ex-machina/xmachina/ml"
	mlmath "github.com/drakos74/ml-notes/internal/math"
	"github.com/drakos74/ml-notes/internal/metrics"
	"github.com/drakos74/ml-notes/internal/model"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"
)

// NetworkName is the label under which the network reports metrics.
const NetworkName = "dropout"

// Network is a single hidden layer network with dropout on the hidden activations.
//
//	features -> dense(hidden) -> relu -> dropout(keep_prob) -> dense(classes) -> logits
type Network struct {
	cfg     Config
	rnd     *rand.Rand
	hidden  *Dense
	output  *Dense
	dropout *Dropout
	rate    *xml.Learning
	// activated keeps the hidden activations of the last forward pass
	activated xmath.Matrix
}

// NewNetwork adds the network variables to the graph.
// The variables still need to be initialized or restored before the network can be used.
func NewNetwork(g *model.Graph, cfg Config) (*Network, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("could not create network: %w", err)
	}
	rnd := mlmath.NewRand(cfg.Seed)

	hidden, err := NewDense(g, 0, cfg.Features, cfg.Hidden,
		mlmath.TruncatedNormal(0, cfg.StdDev, rnd), mlmath.Zeros())
	if err != nil {
		return nil, err
	}
	output, err := NewDense(g, 1, cfg.Hidden, cfg.Classes,
		mlmath.TruncatedNormal(0, cfg.StdDev, rnd), mlmath.Zeros())
	if err != nil {
		return nil, err
	}
	dropout, err := NewDropout(cfg.KeepProb, rnd)
	if err != nil {
		return nil, err
	}

	return &Network{
		cfg:     cfg,
		rnd:     rnd,
		hidden:  hidden,
		output:  output,
		dropout: dropout,
		rate:    xml.Rate(cfg.LearningRate),
	}, nil
}

// Variables returns the trainable variables of the network.
func (n *Network) Variables() []*model.Variable {
	return []*model.Variable{
		n.hidden.Weights(),
		n.hidden.Bias(),
		n.output.Weights(),
		n.output.Bias(),
	}
}

// Logits runs the forward pass with the given keep probability for the hidden units.
func (n *Network) Logits(x xmath.Matrix, keepProb float64) (xmath.Matrix, error) {
	if err := n.dropout.SetKeepProb(keepProb); err != nil {
		return nil, err
	}
	z, err := n.hidden.Forward(x)
	if err != nil {
		return nil, err
	}
	n.activated = Activate(z, ReLU)
	return n.output.Forward(n.dropout.Forward(n.activated))
}

// Predict returns the class probabilities with all hidden units kept.
func (n *Network) Predict(x xmath.Matrix) (xmath.Matrix, error) {
	logits, err := n.Logits(x, 1)
	if err != nil {
		return nil, err
	}
	return Softmax(logits), nil
}

// Accuracy returns the ratio of correctly classified samples with all hidden units kept.
func (n *Network) Accuracy(ds *Dataset) (float64, error) {
	p, err := n.Predict(ds.X)
	if err != nil {
		return 0, err
	}
	var correct float64
	for i := range p {
		if ArgMax(p[i]) == ArgMax(ds.Y[i]) {
			correct++
		}
	}
	return correct / float64(ds.Len()), nil
}

// Step runs one gradient step on the batch, using the configured keep probability.
func (n *Network) Step(batch *Dataset) (float64, error) {
	logits, err := n.Logits(batch.X, n.cfg.KeepProb)
	if err != nil {
		return 0, err
	}
	loss, grad, err := SoftmaxCrossEntropy(logits, batch.Y)
	if err != nil {
		return 0, err
	}
	grad, err = n.output.Backward(grad, n.rate, n.cfg.Clip)
	if err != nil {
		return 0, err
	}
	grad = n.dropout.Backward(grad)
	grad = grad.Dop(xmath.Mult, Derive(n.activated, ReLU))
	_, err = n.hidden.Backward(grad, n.rate, n.cfg.Clip)
	if err != nil {
		return 0, err
	}
	metrics.Observer.Step(NetworkName)
	return loss, nil
}

// Train trains the network on the dataset for the configured epochs.
// It stops early with the context error if the context is done.
func (n *Network) Train(ctx context.Context, ds *Dataset) (Metadata, error) {
	metadata := NewMetadata()
	metadata.Samples = ds.Len()
	if ds.Features() != n.cfg.Features || ds.Classes() != n.cfg.Classes {
		return metadata, fmt.Errorf("dataset [%d -> %d] does not fit network [%d -> %d]",
			ds.Features(), ds.Classes(), n.cfg.Features, n.cfg.Classes)
	}

	for epoch := 0; epoch < n.cfg.Epochs; epoch++ {
		batches := ds.Batches(n.cfg.BatchSize, n.rnd)
		losses := make([]float64, 0, len(batches))
		for _, batch := range batches {
			select {
			case <-ctx.Done():
				return metadata, fmt.Errorf("training stopped at epoch %d: %w", epoch, ctx.Err())
			default:
			}
			loss, err := n.Step(batch)
			if err != nil {
				return metadata, fmt.Errorf("could not train at epoch %d: %w", epoch, err)
			}
			losses = append(losses, loss)
		}
		loss := stat.Mean(losses, nil)
		metadata.Loss = append(metadata.Loss, loss)
		metadata.Epochs = epoch + 1
		metrics.Observer.Loss(NetworkName, loss)
		log.Debug().
			Int("epoch", epoch).
			Str("loss", mlmath.Format(loss)).
			Float64("keep_prob", n.cfg.KeepProb).
			Msg("epoch")
	}

	acc, err := n.Accuracy(ds)
	if err != nil {
		return metadata, err
	}
	metadata.Accuracy = acc
	metrics.Observer.Accuracy(NetworkName, acc)
	log.Info().
		Int("samples", metadata.Samples).
		Int("epochs", metadata.Epochs).
		Float64("loss", metadata.LastLoss()).
		Float64("mean_loss", metadata.MeanLoss()).
		Float64("accuracy", acc).
		Msg("trained network")
	return metadata, nil
}
