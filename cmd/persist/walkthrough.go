package main

import (
	"context"
	"fmt"

	"github.com/drakos74/go-ex-machina/xmath"
	mlmath "github.com/drakos74/ml-notes/internal/math"
	"github.com/drakos74/ml-notes/internal/model"
	"github.com/drakos74/ml-notes/internal/storage/checkpoint"
	"github.com/rs/zerolog/log"
)

const (
	weightsName = "weights_0"
	biasName    = "bias_0"
)

// Config is the config of the persistence walkthrough.
type Config struct {
	SaveFile  string  `json:"save_file"`
	MaxToKeep int     `json:"max_to_keep"`
	StdDev    float64 `json:"stddev"`
}

// Values holds the values of the weights and the bias.
type Values struct {
	Weights xmath.Vector
	Bias    xmath.Vector
}

// declare creates weights [2 3] and bias [3] in the default graph.
// Unnamed variables get their names from the order of declaration.
func declare(cfg Config, named, reversed bool) (w, b *model.Variable) {
	g := model.Default()
	opt := func(name string) []model.VariableOption {
		if named {
			return []model.VariableOption{model.WithName(name)}
		}
		return nil
	}
	gen := mlmath.TruncatedNormal(0, cfg.StdDev, nil)
	if reversed {
		b = g.MustVariable([]int{3}, gen, opt(biasName)...)
		w = g.MustVariable([]int{2, 3}, gen, opt(weightsName)...)
		return w, b
	}
	w = g.MustVariable([]int{2, 3}, gen, opt(weightsName)...)
	b = g.MustVariable([]int{3}, gen, opt(biasName)...)
	return w, b
}

func run(sess *model.Session, w, b *model.Variable) (Values, error) {
	vv, err := sess.Run(w, b)
	if err != nil {
		return Values{}, err
	}
	log.Info().
		Str(w.Name(), vv[0].String()).
		Str(b.Name(), vv[1].String()).
		Msg("values")
	return Values{Weights: vv[0], Bias: vv[1]}, nil
}

// save initializes fresh variables and stores them under the configured path.
func save(ctx context.Context, cfg Config, named bool) (Values, error) {
	model.Default().Reset()
	w, b := declare(cfg, named, false)

	saver, err := checkpoint.NewSaver(model.Default(), checkpoint.WithMaxToKeep(cfg.MaxToKeep))
	if err != nil {
		return Values{}, err
	}

	sess := model.NewSession(model.Default())
	sess.Init()
	values, err := run(sess, w, b)
	if err != nil {
		return Values{}, err
	}

	if _, err := saver.Save(ctx, sess, cfg.SaveFile); err != nil {
		return Values{}, fmt.Errorf("could not save: %w", err)
	}
	return values, nil
}

// restore declares the variables in a fresh graph and loads their values from the configured path.
// No initialization takes place, all values come from the checkpoint.
func restore(ctx context.Context, cfg Config, named, reversed bool) (Values, error) {
	model.Default().Reset()
	w, b := declare(cfg, named, reversed)

	saver, err := checkpoint.NewSaver(model.Default(), checkpoint.WithMaxToKeep(cfg.MaxToKeep))
	if err != nil {
		return Values{}, err
	}

	sess := model.NewSession(model.Default())
	if err := saver.Restore(ctx, sess, cfg.SaveFile); err != nil {
		return Values{}, fmt.Errorf("could not restore: %w", err)
	}
	return run(sess, w, b)
}

func equal(a, b Values) bool {
	return mlmath.Equal(a.Weights, b.Weights) && mlmath.Equal(a.Bias, b.Bias)
}
