package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/drakos74/ml-notes/infra/config"
	mlmath "github.com/drakos74/ml-notes/internal/math"
	"github.com/drakos74/ml-notes/internal/math/ml"
	"github.com/drakos74/ml-notes/internal/metrics"
	"github.com/drakos74/ml-notes/internal/model"
	"github.com/drakos74/ml-notes/internal/storage"
	"github.com/drakos74/ml-notes/internal/storage/checkpoint"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func main() {

	keepProb := flag.Float64("keep-prob", 0, "probability to keep hidden units while training (overrides the config)")
	samples := flag.Int("samples", 600, "number of generated samples")
	saveFile := flag.String("save", "", "checkpoint path prefix to save the trained variables to")
	port := flag.Int("metrics", 0, "port to expose prometheus metrics on")
	debug := flag.Bool("debug", false, "log every epoch")
	flag.Parse()

	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := ml.DefaultConfig()
	config.MustLoad("dropout", &cfg)
	if *keepProb > 0 {
		cfg.KeepProb = *keepProb
	}

	if *port > 0 {
		go func() {
			if err := metrics.Serve(*port); err != nil {
				log.Error().Err(err).Msg("metrics server stopped")
			}
		}()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	rnd := mlmath.NewRand(cfg.Seed)
	ds, err := ml.Blobs(cfg.Classes, cfg.Features, *samples, 1.0, rnd)
	if err != nil {
		log.Fatal().Err(err).Msg("could not generate dataset")
	}
	train, test, err := ds.Split(0.8, rnd)
	if err != nil {
		log.Fatal().Err(err).Msg("could not split dataset")
	}

	g := model.Default()
	net, err := ml.NewNetwork(g, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create network")
	}

	sess := model.NewSession(g)
	sess.Init()

	// train: units are dropped with probability 1 - keep_prob
	metadata, err := net.Train(ctx, train)
	if err != nil {
		log.Fatal().Err(err).Msg("could not train network")
	}

	// test: keep_prob = 1
	acc, err := net.Accuracy(test)
	if err != nil {
		log.Fatal().Err(err).Msg("could not evaluate network")
	}
	log.Info().
		Float64("keep_prob", cfg.KeepProb).
		Str("loss", mlmath.Format(metadata.LastLoss())).
		Str("train_accuracy", mlmath.Format(metadata.Accuracy)).
		Str("test_accuracy", mlmath.Format(acc)).
		Msg("evaluated network")

	opts := []checkpoint.Option{checkpoint.WithVariables(net.Variables()...)}
	path := *saveFile
	if path == "" {
		// nothing is written, but the variables still go through the saver checks
		opts = append(opts, checkpoint.WithPersistence(storage.NewVoidStorage()))
		path = ml.NetworkName
	}
	saver, err := checkpoint.NewSaver(g, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create saver")
	}
	if _, err := saver.SaveStep(ctx, sess, path, int64(metadata.Epochs)); err != nil {
		log.Fatal().Err(err).Msg("could not save network")
	}
}
