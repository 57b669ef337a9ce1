package main

import (
	"context"
	"flag"

	"github.com/drakos74/ml-notes/infra/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func main() {

	saveFile := flag.String("save", "", "checkpoint path prefix (overrides the config)")
	flag.Parse()

	cfg := Config{}
	config.MustLoad("persist", &cfg)
	if *saveFile != "" {
		cfg.SaveFile = *saveFile
	}

	ctx := context.Background()

	saved, err := save(ctx, cfg, false)
	if err != nil {
		log.Fatal().Err(err).Msg("could not save variables")
	}
	restored, err := restore(ctx, cfg, false, false)
	if err != nil {
		log.Fatal().Err(err).Msg("could not restore variables")
	}
	log.Info().
		Bool("equal", equal(saved, restored)).
		Msg("restored the saved values")

	// declaring the variables in a different order swaps their default names
	_, err = restore(ctx, cfg, false, true)
	log.Warn().Err(err).Msg("restore with default names and a different declaration order")

	// explicit names make the order irrelevant
	saved, err = save(ctx, cfg, true)
	if err != nil {
		log.Fatal().Err(err).Msg("could not save named variables")
	}
	restored, err = restore(ctx, cfg, true, true)
	if err != nil {
		log.Fatal().Err(err).Msg("could not restore named variables")
	}
	log.Info().
		Bool("equal", equal(saved, restored)).
		Msg("restored the named values")
}
