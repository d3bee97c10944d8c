package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"lifeview/internal/app"
	"lifeview/internal/logging"
	_ "lifeview/internal/sims/briansbrain"
	_ "lifeview/internal/sims/elementary"
	_ "lifeview/internal/sims/life"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()
	if err := cfg.Load(flag.CommandLine); err != nil {
		log.Fatal(err)
	}
	logger := logging.New(os.Stderr, cfg.Verbose)

	game, err := app.NewGame(*cfg, logger)
	if errors.Is(err, app.ErrNoGUI) {
		fmt.Fprintln(os.Stderr, "The GUI build of lifeview requires the ebiten build tag.")
		fmt.Fprintln(os.Stderr, "Re-run with `go run -tags ebiten ./cmd/lifeview`, or use ./cmd/lifeview-term.")
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if cfg.File != "" {
		ch, err := app.Watch(ctx, cfg.File, *cfg, logger)
		if err != nil {
			log.Fatal(err)
		}
		game.WatchConfig(ch)
	}

	if err := game.Run(); err != nil {
		log.Fatal(err)
	}
}
