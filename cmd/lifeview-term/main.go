package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"lifeview/internal/app"
	"lifeview/internal/logging"
	_ "lifeview/internal/sims/briansbrain"
	_ "lifeview/internal/sims/elementary"
	_ "lifeview/internal/sims/life"
	"lifeview/internal/term"
)

func main() {
	cfg := app.NewConfig()
	cfg.Cell, cfg.Border = 1, 0
	cfg.TPS = 20
	cfg.Bind(flag.CommandLine)
	logPath := flag.String("log", "", "write logs to this file (the terminal is busy)")
	flag.Parse()
	if err := cfg.Load(flag.CommandLine); err != nil {
		log.Fatal(err)
	}

	var w io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		w = f
	}
	logger := logging.New(w, cfg.Verbose)

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	host, err := term.New(screen, *cfg, logger)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if cfg.File != "" {
		ch, err := app.Watch(ctx, cfg.File, *cfg, logger)
		if err != nil {
			host.Close()
			log.Fatal(err)
		}
		host.WatchConfig(ch)
	}

	err = host.Run(ctx)
	host.Close()
	if err != nil {
		log.Fatal(err)
	}
}
