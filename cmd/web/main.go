package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/peterkuimelis/frontline/internal/config"
	"github.com/peterkuimelis/frontline/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	addr := flag.String("addr", cfg.WebAddr, "HTTP address to listen on")
	catalog := flag.String("catalog", cfg.CatalogPath, "path to a catalog YAML file (built-in when empty)")
	seed := flag.Int64("seed", cfg.Seed, "default shuffle seed (0 for random)")
	aiDelay := flag.Duration("ai-delay", cfg.AIDelay, "pause before each AI move")
	maxTurns := flag.Int("max-turns", cfg.MaxTurns, "end a match as a draw after this many turns")
	logLevel := flag.String("log-level", cfg.LogLevel, "zap log level")
	flag.Parse()

	cfg.CatalogPath = *catalog
	cfg.Seed = *seed
	cfg.AIDelay = *aiDelay
	cfg.MaxTurns = *maxTurns
	cfg.LogLevel = *logLevel
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cat, err := cfg.Catalog()
	if err != nil {
		logger.Fatal("load catalog", zap.Error(err))
	}

	srv := web.NewServer(cat, logger, web.Options{
		Seed:     cfg.Seed,
		AIDelay:  cfg.AIDelay,
		MaxTurns: cfg.MaxTurns,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx, *addr); err != nil {
		logger.Error("listen", zap.Error(err))
		os.Exit(1)
	}
}
