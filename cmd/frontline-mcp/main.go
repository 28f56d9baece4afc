package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/peterkuimelis/frontline/internal/config"
	frontlinemcp "github.com/peterkuimelis/frontline/internal/mcp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	catalog := flag.String("catalog", cfg.CatalogPath, "path to a catalog YAML file (built-in when empty)")
	seed := flag.Int64("seed", cfg.Seed, "default shuffle seed (0 for random)")
	aiDelay := flag.Duration("ai-delay", cfg.AIDelay, "pause before each AI move")
	maxTurns := flag.Int("max-turns", cfg.MaxTurns, "end a match as a draw after this many turns")
	logLevel := flag.String("log-level", cfg.LogLevel, "zap log level (logs go to stderr)")
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

	store := frontlinemcp.NewStore(frontlinemcp.Options{
		Catalog:  cat,
		Seed:     cfg.Seed,
		MaxTurns: cfg.MaxTurns,
		AIDelay:  cfg.AIDelay,
	}, logger)
	defer store.CloseAll()

	s := server.NewMCPServer("frontline", "1.0.0")
	frontlinemcp.RegisterTools(s, store)

	if err := server.ServeStdio(s); err != nil {
		logger.Error("serve stdio", zap.Error(err))
		os.Exit(1)
	}
}
