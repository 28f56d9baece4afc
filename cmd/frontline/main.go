package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/peterkuimelis/frontline/internal/config"
	"github.com/peterkuimelis/frontline/internal/console"
	"github.com/peterkuimelis/frontline/internal/game"
	"github.com/peterkuimelis/frontline/internal/log"
	"github.com/peterkuimelis/frontline/internal/opponent"
	"github.com/peterkuimelis/frontline/internal/view"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := os.Args[1]
	switch cmd {
	case "play":
		err = runPlay(ctx, cfg, os.Args[2:])
	case "sim":
		err = runSim(ctx, cfg, os.Args[2:])
	case "catalog":
		err = runCatalog(cfg, os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  frontline play [--factions A,B] [--opponent C,D] [--hotseat] [--seed N]")
	fmt.Println("  frontline sim [--games N] [--factions A,B] [--opponent C,D] [--seed N] [--verbose]")
	fmt.Println("  frontline catalog [--catalog FILE]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  play     Play a match in the terminal against the AI or a second player")
	fmt.Println("  sim      Run AI-vs-AI matches and report the results")
	fmt.Println("  catalog  List every faction's heroes")
}

// commonFlags registers the flags every subcommand shares, defaulted from
// the environment.
type commonFlags struct {
	catalog  *string
	seed     *int64
	maxTurns *int
	logLevel *string
}

func addCommonFlags(fs *flag.FlagSet, cfg config.Config) commonFlags {
	return commonFlags{
		catalog:  fs.String("catalog", cfg.CatalogPath, "path to a catalog YAML file (built-in when empty)"),
		seed:     fs.Int64("seed", cfg.Seed, "shuffle seed (0 for random)"),
		maxTurns: fs.Int("max-turns", cfg.MaxTurns, "end the match as a draw after this many turns"),
		logLevel: fs.String("log-level", cfg.LogLevel, "zap log level for diagnostics on stderr"),
	}
}

// apply copies the parsed flags over cfg and validates the result.
func (c commonFlags) apply(cfg config.Config) (config.Config, error) {
	cfg.CatalogPath = *c.catalog
	cfg.Seed = *c.seed
	cfg.MaxTurns = *c.maxTurns
	cfg.LogLevel = *c.logLevel
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// parseFactions resolves "A,B". An empty string yields a random pair.
func parseFactions(s string, rng game.Picker) ([2]game.Faction, error) {
	if strings.TrimSpace(s) == "" {
		return game.RandomFactions(rng), nil
	}
	return view.ParseFactionPair(strings.Split(s, ","))
}

func runPlay(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	common := addCommonFlags(fs, cfg)
	factions := fs.String("factions", "", "your two factions, e.g. Dragons,Knights (random when empty)")
	oppFactions := fs.String("opponent", "", "Player 2's factions (random when empty)")
	hotseat := fs.Bool("hotseat", false, "two humans share this terminal instead of playing the AI")
	aiDelay := fs.Duration("ai-delay", cfg.AIDelay, "pause before each AI move")
	verbose := fs.Bool("verbose", false, "print phase changes and other hidden events")
	fs.Parse(args)
	cfg.AIDelay = *aiDelay
	cfg, err := common.apply(cfg)
	if err != nil {
		return err
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cat, err := cfg.Catalog()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	rng := game.NewRand(cfg.Seed)
	p1, err := parseFactions(*factions, rng)
	if err != nil {
		return err
	}
	p2, err := parseFactions(*oppFactions, rng)
	if err != nil {
		return err
	}

	in := bufio.NewReader(os.Stdin)
	human := console.NewController(0, in, os.Stdout)
	human.Verbose = *verbose

	var second game.PlayerController = opponent.NewController(cfg.AIDelay)
	if *hotseat {
		other := console.NewController(1, in, os.Stdout)
		other.Mute = true
		second = other
	}

	m, err := game.NewMatch(game.MatchConfig{
		Catalog:    cat,
		P1Factions: p1,
		P2Factions: p2,
		VsAI:       !*hotseat,
		Rand:       rng,
		Logger:     log.NewZapLogger(logger),
		MaxTurns:   cfg.MaxTurns,
	}, human, second)
	if err != nil {
		return err
	}

	logger.Info("match started",
		zap.Stringers("p1_factions", p1[:]),
		zap.Stringers("p2_factions", p2[:]),
		zap.Bool("hotseat", *hotseat),
	)

	if _, err := m.Run(ctx); err != nil {
		if errors.Is(err, console.ErrQuit) || errors.Is(err, context.Canceled) {
			fmt.Println("\nMatch abandoned.")
			return nil
		}
		return err
	}

	console.RenderState(os.Stdout, view.BuildStateView(m.State, 0))
	console.RenderGameOver(os.Stdout, m.Outcome.Result)
	return nil
}

func runSim(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("sim", flag.ExitOnError)
	common := addCommonFlags(fs, cfg)
	games := fs.Int("games", 10, "number of matches to play")
	factions := fs.String("factions", "", "Player 1's factions (random per match when empty)")
	oppFactions := fs.String("opponent", "", "Player 2's factions (random per match when empty)")
	verbose := fs.Bool("verbose", false, "print every match's event log")
	fs.Parse(args)
	cfg, err := common.apply(cfg)
	if err != nil {
		return err
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cat, err := cfg.Catalog()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	simCfg := opponent.SimConfig{
		Catalog:        cat,
		Games:          *games,
		Seed:           cfg.Seed,
		RandomFactions: *factions == "" && *oppFactions == "",
		MaxTurns:       cfg.MaxTurns,
	}
	if !simCfg.RandomFactions {
		rng := game.NewRand(cfg.Seed)
		if simCfg.P1Factions, err = parseFactions(*factions, rng); err != nil {
			return err
		}
		if simCfg.P2Factions, err = parseFactions(*oppFactions, rng); err != nil {
			return err
		}
	}
	if *verbose {
		simCfg.NewLogger = func(i int) log.EventLogger {
			fmt.Printf("=== Match %d ===\n", i+1)
			return log.NewTextLogger(os.Stdout)
		}
	}

	start := time.Now()
	report, err := opponent.Simulate(ctx, simCfg)
	if err != nil {
		return err
	}
	logger.Info("simulation finished",
		zap.Int("games", len(report.Results)),
		zap.Duration("elapsed", time.Since(start)),
	)

	for i, res := range report.Results {
		fmt.Printf("%3d  seed %-20d %s+%s vs %s+%s  T%-3d %s\n", i+1, res.Seed,
			res.P1Factions[0], res.P1Factions[1], res.P2Factions[0], res.P2Factions[1],
			res.Turns, res.Result)
	}
	fmt.Println()
	fmt.Printf("Player 1 wins: %d\n", report.Wins[0])
	fmt.Printf("Player 2 wins: %d\n", report.Wins[1])
	fmt.Printf("Draws:         %d\n", report.Ties)
	fmt.Printf("Average turns: %.1f\n", report.AverageTurns())
	return nil
}

func runCatalog(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("catalog", flag.ExitOnError)
	path := fs.String("catalog", cfg.CatalogPath, "path to a catalog YAML file (built-in when empty)")
	fs.Parse(args)
	cfg.CatalogPath = *path

	cat, err := cfg.Catalog()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	console.RenderCatalog(os.Stdout, view.BuildCatalogView(cat))
	return nil
}
