// Package main provides the loot generator binary: it kills random monsters
// and prints the items they drop until the player stops.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/lootgen/internal/config"
	"github.com/cory-johannsen/lootgen/internal/game/dice"
	"github.com/cory-johannsen/lootgen/internal/game/simulation"
	"github.com/cory-johannsen/lootgen/internal/game/tables"
	"github.com/cory-johannsen/lootgen/internal/observability"
)

func main() {
	configPath := flag.String("config", "configs/lootgen.yaml", "path to configuration file; empty = defaults and environment only")
	dataDir := flag.String("data", "", "data set directory; overrides data.dir")
	seed := flag.Int64("seed", 0, "random seed; overrides simulation.seed when non-zero")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *dataDir != "" {
		cfg.Data.Dir = *dataDir
	}
	if *seed != 0 {
		cfg.Simulation.Seed = *seed
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger, os.Stdin, os.Stdout); err != nil {
		logger.Error("simulation aborted", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		_ = logger.Sync()
		os.Exit(1)
	}
}

// run greets the player, loads the data set and plays until the player quits.
// An interrupt is a normal quit and returns nil.
func run(ctx context.Context, cfg config.Config, logger *zap.Logger, in io.Reader, out io.Writer) error {
	if err := simulation.Greet(out); err != nil {
		return err
	}

	loadStart := time.Now()
	tbl, err := tables.LoadDataSet(cfg.Data)
	if err != nil {
		return fmt.Errorf("loading data: %w", err)
	}
	logger.Info("data set loaded",
		zap.String("dir", cfg.Data.Dir),
		zap.Int("monsters", tbl.MonsterCount()),
		zap.Int("treasure_classes", tbl.TreasureClassCount()),
		zap.Int("armor", tbl.ArmorCount()),
		zap.Int("prefixes", tbl.AffixCount(tables.Prefix)),
		zap.Int("suffixes", tbl.AffixCount(tables.Suffix)),
		zap.Duration("elapsed", time.Since(loadStart)),
	)

	src := dice.NewLoggedSource(dice.NewSource(cfg.Simulation.Seed), logger.Named("dice"))
	sim := simulation.New(tbl, src, in, out, logger,
		simulation.Options{MaxDepth: cfg.Simulation.MaxDepth})

	err = sim.Run(ctx)
	logger.Info("simulation finished", zap.Int("rounds", sim.Rounds()), zap.Int("draws", src.Draws()))
	if errors.Is(err, context.Canceled) {
		logger.Info("interrupted")
		fmt.Fprintln(out)
		return nil
	}
	return err
}
