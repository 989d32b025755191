package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dbot/internal/command"
	"github.com/cory-johannsen/dbot/internal/config"
	"github.com/cory-johannsen/dbot/internal/dice"
	"github.com/cory-johannsen/dbot/internal/macro"
	"github.com/cory-johannsen/dbot/internal/observability"
	"github.com/cory-johannsen/dbot/internal/oracle"
)

// app holds the wired components shared by all subcommands.
type app struct {
	cfg        config.Config
	logger     *zap.Logger
	dispatcher *command.Dispatcher
}

// newApp loads configuration and wires the dice roller, macros, text oracle
// and command dispatcher.
//
// Postcondition: Returns a ready app or a non-nil error; the caller must
// call logger.Sync.
func newApp(cmd *cobra.Command) (*app, error) {
	start := time.Now()

	path := configPath
	if !cmd.Flags().Changed("config") {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Logging, cfg.Bot.Name)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	src := dice.NewCryptoSource()
	if cmd.Flags().Changed("seed") {
		src = dice.NewSeededSource(seed)
		logger.Info("using seeded dice source", zap.Uint64("seed", seed))
	}
	limits := dice.Limits{
		MaxDice:       cfg.Dice.MaxDice,
		MaxSides:      cfg.Dice.MaxSides,
		MaxExplosions: cfg.Dice.MaxExplosions,
		MaxTotalDice:  cfg.Dice.MaxTotalDice,
		MaxSimDice:    cfg.Dice.MaxSimDice,
	}
	roller := dice.NewLoggedRoller(src, limits, logger)

	var macros *macro.Table
	if cfg.Macros.Dir != "" {
		macros, err = macro.LoadDir(cfg.Macros.Dir)
		if err != nil {
			return nil, fmt.Errorf("loading macros: %w", err)
		}
		logger.Info("macros loaded", zap.Int("count", macros.Len()), zap.String("dir", cfg.Macros.Dir))
	}

	registry, err := command.NewBuiltinRegistry(command.Deps{
		Roller:           roller,
		Oracle:           oracle.New(cfg.Fun, logger),
		Macros:           macros,
		Prefix:           cfg.Bot.Prefix,
		DefaultRoll:      cfg.Bot.DefaultRoll,
		SimIterations:    cfg.Dice.SimIterations,
		SimMaxIterations: cfg.Dice.SimMaxIterations,
		Name:             cfg.Bot.Name,
		Started:          time.Now(),
	})
	if err != nil {
		return nil, err
	}
	dispatcher := command.NewDispatcher(registry, cfg.Bot.Prefix, command.Cooldown{
		Interval: cfg.Bot.Cooldown,
		Burst:    cfg.Bot.Burst,
	}, logger)

	logger.Debug("bot wired",
		zap.String("name", cfg.Bot.Name),
		zap.String("prefix", cfg.Bot.Prefix),
		zap.Int("commands", len(registry.Commands())),
		zap.Duration("elapsed", time.Since(start)),
	)
	return &app{cfg: cfg, logger: logger, dispatcher: dispatcher}, nil
}
