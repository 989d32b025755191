// Package config provides Viper-based configuration loading for the dice bot.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// BotConfig holds chat command settings.
type BotConfig struct {
	// Name is the bot's display name, used in logs and the console banner.
	Name string `mapstructure:"name"`
	// Prefix marks a chat line as a command, e.g. "!" for "!roll 1d20".
	Prefix string `mapstructure:"prefix"`
	// DefaultRoll is rolled when the roll command is given no expression.
	DefaultRoll string `mapstructure:"default_roll"`
	// Cooldown is the average interval allowed between commands from one author.
	// Zero disables the cooldown.
	Cooldown time.Duration `mapstructure:"cooldown"`
	// Burst is the number of commands an author may issue back to back.
	Burst int `mapstructure:"burst"`
}

// DiceConfig bounds the work a single roll or simulation may do.
type DiceConfig struct {
	MaxDice       int `mapstructure:"max_dice"`
	MaxSides      int `mapstructure:"max_sides"`
	MaxExplosions int `mapstructure:"max_explosions"`
	// MaxTotalDice caps the dice one expression rolls, explosions included.
	MaxTotalDice int `mapstructure:"max_total_dice"`
	// MaxSimDice caps the dice one simulation rolls across all iterations.
	MaxSimDice int `mapstructure:"max_sim_dice"`
	// SimIterations is the rollsim default when no -n is given.
	SimIterations int `mapstructure:"sim_iterations"`
	// SimMaxIterations caps any requested -n.
	SimMaxIterations int `mapstructure:"sim_max_iterations"`
}

// FunConfig locates the external text commands.
type FunConfig struct {
	FortunePath  string        `mapstructure:"fortune_path"`
	CowsayPath   string        `mapstructure:"cowsay_path"`
	CowthinkPath string        `mapstructure:"cowthink_path"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// ConsoleConfig holds settings for the interactive terminal front end.
type ConsoleConfig struct {
	Prompt string `mapstructure:"prompt"`
	// Color renders chat markup as ANSI styles instead of literal markers.
	Color bool `mapstructure:"color"`
	// Author and Channel identify console input to the dispatcher.
	Author  string `mapstructure:"author"`
	Channel string `mapstructure:"channel"`
}

// MacrosConfig locates roll macro definitions.
type MacrosConfig struct {
	// Dir is a directory of macro YAML files; empty disables macros.
	Dir string `mapstructure:"dir"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// File redirects logs from stderr to a file when non-empty.
	File string `mapstructure:"file"`
}

// Config is the top-level application configuration.
type Config struct {
	Bot     BotConfig     `mapstructure:"bot"`
	Dice    DiceConfig    `mapstructure:"dice"`
	Fun     FunConfig     `mapstructure:"fun"`
	Console ConsoleConfig `mapstructure:"console"`
	Macros  MacrosConfig  `mapstructure:"macros"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateBot(c.Bot); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateDice(c.Dice); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateFun(c.Fun); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateConsole(c.Console); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateBot(b BotConfig) error {
	var errs []string
	if b.Prefix == "" {
		errs = append(errs, "bot.prefix must not be empty")
	}
	if strings.ContainsAny(b.Prefix, " \t\n") {
		errs = append(errs, fmt.Sprintf("bot.prefix must not contain whitespace, got %q", b.Prefix))
	}
	if b.DefaultRoll == "" {
		errs = append(errs, "bot.default_roll must not be empty")
	}
	if b.Cooldown < 0 {
		errs = append(errs, "bot.cooldown must not be negative")
	}
	if b.Cooldown > 0 && b.Burst < 1 {
		errs = append(errs, fmt.Sprintf("bot.burst must be >= 1 when a cooldown is set, got %d", b.Burst))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateDice(d DiceConfig) error {
	var errs []string
	if d.MaxDice < 1 {
		errs = append(errs, fmt.Sprintf("dice.max_dice must be >= 1, got %d", d.MaxDice))
	}
	if d.MaxSides < 1 {
		errs = append(errs, fmt.Sprintf("dice.max_sides must be >= 1, got %d", d.MaxSides))
	}
	if d.MaxExplosions < 1 {
		errs = append(errs, fmt.Sprintf("dice.max_explosions must be >= 1, got %d", d.MaxExplosions))
	}
	if d.MaxTotalDice < 1 {
		errs = append(errs, fmt.Sprintf("dice.max_total_dice must be >= 1, got %d", d.MaxTotalDice))
	}
	if d.MaxSimDice < 1 {
		errs = append(errs, fmt.Sprintf("dice.max_sim_dice must be >= 1, got %d", d.MaxSimDice))
	}
	if d.SimMaxIterations < 1 {
		errs = append(errs, fmt.Sprintf("dice.sim_max_iterations must be >= 1, got %d", d.SimMaxIterations))
	}
	if d.SimIterations < 1 || d.SimIterations > d.SimMaxIterations {
		errs = append(errs, fmt.Sprintf("dice.sim_iterations must be 1-%d, got %d", d.SimMaxIterations, d.SimIterations))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateFun(f FunConfig) error {
	if f.Timeout <= 0 {
		return errors.New("fun.timeout must be positive")
	}
	return nil
}

func validateConsole(c ConsoleConfig) error {
	if c.Author == "" {
		return errors.New("console.author must not be empty")
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path loads defaults and
// environment overrides only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with DBOT_ prefix
	v.SetEnvPrefix("DBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bot.name", "dbot")
	v.SetDefault("bot.prefix", "!")
	v.SetDefault("bot.default_roll", "1d20")
	v.SetDefault("bot.cooldown", "1s")
	v.SetDefault("bot.burst", 5)

	v.SetDefault("dice.max_dice", 1000)
	v.SetDefault("dice.max_sides", 1000000)
	v.SetDefault("dice.max_explosions", 1000)
	v.SetDefault("dice.max_total_dice", 10000)
	v.SetDefault("dice.max_sim_dice", 1000000)
	v.SetDefault("dice.sim_iterations", 10000)
	v.SetDefault("dice.sim_max_iterations", 10000)

	v.SetDefault("fun.fortune_path", "fortune")
	v.SetDefault("fun.cowsay_path", "cowsay")
	v.SetDefault("fun.cowthink_path", "cowthink")
	v.SetDefault("fun.timeout", "5s")

	v.SetDefault("console.prompt", "> ")
	v.SetDefault("console.color", true)
	v.SetDefault("console.author", "console")
	v.SetDefault("console.channel", "terminal")

	v.SetDefault("macros.dir", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "")
}
