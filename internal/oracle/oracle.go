// Package oracle runs the classic UNIX text toys (fortune, cowsay, cowthink)
// as child processes.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dbot/internal/config"
)

// DefaultMessage is what the cow says when no message is given.
const DefaultMessage = "Moo"

// ErrNotInstalled is returned when a configured binary cannot be found.
var ErrNotInstalled = errors.New("oracle: binary not installed")

// Exec runs configured binaries with a per-call timeout.
type Exec struct {
	fortune  string
	cowsay   string
	cowthink string
	timeout  time.Duration
	logger   *zap.Logger
}

// New creates an Exec from the fun config section.
//
// Precondition: cfg.Timeout > 0; logger must be non-nil.
func New(cfg config.FunConfig, logger *zap.Logger) *Exec {
	return &Exec{
		fortune:  cfg.FortunePath,
		cowsay:   cfg.CowsayPath,
		cowthink: cfg.CowthinkPath,
		timeout:  cfg.Timeout,
		logger:   logger,
	}
}

// Fortune returns one fortune with surrounding whitespace trimmed.
func (e *Exec) Fortune(ctx context.Context) (string, error) {
	out, err := e.run(ctx, e.fortune)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Cowsay renders message as cow ASCII art. When think is true the cow thinks
// instead of speaks. An empty message becomes DefaultMessage. The words
// follow "--" so they are never read as cowsay options.
func (e *Exec) Cowsay(ctx context.Context, message string, think bool) (string, error) {
	words := strings.Fields(message)
	if len(words) == 0 {
		words = []string{DefaultMessage}
	}
	args := append([]string{"--"}, words...)
	bin := e.cowsay
	if think {
		bin = e.cowthink
	}
	out, err := e.run(ctx, bin, args...)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, " \t\r\n"), nil
}

// run executes bin with args and returns combined stdout and stderr.
//
// Postcondition: a missing binary wraps ErrNotInstalled; a timeout wraps
// context.DeadlineExceeded.
func (e *Exec) run(ctx context.Context, bin string, args ...string) (string, error) {
	path, err := exec.LookPath(bin)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotInstalled, bin)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.WaitDelay = e.timeout
	start := time.Now()
	out, err := cmd.CombinedOutput()
	if ctxErr := ctx.Err(); ctxErr != nil {
		e.logger.Warn("oracle timed out",
			zap.String("binary", bin),
			zap.Duration("timeout", e.timeout),
		)
		return "", fmt.Errorf("running %s: %w", bin, ctxErr)
	}
	if err != nil {
		return "", fmt.Errorf("running %s: %w", bin, err)
	}
	e.logger.Debug("oracle ran",
		zap.String("binary", bin),
		zap.Int("args", len(args)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return string(out), nil
}
