package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dbot/internal/console"
	"github.com/cory-johannsen/dbot/internal/server"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Start the interactive dice bot console",
	Long: `Read commands from standard input and print replies, as a chat channel would.
The command prefix is optional at the console.

  Example: dbot console --config configs/dev.yaml`,
	Args: cobra.NoArgs,
	RunE: runConsole,
}

func runConsole(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.logger.Sync() }()

	session := console.NewSession(a.dispatcher, a.cfg.Bot, a.cfg.Console, os.Stdin, os.Stdout, a.logger)

	lc := server.NewLifecycle(a.logger)
	lc.Add("console", &server.FuncService{StartFn: session.Run})

	a.logger.Info("starting dbot console", zap.String("name", a.cfg.Bot.Name))
	return lc.Run(context.Background())
}
