package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/dbot/internal/command"
	"github.com/cory-johannsen/dbot/internal/console"
)

var rollCmd = &cobra.Command{
	Use:   "roll [expression | macro]",
	Short: "Roll a dice expression once",
	Long: `Roll a dice expression and print the annotated dice and total.

  Example: dbot roll "3*(2d8!+9+1d6!k1)"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return oneShot(cmd, "roll "+strings.Join(args, " "))
	},
}

var iterations int

var simCmd = &cobra.Command{
	Use:   "sim [expression | macro]",
	Short: "Roll a dice expression many times and summarize the totals",
	Long: `Roll a dice expression repeatedly and print min, max, mean and standard deviation.

  Example: dbot sim -n 5000 4d6k3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		line := "rollsim"
		if cmd.Flags().Changed("iterations") {
			line += fmt.Sprintf(" -n %d", iterations)
		}
		return oneShot(cmd, line+" "+strings.Join(args, " "))
	},
}

func init() {
	simCmd.Flags().IntVarP(&iterations, "iterations", "n", 0, "number of rolls (default from dice.sim_iterations)")
}

// oneShot dispatches a single command line as the console author and prints
// the reply.
func oneShot(cmd *cobra.Command, line string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.logger.Sync() }()

	reply, ok := a.dispatcher.Dispatch(context.Background(), command.Message{
		Author:  a.cfg.Console.Author,
		Channel: a.cfg.Console.Channel,
		Text:    a.cfg.Bot.Prefix + strings.TrimSpace(line),
	})
	if !ok {
		return fmt.Errorf("not a command: %q", line)
	}
	fmt.Fprintln(cmd.OutOrStdout(), console.Render(reply.Text, a.cfg.Console.Color))
	return nil
}
