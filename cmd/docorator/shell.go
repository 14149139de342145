package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/jonathan/docorator/internal/shell"
	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Edit and submit a document interactively",
	Long:  "Starts an interactive session over a single draft. Type help for the list of commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

var shellInput string

func init() {
	shellCmd.Flags().StringVarP(&shellInput, "input", "i", "", "Start from a draft file")
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	c, _ := a.controller("")
	if shellInput != "" {
		d, err := readDraftFile(shellInput)
		if err != nil {
			return err
		}
		c.Restore(d)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	_, _ = fmt.Fprintln(a.out, "docorator shell. Type help for commands, quit to leave.")
	return shell.NewDispatcher(c, a.out).Run(ctx, cmd.InOrStdin())
}
