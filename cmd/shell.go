package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mtdstore-client/internal/app"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive marketplace shell",
	RunE:  runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, _ []string) error {
	cfg, client, err := newClient()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctrl := app.NewController(cfg, client, cmd.OutOrStdout())
	shell := app.NewShell(ctrl, cmd.InOrStdin(), cmd.OutOrStdout())
	return shell.Run(ctx)
}
