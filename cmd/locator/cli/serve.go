package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dryice-locator/locator/internal/app"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web directory",
		Long:  "Run the web directory. Configuration comes from the environment (APP_ADDR, LISTINGS_PATH, LISTINGS_WATCH, LOG_FORMAT, ...).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return nil
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		return err
	}
	logger := app.NewLogger(cfg)
	if err := app.Run(cmd.Context(), cfg, logger); err != nil {
		logger.Error("serve", slog.Any("error", err))
		return err
	}
	return nil
}
