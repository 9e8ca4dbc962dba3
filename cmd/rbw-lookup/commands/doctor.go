package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/lalmeras/rbw-lookup/internal/config"
	rlerrors "github.com/lalmeras/rbw-lookup/internal/errors"
	"github.com/lalmeras/rbw-lookup/internal/logging"
	"github.com/lalmeras/rbw-lookup/pkg/lookup"
)

func NewDoctorCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check rbw availability and unlock state",
		Long: `Check that the rbw executable is installed and the credential store
is unlocked. The check never attempts to unlock the store itself;
unlocking requires interactive user action.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Load(); err != nil {
				return err
			}

			logger := cfg.Logger
			if logger == nil {
				logger = logging.New(false, false)
			}

			client, _ := newResolver(cfg)

			err := client.Validate(context.Background())
			if err == nil {
				logger.Info("rbw executable found: %s", client.Tool())
				logger.Info("credential store is unlocked")
				return nil
			}

			var noTool lookup.ToolNotFoundError
			var locked lookup.StoreLockedError
			switch {
			case errors.As(err, &noTool):
				logger.Error("rbw executable not found: %s", client.Tool())
			case errors.As(err, &locked):
				logger.Info("rbw executable found: %s", client.Tool())
				logger.Error("credential store is locked")
			default:
				logger.Error("rbw check failed")
			}
			return rlerrors.LookupError(err)
		},
	}

	return cmd
}
