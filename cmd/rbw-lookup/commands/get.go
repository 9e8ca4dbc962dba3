package commands

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/lalmeras/rbw-lookup/internal/config"
	rlerrors "github.com/lalmeras/rbw-lookup/internal/errors"
	"github.com/lalmeras/rbw-lookup/pkg/lookup"
)

func NewGetCommand(cfg *config.Config) *cobra.Command {
	var (
		folder     string
		field      string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "get NAME...",
		Short: "Resolve one or more credentials",
		Long: `Resolve each NAME to exactly one secret value.

A name matching several entries is an error, never a guess; qualify the
lookup with --folder to pick one. Resolution is fail-fast: the first
failure aborts the whole batch and nothing is printed.

Examples:
  # Get the password of a uniquely named entry
  rbw-lookup get github.com

  # Disambiguate by folder and pick a field
  rbw-lookup get github.com --folder Work --field username

  # Use in scripts
  export DB_PASSWORD=$(rbw-lookup get database --folder prod)`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Load(); err != nil {
				return err
			}

			opts := lookup.Options{
				Folder: orDefault(folder, cfg.DefaultFolder()),
				Field:  orDefault(field, cfg.DefaultField()),
			}
			if err := opts.Validate(); err != nil {
				return rlerrors.UserError{
					Message:    "Invalid lookup options",
					Details:    err.Error(),
					Suggestion: "Check the --folder and --field values",
					Err:        err,
				}
			}

			_, resolver := newResolver(cfg)

			values, err := lookup.ResolveAll(context.Background(), resolver, args, opts)
			if err != nil {
				return rlerrors.LookupError(err)
			}

			if jsonOutput {
				type resolved struct {
					Name  string `json:"name"`
					Value string `json:"value"`
				}
				output := make([]resolved, len(values))
				for i, value := range values {
					output[i] = resolved{Name: args[i], Value: value}
				}
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(output)
			}

			for _, value := range values {
				cmd.Println(value)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", "Restrict matches to this folder")
	cmd.Flags().StringVar(&field, "field", "", "Credential field to return (default: password)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output name/value pairs as JSON")

	return cmd
}
