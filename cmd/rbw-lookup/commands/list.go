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

func NewListCommand(cfg *config.Config) *cobra.Command {
	var (
		folder     string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List credential entries",
		Long: `List the normalized entry metadata from the rbw store.

Only names, folders and ids are printed; no secret value is ever
revealed by this command.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Load(); err != nil {
				return err
			}

			_, resolver := newResolver(cfg)

			entries, err := resolver.List(context.Background())
			if err != nil {
				return rlerrors.LookupError(err)
			}

			folder = orDefault(folder, cfg.DefaultFolder())
			if folder != "" {
				filtered := entries[:0]
				for _, entry := range entries {
					if entry.Folder == folder {
						filtered = append(filtered, entry)
					}
				}
				entries = filtered
			}

			if jsonOutput {
				type listed struct {
					Name   string `json:"name"`
					Folder string `json:"folder,omitempty"`
					ID     string `json:"id"`
				}
				output := make([]listed, len(entries))
				for i, entry := range entries {
					output[i] = listed{Name: entry.Name, Folder: entry.Folder, ID: entry.ID}
				}
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(output)
			}

			for _, entry := range entries {
				printEntry(cmd, entry)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", "Only show entries in this folder")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output entries as JSON")

	return cmd
}

func printEntry(cmd *cobra.Command, entry lookup.Entry) {
	if entry.Folder != "" {
		cmd.Printf("%s/%s\t%s\n", entry.Folder, entry.Name, entry.ID)
		return
	}
	cmd.Printf("%s\t%s\n", entry.Name, entry.ID)
}
