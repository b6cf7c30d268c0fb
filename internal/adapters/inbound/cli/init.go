package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ordercraft/ordercraft/internal/adapters/outbound/config"
)

func newInitCmd() *cobra.Command {
	var (
		baseURL string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .ordercraft.yaml configuration file",
		Long:  "Create a .ordercraft.yaml pointing at your orders API, with default page sizes and payment settings.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			if err := os.WriteFile(dest, []byte(config.Template(baseURL)), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "Orders API base URL to write into the file")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .ordercraft.yaml")

	return cmd
}
