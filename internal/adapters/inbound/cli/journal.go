package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ordercraft/ordercraft/internal/adapters/outbound/tui"
	"github.com/ordercraft/ordercraft/internal/domain"
)

func newJournalCmd(flags *globalFlags) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show orders submitted from this machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(flags)
			if err != nil {
				return err
			}

			entries, err := e.journal.Load()
			if err != nil {
				return fmt.Errorf("reading journal: %w", err)
			}

			if jsonOutput {
				if entries == nil {
					entries = []domain.JournalEntry{}
				}
				return writeJSON(cmd, entries)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderJournal(entries, e.cfg.Currency))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
