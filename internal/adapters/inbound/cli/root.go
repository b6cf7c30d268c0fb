package cli

import "github.com/spf13/cobra"

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "ordercraft",
		Short:         "Compose and submit orders from the terminal",
		Long:          "OrderCraft walks an operator through picking a customer, filling a cart and submitting the order to the orders API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", configFileDefault, "Path to the configuration file")
	cmd.PersistentFlags().StringVar(&flags.apiURL, "api-url", "", "Orders API base URL (overrides api.base_url)")
	cmd.PersistentFlags().StringVar(&flags.catalog, "catalog", "", "Static YAML catalog to load customers and products from")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newCustomersCmd(flags))
	cmd.AddCommand(newProductsCmd(flags))
	cmd.AddCommand(newOrderCmd(flags))
	cmd.AddCommand(newJournalCmd(flags))
	cmd.AddCommand(newMCPCmd(flags))
	cmd.AddCommand(newServeCmd(flags))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
