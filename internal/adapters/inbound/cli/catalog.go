package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ordercraft/ordercraft/internal/adapters/outbound/tui"
	"github.com/ordercraft/ordercraft/internal/domain"
	"github.com/ordercraft/ordercraft/internal/domain/catalog"
)

func newCustomersCmd(flags *globalFlags) *cobra.Command {
	var (
		query      string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "customers",
		Short: "List or search customers",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(flags)
			if err != nil {
				return err
			}
			defer func() { _ = e.logger.Sync() }()

			customers, err := e.deps.Customers.ListCustomers(cmd.Context(), e.cfg.Catalog.CustomerPageSize)
			if err != nil {
				return fmt.Errorf("loading customers: %w", err)
			}
			customers = catalog.SearchCustomers(customers, query)

			if jsonOutput {
				if customers == nil {
					customers = []domain.Customer{}
				}
				return writeJSON(cmd, customers)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderCustomers(customers, ""))
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Filter by name, email or phone")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newProductsCmd(flags *globalFlags) *cobra.Command {
	var (
		query      string
		status     string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List or search products",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(flags)
			if err != nil {
				return err
			}
			defer func() { _ = e.logger.Sync() }()

			products, err := e.deps.Products.ListProducts(cmd.Context(), e.cfg.Catalog.ProductPageSize, status)
			if err != nil {
				return fmt.Errorf("loading products: %w", err)
			}
			products = catalog.SearchProducts(products, query)

			if jsonOutput {
				if products == nil {
					products = []domain.Product{}
				}
				return writeJSON(cmd, products)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderProducts(products, e.cfg.Currency))
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Filter by name or SKU")
	cmd.Flags().StringVar(&status, "status", domain.ProductStatusActive, "Product status to list (empty for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func writeJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
