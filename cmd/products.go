package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"mtdstore-client/internal/utils"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List the product catalog",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, client, err := newClient()
		if err != nil {
			return err
		}
		products, err := client.Products(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to fetch products: %w", err)
		}
		if len(products) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No products available.")
			return nil
		}
		for _, p := range products {
			fmt.Fprintf(cmd.OutOrStdout(), "[%d] %-20s %10s/kg  %5d kg  %s\n",
				p.ID, p.Name, utils.FormatMoneyFloat(p.Price), p.Quantity, p.Seller)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(productsCmd)
}
