package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"mtdstore-client/internal/utils"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show platform statistics (admin token required)",
	Long: `Fetches the platform-wide statistics the admin dashboard shows.
The request is authenticated with the token from MTD_API_TOKEN.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, client, err := newClient()
		if err != nil {
			return err
		}
		if cfg.APIToken != "" {
			client.SetToken(cfg.APIToken)
		}
		stats, err := client.AdminStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to fetch stats: %w", err)
		}
		commission, err := client.AdminCommission(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to fetch commission total: %w", err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Buyers:            %d\n", stats.TotalBuyers)
		fmt.Fprintf(out, "Sellers:           %d\n", stats.TotalSellers)
		fmt.Fprintf(out, "Orders:            %d\n", stats.TotalOrders)
		fmt.Fprintf(out, "Revenue:           %s\n", utils.FormatMoneyFloat(stats.TotalRevenue))
		fmt.Fprintf(out, "Commission earned: %s\n", utils.FormatMoneyFloat(commission))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
