package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var maintenanceCmd = &cobra.Command{
	Use:   "maintenance",
	Short: "Out-of-band maintenance operations",
}

var purgeConfirmFlag bool

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete all visitor records and reset the id sequence",
	Long: `Deletes every visitor record and resets the auto-increment id sequence.
This is a destructive operation and is deliberately not exposed over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		if !purgeConfirmFlag {
			fmt.Fprintln(os.Stderr, "Refusing to purge without --yes")
			os.Exit(1)
		}

		n, err := provider.PurgeVisitors(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error purging visitors: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted %d visitor records.\n", n)
	},
}

func init() {
	purgeCmd.Flags().BoolVar(&purgeConfirmFlag, "yes", false, "confirm the purge")
	rootCmd.AddCommand(maintenanceCmd)
	maintenanceCmd.AddCommand(purgeCmd)
}
