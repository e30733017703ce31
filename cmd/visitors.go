package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"visitor-reception/internal/storage"
)

var visitorsCmd = &cobra.Command{
	Use:   "visitors",
	Short: "Inspect visitor records",
	Long:  `List visitor records and aggregate counts from the command line.`,
}

var visitorsStatusFlag string

var visitorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List visitor records",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		visitors, err := provider.ListVisitors(ctx, storage.Filter(visitorsStatusFlag))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing visitors: %v\n", err)
			os.Exit(1)
		}

		if len(visitors) == 0 {
			fmt.Println("No visitors found.")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tVISITING\tIN\tOUT\tSTATUS")
		for _, v := range visitors {
			out := "-"
			if v.OutTime != nil {
				out = v.OutTime.Format(time.RFC3339)
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				v.ID, v.FullName, v.PersonToVisit, v.InTime.Format(time.RFC3339), out, v.Status())
		}
		w.Flush()
	},
}

var visitorsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate visitor counts",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		stats, err := provider.VisitorStats(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error computing stats: %v\n", err)
			os.Exit(1)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TOTAL\tACTIVE\tSECURED\tSECURITY PENDING")
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\n", stats.Total, stats.Active, stats.Secured, stats.SecurityPending)
		w.Flush()
	},
}

func init() {
	visitorsListCmd.Flags().StringVar(&visitorsStatusFlag, "status", "", "filter: active, released or security-pending")
	rootCmd.AddCommand(visitorsCmd)
	visitorsCmd.AddCommand(visitorsListCmd)
	visitorsCmd.AddCommand(visitorsStatsCmd)
}
