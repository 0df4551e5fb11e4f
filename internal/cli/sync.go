package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pratik-mahalle/spendlens/pkg/client"
)

func newSyncCmd() *cobra.Command {
	var req client.SyncRequest

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch cost, resource and budget data from every connected provider",
		Long: `Fetch cost, resource and budget data from every connected provider and store it.

Use --start and --end together for an explicit range, or --days for a trailing
window. Without either the server's default lookback is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (req.Start == "") != (req.End == "") {
				return fmt.Errorf("--start and --end must be given together")
			}

			var body *client.SyncRequest
			if req != (client.SyncRequest{}) {
				body = &req
			}

			result, err := apiClient.Sync(cmd.Context(), body)
			if err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if !tableOutput() {
				return printOutput(out, result)
			}

			fmt.Fprintf(out, "Synced %s to %s in %dms\n", result.Start, result.End, result.DurationMs)
			fmt.Fprintf(out, "  Providers:  %d\n", len(result.Providers))
			fmt.Fprintf(out, "  Resources:  %d\n", result.Resources)
			fmt.Fprintf(out, "  Budgets:    %d\n", result.Budgets)
			fmt.Fprintf(out, "  Total cost: %s\n", formatMoney(result.TotalCost))

			if len(result.PersistErrors) > 0 {
				fmt.Fprintln(out, "\nSome data could not be stored:")
				providers := make([]string, 0, len(result.PersistErrors))
				for p := range result.PersistErrors {
					providers = append(providers, p)
				}
				sort.Strings(providers)
				for _, p := range providers {
					fmt.Fprintf(out, "  %s: %s\n", p, result.PersistErrors[p])
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Start, "start", "", "range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.End, "end", "", "range end (YYYY-MM-DD)")
	cmd.Flags().IntVar(&req.Days, "days", 0, "trailing window in days")

	return cmd
}
