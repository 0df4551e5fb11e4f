package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pratik-mahalle/spendlens/pkg/client"
)

func newCostCmd() *cobra.Command {
	var provider string

	cmd := &cobra.Command{
		Use:     "costs",
		Aliases: []string{"cost"},
		Short:   "Show stored cost data",
		RunE: func(cmd *cobra.Command, args []string) error {
			overview, err := apiClient.Costs().Summary(cmd.Context(), provider)
			if err != nil {
				return fmt.Errorf("failed to get cost summary: %w", err)
			}

			out := cmd.OutOrStdout()
			if !tableOutput() {
				return printOutput(out, overview)
			}

			table := NewTable(out, "PROVIDER", "TOTAL", "CURRENCY", "RECORDS", "TOP SERVICE")
			for _, s := range overview.Providers {
				table.AddRow(s.Provider, formatMoney(s.TotalCost), s.Currency, fmt.Sprintf("%d", s.Records), topService(s.ByService))
			}
			table.Render()
			fmt.Fprintf(out, "\nTotal: %s\n", formatMoney(overview.TotalCost))
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "filter by provider (aws, gcp, azure)")
	cmd.AddCommand(newCostRecordsCmd())

	return cmd
}

func newCostRecordsCmd() *cobra.Command {
	var opts client.CostRecordOptions

	cmd := &cobra.Command{
		Use:   "records",
		Short: "List daily cost records",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (opts.Start == "") != (opts.End == "") {
				return fmt.Errorf("--start and --end must be given together")
			}

			page, err := apiClient.Costs().Records(cmd.Context(), &opts)
			if err != nil {
				return fmt.Errorf("failed to list cost records: %w", err)
			}

			out := cmd.OutOrStdout()
			if !tableOutput() {
				return printOutput(out, page)
			}

			table := NewTable(out, "DATE", "PROVIDER", "SERVICE", "REGION", "AMOUNT")
			for _, r := range page.Data {
				table.AddRow(r.Date, r.Provider, truncate(r.Service, 40), r.Region, formatMoney(r.Amount)+" "+r.Currency)
			}
			table.Render()
			fmt.Fprintf(out, "\nPage %d of %d (%d records)\n", page.Page, page.TotalPages, page.TotalItems)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Provider, "provider", "", "filter by provider")
	cmd.Flags().StringVar(&opts.Start, "start", "", "range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.End, "end", "", "range end (YYYY-MM-DD)")
	cmd.Flags().IntVar(&opts.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 20, "records per page")

	return cmd
}

func newBudgetCmd() *cobra.Command {
	var provider string

	cmd := &cobra.Command{
		Use:     "budgets",
		Aliases: []string{"budget"},
		Short:   "Show budgets and how much of each is spent",
		RunE: func(cmd *cobra.Command, args []string) error {
			budgets, err := apiClient.Costs().Budgets(cmd.Context(), provider)
			if err != nil {
				return fmt.Errorf("failed to list budgets: %w", err)
			}

			out := cmd.OutOrStdout()
			if !tableOutput() {
				return printOutput(out, budgets)
			}
			if len(budgets) == 0 {
				fmt.Fprintln(out, "No budgets found.")
				return nil
			}

			table := NewTable(out, "PROVIDER", "NAME", "PERIOD", "AMOUNT", "SPENT", "USED")
			for _, b := range budgets {
				table.AddRow(b.Provider, truncate(b.Name, 30), b.Period, formatMoney(b.Amount), formatMoney(b.Spent), fmt.Sprintf("%.1f%%", b.Utilization))
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "filter by provider")
	return cmd
}

// topService returns the service with the highest spend, ties broken by name.
func topService(byService map[string]float64) string {
	if len(byService) == 0 {
		return "-"
	}
	names := make([]string, 0, len(byService))
	for name := range byService {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if byService[names[i]] != byService[names[j]] {
			return byService[names[i]] > byService[names[j]]
		}
		return names[i] < names[j]
	})
	return truncate(names[0], 30)
}
