package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pratik-mahalle/spendlens/pkg/client"
)

func newRecommendationCmd() *cobra.Command {
	var opts client.RecommendationListOptions

	cmd := &cobra.Command{
		Use:     "recommendations",
		Aliases: []string{"recs", "rec"},
		Short:   "Show ranked savings recommendations",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := apiClient.Recommendations().List(cmd.Context(), &opts)
			if err != nil {
				return fmt.Errorf("failed to get recommendations: %w", err)
			}

			out := cmd.OutOrStdout()
			if !tableOutput() {
				return printOutput(out, list)
			}
			if len(list.Recommendations) == 0 {
				fmt.Fprintln(out, "No recommendations. Everything looks efficient.")
				return nil
			}

			table := NewTable(out, "#", "PROVIDER", "CATEGORY", "TITLE", "SAVINGS", "EFFORT", "RESOURCES")
			for i, rec := range list.Recommendations {
				table.AddRow(
					fmt.Sprintf("%d", i+1),
					rec.Provider,
					rec.Category,
					truncate(rec.Title, 45),
					formatMoney(rec.Savings),
					formatEffort(rec.Effort),
					fmt.Sprintf("%d", rec.Resources),
				)
			}
			table.Render()
			fmt.Fprintln(out)
			printRecommendationSummary(out, list.Summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Provider, "provider", "", "filter by provider")
	cmd.Flags().StringVar(&opts.Category, "category", "", "filter by category (compute, storage, network, commitment)")
	cmd.Flags().StringVar(&opts.Effort, "effort", "", "filter by effort (low, medium, high)")

	cmd.AddCommand(newRecommendationSummaryCmd())
	return cmd
}

func newRecommendationSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show total potential savings",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := apiClient.Recommendations().Summary(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get recommendation summary: %w", err)
			}

			out := cmd.OutOrStdout()
			if !tableOutput() {
				return printOutput(out, summary)
			}
			printRecommendationSummary(out, *summary)
			return nil
		},
	}
}

func printRecommendationSummary(out io.Writer, s client.RecommendationSummary) {
	fmt.Fprintf(out, "Recommendations:    %d (%d quick wins)\n", s.Count, s.QuickWins)
	fmt.Fprintf(out, "Affected resources: %d\n", s.AffectedResources)
	fmt.Fprintf(out, "Potential savings:  %s/month of %s (%.1f%%)\n", formatMoney(s.TotalSavings), formatMoney(s.TotalSpend), s.PercentageReduction)
}

func printCounts(out io.Writer, header string, counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	table := NewTable(out, header, "COUNT")
	for _, k := range keys {
		table.AddRow(k, fmt.Sprintf("%d", counts[k]))
	}
	table.Render()
}
