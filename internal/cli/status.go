package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pratik-mahalle/spendlens/pkg/client"
)

type dashboard struct {
	Server          string                        `json:"server" yaml:"server"`
	Providers       []client.ProviderStatus       `json:"providers" yaml:"providers"`
	Costs           *client.CostOverview          `json:"costs" yaml:"costs"`
	Resources       *client.ResourceSummary       `json:"resources" yaml:"resources"`
	Recommendations *client.RecommendationSummary `json:"recommendations" yaml:"recommendations"`
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show a dashboard of spend, resources and savings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := apiClient.Ping(ctx); err != nil {
				return fmt.Errorf("server unreachable: %w", err)
			}

			var d dashboard
			d.Server = "ok"

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				d.Providers, err = apiClient.Providers().Status(gctx)
				return err
			})
			g.Go(func() error {
				var err error
				d.Costs, err = apiClient.Costs().Summary(gctx, "")
				return err
			})
			g.Go(func() error {
				var err error
				d.Resources, err = apiClient.Resources().Summary(gctx)
				return err
			})
			g.Go(func() error {
				var err error
				d.Recommendations, err = apiClient.Recommendations().Summary(gctx)
				return err
			})
			if err := g.Wait(); err != nil {
				return fmt.Errorf("failed to load dashboard: %w", err)
			}

			out := cmd.OutOrStdout()
			if !tableOutput() {
				return printOutput(out, d)
			}

			fmt.Fprintln(out, "=== spendlens status ===")
			fmt.Fprintln(out)

			if len(d.Providers) == 0 {
				fmt.Fprintln(out, "No providers connected.")
			} else {
				table := NewTable(out, "PROVIDER", "STATUS", "LAST SYNCED")
				for _, p := range d.Providers {
					table.AddRow(p.Provider, formatStatus(p.Status), formatTime(p.LastSynced))
				}
				table.Render()
			}

			fmt.Fprintln(out)
			fmt.Fprintf(out, "Spend:     %s\n", formatMoney(d.Costs.TotalCost))
			fmt.Fprintf(out, "Resources: %d (%s/month estimated)\n", d.Resources.Total, formatMoney(d.Resources.TotalCost))
			fmt.Fprintln(out)
			printRecommendationSummary(out, *d.Recommendations)
			return nil
		},
	}
}
