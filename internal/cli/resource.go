package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pratik-mahalle/spendlens/pkg/client"
)

func newResourceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "resources",
		Aliases: []string{"resource", "res"},
		Short:   "Browse resources and their estimated monthly cost",
	}

	cmd.AddCommand(newResourceListCmd())
	cmd.AddCommand(newResourceGetCmd())
	cmd.AddCommand(newResourceSummaryCmd())

	return cmd
}

func newResourceListCmd() *cobra.Command {
	var opts client.ResourceListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := apiClient.Resources().List(cmd.Context(), &opts)
			if err != nil {
				return fmt.Errorf("failed to list resources: %w", err)
			}

			out := cmd.OutOrStdout()
			if !tableOutput() {
				return printOutput(out, page)
			}

			table := NewTable(out, "PROVIDER", "ID", "NAME", "CATEGORY", "REGION", "STATUS", "COST")
			for _, r := range page.Data {
				table.AddRow(r.Provider, truncate(r.ID, 24), truncate(r.Name, 30), r.Category, r.Region, formatStatus(r.Status), formatMoney(r.Cost))
			}
			table.Render()
			fmt.Fprintf(out, "\nPage %d of %d (%d resources)\n", page.Page, page.TotalPages, page.TotalItems)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Provider, "provider", "", "filter by provider")
	cmd.Flags().StringVar(&opts.Category, "category", "", "filter by category (compute, storage, database, ...)")
	cmd.Flags().StringVar(&opts.Region, "region", "", "filter by region")
	cmd.Flags().StringVar(&opts.Status, "status", "", "filter by status")
	cmd.Flags().IntVar(&opts.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 20, "resources per page")

	return cmd
}

func newResourceGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <provider> <id>",
		Short: "Show one resource",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := apiClient.Resources().Get(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to get resource: %w", err)
			}

			out := cmd.OutOrStdout()
			if !tableOutput() {
				return printOutput(out, r)
			}

			fmt.Fprintf(out, "ID:          %s\n", r.ID)
			fmt.Fprintf(out, "Name:        %s\n", r.Name)
			fmt.Fprintf(out, "Provider:    %s\n", r.Provider)
			fmt.Fprintf(out, "Type:        %s\n", r.Type)
			fmt.Fprintf(out, "Category:    %s\n", r.Category)
			fmt.Fprintf(out, "Region:      %s\n", r.Region)
			fmt.Fprintf(out, "Status:      %s\n", formatStatus(r.Status))
			fmt.Fprintf(out, "Cost:        %s/month\n", formatMoney(r.Cost))
			if r.Utilization != nil {
				fmt.Fprintf(out, "Utilization: %.1f%%\n", *r.Utilization)
			}
			if len(r.Tags) > 0 {
				keys := make([]string, 0, len(r.Tags))
				for k := range r.Tags {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				pairs := make([]string, len(keys))
				for i, k := range keys {
					pairs[i] = k + "=" + r.Tags[k]
				}
				fmt.Fprintf(out, "Tags:        %s\n", strings.Join(pairs, ", "))
			}
			return nil
		},
	}
}

func newResourceSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show resource counts by provider, category and status",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := apiClient.Resources().Summary(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get resource summary: %w", err)
			}

			out := cmd.OutOrStdout()
			if !tableOutput() {
				return printOutput(out, summary)
			}

			fmt.Fprintf(out, "Resources: %d  Estimated monthly cost: %s\n\n", summary.Total, formatMoney(summary.TotalCost))
			printCounts(out, "PROVIDER", summary.ByProvider)
			fmt.Fprintln(out)
			printCounts(out, "CATEGORY", summary.ByCategory)
			fmt.Fprintln(out)
			printCounts(out, "STATUS", summary.ByStatus)
			return nil
		},
	}
}
