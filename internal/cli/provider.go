package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pratik-mahalle/spendlens/pkg/client"
)

func newProviderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "provider",
		Aliases: []string{"providers"},
		Short:   "Manage cloud provider accounts",
	}

	cmd.AddCommand(newProviderListCmd())
	cmd.AddCommand(newProviderConnectCmd())
	cmd.AddCommand(newProviderTestCmd())
	cmd.AddCommand(newProviderDisconnectCmd())
	cmd.AddCommand(newProviderStatusCmd())

	return cmd
}

func newProviderListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List connected providers",
		RunE: func(cmd *cobra.Command, args []string) error {
			providers, err := apiClient.Providers().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list providers: %w", err)
			}

			out := cmd.OutOrStdout()
			if !tableOutput() {
				return printOutput(out, providers)
			}
			if len(providers) == 0 {
				fmt.Fprintln(out, "No providers connected. Run 'spendlens provider connect <aws|gcp|azure>'.")
				return nil
			}

			table := NewTable(out, "PROVIDER", "CONNECTED", "CONNECTED AT", "LAST SYNCED")
			for _, p := range providers {
				table.AddRow(
					p.Provider,
					fmt.Sprintf("%v", p.IsConnected),
					formatTime(&p.ConnectedAt),
					formatTime(p.LastSynced),
				)
			}
			table.Render()
			return nil
		},
	}
}

type connectFlags struct {
	credentialsFile string
	creds           client.Credentials
}

func newProviderConnectCmd() *cobra.Command {
	var flags connectFlags

	cmd := &cobra.Command{
		Use:       "connect <aws|gcp|azure>",
		Short:     "Connect a cloud provider account",
		Long:      "Connect a cloud provider account. Missing credential fields are prompted for.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"aws", "gcp", "azure"},
		RunE: func(cmd *cobra.Command, args []string) error {
			provider := strings.ToLower(args[0])
			reader := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			creds, err := collectCredentials(provider, flags, reader, out)
			if err != nil {
				return err
			}

			p, err := apiClient.Providers().Connect(cmd.Context(), provider, creds)
			if err != nil {
				return fmt.Errorf("failed to connect %s: %w", provider, err)
			}

			if !tableOutput() {
				return printOutput(out, p)
			}
			fmt.Fprintf(out, "Connected %s. Run 'spendlens sync' to fetch data.\n", p.Provider)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.creds.AccessKeyID, "access-key-id", "", "AWS access key ID")
	f.StringVar(&flags.creds.SecretAccessKey, "secret-access-key", "", "AWS secret access key")
	f.StringVar(&flags.creds.Region, "region", "", "AWS region")
	f.StringVar(&flags.creds.ProjectID, "project-id", "", "GCP project ID")
	f.StringVar(&flags.credentialsFile, "credentials-file", "", "path to a GCP service account JSON key")
	f.StringVar(&flags.creds.BillingDataset, "billing-dataset", "", "GCP BigQuery billing export dataset")
	f.StringVar(&flags.creds.BillingAccountID, "billing-account-id", "", "GCP billing account ID")
	f.StringVar(&flags.creds.TenantID, "tenant-id", "", "Azure tenant ID")
	f.StringVar(&flags.creds.ClientID, "client-id", "", "Azure client ID")
	f.StringVar(&flags.creds.ClientSecret, "client-secret", "", "Azure client secret")
	f.StringVar(&flags.creds.SubscriptionID, "subscription-id", "", "Azure subscription ID")

	return cmd
}

func collectCredentials(provider string, flags connectFlags, reader *bufio.Reader, out io.Writer) (client.Credentials, error) {
	creds := flags.creds

	ask := func(field *string, prompt string, secret bool) {
		if *field != "" {
			return
		}
		if secret {
			*field = promptSecret(reader, out, prompt)
		} else {
			*field = promptLine(reader, out, prompt)
		}
	}

	switch provider {
	case "aws":
		ask(&creds.AccessKeyID, "AWS Access Key ID: ", false)
		ask(&creds.SecretAccessKey, "AWS Secret Access Key: ", true)
		ask(&creds.Region, "AWS Region [us-east-1]: ", false)
		if creds.Region == "" {
			creds.Region = "us-east-1"
		}
	case "gcp":
		ask(&creds.ProjectID, "GCP Project ID: ", false)
		if flags.credentialsFile == "" {
			flags.credentialsFile = promptLine(reader, out, "Path to service account JSON key: ")
		}
		if flags.credentialsFile == "" {
			return creds, fmt.Errorf("a service account key file is required for gcp")
		}
		data, err := os.ReadFile(flags.credentialsFile)
		if err != nil {
			return creds, fmt.Errorf("failed to read credentials file: %w", err)
		}
		creds.ServiceAccountJSON = string(data)
	case "azure":
		ask(&creds.TenantID, "Azure Tenant ID: ", false)
		ask(&creds.ClientID, "Azure Client ID: ", false)
		ask(&creds.ClientSecret, "Azure Client Secret: ", true)
		ask(&creds.SubscriptionID, "Azure Subscription ID: ", false)
	default:
		return creds, fmt.Errorf("unknown provider %q: must be aws, gcp or azure", provider)
	}

	return creds, nil
}

func newProviderTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Check that every connected provider is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := apiClient.Providers().Test(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to test providers: %w", err)
			}

			out := cmd.OutOrStdout()
			if !tableOutput() {
				return printOutput(out, results)
			}

			table := NewTable(out, "PROVIDER", "STATUS")
			for _, r := range results {
				status := "unreachable"
				if r.Reachable {
					status = "reachable"
				}
				table.AddRow(r.Provider, formatStatus(status))
			}
			table.Render()
			return nil
		},
	}
}

func newProviderDisconnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect <aws|gcp|azure>",
		Short: "Disconnect a provider and delete its stored data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider := strings.ToLower(args[0])
			if err := apiClient.Providers().Disconnect(cmd.Context(), provider); err != nil {
				return fmt.Errorf("failed to disconnect %s: %w", provider, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Disconnected %s.\n", provider)
			return nil
		},
	}
}

func newProviderStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show provider sync status",
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses, err := apiClient.Providers().Status(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get provider status: %w", err)
			}

			out := cmd.OutOrStdout()
			if !tableOutput() {
				return printOutput(out, statuses)
			}

			table := NewTable(out, "PROVIDER", "STATUS", "LAST SYNCED", "MESSAGE")
			for _, s := range statuses {
				table.AddRow(s.Provider, formatStatus(s.Status), formatTime(s.LastSynced), truncate(s.Message, 50))
			}
			table.Render()
			return nil
		},
	}
}
