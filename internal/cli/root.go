package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pratik-mahalle/spendlens/pkg/client"
)

var (
	cfgFile      string
	outputFormat string
	serverURL    string
	userID       int64
	apiClient    *client.Client
)

var rootCmd = &cobra.Command{
	Use:   "spendlens",
	Short: "spendlens CLI - multi-cloud cost visibility and savings recommendations",
	Long: `spendlens gathers cost, inventory and budget data from AWS, GCP and Azure,
estimates the monthly cost of every resource and suggests where to save.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Parent() != nil && cmd.Parent().Name() == "config" {
			return nil
		}
		return initClient()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.spendlens/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: table, json, yaml")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "server URL (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&userID, "user", 0, "user ID sent as X-User-ID (overrides config)")

	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("server_url", rootCmd.PersistentFlags().Lookup("server"))
	_ = viper.BindPFlag("user_id", rootCmd.PersistentFlags().Lookup("user"))

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newProviderCmd())
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newCostCmd())
	rootCmd.AddCommand(newBudgetCmd())
	rootCmd.AddCommand(newResourceCmd())
	rootCmd.AddCommand(newRecommendationCmd())
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".spendlens"), nil
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if dir, err := configDir(); err == nil {
		viper.AddConfigPath(dir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SPENDLENS")
	viper.AutomaticEnv()

	viper.SetDefault("server_url", "http://localhost:8080")
	viper.SetDefault("output", "table")

	_ = viper.ReadInConfig()
}

func initClient() error {
	url := viper.GetString("server_url")
	if serverURL != "" {
		url = serverURL
	}

	id := viper.GetInt64("user_id")
	if userID != 0 {
		id = userID
	}
	if id <= 0 {
		return fmt.Errorf("no user ID configured. Pass --user, set SPENDLENS_USER_ID or run 'spendlens config set user_id <id>'")
	}

	apiClient = client.NewClient(client.Config{
		BaseURL: url,
		UserID:  id,
	})
	return nil
}

func getOutputFormat() string {
	if outputFormat != "" {
		return outputFormat
	}
	if f := viper.GetString("output"); f != "" {
		return f
	}
	return "table"
}
