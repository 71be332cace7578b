package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zephyrite-db/zephyrite/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file with a generated API key",
	Long: `Create a Zephyrite configuration file. A random API key is
generated and saved with restrictive permissions. Refuses to overwrite an
existing file.

Examples:
  zephyrite init
  zephyrite init --config=./zephyrite.yaml --wal-file=./data/zephyrite.wal`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		if config.ConfigExists(configPath) {
			fmt.Printf("Config already exists at %s\n", configPath)
			return
		}

		walFile, _ := cmd.Flags().GetString("wal-file")
		cfg, err := config.BootstrapConfig(configPath, walFile)
		if err != nil {
			fmt.Printf("Error creating config: %v\n", err)
			return
		}

		fmt.Printf("Created config at %s\n", configPath)
		fmt.Printf("API key: %s\n", cfg.Security.APIKey)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
