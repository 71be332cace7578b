/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zephyrite-db/zephyrite/pkg/api"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the Zephyrite REST API server.

Examples:
  zephyrite serve --port=8080
  zephyrite serve --api-key=mysecretkey --wal-file=./data/zephyrite.wal`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := configFromContext(cmd)
		engine := engineFromContext(cmd)
		if engine == nil {
			cmd.Println("Error: storage not found in context")
			return
		}

		if port, _ := cmd.Flags().GetInt("port"); port != 0 {
			cfg.Port = port
		}
		if bind, _ := cmd.Flags().GetString("bind"); bind != "" {
			cfg.Bind = bind
		}
		if apiKey, _ := cmd.Flags().GetString("api-key"); apiKey != "" {
			cfg.Security.APIKey = apiKey
		}

		serverConfig := api.ServerConfig{
			Bind:   cfg.Bind,
			Port:   cfg.Port,
			APIKey: cfg.Security.APIKey,
		}

		if err := api.StartServer(engine, serverConfig); err != nil {
			cmd.Printf("Error starting server: %v\n", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on")
	serveCmd.Flags().String("bind", "", "Address to bind to")
	serveCmd.Flags().String("api-key", "", "API key required on protected routes (empty disables auth)")
}
