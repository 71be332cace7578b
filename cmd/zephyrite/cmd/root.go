/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zephyrite-db/zephyrite/pkg/config"
	"github.com/zephyrite-db/zephyrite/pkg/storage"
)

type contextKey string

const (
	storeKey  contextKey = "store"
	configKey contextKey = "config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "zephyrite",
	Short: "Zephyrite - Embeddable KV Store",
	Long: `Zephyrite is an embeddable key-value store with a volatile
in-memory backend and a WAL-backed persistent backend with crash recovery.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(cmd)

		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		engine, err := storage.New(cfg.StorageOptions())
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}

		ctx := context.WithValue(cmd.Context(), storeKey, engine)
		ctx = context.WithValue(ctx, configKey, cfg)
		cmd.SetContext(ctx)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if ps, ok := engineFromContext(cmd).(*storage.PersistentStorage); ok {
			return ps.Close()
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringP("wal-file", "w", "", "Write-ahead log file (implies persistent storage)")
	rootCmd.PersistentFlags().Bool("persistent", false, "Use the WAL-backed persistent backend")
	rootCmd.PersistentFlags().Int("capacity", 0, "Initial capacity hint for the in-memory map")
	rootCmd.PersistentFlags().Bool("no-checksums", false, "Disable WAL entry checksums")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
}

// setupLogging installs the process-wide structured logger
func setupLogging(cmd *cobra.Command) {
	level, _ := cmd.Flags().GetString("log-level")

	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slogLevel})
	slog.SetDefault(slog.New(handler))
}

// resolveConfig builds the effective configuration from the config file (if
// given) with command-line flags layered on top.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.DefaultConfig()
	}

	if walFile, _ := cmd.Flags().GetString("wal-file"); walFile != "" {
		cfg.Storage.Kind = string(storage.KindPersistent)
		cfg.Storage.WALFile = walFile
	}
	if persistent, _ := cmd.Flags().GetBool("persistent"); persistent {
		cfg.Storage.Kind = string(storage.KindPersistent)
	}
	if capacity, _ := cmd.Flags().GetInt("capacity"); capacity > 0 {
		cfg.Storage.Capacity = capacity
	}
	if noChecksums, _ := cmd.Flags().GetBool("no-checksums"); noChecksums {
		cfg.Storage.Checksums = false
	}

	return cfg, nil
}

// engineFromContext returns the storage engine opened by the root command
func engineFromContext(cmd *cobra.Command) storage.Engine {
	engine, _ := cmd.Context().Value(storeKey).(storage.Engine)
	return engine
}

// configFromContext returns the resolved configuration
func configFromContext(cmd *cobra.Command) *config.Config {
	cfg, _ := cmd.Context().Value(configKey).(*config.Config)
	return cfg
}
