package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zephyrite-db/zephyrite/pkg/storage"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show storage statistics",
	Long: `Show key count, memory usage, and operation counters. With a
persistent store the WAL path and current sequence number are included.

Example:
  zephyrite stats --wal-file=./data/zephyrite.wal`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		engine := engineFromContext(cmd)
		if engine == nil {
			fmt.Printf("Error: storage not found in context\n")
			return
		}

		stats, err := engine.Stats()
		if err != nil {
			fmt.Printf("Error getting stats: %v\n", err)
			return
		}

		fmt.Printf("Keys:          %d\n", stats.KeyCount)
		fmt.Printf("Memory usage:  %d bytes\n", stats.MemoryUsage)
		fmt.Printf("Get ops:       %d\n", stats.GetOps)
		fmt.Printf("Put ops:       %d\n", stats.PutOps)
		fmt.Printf("Delete ops:    %d\n", stats.DeleteOps)

		if ps, ok := engine.(*storage.PersistentStorage); ok {
			detailed, err := ps.DetailedStats()
			if err != nil {
				fmt.Printf("Error getting WAL stats: %v\n", err)
				return
			}
			fmt.Printf("WAL path:      %s\n", detailed.WALPath)
			fmt.Printf("WAL sequence:  %d\n", detailed.WALSequenceNumber)
		}
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
