package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zephyrite-db/zephyrite/pkg/storage"
)

// compactCmd represents the compact command
var compactCmd = &cobra.Command{
	Use:   "compact",
	Short: "Compact the write-ahead log",
	Long: `Rewrite the write-ahead log so it holds exactly one put record per
live key. Requires a persistent store.

Example:
  zephyrite compact --wal-file=./data/zephyrite.wal`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		engine := engineFromContext(cmd)
		if engine == nil {
			fmt.Printf("Error: storage not found in context\n")
			return
		}

		ps, ok := engine.(*storage.PersistentStorage)
		if !ok {
			fmt.Printf("Error: compaction requires persistent storage (use --wal-file)\n")
			return
		}

		result, err := ps.Compact()
		if err != nil {
			fmt.Printf("Error compacting log: %v\n", err)
			return
		}

		fmt.Printf("Compacted %d entries down to %d\n", result.EntriesBefore, result.EntriesAfter)
	},
}

func init() {
	rootCmd.AddCommand(compactCmd)
}
