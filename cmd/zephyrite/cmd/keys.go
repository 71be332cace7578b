package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// keysCmd represents the keys command
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List all keys",
	Long: `List every key in the Zephyrite store, sorted ascending.

Example:
  zephyrite keys --wal-file=./data/zephyrite.wal`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		engine := engineFromContext(cmd)
		if engine == nil {
			fmt.Printf("Error: storage not found in context\n")
			return
		}

		keys, err := engine.Keys()
		if err != nil {
			fmt.Printf("Error listing keys: %v\n", err)
			return
		}

		sort.Strings(keys)
		for _, key := range keys {
			fmt.Println(key)
		}
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
}
