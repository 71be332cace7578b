package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// putCmd represents the put command
var putCmd = &cobra.Command{
	Use:   "put <key> <value>",
	Short: "Store a value for a key",
	Long: `Store a value for a key in the Zephyrite store.

Example:
  zephyrite put mykey myvalue --wal-file=./data/zephyrite.wal`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		engine := engineFromContext(cmd)
		if engine == nil {
			fmt.Printf("Error: storage not found in context\n")
			return
		}

		created, err := engine.Put(args[0], args[1])
		if err != nil {
			fmt.Printf("Error storing value: %v\n", err)
			return
		}

		if created {
			fmt.Printf("Created %s\n", args[0])
		} else {
			fmt.Printf("Updated %s\n", args[0])
		}
	},
}

func init() {
	rootCmd.AddCommand(putCmd)
}
