package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete a key",
	Long: `Delete a key from the Zephyrite store.

Example:
  zephyrite delete mykey --wal-file=./data/zephyrite.wal`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine := engineFromContext(cmd)
		if engine == nil {
			fmt.Printf("Error: storage not found in context\n")
			return
		}

		existed, err := engine.Delete(args[0])
		if err != nil {
			fmt.Printf("Error deleting key: %v\n", err)
			return
		}

		if existed {
			fmt.Printf("Deleted %s\n", args[0])
		} else {
			fmt.Printf("Key %s not found\n", args[0])
		}
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
