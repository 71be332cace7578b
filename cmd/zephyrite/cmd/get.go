package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a value for a key",
	Long: `Get a value for a key from the Zephyrite store.

Example:
  zephyrite get mykey --wal-file=./data/zephyrite.wal`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine := engineFromContext(cmd)
		if engine == nil {
			fmt.Printf("Error: storage not found in context\n")
			return
		}

		value, err := engine.Get(args[0])
		if err != nil {
			fmt.Printf("Error getting value: %v\n", err)
			return
		}

		fmt.Printf("%s\n", value.Value)
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
