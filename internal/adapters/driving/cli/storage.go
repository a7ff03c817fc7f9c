package cli

import (
	"github.com/spf13/cobra"
)

var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "List storage backends",
	Long:  `List the storage types that input, output and cache settings may name.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, t := range newApp().storages.Types() {
			cmd.Println(t)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(storageCmd)
}
