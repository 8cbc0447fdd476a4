package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a webhook registration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := newCommandContext()
		defer cancel()

		webhooks, closeStore, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		if err := webhooks.Delete(ctx, args[0]); err != nil {
			return err
		}

		fmt.Println("removed", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
