package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/medanat/reviewboard/internal/domain"
)

var (
	listOwnerKind string
	listOwnerID   string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List webhook registrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := newCommandContext()
		defer cancel()

		webhooks, closeStore, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		var records []domain.Webhook
		if listOwnerKind != "" || listOwnerID != "" {
			owner := domain.OwnerRef{Kind: listOwnerKind, ID: listOwnerID}
			records, err = webhooks.FindByOwner(ctx, owner)
		} else {
			records, err = webhooks.List(ctx)
		}
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tOWNER\tURL\tCREATED")
		for _, record := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				record.ID,
				record.Owner,
				record.URL,
				record.CreatedAt.Format("2006-01-02 15:04:05"),
			)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listOwnerKind, "owner-kind", "", "filter by owner kind")
	listCmd.Flags().StringVar(&listOwnerID, "owner-id", "", "filter by owner id")
}
