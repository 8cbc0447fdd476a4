package cmd

import (
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/cobra"

	"github.com/medanat/reviewboard/internal/domain"
)

var (
	addOwnerKind string
	addOwnerID   string
)

var addCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Register a webhook target URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := args[0]
		if url == "" {
			return fmt.Errorf("url must not be empty")
		}

		// Owner defaults to the configured current owner, matching how
		// records are stamped on first save.
		owner := domain.OwnerRef{Kind: addOwnerKind, ID: addOwnerID}
		if owner.IsZero() {
			owner = cfg.Owner
		}
		if owner.Kind == "" || owner.ID == "" {
			return fmt.Errorf("owner kind and id must both be set")
		}

		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("generate webhook id: %w", err)
		}

		ctx, cancel := newCommandContext()
		defer cancel()

		webhooks, closeStore, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		webhook := &domain.Webhook{
			ID:        id,
			Owner:     owner,
			URL:       url,
			CreatedAt: time.Now().UTC(),
		}
		if err := webhooks.Create(ctx, webhook); err != nil {
			return err
		}

		fmt.Println(webhook.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addOwnerKind, "owner-kind", "", "owner kind (defaults to configured owner)")
	addCmd.Flags().StringVar(&addOwnerID, "owner-id", "", "owner id (defaults to configured owner)")
}
