package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/medanat/reviewboard/internal/config"
	"github.com/medanat/reviewboard/internal/store/postgres"
)

var (
	cfgPath string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "webhookctl",
	Short: "Admin CLI for webhook registrations",
	Long: `webhookctl manages the webhook registrations webhookd delivers to.

Register, list and remove target URLs per owner, and publish test events.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file")
}

// newCommandContext bounds one CLI operation.
func newCommandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func openStore(ctx context.Context) (*postgres.WebhookStore, func(), error) {
	if cfg.DatabaseURL == "" {
		return nil, nil, fmt.Errorf("database_url is required (config file or WEBHOOKD_DATABASE_URL)")
	}

	db, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return postgres.NewWebhookStore(db), db.Close, nil
}
