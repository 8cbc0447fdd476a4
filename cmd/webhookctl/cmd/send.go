package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/medanat/reviewboard/internal/broker"
	natsbroker "github.com/medanat/reviewboard/internal/broker/nats"
	"github.com/medanat/reviewboard/internal/events"
)

var (
	sendEventType    string
	sendSender       string
	sendInstancePath string
	sendRawInstance  string
	sendUser         string
	sendChangeDesc   string
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Publish a domain event for webhookd to deliver",
	RunE: func(cmd *cobra.Command, args []string) error {
		if sendInstancePath == "" && sendRawInstance == "" {
			return fmt.Errorf("must provide either --instance or --raw")
		}
		if sendInstancePath != "" && sendRawInstance != "" {
			return fmt.Errorf("cannot provide both --instance and --raw")
		}

		var instance []byte
		var err error
		if sendInstancePath != "" {
			instance, err = os.ReadFile(sendInstancePath)
			if err != nil {
				return fmt.Errorf("read instance file: %w", err)
			}
		} else {
			instance = []byte(sendRawInstance)
		}
		if !json.Valid(instance) {
			return fmt.Errorf("instance must be valid JSON")
		}

		msg := natsbroker.Message{
			EventType: sendEventType,
			Sender:    sendSender,
			Instance:  instance,
		}
		if sendUser != "" {
			msg.User, err = json.Marshal(sendUser)
			if err != nil {
				return fmt.Errorf("encode user: %w", err)
			}
		}
		if sendChangeDesc != "" {
			msg.ChangeDesc, err = json.Marshal(sendChangeDesc)
			if err != nil {
				return fmt.Errorf("encode changedesc: %w", err)
			}
		}

		data, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("encode message: %w", err)
		}

		ctx, cancel := newCommandContext()
		defer cancel()

		var publisher broker.Publisher
		publisher, err = natsbroker.NewPublisher(cfg.NATSURL, cfg.Subject)
		if err != nil {
			return err
		}
		defer publisher.Close()

		if err := publisher.Publish(ctx, data); err != nil {
			return err
		}

		fmt.Printf("published %s event to %s\n", msg.EventType, cfg.Subject)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().StringVar(&sendEventType, "event-type", events.PostPublish, "event kind to publish")
	sendCmd.Flags().StringVar(&sendSender, "sender", "reviews.reviewrequest", "sender type descriptor")
	sendCmd.Flags().StringVar(&sendInstancePath, "instance", "", "path to JSON instance file")
	sendCmd.Flags().StringVar(&sendRawInstance, "raw", "", "raw JSON instance string")
	sendCmd.Flags().StringVar(&sendUser, "user", "", "acting user")
	sendCmd.Flags().StringVar(&sendChangeDesc, "changedesc", "", "change description")
}
