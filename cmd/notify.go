/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/webfolio/apiserver/config"
	"github.com/webfolio/apiserver/internal/notify"
	"github.com/webfolio/apiserver/types"
)

// notifyCmd runs the contact message consumer. It blocks until
// interrupted, logging each visitor message as it arrives.
var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Consume contact message notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()

		var broker notify.Broker
		var err error
		switch cfg.MQ.Backend {
		case "rabbitmq":
			broker, err = notify.NewRabbitMQBroker(cfg.MQ)
		case "pubsub":
			broker, err = notify.NewPubSubBroker(cmd.Context(), cfg.MQ)
		case "":
			return errors.New("MQ_BACKEND is required")
		default:
			return fmt.Errorf("unknown mq backend %q", cfg.MQ.Backend)
		}
		if err != nil {
			return err
		}

		notifier := notify.NewNotifier(broker)
		defer notifier.Close()

		log.Printf("listening for contact messages on %q", cfg.MQ.Topic)
		return notifier.Listen(cmd.Context(), func(ctx context.Context, msg types.ContactMessage) error {
			log.Printf("contact message %d from %s <%s>: %s", msg.ID, msg.Name, msg.Email, msg.Message)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(notifyCmd)
}
