package consumers

import (
	"context"
	"log/slog"

	"railres/internal/config"
	"railres/internal/messaging"
	"railres/internal/models"

	"github.com/nats-io/stan.go"
)

const queueGroup = "notifier"

type NotifierService struct {
	nats     *messaging.NATSClient
	handlers *Handlers
	subs     []stan.Subscription
}

func NewNotifierService(cfg *config.Config) (*NotifierService, error) {
	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		return nil, err
	}

	return &NotifierService{
		nats:     natsClient,
		handlers: NewHandlers(slog.Default()),
	}, nil
}

// Start subscribes every handler to its subject in the notifier queue group.
func (ns *NotifierService) Start() error {
	slog.Info("Starting NATS consumers...")

	routes := []struct {
		subject string
		handler messaging.MessageHandler
	}{
		{models.EventBookingCreated, ns.handlers.HandleBookingCreated},
		{models.EventBookingCancelled, ns.handlers.HandleBookingCancelled},
		{models.EventTrainRemoved, ns.handlers.HandleTrainRemoved},
	}

	for _, r := range routes {
		sub, err := ns.nats.SubscribeQueue(r.subject, queueGroup, r.handler)
		if err != nil {
			return err
		}
		ns.subs = append(ns.subs, sub)
	}

	slog.Info("All consumers started successfully", "subscriptions", len(ns.subs))
	return nil
}

func (ns *NotifierService) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down notifier service...")

	for _, sub := range ns.subs {
		if err := sub.Close(); err != nil {
			slog.Error("Error closing subscription", "error", err)
		}
	}

	if ns.nats != nil {
		if err := ns.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
			return err
		}
	}

	return nil
}
