package messaging

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/stan.go"
)

// Publisher publishes domain events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	Publish(subject string, data interface{}) error
}

var errNotConnected = errors.New("nats streaming connection is not established")

type NATSClient struct {
	conn stan.Conn
}

type Config struct {
	Enabled   bool
	URL       string
	ClusterID string
	ClientID  string
}

func NewNATSClient(cfg Config) (*NATSClient, error) {
	// Unique client ID so several replicas can connect to the same cluster
	uniqueClientID := fmt.Sprintf("%s-%s", cfg.ClientID, uuid.New().String()[:8])

	conn, err := stan.Connect(cfg.ClusterID, uniqueClientID, stan.NatsURL(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS Streaming: %w", err)
	}

	slog.Info("Connected to NATS Streaming",
		"url", cfg.URL, "cluster", cfg.ClusterID, "client", uniqueClientID)

	return &NATSClient{conn: conn}, nil
}

func (nc *NATSClient) Publish(subject string, data interface{}) error {
	if nc.conn == nil {
		return errNotConnected
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	if err := nc.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("failed to publish to subject %s: %w", subject, err)
	}

	slog.Debug("Published message", "subject", subject)
	return nil
}

// MessageHandler processes a raw message payload. A nil error acknowledges
// the message; otherwise it is left for redelivery.
type MessageHandler func(data []byte) error

func (nc *NATSClient) SubscribeQueue(subject, queue string, handler MessageHandler) (stan.Subscription, error) {
	if nc.conn == nil {
		return nil, errNotConnected
	}

	cb := func(m *stan.Msg) {
		if err := handler(m.Data); err != nil {
			slog.Error("Failed to handle message", "subject", subject, "sequence", m.Sequence, "error", err)
			return
		}
		if err := m.Ack(); err != nil {
			slog.Error("Failed to ack message", "subject", subject, "sequence", m.Sequence, "error", err)
		}
	}

	sub, err := nc.conn.QueueSubscribe(subject, queue, cb,
		stan.DurableName(subject+"-"+queue+"-durable"),
		stan.SetManualAckMode(),
		stan.AckWait(30*time.Second),
		stan.MaxInflight(1))
	if err != nil {
		return nil, fmt.Errorf("failed to queue subscribe to subject %s: %w", subject, err)
	}

	slog.Info("Subscribed to subject", "subject", subject, "queue", queue)
	return sub, nil
}

func (nc *NATSClient) Close() error {
	if nc.conn != nil {
		return nc.conn.Close()
	}
	return nil
}

// NopPublisher drops every event. Used when NATS is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(subject string, data interface{}) error {
	slog.Debug("Event publishing disabled, dropping message", "subject", subject)
	return nil
}
