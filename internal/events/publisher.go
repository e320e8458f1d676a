package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/albumvault/fetchd/internal/adapter"
	"github.com/albumvault/fetchd/internal/config"
	"github.com/albumvault/fetchd/internal/logger"
)

// FetchCompleted is published after a fetch has been recorded in the
// ledger. Consumers use it to notify the original requester.
type FetchCompleted struct {
	RequestID   string    `json:"request_id"`
	ItemID      string    `json:"item_id"`
	RequesterID string    `json:"requester_id"`
	FilePath    string    `json:"file_path"`
	Cached      bool      `json:"cached"`
	CompletedAt time.Time `json:"completed_at"`
}

// Publisher emits fetch lifecycle events
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishFetchCompleted publishes a completed-fetch event
	PublishFetchCompleted(ctx context.Context, event *FetchCompleted) error

	// Close closes the underlying connection
	Close()
}

type publisher struct {
	nc adapter.NatsConn
	js adapter.JetStream
}

// NewPublisher creates a NATS JetStream publisher for fetch events
func NewPublisher(cfg config.NATSConfig, natsJS adapter.NatsJetStream) (Publisher, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	return &publisher{nc: nc, js: js}, nil
}

// PublishFetchCompleted publishes a completed-fetch event on the
// fetches.completed subject
func (p *publisher) PublishFetchCompleted(ctx context.Context, event *FetchCompleted) error {
	logger.DebugCtx(ctx, "Publishing fetch event", zap.Any("event", event))

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := p.js.Publish(ctx, "fetches.completed", data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Close closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	p.nc.Close()
}
