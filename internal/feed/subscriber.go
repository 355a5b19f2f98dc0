package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/domain"
	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/logger"
)

// ErrNoOwner is returned when a subscription is requested without an
// established identity.
var ErrNoOwner = errors.New("feed: subscribe requires an owner")

// Handler receives one validated change event at a time. The pump waits
// for the handler to return before delivering the next event, so
// handlers never run concurrently with themselves.
type Handler func(domain.ChangeEvent)

// Subscriber attaches handlers to per-owner feed channels.
type Subscriber struct {
	client *redis.Client
	logger logger.Logger
}

// NewSubscriber creates a feed subscriber on the given Redis client.
func NewSubscriber(client *redis.Client, log logger.Logger) *Subscriber {
	return &Subscriber{client: client, logger: log}
}

// Subscribe opens the owner's channel and starts a pump goroutine that
// decodes, validates, and hands each event to onEvent in delivery order.
// Payloads that fail boundary validation are dropped with a warning,
// never applied. The returned Subscription must be released with Close.
func (s *Subscriber) Subscribe(ctx context.Context, ownerID uuid.UUID, onEvent Handler) (*Subscription, error) {
	if ownerID == uuid.Nil {
		return nil, ErrNoOwner
	}

	pubsub := s.client.Subscribe(ctx, Channel(ownerID))

	// Wait for the subscription confirmation so no event published after
	// this point can be missed by the pump.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to feed: %w", err)
	}

	go s.pump(pubsub.Channel(), ownerID, onEvent)

	return NewSubscription(pubsub.Close), nil
}

// pump drains the channel until the subscription is closed. Each event
// is handled to completion before the next one is read.
func (s *Subscriber) pump(msgs <-chan *redis.Message, ownerID uuid.UUID, onEvent Handler) {
	for msg := range msgs {
		var evt domain.ChangeEvent
		if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
			s.logger.Warn("dropping undecodable feed payload",
				logger.String("owner_id", ownerID.String()),
				logger.Error(err))
			continue
		}

		if err := evt.Validate(); err != nil {
			s.logger.Warn("dropping malformed feed event",
				logger.String("owner_id", ownerID.String()),
				logger.Error(err))
			continue
		}

		onEvent(evt)
	}

	s.logger.Debug("feed pump stopped",
		logger.String("owner_id", ownerID.String()))
}
