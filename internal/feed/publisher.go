package feed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/domain"
)

// Publisher pushes change events onto an owner's feed channel.
type Publisher struct {
	client *redis.Client
}

// NewPublisher creates a feed publisher on the given Redis client.
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// Publish serializes the event and delivers it to every live subscriber
// of the owner's channel. The feed offers no replay: a publish that is
// lost is simply never seen.
func (p *Publisher) Publish(ctx context.Context, ownerID uuid.UUID, evt domain.ChangeEvent) error {
	if err := evt.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal change event: %w", err)
	}

	if err := p.client.Publish(ctx, Channel(ownerID), data).Err(); err != nil {
		return fmt.Errorf("failed to publish change event: %w", err)
	}

	return nil
}
