package deps

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/auth"
	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/domain"
	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/live"
	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/logger"
)

// BookmarkStore is the persistence surface the handlers need.
type BookmarkStore interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Bookmark, error)
	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*domain.Bookmark, error)
	Create(ctx context.Context, b *domain.Bookmark) error
	Update(ctx context.Context, b *domain.Bookmark) error
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

// FeedPublisher broadcasts change events after successful writes.
type FeedPublisher interface {
	Publish(ctx context.Context, ownerID uuid.UUID, evt domain.ChangeEvent) error
}

// Seeder grants starter bookmarks to freshly registered accounts.
type Seeder interface {
	SeedFor(ctx context.Context, ownerID uuid.UUID)
}

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	TrustProxy        bool     // true if running behind a trusted reverse proxy
	AllowedOrigins    []string // CORS origins allowed to call the API
	LoginBurst        int      // login rate limit burst per IP
	LoginRefillPerMin int      // login rate limit refill per IP per minute

	Auth       *auth.Service
	Bookmarks  BookmarkStore
	Publisher  FeedPublisher
	Subscriber live.Subscriber
	Seeder     Seeder
}
