package seed

import (
	"context"

	"github.com/google/uuid"

	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/domain"
	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/logger"
)

// Creator is the slice of the bookmark repository the seeder writes
// through.
type Creator interface {
	Create(ctx context.Context, b *domain.Bookmark) error
}

// Seeder grants the starter bookmarks to newly registered accounts.
// A fresh account has no open views yet, so these inserts go straight
// to the store without feed events.
type Seeder struct {
	loader  *Loader
	mapper  *Mapper
	creator Creator
	logger  logger.Logger
}

// NewSeeder creates a seeder reading from the given file.
func NewSeeder(seedFile string, creator Creator, log logger.Logger) *Seeder {
	return &Seeder{
		loader:  NewLoader(seedFile),
		mapper:  NewMapper(),
		creator: creator,
		logger:  log,
	}
}

// NopSeeder is used when no seed file is configured.
type NopSeeder struct{}

func NewNopSeeder() *NopSeeder { return &NopSeeder{} }

func (*NopSeeder) SeedFor(context.Context, uuid.UUID) {}

// SeedFor inserts the starter bookmarks for one account. Failures are
// logged and skipped; a missing or broken seed file must never fail a
// registration.
func (s *Seeder) SeedFor(ctx context.Context, ownerID uuid.UUID) {
	config, err := s.loader.Load()
	if err != nil {
		s.logger.Warn("failed to load seed file",
			logger.Error(err))
		return
	}

	inputs, err := s.mapper.MapInputs(config)
	if err != nil {
		s.logger.Warn("failed to map seed file",
			logger.Error(err))
		return
	}

	created := 0
	for _, in := range inputs {
		b := &domain.Bookmark{
			OwnerID:  ownerID,
			Title:    in.Title,
			Location: in.Location,
		}
		if err := s.creator.Create(ctx, b); err != nil {
			s.logger.Warn("failed to create starter bookmark",
				logger.String("location", in.Location),
				logger.Error(err))
			continue
		}
		created++
	}

	s.logger.Info("starter bookmarks granted",
		logger.String("owner_id", ownerID.String()),
		logger.Int("count", created))
}
