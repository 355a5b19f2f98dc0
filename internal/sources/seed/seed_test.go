package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/domain"
	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/logger"
)

func testLogger(t *testing.T) logger.Logger {
	t.Helper()
	return logger.New("error", false)
}

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoaderLoad(t *testing.T) {
	path := writeSeedFile(t, `
- title: Example
  location: https://example.com
- location: https://go.dev
`)

	config, err := NewLoader(path).Load()
	require.NoError(t, err)
	require.Len(t, config, 2)
	assert.Equal(t, "Example", config[0].Title)
	assert.Equal(t, "https://go.dev", config[1].Location)
}

func TestLoaderLoadMissingFile(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "absent.yaml")).Load()
	assert.Error(t, err)
}

func TestLoaderLoadBadYAML(t *testing.T) {
	path := writeSeedFile(t, "title: [unclosed")
	_, err := NewLoader(path).Load()
	assert.Error(t, err)
}

func TestMapperMapInputs(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		want    []domain.BookmarkInput
		wantErr bool
	}{
		{
			name: "valid entries pass through",
			config: Config{
				{Title: "Example", Location: "https://example.com"},
				{Title: "Go", Location: "https://go.dev"},
			},
			want: []domain.BookmarkInput{
				{Title: "Example", Location: "https://example.com"},
				{Title: "Go", Location: "https://go.dev"},
			},
		},
		{
			name: "missing title falls back to location",
			config: Config{
				{Location: "https://example.com"},
			},
			want: []domain.BookmarkInput{
				{Title: "https://example.com", Location: "https://example.com"},
			},
		},
		{
			name: "invalid entries are skipped",
			config: Config{
				{Title: "no location"},
				{Title: "not a url", Location: "definitely not"},
				{Title: "Good", Location: "https://example.com"},
			},
			want: []domain.BookmarkInput{
				{Title: "Good", Location: "https://example.com"},
			},
		},
		{
			name: "duplicate locations are collapsed",
			config: Config{
				{Title: "First", Location: "https://example.com"},
				{Title: "Second", Location: "https://example.com"},
			},
			want: []domain.BookmarkInput{
				{Title: "First", Location: "https://example.com"},
			},
		},
		{
			name:    "empty config is an error",
			config:  Config{},
			wantErr: true,
		},
		{
			name: "all entries invalid is an error",
			config: Config{
				{Title: "nope"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewMapper().MapInputs(tt.config)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type memCreator struct {
	created []domain.Bookmark
	failOn  string
}

func (c *memCreator) Create(_ context.Context, b *domain.Bookmark) error {
	if c.failOn != "" && b.Location == c.failOn {
		return assert.AnError
	}
	c.created = append(c.created, *b)
	return nil
}

func TestSeederSeedFor(t *testing.T) {
	path := writeSeedFile(t, `
- title: Example
  location: https://example.com
- location: https://go.dev
`)
	creator := &memCreator{}
	owner := uuid.New()

	NewSeeder(path, creator, testLogger(t)).SeedFor(context.Background(), owner)

	require.Len(t, creator.created, 2)
	for _, b := range creator.created {
		assert.Equal(t, owner, b.OwnerID)
	}
	assert.Equal(t, "Example", creator.created[0].Title)
	assert.Equal(t, "https://go.dev", creator.created[1].Title)
}

func TestSeederSeedForMissingFileIsBestEffort(t *testing.T) {
	creator := &memCreator{}

	NewSeeder(filepath.Join(t.TempDir(), "absent.yaml"), creator, testLogger(t)).
		SeedFor(context.Background(), uuid.New())

	assert.Empty(t, creator.created)
}

func TestSeederSeedForSkipsFailedCreates(t *testing.T) {
	path := writeSeedFile(t, `
- title: Example
  location: https://example.com
- title: Go
  location: https://go.dev
`)
	creator := &memCreator{failOn: "https://example.com"}

	NewSeeder(path, creator, testLogger(t)).SeedFor(context.Background(), uuid.New())

	require.Len(t, creator.created, 1)
	assert.Equal(t, "https://go.dev", creator.created[0].Location)
}
