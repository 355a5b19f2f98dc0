package seed

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/domain"
)

// Mapper converts seed file entries into validated bookmark inputs.
type Mapper struct{}

// NewMapper creates a seed mapper.
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapInputs filters the config down to valid, unique bookmark inputs.
// Entries that fail validation are skipped, not fatal: one bad line in
// an operator-maintained file should not block registration.
func (m *Mapper) MapInputs(config Config) ([]domain.BookmarkInput, error) {
	inputs := lo.FilterMap(config, func(e Entry, _ int) (domain.BookmarkInput, bool) {
		if e.Location == "" {
			return domain.BookmarkInput{}, false
		}

		// Fall back to the URL when no title is given.
		title := e.Title
		if title == "" {
			title = e.Location
		}

		in := domain.BookmarkInput{Title: title, Location: e.Location}
		if err := domain.ValidateInput(in); err != nil {
			return domain.BookmarkInput{}, false
		}
		return in, true
	})

	inputs = lo.UniqBy(inputs, func(in domain.BookmarkInput) string { return in.Location })

	if len(inputs) == 0 {
		return nil, fmt.Errorf("no valid bookmarks found in seed file")
	}

	return inputs, nil
}
