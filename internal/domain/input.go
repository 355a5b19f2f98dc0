package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// BookmarkInput is the user-supplied part of a bookmark, validated before
// any write reaches the store.
type BookmarkInput struct {
	Title    string `json:"title" validate:"required,max=200"`
	Location string `json:"location" validate:"required,url,max=2048"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateInput checks a BookmarkInput against its field rules.
func ValidateInput(in BookmarkInput) error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("invalid bookmark: %w", err)
	}
	return nil
}
