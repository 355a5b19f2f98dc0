// Package store holds errors shared by all persistence backends.
package store

import "errors"

// ErrNotFound is returned when a row does not exist — or exists but
// belongs to another owner. The two cases are deliberately
// indistinguishable so ownership is never leaked through errors.
var ErrNotFound = errors.New("not found")
