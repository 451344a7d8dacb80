package gallery

import (
	"time"

	"github.com/google/uuid"
)

// MaxItems is the maximum number of items a gallery holds.
const MaxItems = 12

// Item is one fetched image. Items are never mutated after creation.
type Item struct {
	ID        uuid.UUID
	URL       string
	FetchedAt time.Time
}

// State is a snapshot of a gallery.
type State struct {
	Items    []Item // most recent first
	Loading  bool   // true only during a manual fetch
	AutoPlay bool
	Err      string // user-facing error text, empty when none
}

// Empty reports whether the gallery holds no items.
func (s State) Empty() bool {
	return len(s.Items) == 0
}

// HasError reports whether an error is being displayed.
func (s State) HasError() bool {
	return s.Err != ""
}

// prepend returns items with it at the front, truncated to MaxItems.
func prepend(items []Item, it Item) []Item {
	n := len(items) + 1
	if n > MaxItems {
		n = MaxItems
	}
	out := make([]Item, n)
	out[0] = it
	copy(out[1:], items)
	return out
}
