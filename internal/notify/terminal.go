package notify

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Bell rings the terminal bell on fetch failures, with debounce.
type Bell struct {
	out      io.Writer
	enabled  bool
	debounce time.Duration
	lastRing time.Time
}

// NewBell creates a Bell writing to stderr. A disabled bell never rings.
func NewBell(enabled bool, debounce time.Duration) *Bell {
	return &Bell{
		out:      os.Stderr,
		enabled:  enabled,
		debounce: debounce,
	}
}

// SetOutput redirects the bell character.
func (b *Bell) SetOutput(w io.Writer) {
	b.out = w
}

// Ring attempts to ring the bell. Returns true if the bell actually rang.
func (b *Bell) Ring(now time.Time) bool {
	if !b.enabled {
		return false
	}
	if !b.lastRing.IsZero() && now.Sub(b.lastRing) < b.debounce {
		return false
	}

	fmt.Fprint(b.out, "\a")
	b.lastRing = now
	return true
}
