package notify

import (
	"fmt"
	"time"
)

// Event is a single gallery event shown in the event bar.
type Event struct {
	Source    string
	Message   string
	Failed    bool
	Timestamp time.Time
}

// Bar manages a FIFO queue of gallery events.
type Bar struct {
	items    []Event
	maxStore int
}

// NewBar creates an event bar with the given buffer size.
func NewBar(maxStore int) *Bar {
	if maxStore < 1 {
		maxStore = 1
	}
	return &Bar{
		items:    make([]Event, 0, maxStore),
		maxStore: maxStore,
	}
}

// Push adds an event, trimming oldest if at capacity.
func (b *Bar) Push(e Event) {
	b.items = append(b.items, e)
	if len(b.items) > b.maxStore {
		b.items = b.items[len(b.items)-b.maxStore:]
	}
}

// Visible returns the most recent events (max 2).
func (b *Bar) Visible() []Event {
	if len(b.items) <= 2 {
		return b.items
	}
	return b.items[len(b.items)-2:]
}

// ClearForSource removes all events for the given source.
func (b *Bar) ClearForSource(name string) {
	filtered := b.items[:0]
	for _, e := range b.items {
		if e.Source != name {
			filtered = append(filtered, e)
		}
	}
	b.items = filtered
}

// Len returns the total number of buffered events.
func (b *Bar) Len() int {
	return len(b.items)
}

// Render formats the visible events for display within the given width.
func (b *Bar) Render(width int, now time.Time) string {
	visible := b.Visible()
	if len(visible) == 0 {
		return ""
	}

	result := ""
	for i, e := range visible {
		if i > 0 {
			result += " │ "
		}
		result += formatEvent(e, now)
	}

	runes := []rune(result)
	if len(runes) > width {
		if width > 1 {
			result = string(runes[:width-1]) + "…"
		} else if width > 0 {
			result = string(runes[:width])
		} else {
			result = ""
		}
	}

	return result
}

func formatEvent(e Event, now time.Time) string {
	age := now.Sub(e.Timestamp).Truncate(time.Second)
	var ageStr string
	if age < time.Minute {
		ageStr = fmt.Sprintf("%ds ago", int(age.Seconds()))
	} else if age < time.Hour {
		ageStr = fmt.Sprintf("%dm ago", int(age.Minutes()))
	} else {
		ageStr = fmt.Sprintf("%dh ago", int(age.Hours()))
	}

	mark := "●"
	if e.Failed {
		mark = "✗"
	}
	return fmt.Sprintf("%s %s: %s (%s)", mark, e.Source, e.Message, ageStr)
}
