package gallery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/JPM1118/pawshower/internal/source"
	"github.com/google/uuid"
)

// Store owns the state of one gallery. It is not safe for concurrent use:
// a single goroutine (the UI loop or a command loop) drives it.
type Store struct {
	src   source.Source
	state State

	blockAutoPlayOnError bool
	onAutoPlay           func(enabled bool)
	log                  *slog.Logger
	now                  func() time.Time
	newID                func() uuid.UUID
}

// Option configures a Store.
type Option func(*Store)

// WithBlockAutoPlayOnError sets whether CanStartAutoPlay refuses to start
// auto-play while an error is displayed.
func WithBlockAutoPlayOnError(block bool) Option {
	return func(s *Store) { s.blockAutoPlayOnError = block }
}

// WithAutoPlayObserver registers fn to be called with the auto-play flag
// after every auto-play transition request.
func WithAutoPlayObserver(fn func(enabled bool)) Option {
	return func(s *Store) { s.onAutoPlay = fn }
}

// WithLogger sets the logger used for fetch events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the time source used for FetchedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates an empty gallery backed by src.
func New(src source.Source, opts ...Option) *Store {
	s := &Store{
		src:                  src,
		blockAutoPlayOnError: true,
		log:                  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:                  time.Now,
		newID:                uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("source", src.Name())
	return s
}

// Source returns the adapter the store fetches from.
func (s *Store) Source() source.Source {
	return s.src
}

// State returns a copy of the current state.
func (s *Store) State() State {
	st := s.state
	st.Items = slices.Clone(s.state.Items)
	return st
}

// BeginFetch clears the error ahead of a fetch.
func (s *Store) BeginFetch() {
	s.state.Err = ""
}

// Apply folds the result of a fetch into the state. On success a new item
// is prepended and the list is truncated to MaxItems; on failure the error
// message is set and the items are left unchanged.
func (s *Store) Apply(url string, err error) {
	if err != nil {
		s.state.Err = Message(err)
		s.log.Warn("fetch failed", "kind", source.Kind(err), "error", err)
		return
	}

	it := Item{ID: s.newID(), URL: url, FetchedAt: s.now()}
	s.state.Items = prepend(s.state.Items, it)
	s.log.Debug("item added", "id", it.ID.String(), "url", url, "items", len(s.state.Items))
}

// FetchOne fetches one image and applies the result. The returned error is
// informational; it is already reflected in State().Err.
func (s *Store) FetchOne(ctx context.Context) error {
	s.BeginFetch()
	url, err := s.src.FetchImage(ctx)
	s.Apply(url, err)
	return err
}

// GetOne is the manual "get one" action: it sets Loading for the duration
// of the fetch and clears it on both success and failure.
func (s *Store) GetOne(ctx context.Context) error {
	s.SetLoading(true)
	defer s.SetLoading(false)
	return s.FetchOne(ctx)
}

// SetLoading sets the manual-fetch loading flag.
func (s *Store) SetLoading(loading bool) {
	s.state.Loading = loading
}

// Clear drops all items and the error. Auto-play is unaffected.
func (s *Store) Clear() {
	s.state.Items = nil
	s.state.Err = ""
}

// NeedsPrimingFetch reports whether turning auto-play on now requires one
// fetch first, so the gallery is never empty while auto-play runs.
func (s *Store) NeedsPrimingFetch() bool {
	return !s.state.AutoPlay && len(s.state.Items) == 0
}

// ToggleAutoPlay flips the auto-play flag. Turning it on with an empty
// gallery first awaits one FetchOne; the flag flips whatever its outcome.
func (s *Store) ToggleAutoPlay(ctx context.Context) {
	if s.NeedsPrimingFetch() {
		_ = s.FetchOne(ctx)
	}
	s.SetAutoPlay(!s.state.AutoPlay)
}

// SetAutoPlay sets the auto-play flag and notifies the observer.
func (s *Store) SetAutoPlay(enabled bool) {
	if s.state.AutoPlay != enabled {
		s.log.Info("auto-play changed", "enabled", enabled)
	}
	s.state.AutoPlay = enabled
	if s.onAutoPlay != nil {
		s.onAutoPlay(enabled)
	}
}

// CanStartAutoPlay reports whether the view may start auto-play. Stopping
// is always allowed. The store does not enforce this itself.
func (s *Store) CanStartAutoPlay() bool {
	if s.state.AutoPlay {
		return true
	}
	return !(s.blockAutoPlayOnError && s.state.Err != "")
}

// CanFetchManually reports whether the manual fetch control is enabled.
func (s *Store) CanFetchManually() bool {
	return !s.state.Loading && !s.state.AutoPlay
}

// Message converts an adapter error into the text shown to the user.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var httpErr *source.HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Sprintf("HTTP error! status: %d", httpErr.Status)
	}
	var malformed *source.MalformedResponseError
	if errors.As(err, &malformed) {
		return fmt.Sprintf("Invalid response from %s API", malformed.Source)
	}
	return fmt.Sprintf("Network error: %s", err.Error())
}
