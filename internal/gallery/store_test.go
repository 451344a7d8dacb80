package gallery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/JPM1118/pawshower/internal/source"
	"github.com/JPM1118/pawshower/internal/testutil"
)

func TestFetchOne_Success(t *testing.T) {
	src := &testutil.MockSource{URL: "https://x/1.jpg"}
	s := New(src)

	if err := s.FetchOne(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	st := s.State()
	if len(st.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(st.Items))
	}
	if st.Items[0].URL != "https://x/1.jpg" {
		t.Errorf("Items[0].URL = %q, want https://x/1.jpg", st.Items[0].URL)
	}
	if st.Err != "" {
		t.Errorf("Err = %q, want none", st.Err)
	}
}

func TestFetchOne_StampsFetchedAt(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	src := &testutil.MockSource{URL: "https://x/1.jpg"}
	s := New(src, WithClock(func() time.Time { return at }))

	if err := s.FetchOne(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.State().Items[0].FetchedAt; !got.Equal(at) {
		t.Errorf("FetchedAt = %v, want %v", got, at)
	}
}

func TestFetchOne_HTTPError(t *testing.T) {
	src := &testutil.MockSource{Script: []testutil.Result{
		{URL: "https://x/1.jpg"},
		{Err: &source.HTTPError{Status: 500}},
	}}
	s := New(src)
	ctx := context.Background()

	_ = s.FetchOne(ctx)
	before := s.State().Items

	if err := s.FetchOne(ctx); err == nil {
		t.Fatal("expected error")
	}

	st := s.State()
	if !strings.Contains(st.Err, "500") {
		t.Errorf("Err = %q, should mention 500", st.Err)
	}
	if len(st.Items) != 1 || st.Items[0] != before[0] {
		t.Errorf("items changed on failure: %v", st.Items)
	}
}

func TestFetchOne_ClearsPreviousError(t *testing.T) {
	src := &testutil.MockSource{Script: []testutil.Result{
		{Err: &source.NetworkError{Err: errors.New("dial tcp: no such host")}},
		{URL: "https://x/2.jpg"},
	}}
	s := New(src)
	ctx := context.Background()

	_ = s.FetchOne(ctx)
	if !s.State().HasError() {
		t.Fatal("expected error after failed fetch")
	}

	_ = s.FetchOne(ctx)
	if s.State().HasError() {
		t.Errorf("Err = %q, want cleared after success", s.State().Err)
	}
}

func TestFetchOne_BoundedMostRecentFirst(t *testing.T) {
	src := &testutil.MockSource{}
	for i := 1; i <= 13; i++ {
		src.Script = append(src.Script, testutil.Result{URL: fmt.Sprintf("https://x/%d.jpg", i)})
	}
	s := New(src)

	for i := 1; i <= 13; i++ {
		_ = s.FetchOne(context.Background())
		if n := len(s.State().Items); n > MaxItems {
			t.Fatalf("after %d fetches: len(Items) = %d, exceeds %d", i, n, MaxItems)
		}
	}

	items := s.State().Items
	if len(items) != MaxItems {
		t.Fatalf("len(Items) = %d, want %d", len(items), MaxItems)
	}
	for i, it := range items {
		want := fmt.Sprintf("https://x/%d.jpg", 13-i)
		if it.URL != want {
			t.Errorf("Items[%d].URL = %q, want %q", i, it.URL, want)
		}
	}
}

func TestFetchOne_NoDeduplication(t *testing.T) {
	src := &testutil.MockSource{URL: "https://x/same.jpg"}
	s := New(src)

	_ = s.FetchOne(context.Background())
	_ = s.FetchOne(context.Background())

	items := s.State().Items
	if len(items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(items))
	}
	if items[0].ID == items[1].ID {
		t.Error("items should have distinct IDs")
	}
}

func TestClear(t *testing.T) {
	src := &testutil.MockSource{Script: []testutil.Result{
		{URL: "https://x/1.jpg"},
		{Err: &source.HTTPError{Status: 404}},
	}}
	s := New(src)
	ctx := context.Background()
	_ = s.FetchOne(ctx)
	_ = s.FetchOne(ctx)
	s.SetAutoPlay(true)

	s.Clear()

	st := s.State()
	if len(st.Items) != 0 {
		t.Errorf("len(Items) = %d, want 0", len(st.Items))
	}
	if st.Err != "" {
		t.Errorf("Err = %q, want none", st.Err)
	}
	if !st.AutoPlay {
		t.Error("Clear should not affect AutoPlay")
	}
}

func TestToggleAutoPlay_EmptyGalleryPrimes(t *testing.T) {
	src := &testutil.MockSource{URL: "https://x/1.jpg"}
	var observed []bool
	var callsAtFlip int
	s := New(src, WithAutoPlayObserver(func(enabled bool) {
		observed = append(observed, enabled)
		callsAtFlip = src.GetCalls()
	}))

	s.ToggleAutoPlay(context.Background())

	if got := src.GetCalls(); got != 1 {
		t.Errorf("fetch calls = %d, want 1", got)
	}
	if callsAtFlip != 1 {
		t.Errorf("fetch calls when flag flipped = %d, want 1 (fetch first)", callsAtFlip)
	}
	if !s.State().AutoPlay {
		t.Error("AutoPlay should be true")
	}
	if len(observed) != 1 || !observed[0] {
		t.Errorf("observer calls = %v, want [true]", observed)
	}
}

func TestToggleAutoPlay_PrimingFailureStillEnables(t *testing.T) {
	src := &testutil.MockSource{Err: &source.HTTPError{Status: 502}}
	s := New(src)

	s.ToggleAutoPlay(context.Background())

	st := s.State()
	if !st.AutoPlay {
		t.Error("AutoPlay should flip even if the priming fetch failed")
	}
	if !st.HasError() {
		t.Error("priming failure should surface as an error")
	}
}

func TestToggleAutoPlay_NonEmptyDoesNotFetch(t *testing.T) {
	src := &testutil.MockSource{URL: "https://x/1.jpg"}
	s := New(src)
	_ = s.FetchOne(context.Background())

	s.ToggleAutoPlay(context.Background())
	if got := src.GetCalls(); got != 1 {
		t.Errorf("fetch calls = %d, want 1 (no priming fetch)", got)
	}

	s.ToggleAutoPlay(context.Background())
	if got := src.GetCalls(); got != 1 {
		t.Errorf("turning off fetched: calls = %d, want 1", got)
	}
	if s.State().AutoPlay {
		t.Error("AutoPlay should be false after second toggle")
	}
}

type observingSource struct {
	*testutil.MockSource
	store      *Store
	sawLoading bool
}

func (o *observingSource) FetchImage(ctx context.Context) (string, error) {
	o.sawLoading = o.store.State().Loading
	return o.MockSource.FetchImage(ctx)
}

func TestGetOne_LoadingClearedOnBothPaths(t *testing.T) {
	tests := []struct {
		name string
		res  testutil.Result
	}{
		{"success", testutil.Result{URL: "https://x/1.jpg"}},
		{"failure", testutil.Result{Err: &source.MalformedResponseError{Source: "Cat"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &observingSource{MockSource: &testutil.MockSource{Script: []testutil.Result{tt.res}}}
			s := New(src)
			src.store = s

			_ = s.GetOne(context.Background())

			if !src.sawLoading {
				t.Error("Loading should be true while the fetch is in flight")
			}
			if s.State().Loading {
				t.Error("Loading should be false after GetOne")
			}
		})
	}
}

func TestCanStartAutoPlay_Policy(t *testing.T) {
	tests := []struct {
		name    string
		block   bool
		withErr bool
		on      bool
		want    bool
	}{
		{"no error", true, false, false, true},
		{"error blocks start", true, true, false, false},
		{"error with policy off", false, true, false, true},
		{"stop always allowed", true, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &testutil.MockSource{URL: "https://x/1.jpg"}
			if tt.withErr {
				src.Err = &source.HTTPError{Status: 500}
				src.URL = ""
			}
			s := New(src, WithBlockAutoPlayOnError(tt.block))
			_ = s.FetchOne(context.Background())
			if tt.on {
				s.SetAutoPlay(true)
			}

			if got := s.CanStartAutoPlay(); got != tt.want {
				t.Errorf("CanStartAutoPlay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanFetchManually(t *testing.T) {
	s := New(&testutil.MockSource{})
	if !s.CanFetchManually() {
		t.Error("idle store should allow manual fetch")
	}
	s.SetLoading(true)
	if s.CanFetchManually() {
		t.Error("manual fetch should be disabled while loading")
	}
	s.SetLoading(false)
	s.SetAutoPlay(true)
	if s.CanFetchManually() {
		t.Error("manual fetch should be disabled while auto-playing")
	}
}

func TestApply_CompletionOrder(t *testing.T) {
	s := New(&testutil.MockSource{})

	// Two requests issued, the second completes first.
	s.BeginFetch()
	s.BeginFetch()
	s.Apply("https://x/second.jpg", nil)
	s.Apply("https://x/first.jpg", nil)

	items := s.State().Items
	if items[0].URL != "https://x/first.jpg" {
		t.Errorf("Items[0] = %q, want the last result applied", items[0].URL)
	}
}

func TestState_IsSnapshot(t *testing.T) {
	s := New(&testutil.MockSource{URL: "https://x/1.jpg"})
	_ = s.FetchOne(context.Background())

	st := s.State()
	st.Items[0].URL = "mutated"

	if s.State().Items[0].URL != "https://x/1.jpg" {
		t.Error("mutating a snapshot should not affect the store")
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{&source.HTTPError{Status: 500}, "HTTP error! status: 500"},
		{&source.MalformedResponseError{Source: "Dog", Detail: "x"}, "Invalid response from Dog API"},
		{&source.NetworkError{Err: errors.New("connection refused")}, "Network error: connection refused"},
	}

	for _, tt := range tests {
		if got := Message(tt.err); got != tt.want {
			t.Errorf("Message(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
