package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveGallery(t *testing.T) {
	c := New()
	c.ObserveGallery("dog", 7, true)

	if got := testutil.ToFloat64(c.GalleryItems.WithLabelValues("dog")); got != 7 {
		t.Errorf("gallery_items = %v, want 7", got)
	}
	if got := testutil.ToFloat64(c.AutoPlay.WithLabelValues("dog")); got != 1 {
		t.Errorf("autoplay_enabled = %v, want 1", got)
	}

	c.ObserveGallery("dog", 0, false)
	if got := testutil.ToFloat64(c.AutoPlay.WithLabelValues("dog")); got != 0 {
		t.Errorf("autoplay_enabled = %v, want 0", got)
	}
}

func TestObserveGallery_NilReceiver(t *testing.T) {
	var c *Collectors
	c.ObserveGallery("cat", 3, false) // must not panic
}

func TestRouter(t *testing.T) {
	c := New()
	c.FetchTotal.WithLabelValues("cat", "ok").Inc()
	r := NewRouter(c)

	tests := []struct {
		path     string
		wantCode int
		wantBody string
	}{
		{"/health", http.StatusOK, "OK"},
		{"/metrics", http.StatusOK, `pawshower_fetch_total{outcome="ok",source="cat"} 1`},
		{"/missing", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			body, _ := io.ReadAll(rec.Body)
			if !strings.Contains(string(body), tt.wantBody) {
				t.Errorf("body missing %q", tt.wantBody)
			}
		})
	}
}
