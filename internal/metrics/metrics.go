package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Collectors groups the application's Prometheus metrics.
type Collectors struct {
	Registry *prometheus.Registry

	FetchTotal    *prometheus.CounterVec
	FetchDuration *prometheus.HistogramVec
	GalleryItems  *prometheus.GaugeVec
	AutoPlay      *prometheus.GaugeVec
}

// New creates collectors registered on a private registry, together with
// the standard Go and process collectors.
func New() *Collectors {
	reg := prometheus.NewRegistry()

	c := &Collectors{
		Registry: reg,
		FetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pawshower",
			Name:      "fetch_total",
			Help:      "Image fetches by source and outcome.",
		}, []string{"source", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pawshower",
			Name:      "fetch_duration_seconds",
			Help:      "Latency of image fetches by source.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"source"}),
		GalleryItems: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "pawshower",
			Name:      "gallery_items",
			Help:      "Items currently held by each gallery.",
		}, []string{"source"}),
		AutoPlay: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "pawshower",
			Name:      "autoplay_enabled",
			Help:      "1 while auto-play is running for the gallery.",
		}, []string{"source"}),
	}

	reg.MustRegister(
		c.FetchTotal,
		c.FetchDuration,
		c.GalleryItems,
		c.AutoPlay,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// ObserveGallery records the size and auto-play flag of a gallery.
// Safe to call on a nil receiver.
func (c *Collectors) ObserveGallery(source string, items int, autoPlay bool) {
	if c == nil {
		return
	}
	c.GalleryItems.WithLabelValues(source).Set(float64(items))
	v := 0.0
	if autoPlay {
		v = 1
	}
	c.AutoPlay.WithLabelValues(source).Set(v)
}
