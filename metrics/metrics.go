package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"globalbroadcast/models"
	"globalbroadcast/registry"
)

// Collector bundles the service's Prometheus metrics.
type Collector struct {
	gatherer prometheus.Gatherer

	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec

	Stations         prometheus.Gauge
	StationsByStatus *prometheus.GaugeVec
	Viewers          prometheus.Gauge
	Operations       *prometheus.CounterVec

	RotationAngle prometheus.Gauge
	Frames        prometheus.Counter

	TextureFetches *prometheus.CounterVec
	FeedClients    prometheus.Gauge
}

// NewCollector registers metrics against reg, defaulting to the global
// registry when nil. Re-registering on the same registry reuses the existing
// collectors.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &Collector{gatherer: gatherer}
	var err error

	if c.HTTPRequests, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Handled HTTP requests, labeled by method, route and status code.",
	}, []string{"method", "route", "code"}), "http_requests_total"); err != nil {
		return nil, err
	}
	if c.HTTPDurations, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "route"}), "http_request_duration_seconds"); err != nil {
		return nil, err
	}
	if c.Stations, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "registry_stations",
		Help: "Stations currently in the registry.",
	}), "registry_stations"); err != nil {
		return nil, err
	}
	if c.StationsByStatus, err = register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "registry_stations_by_status",
		Help: "Stations in the registry per lifecycle status.",
	}, []string{"status"}), "registry_stations_by_status"); err != nil {
		return nil, err
	}
	if c.Viewers, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "registry_viewers",
		Help: "Sum of viewer counts across all stations.",
	}), "registry_viewers"); err != nil {
		return nil, err
	}
	if c.Operations, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "registry_operations_total",
		Help: "Registry operations applied, labeled by operation.",
	}, []string{"operation"}), "registry_operations_total"); err != nil {
		return nil, err
	}
	if c.RotationAngle, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "globe_rotation_radians",
		Help: "Current globe rotation angle.",
	}), "globe_rotation_radians"); err != nil {
		return nil, err
	}
	if c.Frames, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "globe_frames_total",
		Help: "Animation frames advanced.",
	}), "globe_frames_total"); err != nil {
		return nil, err
	}
	if c.TextureFetches, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "texture_fetches_total",
		Help: "Surface texture fetch attempts, labeled by outcome.",
	}, []string{"outcome"}), "texture_fetches_total"); err != nil {
		return nil, err
	}
	if c.FeedClients, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "feed_clients",
		Help: "Connected WebSocket feed clients.",
	}), "feed_clients"); err != nil {
		return nil, err
	}

	return c, nil
}

// Handler exposes a /metrics handler for the collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// GinMiddleware records request counts and latencies per route template.
func (c *Collector) GinMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := ctx.Request.Method
		c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
		c.HTTPDurations.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// ObserveRegistry refreshes the registry gauges from a registry value.
func (c *Collector) ObserveRegistry(r registry.Registry) {
	stats := r.Stats()
	c.Stations.Set(float64(stats.TotalStations))
	c.Viewers.Set(float64(stats.TotalViewers))

	counts := r.CountByStatus()
	for _, status := range []models.StationStatus{
		models.StatusLive, models.StatusStandby, models.StatusMaintenance, models.StatusOffline,
	} {
		c.StationsByStatus.WithLabelValues(string(status)).Set(float64(counts[status]))
	}
}

// RecordOperation counts one registry operation.
func (c *Collector) RecordOperation(op string) {
	c.Operations.WithLabelValues(op).Inc()
}

// ObserveFrame records one animation frame.
func (c *Collector) ObserveFrame(angle float64) {
	c.Frames.Inc()
	c.RotationAngle.Set(angle)
}

// ObserveTexture counts one texture fetch outcome.
func (c *Collector) ObserveTexture(outcome string) {
	c.TextureFetches.WithLabelValues(outcome).Inc()
}

func (c *Collector) FeedConnected()    { c.FeedClients.Inc() }
func (c *Collector) FeedDisconnected() { c.FeedClients.Dec() }

func register[T prometheus.Collector](reg prometheus.Registerer, collector T, name string) (T, error) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			var zero T
			return zero, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		var zero T
		return zero, err
	}
	return collector, nil
}
