// Package metrics records order and notification counters in Prometheus.
package metrics

import (
	"net/http"

	"canteen/config"
	"canteen/internal/domain/entity"
	"canteen/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "canteen"

// Recorder implements service.Metrics on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	ordersPlaced         prometheus.Counter
	orderAmount          prometheus.Histogram
	orderTransitions     *prometheus.CounterVec
	notificationsCreated prometheus.Counter
	notificationsRead    prometheus.Counter
}

// NewRecorder registers the business collectors plus the Go and process collectors.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	r := &Recorder{
		registry: registry,
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_total",
			Help:      "Orders placed successfully.",
		}),
		orderAmount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_total_amount",
			Help:      "Order total including tax.",
			Buckets:   []float64{25, 50, 100, 200, 400, 800},
		}),
		orderTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_transitions_total",
			Help:      "Order status transitions by target status.",
		}, []string{"status"}),
		notificationsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_created_total",
			Help:      "Notifications written for users.",
		}),
		notificationsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_read_total",
			Help:      "Notifications flipped to read.",
		}),
	}

	registry.MustRegister(
		r.ordersPlaced,
		r.orderAmount,
		r.orderTransitions,
		r.notificationsCreated,
		r.notificationsRead,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// NewMetrics returns the Prometheus recorder, or a no-op when metrics are disabled.
func NewMetrics(cfg *config.Config, recorder *Recorder) service.Metrics {
	if cfg.Metrics == nil || !cfg.Metrics.Enabled {
		return Noop{}
	}

	return recorder
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) OrderPlaced(total float64) {
	r.ordersPlaced.Inc()
	r.orderAmount.Observe(total)
}

func (r *Recorder) OrderAdvanced(to entity.OrderStatus) {
	r.orderTransitions.WithLabelValues(to.String()).Inc()
}

func (r *Recorder) NotificationsCreated(n int) {
	if n > 0 {
		r.notificationsCreated.Add(float64(n))
	}
}

func (r *Recorder) NotificationsRead(n int) {
	if n > 0 {
		r.notificationsRead.Add(float64(n))
	}
}

// Noop discards every observation.
type Noop struct{}

func (Noop) OrderPlaced(float64)              {}
func (Noop) OrderAdvanced(entity.OrderStatus) {}
func (Noop) NotificationsCreated(int)         {}
func (Noop) NotificationsRead(int)            {}
