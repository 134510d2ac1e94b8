package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	RegistrationsCreated prometheus.Counter
	RegistrationsUpdated prometheus.Counter
	RegistrationFailures *prometheus.CounterVec
	RequestDuration      *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New creates the metrics and registers them on reg. A nil reg uses the
// default Prometheus registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	factory := promauto.With(reg)
	return &Metrics{
		RegistrationsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "enrollment_registrations_created_total",
			Help: "Total number of registrations committed",
		}),
		RegistrationsUpdated: factory.NewCounter(prometheus.CounterOpts{
			Name: "enrollment_registrations_updated_total",
			Help: "Total number of registration updates committed",
		}),
		RegistrationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "enrollment_registration_failures_total",
			Help: "Registration writes that were rejected or rolled back",
		}, []string{"op", "kind"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "enrollment_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		gatherer: gatherer,
	}
}

func (m *Metrics) IncrementCreated() {
	if m == nil {
		return
	}
	m.RegistrationsCreated.Inc()
}

func (m *Metrics) IncrementUpdated() {
	if m == nil {
		return
	}
	m.RegistrationsUpdated.Inc()
}

// IncrementFailure counts a failed write. kind is domain.ErrorKind of the error.
func (m *Metrics) IncrementFailure(op, kind string) {
	if m == nil {
		return
	}
	m.RegistrationFailures.WithLabelValues(op, kind).Inc()
}

// Middleware observes request latency labelled by the matched route pattern.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		m.RequestDuration.
			WithLabelValues(c.Method(), c.Route().Path, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
}
