package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementCreated()
	m.IncrementCreated()
	m.IncrementUpdated()
	m.IncrementFailure("create", "validation")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RegistrationsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RegistrationsUpdated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RegistrationFailures.WithLabelValues("create", "validation")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementCreated()
		m.IncrementUpdated()
		m.IncrementFailure("update", "transaction")
	})
}

func TestMiddlewareAndHandler(t *testing.T) {
	m := New(prometheus.NewRegistry())

	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/api/students/:childId", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/metrics", m.Handler())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/students/4", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `route="/api/students/:childId"`)
}
