package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"shipment-gateway/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveSync(t *testing.T) {
	m := New()

	m.ObserveSync(&reconcile.Report{
		Added:     3,
		Updated:   2,
		Removed:   1,
		StartedAt: time.Unix(1700000000, 0),
		Duration:  2 * time.Second,
	}, nil)
	m.ObserveSync(nil, errors.New("remote down"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SyncPasses.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SyncPasses.WithLabelValues("failure")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.SyncRecords.WithLabelValues("added")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SyncRecords.WithLabelValues("removed")))
	assert.Equal(t, 1700000002.0, testutil.ToFloat64(m.LastSync))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveSync(&reconcile.Report{}, nil)
		m.ObserveStale("count_mismatch")
		m.ObserveBreaker("open")
		m.ObserveEventFailure("shipment.created")
	})
}

func TestObserveBreaker(t *testing.T) {
	m := New()
	m.ObserveBreaker("open")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BreakerOpen))
	m.ObserveBreaker("closed")
	assert.Equal(t, 0.0, testutil.ToFloat64(m.BreakerOpen))
}

func TestMiddlewareAndHandler(t *testing.T) {
	m := New()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/api/shipment/:id", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/shipment/se-1", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/shipment/:id", "200")))

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "shipment_gateway_http_requests_total")
}
