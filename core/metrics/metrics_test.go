package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"store-ops/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_ObserveBatch(t *testing.T) {
	r := NewRecorder()

	r.ObserveBatch("hurdle", reconcile.BatchPartial, &reconcile.BatchResult{
		InsertedCount: 3,
		UpdatedCount:  1,
		RejectedCount: 2,
	}, 150*time.Millisecond)
	r.ObserveBatch("hurdle", reconcile.BatchFailed, nil, time.Second)

	assert.Equal(t, 3.0, testutil.ToFloat64(r.rows.WithLabelValues("hurdle", "inserted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.rows.WithLabelValues("hurdle", "updated")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.rows.WithLabelValues("hurdle", "rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.batches.WithLabelValues("hurdle", "partial")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.batches.WithLabelValues("hurdle", "failed")))
}

func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder()
	r.ObserveBatch("rate", reconcile.BatchSuccess, &reconcile.BatchResult{InsertedCount: 1}, time.Millisecond)

	app := fiber.New()
	app.Get("/metrics", r.Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.Contains(string(body), `storeops_import_rows_total{entity="rate",outcome="inserted"} 1`))
}
