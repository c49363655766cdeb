package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.RecordLedgerMutation("create")
	m.RecordLedgerMutation("increment")
	m.RecordLedgerMutation("increment")
	m.ObserveRequest(http.MethodPost, "/api/grn", http.StatusCreated, 20*time.Millisecond)
	m.RecordSnapshotExport(nil)
	m.RecordSnapshotExport(errors.New("offline"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ledgerMutations.WithLabelValues("increment")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ledgerMutations.WithLabelValues("create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodPost, "/api/grn", "201")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.snapshotExports.WithLabelValues("error")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.RecordLedgerMutation("create")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `stockroom_ledger_mutations_total{action="create"} 1`)
}
