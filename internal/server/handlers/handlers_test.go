package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/stockroom/internal/domain"
	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/service/receiving"
)

type MockGRNService struct {
	mock.Mock
}

func (m *MockGRNService) CreateGRN(ctx context.Context, in receiving.CreateGRNInput) (*models.GRN, error) {
	args := m.Called(ctx, in)
	grn, _ := args.Get(0).(*models.GRN)
	return grn, args.Error(1)
}

func (m *MockGRNService) ListGRNs(ctx context.Context) ([]models.GRNView, error) {
	args := m.Called(ctx)
	views, _ := args.Get(0).([]models.GRNView)
	return views, args.Error(1)
}

func (m *MockGRNService) UpdateStatus(ctx context.Context, id string, status models.GRNStatus) (*models.GRNView, error) {
	args := m.Called(ctx, id, status)
	v, _ := args.Get(0).(*models.GRNView)
	return v, args.Error(1)
}

type MockExporter struct {
	mock.Mock
}

func (m *MockExporter) ExportInventory(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func serve(t *testing.T, h gin.HandlerFunc, method, path, pattern, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Handle(method, pattern, h)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(fmt.Errorf("x: %w", domain.ErrInvalidInput)))
	assert.Equal(t, http.StatusNotFound, statusFor(fmt.Errorf("x: %w", domain.ErrNotFound)))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("socket closed")))
}

func TestGRNHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "created",
			body:       `{"poID":"PO1","QC":"Fail","items":[{"itemName":"Widget","quantityReceived":5}]}`,
			wantStatus: http.StatusCreated,
			wantBody:   `"poID":"PO1"`,
		},
		{
			name:       "missing items",
			body:       `{"poID":"PO1"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "items: is required",
		},
		{
			name:       "zero quantity",
			body:       `{"poID":"PO1","items":[{"itemName":"Widget","quantityReceived":0}]}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "items[0].quantityReceived",
		},
		{
			name:       "unknown QC",
			body:       `{"poID":"PO1","QC":"Maybe","items":[{"itemName":"Widget","quantityReceived":1}]}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "QC: must be one of [Pass Fail Check]",
		},
		{
			name:       "malformed json",
			body:       `{"poID":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "message",
		},
		{
			name:       "persistence failure is still 400",
			body:       `{"poID":"PO1","items":[{"itemName":"Widget","quantityReceived":1}]}`,
			svcErr:     errors.New("apply line 1 (Widget): connection reset"),
			wantStatus: http.StatusBadRequest,
			wantBody:   "connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockGRNService)
			if tt.svcErr != nil {
				svc.On("CreateGRN", mock.Anything, mock.Anything).Return(nil, tt.svcErr)
			} else {
				svc.On("CreateGRN", mock.Anything, mock.Anything).Return(&models.GRN{POID: "PO1", Status: models.GRNPending}, nil)
			}

			rec := serve(t, NewGRNHandler(svc, nil).Create, http.MethodPost, "/api/grn", "/api/grn", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestGRNHandler_CreatePassesLines(t *testing.T) {
	svc := new(MockGRNService)
	svc.On("CreateGRN", mock.Anything, mock.MatchedBy(func(in receiving.CreateGRNInput) bool {
		return in.POID == "PO7" && in.QC == models.QCCheck && len(in.Items) == 1 &&
			in.Items[0].ItemCode == "ITEM-1" && in.Items[0].LotNumber == "L1" && in.Items[0].ExpiryDate != nil
	})).Return(&models.GRN{}, nil)

	body := `{"poID":"PO7","QC":"Check","items":[{"itemName":"Widget","itemCode":"ITEM-1","quantityReceived":2,"lotNumber":"L1","expiryDate":"2027-01-31T00:00:00Z"}]}`
	rec := serve(t, NewGRNHandler(svc, nil).Create, http.MethodPost, "/api/grn", "/api/grn", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestGRNHandler_UpdateStatus(t *testing.T) {
	svc := new(MockGRNService)
	svc.On("UpdateStatus", mock.Anything, "missing", models.GRNCompleted).
		Return(nil, fmt.Errorf("update grn status: %w", domain.ErrNotFound))
	svc.On("UpdateStatus", mock.Anything, "g1", models.GRNStatus("Lost")).
		Return(nil, fmt.Errorf("%w: unknown grn status", domain.ErrInvalidInput))

	h := NewGRNHandler(svc, nil).UpdateStatus

	rec := serve(t, h, http.MethodPatch, "/api/grn/missing", "/api/grn/:id", `{"status":"Completed"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"GRN not found"}`, rec.Body.String())

	rec = serve(t, h, http.MethodPatch, "/api/grn/g1", "/api/grn/:id", `{"status":"Lost"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, h, http.MethodPatch, "/api/grn/g1", "/api/grn/:id", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "status: is required")
}

func TestInventoryHandler_Snapshot(t *testing.T) {
	rec := serve(t, NewInventoryHandler(nil, nil, nil).Snapshot, http.MethodPost, "/snap", "/snap", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	exporter := new(MockExporter)
	exporter.On("ExportInventory", mock.Anything).Return(4, nil)
	rec = serve(t, NewInventoryHandler(nil, exporter, nil).Snapshot, http.MethodPost, "/snap", "/snap", "")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.JSONEq(t, `{"status":"exported","items":4}`, rec.Body.String())

	failing := new(MockExporter)
	failing.On("ExportInventory", mock.Anything).Return(0, errors.New("sheet offline"))
	rec = serve(t, NewInventoryHandler(nil, failing, nil).Snapshot, http.MethodPost, "/snap", "/snap", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"sheet offline"}`, rec.Body.String())
}

func TestHealthHandler(t *testing.T) {
	rec := serve(t, NewHealthHandler(stubPinger{}, nil).Check, http.MethodGet, "/healthz", "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = serve(t, NewHealthHandler(stubPinger{err: errors.New("down")}, nil).Check, http.MethodGet, "/healthz", "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"degraded"}`, rec.Body.String())
}
