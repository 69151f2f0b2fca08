package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terraguard/floodwatch/internal/domain"
	"github.com/terraguard/floodwatch/internal/snapshot"
)

type mockService struct {
	grouped  *domain.GroupedResults
	buildErr error
	readyErr error

	lastLGA string
}

func (m *mockService) GetAll(_ context.Context) (*domain.GroupedResults, error) {
	if m.buildErr != nil {
		return nil, m.buildErr
	}
	return m.grouped, nil
}

func (m *mockService) GetByArea(_ context.Context, lga string) ([]domain.CommunityResult, error) {
	m.lastLGA = lga
	if m.buildErr != nil {
		return nil, m.buildErr
	}
	results, ok := m.grouped.ByArea(lga)
	if !ok {
		return nil, snapshot.ErrAreaNotFound
	}
	return results, nil
}

func (m *mockService) CheckReadiness(_ context.Context) error {
	return m.readyErr
}

func testGrouped() *domain.GroupedResults {
	grouped := domain.NewGroupedResults()
	grouped.Add(domain.CommunityResult{Name: "Adadama", LGA: "Abi", Risk: domain.RiskHigh})
	grouped.Add(domain.CommunityResult{Name: "Igueben", LGA: "Igueben", Risk: domain.RiskLow})
	grouped.Add(domain.CommunityResult{Name: "Ediba", LGA: "Abi", Risk: domain.RiskHigh})
	return grouped
}

func newTestServer(svc SnapshotService) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(":0", svc, logger)
}

func doRequest(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestGetAll(t *testing.T) {
	t.Run("returns grouped snapshot", func(t *testing.T) {
		srv := newTestServer(&mockService{grouped: testGrouped()})

		rec := doRequest(t, srv, "/api/all")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var body map[string][]domain.CommunityResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body, 2)
		assert.Len(t, body["Abi"], 2)
		assert.Len(t, body["Igueben"], 1)
		assert.Equal(t, "Adadama", body["Abi"][0].Name)
	})

	t.Run("build failure returns 500", func(t *testing.T) {
		srv := newTestServer(&mockService{buildErr: errors.New("provider down")})

		rec := doRequest(t, srv, "/api/all")

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"Failed to fetch data"}`, rec.Body.String())
	})
}

func TestGetByArea(t *testing.T) {
	t.Run("returns one area's communities", func(t *testing.T) {
		svc := &mockService{grouped: testGrouped()}
		srv := newTestServer(svc)

		rec := doRequest(t, srv, "/api/lga/Abi")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Abi", svc.lastLGA)

		var results []domain.CommunityResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
		require.Len(t, results, 2)
		assert.Equal(t, "Adadama", results[0].Name)
		assert.Equal(t, "Ediba", results[1].Name)
	})

	t.Run("unknown area returns 404", func(t *testing.T) {
		srv := newTestServer(&mockService{grouped: testGrouped()})

		rec := doRequest(t, srv, "/api/lga/Nowhere")

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"LGA not found"}`, rec.Body.String())
	})

	t.Run("build failure returns 500", func(t *testing.T) {
		srv := newTestServer(&mockService{buildErr: errors.New("provider down")})

		rec := doRequest(t, srv, "/api/lga/Abi")

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"Failed to fetch data"}`, rec.Body.String())
	})
}

func TestHealthEndpoints(t *testing.T) {
	t.Run("healthz is always ok", func(t *testing.T) {
		srv := newTestServer(&mockService{})

		rec := doRequest(t, srv, "/healthz")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("readyz reports not ready before first snapshot", func(t *testing.T) {
		srv := newTestServer(&mockService{readyErr: errors.New("snapshot has not been built yet")})

		rec := doRequest(t, srv, "/readyz")

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "not ready", body["status"])
	})

	t.Run("readyz reports ready", func(t *testing.T) {
		srv := newTestServer(&mockService{})

		rec := doRequest(t, srv, "/readyz")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())
	})
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&mockService{})

	rec := doRequest(t, srv, "/metrics")

	require.Equal(t, http.StatusOK, rec.Code)
}
