package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/billyjitsu/across-network-automation/history"
	"github.com/billyjitsu/across-network-automation/types"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) *chi.Mux {
	t.Helper()
	state := types.NewRunState(2)
	state.SetCurrent("eth-arb-to-op")
	recorder := history.NewRecorder(filepath.Join(t.TempDir(), "history.json"))
	recorder.Append(
		types.Operation{Name: "op", Token: "ETH", FromChain: 42161, ToChain: 10, Amount: "0.001"},
		&types.ExecutionResult{Success: true, OriginTxHash: "0xorigin"},
		nil,
	)

	r := chi.NewRouter()
	r.Get("/health", HealthCheck)
	r.Get("/state", State(state))
	r.Get("/history", History(recorder))
	r.Get("/routes/{symbol}", TokenRoutes)
	return r
}

func get(t *testing.T, router *chi.Mux, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	w := get(t, newRouter(t), "/health")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestState(t *testing.T) {
	w := get(t, newRouter(t), "/state")
	assert.Equal(t, http.StatusOK, w.Code)

	var snap types.RunSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.True(t, snap.Running)
	assert.Equal(t, "eth-arb-to-op", snap.Current)
	assert.Equal(t, 2, snap.Total)
}

func TestHistory(t *testing.T) {
	w := get(t, newRouter(t), "/history")
	assert.Equal(t, http.StatusOK, w.Code)

	var records []types.HistoryRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "0xorigin", records[0].Result.OriginTxHash)
}

func TestTokenRoutes(t *testing.T) {
	w := get(t, newRouter(t), "/routes/dai")
	assert.Equal(t, http.StatusOK, w.Code)

	var routes []APIRouteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &routes))
	assert.Len(t, routes, 12)
	assert.Equal(t, "DAI", routes[0].Token)
}

func TestTokenRoutesUnknown(t *testing.T) {
	w := get(t, newRouter(t), "/routes/doge")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
