package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"stocklens/internal/insights"
	"stocklens/internal/llmclient"
	"stocklens/internal/product"
)

func seedProduct(t *testing.T, store interface {
	Put(ctx context.Context, p product.Product) error
}, id string, qty int) {
	t.Helper()
	require.NoError(t, store.Put(context.Background(), product.Product{
		ID: id, UserID: "u1", Name: "Item " + id, Category: "CPU", Quantity: qty, Price: 1999,
	}))
}

func TestInsightsEndpointSuccess(t *testing.T) {
	fake := llmclient.NewFakeClient("```json\n" +
		`{"summary": "S", "trends": "T", "actions": "A"}` + "\n```")
	srv, store := newTestServer(t, fake)
	seedProduct(t, store, "P1", 5)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/insights", "u1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	var res insights.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	require.Equal(t, "S", res.Summary)
	require.Equal(t, "T", res.Trends)
	require.Equal(t, "A", res.Actions)
}

func TestInsightsEndpointPlaceholderForEmptyInventory(t *testing.T) {
	fake := llmclient.NewFakeClient("")
	srv, _ := newTestServer(t, fake)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/insights", "u1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	var res insights.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	require.Equal(t, insights.PlaceholderResult, res)
	require.Empty(t, fake.Prompts(), "completion service must not be called")
}

func TestInsightsEndpointUpstreamFailure(t *testing.T) {
	fake := llmclient.NewFakeClient("")
	fake.Fail(&llmclient.StatusError{StatusCode: http.StatusInternalServerError, Body: "boom"})
	srv, store := newTestServer(t, fake)
	seedProduct(t, store, "P1", 5)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/insights", "u1", nil)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	defer resp.Body.Close()

	var body struct {
		Error string `json:"error"`
		Kind  string `json:"kind"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, string(insights.KindUpstreamUnavailable), body.Kind)
	require.NotContains(t, body.Error, "boom", "upstream body must not leak to callers")
}

func TestInsightsEndpointRequiresIdentity(t *testing.T) {
	srv, _ := newTestServer(t, llmclient.NewFakeClient(""))
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/insights", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestInsightsEndpointMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t, llmclient.NewFakeClient(""))
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/insights", "u1", nil)
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	resp.Body.Close()
}
