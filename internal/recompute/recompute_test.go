package recompute

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClient_RecomputeStatus(t *testing.T) {
	var got request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil)
	err := client.RecomputeStatus(context.Background(), "c1", "manual_trigger")
	require.NoError(t, err)
	require.Equal(t, "c1", got.ContactID)
	require.Equal(t, "manual_trigger", got.Reason)
}

func TestClient_RecomputeStatusServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "derivation rule missing", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nil)
	err := client.RecomputeStatus(context.Background(), "c1", "manual_trigger")
	require.Error(t, err)
	require.Contains(t, err.Error(), "500")
	require.Contains(t, err.Error(), "derivation rule missing")
}

func TestClient_RecomputeStatusUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 200*time.Millisecond, nil)
	err := client.RecomputeStatus(context.Background(), "c1", "manual_trigger")
	require.Error(t, err)
}

func TestDisabled_AlwaysSucceeds(t *testing.T) {
	var d Disabled
	require.NoError(t, d.RecomputeStatus(context.Background(), "c1", "manual_trigger"))
}
