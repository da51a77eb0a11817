package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"best_block_height": 19000000, "best_block_time": "2024-01-01T00:00:00Z"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second)
	stats, err := client.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(19000000), stats.BestBlockHeight)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), stats.BestBlockTime)
}

func TestStatsSpaceSeparatedTime(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"best_block_height": 19000001, "best_block_time": "2024-01-01 12:30:00"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second)
	stats, err := client.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC), stats.BestBlockTime)
}

func TestStatsNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second)
	_, err := client.Stats(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestStatsMissingFields(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty data", `{"data": {}}`},
		{"no height", `{"data": {"best_block_time": "2024-01-01T00:00:00Z"}}`},
		{"no time", `{"data": {"best_block_height": 19000000}}`},
		{"wrong shape", `{"result": "ok"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, 2*time.Second)
			_, err := client.Stats(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestStatsBadTimeFormat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"best_block_height": 19000000, "best_block_time": "yesterday"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second)
	_, err := client.Stats(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "best_block_time")
}
