package agents

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(url string, attempts int) *Client {
	c := New(url, 2*time.Second, attempts)
	c.Retry.Backoff = time.Millisecond
	return c
}

func TestClient_Success(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"solution":"Use mid = (lo+hi)/2","explanation":"split the range","confidence":0.92}`))
	}))
	defer server.Close()

	c := testClient(server.URL, 3)
	sol, res := c.ResolveDoubt(context.Background(), DoubtQuery{
		UserID:        "u123",
		QuestionID:    "q101",
		StudentAnswer: "I don't understand binary search",
		Topic:         "Binary Search",
		Difficulty:    "medium",
	})

	require.True(t, res.Success)
	assert.Empty(t, res.Error)
	assert.Equal(t, "Direct Doubt Resolver", res.Agent)
	assert.Greater(t, res.Elapsed, time.Duration(0))
	assert.Equal(t, "/webhook/agent1/submit-doubt", gotPath)
	assert.Equal(t, "Use mid = (lo+hi)/2", sol.Solution)
	assert.Equal(t, 0.92, sol.Confidence)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &sent))
	assert.Equal(t, "u123", sent["user_id"])
	assert.Equal(t, "Binary Search", sent["topic"])
}

func TestClient_RetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "upstream busy", http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"stuck_score":42,"stuck_level":"medium","needs_intervention":false}`))
	}))
	defer server.Close()

	c := testClient(server.URL, 3)
	stuck, res := c.StuckScore(context.Background(), StuckQuery{UserID: "u1", QuestionID: "q1"})

	require.True(t, res.Success)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, 42, stuck.StuckScore)
}

func TestClient_ExhaustsRetriesOnStatus(t *testing.T) {
	t.Parallel()

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	c := testClient(server.URL, 3)
	_, res := c.Hint(context.Background(), HintQuery{UserID: "u1", CurrentHintLevel: 1})

	require.False(t, res.Success)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Contains(t, res.Error, "HTTP 404")
	assert.Contains(t, res.Error, "not found")
}

func TestClient_MalformedBodyIsRetried(t *testing.T) {
	t.Parallel()

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{"hint": "almost`))
	}))
	defer server.Close()

	c := testClient(server.URL, 2)
	_, res := c.Hint(context.Background(), HintQuery{UserID: "u1"})

	require.False(t, res.Success)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Contains(t, res.Error, "Connection error")
}

func TestClient_Timeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	c := New(server.URL, 20*time.Millisecond, 1)
	c.Retry.Backoff = time.Millisecond
	_, res := c.DetectHesitation(context.Background(), HesitationQuery{UserID: "u1"})

	require.False(t, res.Success)
	assert.Equal(t, "Request timeout", res.Error)
}

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()

	// Grab a port nothing listens on.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c := testClient(url, 2)
	_, res := c.VideoIntelligence(context.Background(), VideoQuery{UserID: "u1"})

	require.False(t, res.Success)
	assert.Contains(t, res.Error, "Connection error")
}
