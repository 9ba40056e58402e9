//go:build functional

// Package functional provides functional tests for the items API server.
package functional

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dkrylov/items-api/internal/config"
	"github.com/dkrylov/items-api/internal/model"
	"github.com/dkrylov/items-api/internal/server"
	"github.com/dkrylov/items-api/internal/store"
)

// Environment variable names for test configuration.
const (
	EnvTestServerHost = "TEST_SERVER_HOST"
	EnvTestLogLevel   = "TEST_LOG_LEVEL"
)

// Default test configuration values.
const (
	DefaultTestHost        = "localhost"
	DefaultTestTimeout     = 30 * time.Second
	DefaultRequestTimeout  = 5 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
)

// TestServer wraps a real server listening on an ephemeral port.
type TestServer struct {
	Server  *server.Server
	BaseURL string
	WSURL   string
	Port    int
	t       *testing.T
}

// seedItems is the same fixed startup data the production binary loads.
func seedItems() []model.Item {
	return []model.Item{
		model.NamedItem(1, "Kalem"),
		model.NamedItem(2, "Defter"),
	}
}

// NewTestServer creates and starts a server over a freshly seeded store.
// Every test gets an independent store instance, so no reset between tests
// is needed.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	host := DefaultTestHost
	if v := os.Getenv(EnvTestServerHost); v != "" {
		host = v
	}

	logLevel := "error"
	if v := os.Getenv(EnvTestLogLevel); v != "" {
		logLevel = v
	}

	// Find an available port
	listener, err := net.Listen("tcp", fmt.Sprintf("%s:0", host))
	if err != nil {
		t.Fatalf("Failed to find available port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	cfg := &config.Config{
		ServerPort:      port,
		LogLevel:        logLevel,
		ShutdownTimeout: DefaultShutdownTimeout,
		MetricsEnabled:  false,
	}

	srv := server.New(cfg, zap.NewNop(), store.NewMemoryStore(seedItems()...))

	ts := &TestServer{
		Server:  srv,
		BaseURL: fmt.Sprintf("http://%s:%d", host, port),
		WSURL:   fmt.Sprintf("ws://%s:%d", host, port),
		Port:    port,
		t:       t,
	}

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.Logf("Server error: %v", err)
		}
	}()

	ts.waitForReady()

	t.Cleanup(ts.Stop)

	return ts
}

// waitForReady waits for the server to answer health checks.
func (ts *TestServer) waitForReady() {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultTestTimeout)
	defer cancel()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			ts.t.Fatalf("Server did not become ready within timeout")
		case <-ticker.C:
			resp, err := http.Get(ts.BaseURL + "/health")
			if err == nil {
				resp.Body.Close()
				if resp.StatusCode == http.StatusOK {
					return
				}
			}
		}
	}
}

// Stop shuts the test server down.
func (ts *TestServer) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()

	if err := ts.Server.Shutdown(ctx); err != nil {
		ts.t.Logf("Server shutdown error: %v", err)
	}
}

// do issues an HTTP request against the test server and returns the status
// code and body.
func (ts *TestServer) do(method, path string, body any) (int, []byte) {
	ts.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			ts.t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, ts.BaseURL+path, reader)
	if err != nil {
		ts.t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: DefaultRequestTimeout}
	resp, err := client.Do(req)
	if err != nil {
		ts.t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		ts.t.Fatalf("failed to read response body: %v", err)
	}

	return resp.StatusCode, data
}

// decodeItem unmarshals a response body into an item.
func decodeItem(t *testing.T, data []byte) model.Item {
	t.Helper()

	var item model.Item
	if err := json.Unmarshal(data, &item); err != nil {
		t.Fatalf("failed to decode item from %s: %v", data, err)
	}
	return item
}

// decodeItems unmarshals a response body into an item slice.
func decodeItems(t *testing.T, data []byte) []model.Item {
	t.Helper()

	var items []model.Item
	if err := json.Unmarshal(data, &items); err != nil {
		t.Fatalf("failed to decode items from %s: %v", data, err)
	}
	return items
}

// decodeMessage unmarshals a response body into a message payload.
func decodeMessage(t *testing.T, data []byte) model.MessageResponse {
	t.Helper()

	var msg model.MessageResponse
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("failed to decode message from %s: %v", data, err)
	}
	return msg
}
