package binance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	t.Parallel()

	cfg := Config{
		BaseURL: "https://api.test.com",
		Timeout: 10 * time.Second,
	}
	client := NewClient(cfg, &http.Client{})

	if client == nil {
		t.Fatal("expected non-nil client")
	}
	if client.cfg.BaseURL != cfg.BaseURL {
		t.Errorf("expected base URL %q, got %q", cfg.BaseURL, client.cfg.BaseURL)
	}
}

func TestClient_Klines_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify request parameters
		if r.URL.Query().Get("symbol") != "BTCUSDT" {
			t.Errorf("expected symbol BTCUSDT, got %s", r.URL.Query().Get("symbol"))
		}
		if r.URL.Query().Get("interval") != "1d" {
			t.Errorf("expected interval 1d, got %s", r.URL.Query().Get("interval"))
		}
		if r.URL.Query().Get("limit") != "2" {
			t.Errorf("expected limit 2, got %s", r.URL.Query().Get("limit"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[
			[1737331200000, "101000.00", "103500.00", "100200.00", "102500.50", "1234.5", 1737417599999, "0", 100, "0", "0", "0"],
			[1737417600000, "102500.50", "104000.00", "101800.00", "103750.25", "2345.6", 1737503999999, "0", 200, "0", "0", "0"]
		]`))
	}))
	defer server.Close()

	cfg := Config{BaseURL: server.URL}
	client := NewClient(cfg, server.Client())

	points, err := client.Klines(context.Background(), "BTCUSDT", "1d", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}

	wantTime := time.UnixMilli(1737331200000).UTC()
	if !points[0].Time.Equal(wantTime) {
		t.Errorf("expected time %v, got %v", wantTime, points[0].Time)
	}
	if points[0].Close != 102500.50 {
		t.Errorf("expected close 102500.50, got %f", points[0].Close)
	}
	if points[1].Close != 103750.25 {
		t.Errorf("expected close 103750.25, got %f", points[1].Close)
	}
}

func TestClient_Klines_HTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
	}{
		{"bad request", http.StatusBadRequest},
		{"too many requests", http.StatusTooManyRequests},
		{"internal server error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer server.Close()

			cfg := Config{BaseURL: server.URL}
			client := NewClient(cfg, server.Client())

			_, err := client.Klines(context.Background(), "BTCUSDT", "1d", 30)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), "binance http") {
				t.Errorf("expected HTTP error message, got %v", err)
			}
		})
	}
}

func TestClient_Klines_InvalidJSON(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[invalid json`))
	}))
	defer server.Close()

	cfg := Config{BaseURL: server.URL}
	client := NewClient(cfg, server.Client())

	_, err := client.Klines(context.Background(), "BTCUSDT", "1d", 30)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestClient_Klines_MalformedRow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		response string
		errText  string
	}{
		{
			name:     "too few fields",
			response: `[[1737331200000, "101000.00"]]`,
			errText:  "malformed kline row",
		},
		{
			name:     "non-numeric open time",
			response: `[["not-a-time", "1", "2", "3", "102500.50"]]`,
			errText:  "parse kline open time",
		},
		{
			name:     "non-numeric close",
			response: `[[1737331200000, "1", "2", "3", "abc"]]`,
			errText:  "parse kline close",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(tt.response))
			}))
			defer server.Close()

			cfg := Config{BaseURL: server.URL}
			client := NewClient(cfg, server.Client())

			_, err := client.Klines(context.Background(), "BTCUSDT", "1d", 30)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errText) {
				t.Errorf("expected error containing %q, got %v", tt.errText, err)
			}
		})
	}
}

func TestClient_Klines_EmptyResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	cfg := Config{BaseURL: server.URL}
	client := NewClient(cfg, server.Client())

	points, err := client.Klines(context.Background(), "BTCUSDT", "1d", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 0 {
		t.Errorf("expected 0 points, got %d", len(points))
	}
}

func TestClient_Klines_ContextCancellation(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := Config{BaseURL: server.URL}
	client := NewClient(cfg, server.Client())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.Klines(ctx, "BTCUSDT", "1d", 30)
	if err == nil {
		t.Fatal("expected error due to context cancellation, got nil")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	cfg := LoadConfig()

	if cfg.Timeout != 10*time.Second {
		t.Errorf("expected timeout 10s, got %v", cfg.Timeout)
	}
}
