package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fincalc-agent/config"
	"fincalc-agent/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Addr:            "127.0.0.1:0",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			IdleTimeout:     5 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		RateLimit: config.RateLimitConfig{Enabled: true, Capacity: 100, Refill: time.Minute},
		Cache:     config.CacheConfig{Backend: "memory", TTL: time.Minute, MaxEntries: 100},
		Redis:     config.RedisConfig{Prefix: "fincalc:"},
		Logging:   config.LoggingConfig{Level: "debug", Format: "console"},
		Metrics:   config.MetricsConfig{Enabled: true, Path: "/metrics"},
		History:   config.HistoryConfig{Limit: 10},
	}
}

func TestRunServer_ServesAndShutsDown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addrCh := make(chan string, 1)
	errCh := make(chan error, 1)
	go func() {
		errCh <- runServer(ctx, testConfig(), logger.NewNoOpLogger(), func(addr string) { addrCh <- addr })
	}()

	var addr string
	select {
	case addr = <-addrCh:
	case err := <-errCh:
		t.Fatalf("server exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	resp, err := http.Get("http://" + addr + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post("http://"+addr+"/emi/calculate", "application/json",
		bytes.NewBufferString(`{"principal": 100000, "annual_rate_pct": 12, "tenure_years": 1}`))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"emi":8884.88`)

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRunServer_AddressInUse(t *testing.T) {
	occupied := httptest.NewServer(http.NotFoundHandler())
	defer occupied.Close()

	cfg := testConfig()
	cfg.Server.Addr = occupied.Listener.Addr().String()

	err := runServer(context.Background(), cfg, logger.NewNoOpLogger(), nil)
	require.Error(t, err)
}

func TestNewApp_RedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig()
	cfg.Cache.Backend = "redis"
	cfg.Redis.Address = mr.Addr()

	a, err := newApp(context.Background(), cfg, logger.NewTestLogger(t))
	require.NoError(t, err)
	defer a.Close()

	req := httptest.NewRequest(http.MethodPost, "/sip/calculate",
		bytes.NewBufferString(`{"monthly_amount": 10000, "duration_years": 10, "assumed_rate_pct": 12}`))
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.Contains(t, keys[0], "fincalc:sip:")

	var cached map[string]float64
	raw, err := mr.Get(keys[0])
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(raw), &cached))
	assert.Equal(t, 2323390.76, cached["future_value"])
}

func TestNewApp_RedisUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := testConfig()
	cfg.Cache.Backend = "redis"
	cfg.Redis.Address = addr

	_, err := newApp(context.Background(), cfg, logger.NewNoOpLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect redis")
}

func TestNewApp_NoCacheNoLimiter(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.Backend = "none"
	cfg.RateLimit.Enabled = false
	cfg.Metrics.Enabled = false

	a, err := newApp(context.Background(), cfg, logger.NewNoOpLogger())
	require.NoError(t, err)
	defer a.Close()
	assert.Nil(t, a.limiter)

	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNewApp_InvalidRulesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: broken\nnew: {slabs: {}}\n"), 0o600))

	cfg := testConfig()
	cfg.Tax.RulesFile = path

	_, err := newApp(context.Background(), cfg, logger.NewNoOpLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load tax rules")
}
