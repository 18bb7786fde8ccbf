package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/customeros/ingestgen/config"
	"github.com/customeros/ingestgen/internal/logger"
)

func getLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{
		DevMode: true,
	})
	appLogger.InitLogger()
	return appLogger
}

func TestServer_Handler(t *testing.T) {
	s := NewServer(&config.SinkConfig{Port: "0", BatchTTL: time.Hour}, getLogger())

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	s := NewServer(&config.SinkConfig{Port: "0"}, getLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("sink did not shut down")
	}
}

func TestServer_RedisUnreachable(t *testing.T) {
	s := NewServer(&config.SinkConfig{Port: "0", RedisAddr: "127.0.0.1:1", BatchTTL: time.Hour}, getLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.Error(t, s.Run(ctx))
}
