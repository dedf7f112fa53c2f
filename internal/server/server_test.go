package server

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/yigit/admissions/internal/bootstrap"
	"github.com/yigit/admissions/internal/config"
)

func TestRunStopsWhenContextIsCancelled(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Port = "0"
	cfg.Server.Mode = "test"
	cfg.Storage.Backend = config.StorageMemory
	cfg.Auth.TokenSecret = "test-secret"
	cfg.Auth.TokenHeader = "Authentication-Token"
	cfg.Auth.BcryptCost = 4
	cfg.Cache.Backend = config.CacheNone
	cfg.Metrics.Disabled = true
	cfg.Seed.SkipOnStart = true

	app, err := bootstrap.NewApp(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewServer(app).Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
