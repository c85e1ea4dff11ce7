package mdns

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/swatch-server/internal/domain"
	"github.com/listenupapp/swatch-server/internal/version"
)

func TestConstants(t *testing.T) {
	t.Run("service type is correct", func(t *testing.T) {
		assert.Equal(t, "_swatch._tcp", ServiceType)
	})
}

func TestTXTRecords(t *testing.T) {
	instance := &domain.Instance{
		ID:          "swt-abc123",
		Name:        "Living Room",
		LocalURL:    "http://192.168.1.10:8090",
		Algorithm:   "xxh64-hsl/1",
		DefaultSeed: 42,
	}

	records := txtRecords(instance)

	assert.Contains(t, records, "id=swt-abc123")
	assert.Contains(t, records, "name=Living Room")
	assert.Contains(t, records, "version="+version.Server)
	assert.Contains(t, records, "api="+version.API)
	assert.Contains(t, records, "algo=xxh64-hsl/1")
	assert.Contains(t, records, "seed=42")
	assert.Contains(t, records, "url=http://192.168.1.10:8090")
}

func TestTXTRecords_NegativeSeed(t *testing.T) {
	instance := &domain.Instance{
		ID:          "swt-abc123",
		Name:        "Test",
		Algorithm:   "xxh64-hsl/1",
		DefaultSeed: -7,
	}

	records := txtRecords(instance)

	assert.Contains(t, records, "seed=-7")
}

func TestTXTRecords_NoLocalURL(t *testing.T) {
	instance := &domain.Instance{
		ID:        "swt-abc123",
		Name:      "Test",
		Algorithm: "xxh64-hsl/1",
	}

	records := txtRecords(instance)

	for _, record := range records {
		assert.False(t, strings.HasPrefix(record, "url="), "unexpected record %q", record)
	}
}

func TestNewService(t *testing.T) {
	t.Run("creates service with logger", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

		service := NewService(logger)

		require.NotNil(t, service)
		assert.Nil(t, service.server, "server should be nil before Start")
	})
}

func TestServiceStop(t *testing.T) {
	t.Run("stop when not started is safe", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		service := NewService(logger)

		// Should not panic
		service.Stop()
		assert.Nil(t, service.server)
	})

	t.Run("stop can be called multiple times", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		service := NewService(logger)

		// Should not panic
		service.Stop()
		service.Stop()
		service.Stop()
	})
}

func TestServiceStart(t *testing.T) {
	// Note: These tests may fail in environments without multicast support
	// (e.g., Docker containers, CI without network access)

	t.Run("start with valid instance succeeds", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		service := NewService(logger)

		instance := &domain.Instance{
			ID:          "swt-test-123",
			Name:        "Test Swatch",
			Algorithm:   "xxh64-hsl/1",
			DefaultSeed: 42,
		}

		err := service.Start(instance, 8090)

		// mDNS may fail in some environments (Docker, CI)
		// We check that if it succeeds, the server is set
		if err == nil {
			assert.NotNil(t, service.server)
			assert.Contains(t, buf.String(), "mDNS advertisement started")

			// Cleanup
			service.Stop()
		} else {
			t.Logf("mDNS start failed (expected in some environments): %v", err)
		}
	})

	t.Run("start can restart existing server", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		service := NewService(logger)

		instance := &domain.Instance{
			ID:          "swt-restart-test",
			Name:        "Restart Test",
			Algorithm:   "xxh64-hsl/1",
			DefaultSeed: 42,
		}

		// First start
		err1 := service.Start(instance, 8090)
		if err1 != nil {
			t.Skipf("mDNS not available in this environment: %v", err1)
		}

		// Second start (should restart)
		err2 := service.Start(instance, 8091)
		require.NoError(t, err2)
		assert.NotNil(t, service.server)

		service.Stop()
	})
}

func TestServiceLifecycle(t *testing.T) {
	t.Run("full lifecycle: create, start, stop", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		// Create
		service := NewService(logger)
		require.NotNil(t, service)

		instance := &domain.Instance{
			ID:          "swt-lifecycle-test",
			Name:        "Lifecycle Test",
			Algorithm:   "xxh64-hsl/1",
			DefaultSeed: 42,
		}

		// Start
		err := service.Start(instance, 8090)
		if err != nil {
			t.Skipf("mDNS not available: %v", err)
		}
		assert.NotNil(t, service.server)

		// Stop
		service.Stop()
		assert.Nil(t, service.server)
		assert.Contains(t, buf.String(), "mDNS advertisement stopped")
	})
}

func TestServiceConcurrency(t *testing.T) {
	t.Run("concurrent stop calls are safe", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		service := NewService(logger)

		instance := &domain.Instance{
			ID:          "swt-concurrent-test",
			Name:        "Concurrent Test",
			Algorithm:   "xxh64-hsl/1",
			DefaultSeed: 42,
		}

		err := service.Start(instance, 8090)
		if err != nil {
			t.Skipf("mDNS not available: %v", err)
		}

		// Concurrent stops should be safe
		done := make(chan struct{})
		for range 10 {
			go func() {
				service.Stop()
				done <- struct{}{}
			}()
		}

		// Wait for all goroutines
		for range 10 {
			<-done
		}

		assert.Nil(t, service.server)
	})
}
