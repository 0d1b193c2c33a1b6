package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hatchlog/internal/app/bus"
	"hatchlog/internal/app/errors"
	"hatchlog/internal/config"
	"hatchlog/internal/config/logger"
)

func newMockLogger(t *testing.T) logger.Logger {
	ctrl := gomock.NewController(t)

	mockLog := logger.NewMockLogger(ctrl)
	mockLog.EXPECT().Info().Return(nil).AnyTimes()
	mockLog.EXPECT().Warn().Return(nil).AnyTimes()
	mockLog.EXPECT().Error().Return(nil).AnyTimes()

	return mockLog
}

func newBus(t *testing.T) (bus.Bus, <-chan bus.Message) {
	t.Helper()

	b := bus.New(config.DefaultConfig(), nil)
	t.Cleanup(b.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return b, b.Subscribe(ctx)
}

func startWatcher(t *testing.T, load Loader, b bus.Bus) (string, Watcher) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, config.FileName)
	require.NoError(t, os.WriteFile(path, []byte("stream:\n  buffer: 10\n"), 0600))

	w, err := NewWatcher(path, load, b, newMockLogger(t))
	require.NoError(t, err)
	t.Cleanup(w.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	require.NoError(t, w.Start(ctx))

	return path, w
}

func Test_Watcher_ReloadsOnWrite(t *testing.T) {
	b, events := newBus(t)

	var loads atomic.Int32

	load := func(path string) (*config.Config, error) {
		loads.Add(1)

		cfg := config.DefaultConfig()
		cfg.Stream.Buffer = 42

		return cfg, nil
	}

	path, _ := startWatcher(t, load, b)

	require.NoError(t, os.WriteFile(path, []byte("stream:\n  buffer: 42\n"), 0600))
	require.NoError(t, os.WriteFile(path, []byte("stream:\n  buffer: 42\n\n"), 0600))

	select {
	case msg := <-events:
		assert.Equal(t, bus.EventConfigReloaded, msg.Type)

		data, ok := msg.Data.(bus.ConfigReloaded)
		require.True(t, ok)
		assert.Equal(t, path, data.Path)
		assert.Equal(t, 42, data.Config.Stream.Buffer)
	case <-time.After(3 * time.Second):
		t.Fatal("Expected config reload")
	}

	assert.Equal(t, int32(1), loads.Load())
}

func Test_Watcher_ReloadsOnRenameReplace(t *testing.T) {
	b, events := newBus(t)

	path, _ := startWatcher(t, func(string) (*config.Config, error) { return config.DefaultConfig(), nil }, b)

	tmp := filepath.Join(filepath.Dir(path), "hatchlog.yaml.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("bus:\n  buffer: 8\n"), 0600))
	require.NoError(t, os.Rename(tmp, path))

	select {
	case msg := <-events:
		assert.Equal(t, bus.EventConfigReloaded, msg.Type)
	case <-time.After(3 * time.Second):
		t.Fatal("Expected config reload")
	}
}

func Test_Watcher_InvalidConfigIgnored(t *testing.T) {
	b, events := newBus(t)

	var loads atomic.Int32

	path, _ := startWatcher(t, func(string) (*config.Config, error) {
		loads.Add(1)
		return nil, errors.ErrInvalidConfig
	}, b)

	require.NoError(t, os.WriteFile(path, []byte("stream:\n  buffer: 0\n"), 0600))

	assert.Eventually(t, func() bool { return loads.Load() == 1 }, 3*time.Second, 10*time.Millisecond)

	select {
	case msg := <-events:
		t.Fatalf("Unexpected message %s", msg.Type)
	case <-time.After(100 * time.Millisecond):
	}
}

func Test_Watcher_IgnoresOtherFiles(t *testing.T) {
	b, events := newBus(t)

	path, _ := startWatcher(t, func(string) (*config.Config, error) { return config.DefaultConfig(), nil }, b)

	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "notes.txt"), []byte("hi"), 0600))

	select {
	case msg := <-events:
		t.Fatalf("Unexpected message %s", msg.Type)
	case <-time.After(config.WatchDebounce + 200*time.Millisecond):
	}
}

func Test_Watcher_CloseIsIdempotent(t *testing.T) {
	b, _ := newBus(t)

	_, w := startWatcher(t, func(string) (*config.Config, error) { return config.DefaultConfig(), nil }, b)

	w.Close()
	w.Close()
}

func Test_Watcher_StopsWithContext(t *testing.T) {
	b, events := newBus(t)

	dir := t.TempDir()
	path := filepath.Join(dir, config.FileName)

	w, err := NewWatcher(path, func(string) (*config.Config, error) { return config.DefaultConfig(), nil }, b, newMockLogger(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))

	cancel()
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0600))

	select {
	case msg := <-events:
		t.Fatalf("Unexpected message %s", msg.Type)
	case <-time.After(config.WatchDebounce + 200*time.Millisecond):
	}
}

func Test_NewWatcher_MissingDirectory(t *testing.T) {
	b, _ := newBus(t)

	w, err := NewWatcher(filepath.Join(t.TempDir(), "missing", config.FileName), config.LoadFile, b, newMockLogger(t))
	require.NoError(t, err)

	defer w.Close()

	assert.Error(t, w.Start(context.Background()))
}
