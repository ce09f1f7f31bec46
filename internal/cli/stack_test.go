package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagarniyantran/civicnav/internal/config"
	"github.com/nagarniyantran/civicnav/internal/logging"
	"github.com/nagarniyantran/civicnav/pkg/adapters/memory"
	"github.com/nagarniyantran/civicnav/pkg/adapters/redis"
	"github.com/nagarniyantran/civicnav/pkg/domain"
	"github.com/nagarniyantran/civicnav/pkg/ports"
)

func TestOpenStack(t *testing.T) {
	logger := logging.NewNop()

	t.Run("memory", func(t *testing.T) {
		cfg := config.Default()
		stack, err := OpenStack(&cfg, logger)
		require.NoError(t, err)
		defer stack.Close()

		assert.IsType(t, &memory.Store{}, stack.Store)
		assert.Nil(t, stack.Locker)
		assert.Nil(t, stack.Backend)
	})

	t.Run("file", func(t *testing.T) {
		cfg := config.Default()
		cfg.Store.Driver = config.StoreFile
		cfg.Store.Path = t.TempDir()

		stack, err := OpenStack(&cfg, logger)
		require.NoError(t, err)
		defer stack.Close()

		manager := stack.NewManager(logger)
		_, err = manager.Create(context.Background(), "f1", domain.LanguageHindi)
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(cfg.Store.Path, "f1.json"))

		corrupt := `{"current_screen":"lobby","user_role":"citizen","language":"en","is_logged_in":false,"navigation_history":[]}`
		require.NoError(t, os.WriteFile(filepath.Join(cfg.Store.Path, "bad.json"), []byte(corrupt), 0644))
		_, err = manager.Load(context.Background(), "bad")
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := config.Default()
		cfg.Store.Driver = config.StoreRedis
		cfg.Redis.Addr = mr.Addr()

		stack, err := OpenStack(&cfg, logger)
		require.NoError(t, err)
		defer stack.Close()

		assert.IsType(t, &redis.Locker{}, stack.Locker)
		require.NotNil(t, stack.Locker)

		manager := stack.NewManager(logger)
		ctx := context.Background()
		_, err = manager.Create(ctx, "r1", domain.LanguageEnglish)
		require.NoError(t, err)

		state, err := manager.Load(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, domain.ScreenSplash, state.CurrentScreen)
		assert.True(t, mr.Exists(cfg.Redis.Prefix+"r1"))
	})

	t.Run("backend seed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "seed.yaml")
		require.NoError(t, os.WriteFile(path, []byte("reports:\n  - id: NM2024001\n    status: open\n"), 0644))

		cfg := config.Default()
		cfg.BackendSeed = path
		stack, err := OpenStack(&cfg, logger)
		require.NoError(t, err)
		require.NotNil(t, stack.Backend)

		records, err := stack.Backend.Fetch(context.Background(), "reports", ports.Filter{"status": "open"})
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("missing seed", func(t *testing.T) {
		cfg := config.Default()
		cfg.BackendSeed = filepath.Join(t.TempDir(), "missing.yaml")
		_, err := OpenStack(&cfg, logger)
		assert.Error(t, err)
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := config.Default()
		cfg.Store.Driver = "etcd"
		_, err := OpenStack(&cfg, logger)
		assert.Error(t, err)
	})
}
