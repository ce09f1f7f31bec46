package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nagarniyantran/civicnav/internal/config"
	"github.com/nagarniyantran/civicnav/pkg/adapters/file"
	"github.com/nagarniyantran/civicnav/pkg/adapters/memory"
	"github.com/nagarniyantran/civicnav/pkg/adapters/redis"
	"github.com/nagarniyantran/civicnav/pkg/domain"
	"github.com/nagarniyantran/civicnav/pkg/persistence/middleware"
	"github.com/nagarniyantran/civicnav/pkg/ports"
	"github.com/nagarniyantran/civicnav/pkg/session"
)

// Stack is the persistence wiring selected by the configuration.
type Stack struct {
	Store ports.StateStore
	// Locker is set for the redis driver only.
	Locker ports.DistributedLocker
	// Backend is nil unless a seed file is configured.
	Backend ports.Backend

	lockTTL time.Duration
	closers []func() error
}

// OpenStack builds the store, locker and backend described by cfg.
// Stores outside the process are wrapped with state validation.
func OpenStack(cfg *config.Config, logger *slog.Logger) (*Stack, error) {
	stack := &Stack{}

	switch cfg.Store.Driver {
	case config.StoreMemory:
		stack.Store = memory.NewStore()
	case config.StoreFile:
		stack.Store = middleware.NewValidationMiddleware()(file.New(cfg.Store.Path))
	case config.StoreRedis:
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		stack.Store = middleware.NewValidationMiddleware()(store)
		stack.Locker = redis.NewLocker(store.Client(), store.Prefix())
		stack.closers = append(stack.closers, store.Close)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	logger.Debug("session store ready", "driver", cfg.Store.Driver)

	if cfg.BackendSeed != "" {
		backend, err := memory.LoadBackend(cfg.BackendSeed)
		if err != nil {
			_ = stack.Close()
			return nil, err
		}
		stack.Backend = backend
		logger.Debug("backend seeded", "path", cfg.BackendSeed, "collections", backend.Collections())
	}

	stack.lockTTL = cfg.Redis.LockTTL
	return stack, nil
}

// NewManager creates a session manager over the stack with the given hooks merged.
func (s *Stack) NewManager(logger *slog.Logger, hooks ...domain.LifecycleHooks) *session.Manager {
	opts := []session.Option{
		session.WithLogger(logger),
		session.WithLifecycleHooks(domain.MergeHooks(hooks...)),
	}
	if s.Locker != nil {
		opts = append(opts, session.WithLocker(s.Locker))
		opts = append(opts, session.WithLockTTL(s.lockTTL))
	}
	return session.NewManager(s.Store, opts...)
}

// Close releases the connections held by the stack.
func (s *Stack) Close() error {
	var errs []error
	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
