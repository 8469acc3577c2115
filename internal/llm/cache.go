package llm

import (
	"context"
	"log/slog"
	"sync"
)

// Cache keeps a single loaded session keyed by model path, so a model is
// loaded once and reused across chat requests. Asking for a different path
// retires the previous session; it is closed once every holder has released it.
type Cache struct {
	mu       sync.Mutex
	loader   Loader
	defaults LoadOptions
	current  *cachedSession
}

type cachedSession struct {
	session Session
	refs    int
	retired bool
}

func NewCache(loader Loader, defaults LoadOptions) *Cache {
	return &Cache{loader: loader, defaults: defaults.withDefaults()}
}

// Acquire returns the session for modelPath, loading it if needed. The caller
// must call release when it is done with the session.
func (c *Cache) Acquire(ctx context.Context, modelPath string) (Session, func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil || c.current.session.ModelPath() != modelPath {
		if c.current != nil {
			c.retire(c.current)
			c.current = nil
		}

		opts := c.defaults
		opts.ModelPath = modelPath
		s, err := c.loader.Load(ctx, opts)
		if err != nil {
			return nil, nil, err
		}
		c.current = &cachedSession{session: s}
	}

	entry := c.current
	entry.refs++
	var once sync.Once
	release := func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			entry.refs--
			if entry.retired && entry.refs == 0 {
				closeSession(entry.session)
			}
		})
	}
	return entry.session, release, nil
}

// retire closes the entry now if nobody holds it, otherwise on last release.
// Callers hold c.mu.
func (c *Cache) retire(entry *cachedSession) {
	entry.retired = true
	if entry.refs == 0 {
		closeSession(entry.session)
	}
}

func closeSession(s Session) {
	if err := s.Close(); err != nil {
		slog.Warn("Failed to close model session", "model", s.ModelPath(), "error", err)
	}
}

// Close retires the cached session. A session still in use is closed when
// its last holder releases it.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	c.retire(c.current)
	c.current = nil
	return nil
}
