// Package xp holds the learner's experience-point total and keeps it in
// sync with durable storage.
package xp

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"
)

// Key is the storage key holding the XP total as a base-10 integer.
const Key = "xp_total"

// PerCorrect is the XP awarded for each correctly answered question.
const PerCorrect = 25

// Store is the persistence port for the counter.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}

// ForScore returns the XP earned for score correct answers.
func ForScore(score int) int {
	if score <= 0 {
		return 0
	}
	return score * PerCorrect
}

// Counter is the single durable XP total. It is loaded once and written
// back on every change.
type Counter struct {
	store  Store
	logger *zap.Logger

	mu    sync.Mutex
	total int
}

// Load reads the total from store. A missing key, an unparsable or
// negative value, and a storage error all yield 0; they are logged and
// never returned as errors.
func Load(ctx context.Context, store Store, logger *zap.Logger) *Counter {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Counter{store: store, logger: logger}

	raw, ok, err := store.Get(ctx, Key)
	switch {
	case err != nil:
		logger.Warn("xp load failed, starting from zero", zap.Error(err))
	case !ok:
		logger.Debug("no stored xp, starting from zero")
	default:
		n, perr := strconv.Atoi(raw)
		if perr != nil || n < 0 {
			logger.Warn("stored xp unusable, starting from zero", zap.String("value", raw))
			break
		}
		c.total = n
	}
	return c
}

// Total returns the current XP total.
func (c *Counter) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Add increases the total by delta and persists it. Non-positive deltas
// are ignored. The in-memory total is updated even if saving fails.
func (c *Counter) Add(ctx context.Context, delta int) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if delta <= 0 {
		return c.total, nil
	}
	c.total += delta
	return c.total, c.save(ctx)
}

// Reset sets the total to zero and persists it.
func (c *Counter) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.total = 0
	return c.save(ctx)
}

func (c *Counter) save(ctx context.Context) error {
	if err := c.store.Set(ctx, Key, strconv.Itoa(c.total)); err != nil {
		c.logger.Error("xp save failed", zap.Int("total", c.total), zap.Error(err))
		return fmt.Errorf("save xp: %w", err)
	}
	return nil
}

// MemStore is an in-memory Store.
type MemStore struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string]string)}
}

func (m *MemStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
