package storage

import (
	"context"
	"maps"
	"sync"

	"github.com/dmitrijs2005/socialfeed/internal/logging"
)

// pendingWrite is a write the backend refused. A deleted entry hides whatever
// the backend still holds for that key.
type pendingWrite struct {
	value   []byte
	deleted bool
}

// SafeStore never returns an error. Every call goes to the wrapped backend;
// when one fails it is logged and the call is served from memory instead.
// Writes the backend refused are kept in memory and take precedence on
// reads until the backend accepts a later write of the same key.
type SafeStore struct {
	name    string
	backend Store
	log     logging.Logger

	mu       sync.Mutex
	pending  map[string]pendingWrite
	cleared  bool // a Clear failed: backend contents are hidden
	degraded bool // the last backend call failed
}

func NewSafeStore(name string, backend Store, log logging.Logger) *SafeStore {
	if log == nil {
		log = logging.Discard()
	}
	return &SafeStore{
		name:    name,
		backend: backend,
		pending: make(map[string]pendingWrite),
		log:     log.With("store", name),
	}
}

// Degraded reports whether the most recent backend call failed.
func (s *SafeStore) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

// result records the outcome of a backend call. The warning is logged once
// per outage; recovery is logged at info.
func (s *SafeStore) result(ctx context.Context, op, key string, err error) {
	s.mu.Lock()
	was := s.degraded
	s.degraded = err != nil
	s.mu.Unlock()

	switch {
	case err != nil && !was:
		s.log.Warn(ctx, "storage unavailable, continuing in memory", "op", op, "key", key, "error", err)
	case err != nil:
		s.log.Debug(ctx, "storage error ignored", "op", op, "key", key, "error", err)
	case was:
		s.log.Info(ctx, "storage recovered", "op", op)
	}
}

func (s *SafeStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	p, ok := s.pending[key]
	cleared := s.cleared
	s.mu.Unlock()

	if ok {
		if p.deleted {
			return nil, nil
		}
		return append([]byte(nil), p.value...), nil
	}
	if cleared {
		return nil, nil
	}

	v, err := s.backend.Get(ctx, key)
	s.result(ctx, "get", key, err)
	if err != nil {
		return nil, nil
	}
	return v, nil
}

func (s *SafeStore) Set(ctx context.Context, key string, value []byte) error {
	err := s.backend.Set(ctx, key, value)
	s.result(ctx, "set", key, err)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settle(key, value, err)
	return nil
}

func (s *SafeStore) SetMany(ctx context.Context, values map[string][]byte) error {
	err := SetMany(ctx, s.backend, values)
	s.result(ctx, "set_many", "", err)

	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range values {
		s.settle(k, v, err)
	}
	return nil
}

// settle updates the pending entry for key after a write. Must hold mu.
func (s *SafeStore) settle(key string, value []byte, err error) {
	if err != nil || s.cleared {
		s.pending[key] = pendingWrite{value: append([]byte(nil), value...)}
		return
	}
	delete(s.pending, key)
}

func (s *SafeStore) Delete(ctx context.Context, key string) error {
	err := s.backend.Delete(ctx, key)
	s.result(ctx, "delete", key, err)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.pending[key] = pendingWrite{deleted: true}
	} else {
		delete(s.pending, key)
	}
	return nil
}

func (s *SafeStore) List(ctx context.Context) (map[string][]byte, error) {
	s.mu.Lock()
	cleared := s.cleared
	s.mu.Unlock()

	out := make(map[string][]byte)
	if !cleared {
		m, err := s.backend.List(ctx)
		s.result(ctx, "list", "", err)
		if err == nil {
			maps.Copy(out, m)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for k, p := range s.pending {
		if p.deleted {
			delete(out, k)
			continue
		}
		out[k] = append([]byte(nil), p.value...)
	}
	return out, nil
}

func (s *SafeStore) Clear(ctx context.Context) error {
	err := s.backend.Clear(ctx)
	s.result(ctx, "clear", "", err)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = make(map[string]pendingWrite)
	s.cleared = err != nil
	return nil
}

// Close closes the backend; a close error is logged, not returned.
func (s *SafeStore) Close() error {
	if err := s.backend.Close(); err != nil {
		s.log.Warn(context.Background(), "close storage", "error", err)
	}
	return nil
}
