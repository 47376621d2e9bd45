package storage

import (
	"context"
	"errors"
)

// Keys shared by the API client, the auth service and the navigator.
const (
	KeyAuthToken   = "authToken"
	KeyCurrentUser = "currentUser"
	KeyMainView    = "appMainView"
	KeyProfileUser = "appProfileUser"
	KeyPostID      = "appPostId"
)

var ErrClosed = errors.New("store closed")

// Store is a small key/value store. Get returns (nil, nil) for an absent key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
	Close() error
}

// batchSetter is implemented by stores that can write several keys
// atomically.
type batchSetter interface {
	SetMany(ctx context.Context, values map[string][]byte) error
}

// SetMany writes all values, atomically when the store supports it.
func SetMany(ctx context.Context, s Store, values map[string][]byte) error {
	if b, ok := s.(batchSetter); ok {
		return b.SetMany(ctx, values)
	}
	for k, v := range values {
		if err := s.Set(ctx, k, v); err != nil {
			return err
		}
	}
	return nil
}

// DeleteMany removes every key, stopping at the first error.
func DeleteMany(ctx context.Context, s Store, keys ...string) error {
	for _, k := range keys {
		if err := s.Delete(ctx, k); err != nil {
			return err
		}
	}
	return nil
}

// Stores is the pair of backends the client chooses between.
type Stores struct {
	// Tab is cleared when the client process exits.
	Tab Store
	// Durable survives restarts until explicitly cleared.
	Durable Store
}

// Pick returns Durable when remember is true and Tab otherwise, together
// with the store that is not picked.
func (s Stores) Pick(remember bool) (chosen, other Store) {
	if remember {
		return s.Durable, s.Tab
	}
	return s.Tab, s.Durable
}

func (s Stores) Close() error {
	return errors.Join(s.Tab.Close(), s.Durable.Close())
}

// NewMemoryStores returns a pair of fresh MemoryStores.
func NewMemoryStores() Stores {
	return Stores{Tab: NewMemoryStore(), Durable: NewMemoryStore()}
}
