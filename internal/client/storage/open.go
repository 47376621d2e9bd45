package storage

import (
	"context"

	"github.com/dmitrijs2005/socialfeed/internal/filex"
	"github.com/dmitrijs2005/socialfeed/internal/logging"
)

// OpenStores opens the tab-scoped Badger store and the durable SQLite store
// at durablePath, each wrapped in a SafeStore. A backend that cannot be
// opened at all is replaced by a MemoryStore; the client keeps working, it
// just forgets state on exit.
func OpenStores(ctx context.Context, durablePath string, log logging.Logger) Stores {
	if log == nil {
		log = logging.Discard()
	}

	var tab Store
	if b, err := OpenTabStore(); err != nil {
		log.Warn(ctx, "tab store unavailable, using memory", "error", err)
		tab = NewMemoryStore()
	} else {
		tab = b
	}

	var durable Store
	path, err := filex.EnsureParentDir(durablePath)
	if err != nil {
		log.Warn(ctx, "durable store unavailable, using memory", "path", durablePath, "error", err)
		durable = NewMemoryStore()
	} else if s, err := OpenSQLite(ctx, path); err != nil {
		log.Warn(ctx, "durable store unavailable, using memory", "path", durablePath, "error", err)
		durable = NewMemoryStore()
	} else {
		durable = s
	}

	return Stores{
		Tab:     NewSafeStore("tab", tab, log),
		Durable: NewSafeStore("durable", durable, log),
	}
}
