// Package latchdb is the transactional buffer pool and storage core of a
// teaching-grade relational database engine: page-granularity two-phase
// locking, deadlock detection, an LRU page cache with NO-STEAL eviction,
// and FORCE commit/abort, composed under a single coordinator mutex.
//
// latchdb does not parse SQL, plan queries, or know what a tuple looks
// like. It exposes four operations — GetPage, InsertTuple, DeleteTuple, and
// TransactionComplete — that a relational operator layer calls against an
// *Engine, the explicit context that replaces the global Database/
// BufferPool singleton pattern older engines in this lineage used.
package latchdb

import (
	"latchdb/pkg/logging"
	"latchdb/pkg/memory"
	"latchdb/pkg/primitives"
	"latchdb/pkg/storage/page"
)

// Config configures a new Engine. CacheCapacity is the number of
// 4096-byte frames the page cache may hold. Logging is optional: when set,
// Open builds the Engine's logging.Handle from it; when nil, Open falls
// back to logging.Default so Engine.Logger is always usable.
type Config struct {
	CacheCapacity int
	Logging       *logging.Config
}

// DefaultCacheCapacity is used when Config.CacheCapacity is zero or negative.
const DefaultCacheCapacity = 128

// Engine owns the coordinator, the page store beneath it, and the logging
// Handle both of them write through. Operators are constructed with a
// reference to an Engine rather than reaching for package-level state.
type Engine struct {
	Coordinator *memory.Coordinator
	Logger      *logging.Handle
	store       *page.Store
}

// Open constructs an Engine with an empty table catalog. Tables are added
// with RegisterTable before any page belonging to them is requested.
func Open(cfg Config) (*Engine, error) {
	var log *logging.Handle
	if cfg.Logging != nil {
		h, err := logging.Open(*cfg.Logging)
		if err != nil {
			return nil, err
		}
		log = h
	} else {
		log = logging.Default()
	}

	capacity := cfg.CacheCapacity
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}

	store := page.NewStore()
	return &Engine{
		Coordinator: memory.NewCoordinator(store, memory.Config{CacheCapacity: capacity}, log),
		Logger:      log,
		store:       store,
	}, nil
}

// Close releases the engine's logging resources, such as an open log file
// handle from a Logging config passed to Open. Safe to call on an Engine
// that was opened without a Logging config.
func (e *Engine) Close() error {
	return e.Logger.Close()
}

// RegisterTable adds a heap file's backing path to the catalog and returns
// its TableID, the hash of its absolute path.
func (e *Engine) RegisterTable(path primitives.Filepath) (primitives.TableID, error) {
	return e.store.RegisterTable(path)
}

// BeginTransaction mints a fresh transaction identity. The caller is
// responsible for eventually invoking Coordinator.TransactionComplete with
// it, whether or not any page was ever fetched under it.
func (e *Engine) BeginTransaction() *primitives.TransactionID {
	return primitives.NewTransactionID()
}
