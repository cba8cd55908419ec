// Package mockstore persists local feature overrides ("mock configs").
//
// Store implements the typed Storage contract (Contains, Get*/Save* for long,
// double, string and boolean, Remove, Clear) on top of a small Backend
// interface. The Store owns key namespacing: feature keys are never written
// verbatim, they are replaced by DefaultKeyPrefix (or WithKeyPrefix) followed by
// the hex FNV-1a hash of the key. The hash is a namespacing choice and offers no
// secrecy.
//
// Each entry remembers its primitive type. Reading a key with a different type
// returns ErrTypeMismatch instead of coercing the value; reading an absent key
// returns the zero value, so callers distinguish "absent" from "zero" with
// Contains.
//
// # Backends
//
//   - MemoryBackend: map guarded by a mutex, for tests and throwaway sessions.
//   - FileBackend: a JSON document on disk, rewritten atomically on every change.
//   - RedisBackend: go-redis client, one JSON string per key, SCAN-based Clear.
//   - PostgresBackend: pgx pool and a mock_configs table created by goose migrations.
//   - MongoBackend: one document per key in a configurable collection.
//
// # Usage
//
//	store := mockstore.NewMemory()
//	_ = store.SaveLong(ctx, "max_items", 25)
//
//	ok, _ := store.Contains(ctx, "max_items") // true
//	n, _ := store.GetLong(ctx, "max_items")   // 25
//	_, err := store.GetBoolean(ctx, "max_items")
//	errors.Is(err, mockstore.ErrTypeMismatch) // true
//
// Open builds a Store from environment-driven Config:
//
//	var cfg mockstore.Config
//	_ = config.Load(&cfg)
//	store, err := mockstore.Open(ctx, cfg, log)
//	if err != nil {
//		// handle error
//	}
//	defer store.Close()
//
// Writes are last-write-wins; concurrent editors are not coordinated.
package mockstore
