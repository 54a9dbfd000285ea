// Package store persists the client session between runs.
//
// A Store is a small key/value interface (Get/Set/Remove) with three
// implementations:
//
//   - SQLiteStore: a local file (default), schema applied with goose
//   - MemoryStore: process-local, used by tests and "-s memory"
//   - RedisStore:  a shared Redis instance, keys namespaced by prefix
//
// Only two keys are used by the session manager: KeyToken and KeyUser.
// Get returns (nil, nil) for an absent key.
package store
