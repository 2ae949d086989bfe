// Package kv provides the key/value namespaces the client keeps its
// credentials in.
//
// Backends:
//   - SQLiteRepository: a local file database (pure-Go modernc driver), schema
//     managed by embedded goose migrations. This is the default.
//   - RedisRepository: keys under a prefix in a Redis database, for
//     deployments where the client runs next to a shared Redis.
//   - MemoryRepository: process-local map, used by tests and throwaway runs.
//
// Open picks a backend from Options.
package kv
