// Package store provides a SQLite-backed catalog of translated queries.
//
// Each query is stored once, keyed by the content hash of its canonical
// text record, alongside its canonical JSON dump and the host source it was
// built from. Every Put is also logged as a request with a UUIDv7 id, so
// the catalog records how often and in what order a query was submitted.
//
// All ordering uses a logical seq column, never wall time, and every
// listing is ORDER BY seq ASC, id COLLATE BINARY ASC.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON
package store
