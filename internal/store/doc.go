// Package store provides SQLite-backed storage for named UTC instants.
//
// Instants are stored in their exact (mjd, nano_of_day) form, so leap-second
// instants survive a round trip. The leap-second rules are not stored: rows
// are re-validated against the store's rules when read.
//
// # Ordering
//
//   - seq INTEGER records insertion order
//   - List and Between order by mjd, nano_of_day, then id COLLATE BINARY,
//     so results are identical across runs
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Record ids are UUIDv7 by default. Labels are NFC-normalized on write.
package store
