// Package storage is the station's durable store: the settings table and
// the task queue, behind one Store interface.
//
// Drivers:
//   - "sqlite" (default): single database file, WAL mode
//   - "memory": process-local, for tests and dry runs
package storage
