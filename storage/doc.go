// Package storage defines the report cache abstraction.
//
// Public constructors in backend packages return the storage.ReportCache
// interface so callers never couple to a specific store. The badger
// subpackage provides the persistent implementation plus an in-memory
// variant for tests.
package storage
