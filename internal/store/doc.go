// Package store defines the persistence interfaces the application depends
// on: the status cache, the track document store, and the blob store. The
// concrete implementations live under internal/platform; services accept
// these interfaces so tests can substitute in-memory doubles.
package store
