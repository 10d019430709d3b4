// Package store provides implementations of the hello.Store persistence
// capability: a Redis adapter for production and an in-memory store for the
// self-contained mode and tests. Both keep the same contract: one record per
// username, full replacement on upsert, (nil, nil) for absence.
package store
