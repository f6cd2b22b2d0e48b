package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g. memory) inside this directory.

import (
	"context"
	"errors"

	"libraryapi/internal/model"
)

// ErrNotFound is returned by stores when the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// InventoryStore holds the authoritative set of titles. Every read hands out
// deep copies, so callers can never mutate stored state directly — all
// mutation goes through the lending ledger, which writes back via Upsert.
type InventoryStore interface {
	// Get returns a copy of the title, or ErrNotFound.
	Get(ctx context.Context, id string) (*model.Title, error)

	// List returns copies of all titles ordered by title name ascending.
	List(ctx context.Context) ([]model.Title, error)

	// Upsert stores the given title, replacing any existing record with the
	// same ID. It never fails on unknown IDs.
	Upsert(ctx context.Context, t *model.Title) error

	// Remove deletes the title, or returns ErrNotFound for an unknown ID.
	Remove(ctx context.Context, id string) error

	// ReplaceAll swaps in a whole new title set. Used when restoring a
	// persisted checkpoint at startup.
	ReplaceAll(ctx context.Context, titles []model.Title) error
}

// HistoryLog is the append-only, newest-first sequence of completed lending
// events. Past entries are never mutated or deleted.
type HistoryLog interface {
	// Append adds an entry at the head of the log. It never fails.
	Append(ctx context.Context, e model.HistoryEntry) error

	// ListAll returns a copy of the log, newest first.
	ListAll(ctx context.Context) ([]model.HistoryEntry, error)

	// ListByHolder returns only the entries for the given holder, preserving
	// their relative order in the log.
	ListByHolder(ctx context.Context, holderID string) ([]model.HistoryEntry, error)

	// ReplaceAll swaps in a whole new log. Used when restoring a persisted
	// checkpoint at startup.
	ReplaceAll(ctx context.Context, entries []model.HistoryEntry) error
}
