package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"libraryapi/internal/repository"
	"libraryapi/internal/snapshot"
	"libraryapi/internal/storage"
)

// Checkpointer persists the whole service state (inventory + history log) as
// one blob and restores it at startup.
type Checkpointer interface {
	// SaveNow encodes the current state and writes it to the backend.
	SaveNow(ctx context.Context) error

	// Restore loads the last saved state into the stores. It reports false
	// with a nil error when no checkpoint exists yet.
	Restore(ctx context.Context) (bool, error)
}

type checkpointService struct {
	store   repository.InventoryStore
	history repository.HistoryLog
	snaps   storage.Snapshotter
	key     string
	logger  *zap.Logger
	now     func() time.Time

	// Serializes saves so two back-to-back mutations cannot interleave their
	// writes and persist the older state last.
	mu sync.Mutex
}

// NewCheckpointService wires the stores to a snapshot backend under one key.
func NewCheckpointService(
	store repository.InventoryStore,
	history repository.HistoryLog,
	snaps storage.Snapshotter,
	key string,
	logger *zap.Logger,
) Checkpointer {
	return &checkpointService{
		store:   store,
		history: history,
		snaps:   snaps,
		key:     key,
		logger:  logger,
		now:     time.Now,
	}
}

func (c *checkpointService) SaveNow(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	titles, err := c.store.List(ctx)
	if err != nil {
		return err
	}
	entries, err := c.history.ListAll(ctx)
	if err != nil {
		return err
	}

	data, err := snapshot.Encode(&snapshot.State{
		SavedAt: c.now().UTC(),
		Titles:  titles,
		History: entries,
	})
	if err != nil {
		return err
	}

	return c.snaps.Save(ctx, c.key, data)
}

func (c *checkpointService) Restore(ctx context.Context) (bool, error) {
	data, err := c.snaps.Load(ctx, c.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return false, nil
		}
		return false, err
	}

	state, err := snapshot.Decode(data)
	if err != nil {
		return false, err
	}

	if err := c.store.ReplaceAll(ctx, state.Titles); err != nil {
		return false, err
	}
	if err := c.history.ReplaceAll(ctx, state.History); err != nil {
		return false, err
	}

	c.logger.Info("restored state from checkpoint",
		zap.Time("saved_at", state.SavedAt),
		zap.Int("titles", len(state.Titles)),
		zap.Int("history_entries", len(state.History)),
	)
	return true, nil
}
