package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nao1215/safelink/internal/model"
)

// BlockedSlot reads and writes the blocked analysis record.
type BlockedSlot struct {
	store Store
	key   string
}

// NewBlockedSlot returns the accessor for model.BlockedAnalysisKey in store.
func NewBlockedSlot(store Store) *BlockedSlot {
	return &BlockedSlot{store: store, key: model.BlockedAnalysisKey}
}

// Key returns the storage key of the slot.
func (s *BlockedSlot) Key() string {
	return s.key
}

// Save writes record, overwriting any unconsumed record.
func (s *BlockedSlot) Save(ctx context.Context, record model.BlockedAnalysisRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode blocked analysis: %w", err)
	}
	return s.store.Set(ctx, s.key, data)
}

// Load returns the stored record, or nil when the slot is empty.
func (s *BlockedSlot) Load(ctx context.Context) (*model.BlockedAnalysisRecord, error) {
	data, err := s.store.Get(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var record model.BlockedAnalysisRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	return &record, nil
}

// SavedAt returns when the stored record was written. It reports false
// when the slot is empty or the store does not record write times.
func (s *BlockedSlot) SavedAt(ctx context.Context) (time.Time, bool) {
	ts, ok := s.store.(Timestamped)
	if !ok {
		return time.Time{}, false
	}
	at, err := ts.UpdatedAt(ctx, s.key)
	if err != nil || at.IsZero() {
		return time.Time{}, false
	}
	return at, true
}

// Clear empties the slot.
func (s *BlockedSlot) Clear(ctx context.Context) error {
	return s.store.Remove(ctx, s.key)
}
