package store

import "context"

// NoOpStore keeps nothing. Used when no database is configured; history
// reads come back empty.
type NoOpStore struct{}

// NewNoOpStore creates a new no-op store instance
func NewNoOpStore() *NoOpStore {
	return &NoOpStore{}
}

// SaveRecord discards the record and always succeeds
func (s *NoOpStore) SaveRecord(ctx context.Context, rec Record) error {
	return nil
}

// ListRecent always returns an empty history
func (s *NoOpStore) ListRecent(ctx context.Context, limit int) ([]Record, error) {
	return []Record{}, nil
}

// Close does nothing and always succeeds
func (s *NoOpStore) Close() error {
	return nil
}
