package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Record is one answered query as persisted by the recorder.
type Record struct {
	ID         uuid.UUID `json:"id"`
	Query      string    `json:"query"`
	Topic      string    `json:"topic"`
	Mode       string    `json:"mode"`
	Difficulty string    `json:"difficulty"`
	KeyPoints  []string  `json:"keyPoints"`
	AnsweredAt time.Time `json:"answeredAt"`
}

// Store defines persistence contract; an external DB implementation can replace this.
type Store interface {
	SaveRecord(ctx context.Context, rec Record) error
	ListRecent(ctx context.Context, limit int) ([]Record, error)
	Close() error
}
