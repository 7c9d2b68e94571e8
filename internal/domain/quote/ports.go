package quote

import (
	"context"
	"time"
)

// Record is a saved quote: its inputs and the last recompute
type Record struct {
	ID        string
	Title     string
	State     State
	Result    Result
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository persists quote records
type Repository interface {
	Save(ctx context.Context, record *Record) error
	FindByID(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context) ([]*Record, error)
	Delete(ctx context.Context, id string) error
}
