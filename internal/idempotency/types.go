package idempotency

import "time"

// Status values for idempotency entries
const (
	StatusInProgress = "IN_PROGRESS"
	StatusDone       = "DONE"
	StatusFailed     = "FAILED"
)

// Record is the state kept for one checkout confirmation key.
type Record struct {
	Key       string
	Status    string
	OrderID   string
	CreatedAt time.Time
	UpdatedAt time.Time
	ExpiresAt time.Time
	Note      string
}

func (r *Record) expired(now time.Time) bool {
	return !r.ExpiresAt.IsZero() && !now.Before(r.ExpiresAt)
}
