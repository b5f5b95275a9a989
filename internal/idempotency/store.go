// Package idempotency de-duplicates checkout confirmations within a session.
package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultTTL is how long a key is remembered when no window is configured.
const DefaultTTL = 48 * time.Hour

// ErrRecordNotFound is returned by MarkDone and MarkFailed for an unknown or expired key.
var ErrRecordNotFound = errors.New("idempotency record not found")

// Store keeps idempotency records in memory. It is owned by the session
// goroutine and is not safe for concurrent use.
type Store struct {
	records   map[string]*Record
	ttlWindow time.Duration // default TTL window when creating entries
	nowFunc   func() time.Time
	logger    *zap.Logger
}

// NewStore returns a configured Store.
// ttlWindow: how long a key is remembered (e.g., 48*time.Hour); <= 0 uses DefaultTTL.
func NewStore(ttlWindow time.Duration, logger *zap.Logger) *Store {
	if ttlWindow <= 0 {
		ttlWindow = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		records:   map[string]*Record{},
		ttlWindow: ttlWindow,
		nowFunc:   time.Now,
		logger:    logger.Named("idempotency"),
	}
}

// CreateIfNotExists creates a record with status IN_PROGRESS if the key does not exist.
// Returns (created=true, nil) if successfully created.
// Returns (created=false, nil) if the record already exists (caller should Get to inspect).
func (s *Store) CreateIfNotExists(ctx context.Context, key, orderID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	now := s.nowFunc()
	if _, ok := s.lookup(key, now); ok {
		return false, nil
	}
	s.records[key] = &Record{
		Key:       key,
		Status:    StatusInProgress,
		OrderID:   orderID,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.ttlWindow),
	}
	s.logger.Debug("idempotency key created", zap.String("key", key), zap.String("order_id", orderID))
	return true, nil
}

// Get retrieves a record by key. If not found or expired, returns (nil, nil).
func (s *Store) Get(ctx context.Context, key string) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec, ok := s.lookup(key, s.nowFunc())
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

// MarkDone sets status to DONE and records the order placed for the key.
func (s *Store) MarkDone(ctx context.Context, key, orderID string) error {
	return s.update(ctx, key, func(r *Record) {
		r.Status = StatusDone
		r.OrderID = orderID
	})
}

// MarkFailed marks the record as FAILED and stores a note.
func (s *Store) MarkFailed(ctx context.Context, key, note string) error {
	return s.update(ctx, key, func(r *Record) {
		r.Status = StatusFailed
		r.Note = note
	})
}

func (s *Store) update(ctx context.Context, key string, apply func(*Record)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	now := s.nowFunc()
	rec, ok := s.lookup(key, now)
	if !ok {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, key)
	}
	apply(rec)
	rec.UpdatedAt = now
	s.logger.Debug("idempotency key updated", zap.String("key", key), zap.String("status", rec.Status))
	return nil
}

// lookup returns the live record for key, dropping it if it has expired.
func (s *Store) lookup(key string, now time.Time) (*Record, bool) {
	rec, ok := s.records[key]
	if !ok {
		return nil, false
	}
	if rec.expired(now) {
		delete(s.records, key)
		return nil, false
	}
	return rec, true
}
