package verification

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// ErrNoRecord is returned by a CodeStore when the phone has no record.
var ErrNoRecord = errors.New("verification record not found")

// Record is the outstanding challenge for one phone number.
type Record struct {
	Code      string    `json:"code"`
	Phone     string    `json:"phone"`
	OrderID   string    `json:"orderId"`
	ExpiresAt time.Time `json:"expiresAt"`
	Verified  bool      `json:"verified"`
}

// Expired reports whether the record is past its expiry at now.
func (r *Record) Expired(now time.Time) bool {
	return r.ExpiresAt.Before(now)
}

// CodeStore keeps at most one Record per phone; Set overwrites.
type CodeStore interface {
	Get(ctx context.Context, phone string) (*Record, error)
	Set(ctx context.Context, record Record) error
	// Delete is a no-op for an unknown phone.
	Delete(ctx context.Context, phone string) error
	// Sweep removes records expired at now and returns how many were removed.
	Sweep(ctx context.Context, now time.Time) (int, error)
}

// MemoryStore is a process-local CodeStore.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]Record
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) Get(_ context.Context, phone string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[phone]
	if !ok {
		return nil, ErrNoRecord
	}
	return &record, nil
}

// Set stores a copy of record whose strings do not alias caller memory.
func (s *MemoryStore) Set(_ context.Context, record Record) error {
	record.Phone = strings.Clone(record.Phone)
	record.OrderID = strings.Clone(record.OrderID)
	record.Code = strings.Clone(record.Code)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.Phone] = record
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, phone)
	return nil
}

func (s *MemoryStore) Sweep(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for phone, record := range s.records {
		if record.Expired(now) {
			delete(s.records, phone)
			removed++
		}
	}
	return removed, nil
}
