package store

import (
	"context"
	"errors"
	"sync"

	"github.com/careerbridge/assessment/internal/assessment"
)

var ErrNotFound = errors.New("not found")

// Snapshot is a persisted partial session, keyed (user, section).
// Last writer wins: a single user on a single device is the expected
// access pattern, so no optimistic concurrency is kept.
type Snapshot struct {
	UserID       string                       `json:"user_id"`
	Section      assessment.Section           `json:"section"`
	Responses    map[string]assessment.Answer `json:"responses"`
	CurrentIndex int                          `json:"current_index"`
	UpdatedAt    int64                        `json:"updated_at"`
}

// Result is a submitted section's authoritative stored outcome.
type Result struct {
	ID               string                 `json:"id"`
	UserID           string                 `json:"user_id"`
	Section          assessment.Section     `json:"section"`
	Report           assessment.ScoreReport `json:"report"`
	TimeSpentMinutes int                    `json:"time_spent_minutes"`
	CompletionPct    float64                `json:"completion_pct"`
	Status           string                 `json:"status"`
	SubmittedAt      int64                  `json:"submitted_at"`
}

type Store interface {
	SaveSnapshot(ctx context.Context, snap Snapshot) error
	GetSnapshot(ctx context.Context, userID string, section assessment.Section) (Snapshot, error)
	DeleteSnapshot(ctx context.Context, userID string, section assessment.Section) error
	ListSnapshots(ctx context.Context, userID string) ([]Snapshot, error)

	PutResult(ctx context.Context, r Result) error
	GetResult(ctx context.Context, userID string, section assessment.Section) (Result, error)
}

type memoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]Snapshot
	results   map[string]Result
}

// NewInMemoryStore backs tests and offline single-user runs.
func NewInMemoryStore() Store {
	return &memoryStore{
		snapshots: map[string]Snapshot{},
		results:   map[string]Result{},
	}
}

func key(userID string, section assessment.Section) string {
	return userID + "|" + string(section)
}

func (m *memoryStore) SaveSnapshot(_ context.Context, snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[key(snap.UserID, snap.Section)] = snap
	return nil
}

func (m *memoryStore) GetSnapshot(_ context.Context, userID string, section assessment.Section) (Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.snapshots[key(userID, section)]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return s, nil
}

func (m *memoryStore) DeleteSnapshot(_ context.Context, userID string, section assessment.Section) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, key(userID, section))
	return nil
}

func (m *memoryStore) ListSnapshots(_ context.Context, userID string) ([]Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Snapshot
	for _, s := range m.snapshots {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

// PutResult keeps the first stored result for a key; results are
// immutable once written, matching the SQL store's ON CONFLICT DO
// NOTHING.
func (m *memoryStore) PutResult(_ context.Context, r Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key(r.UserID, r.Section)
	if _, ok := m.results[k]; ok {
		return nil
	}
	m.results[k] = r
	return nil
}

func (m *memoryStore) GetResult(_ context.Context, userID string, section assessment.Section) (Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.results[key(userID, section)]
	if !ok {
		return Result{}, ErrNotFound
	}
	return r, nil
}
