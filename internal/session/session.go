package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/careerbridge/assessment/internal/assessment"
	"github.com/careerbridge/assessment/internal/gateway"
)

// Status is the coarse lifecycle of a test session.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusSubmitted  Status = "submitted"
)

// Session is one user's live state for a single section: the response
// accumulator, review markers, current position, and elapsed time. It
// is owned by a single screen; the mutex exists only because the
// autosave ticker reads snapshots from its own goroutine.
type Session struct {
	mu        sync.Mutex
	bank      assessment.Bank
	responses *assessment.ResponseSet
	index     int
	status    Status
	startedAt time.Time
}

func New(bank assessment.Bank) *Session {
	return &Session{
		bank:      bank,
		responses: assessment.NewResponseSet(bank),
		status:    StatusNotStarted,
		startedAt: time.Now(),
	}
}

// Resume builds a session from a persisted snapshot. The snapshot is
// authoritative: it fully replaces the fresh accumulator and index.
// The index is clamped to the bank, since a stale snapshot may point
// past the end after a bank revision.
func Resume(bank assessment.Bank, snap gateway.Snapshot) *Session {
	s := New(bank)
	s.responses.Restore(snap.Responses)
	s.index = clampIndex(snap.CurrentIndex, len(bank.Questions))
	if s.responses.CompletionCount() > 0 {
		s.status = StatusInProgress
	}
	return s
}

func clampIndex(i, n int) int {
	if n == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func (s *Session) Bank() assessment.Bank { return s.bank }

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Answer records a response for a question and advances the session
// into in-progress. Submitted sessions are frozen.
func (s *Session) Answer(questionID string, a assessment.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusSubmitted {
		return fmt.Errorf("session already submitted")
	}
	if err := s.responses.Record(questionID, a); err != nil {
		return err
	}
	s.status = StatusInProgress
	return nil
}

func (s *Session) MarkForReview(questionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses.MarkForReview(questionID)
}

func (s *Session) QuestionStatus(questionID string) assessment.AnswerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.responses.Status(questionID)
}

// Navigate moves the current position to target, clamped to the bank.
func (s *Session) Navigate(target int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = clampIndex(target, len(s.bank.Questions))
	return s.index
}

func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

func (s *Session) CompletionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.responses.CompletionCount()
}

func (s *Session) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.responses.Progress()
}

// Snapshot captures answers and position for persistence.
func (s *Session) Snapshot() gateway.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gateway.Snapshot{
		Responses:    s.responses.Snapshot(),
		CurrentIndex: s.index,
	}
}

// Validate runs the local completeness check.
func (s *Session) Validate() assessment.ValidationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return assessment.Validate(s.bank, s.responses)
}

// Aggregate scores the current accumulator.
func (s *Session) Aggregate() (assessment.ScoreReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return assessment.Aggregate(s.bank, s.responses)
}

// ElapsedMinutes is the whole minutes since the session started.
func (s *Session) ElapsedMinutes() int {
	return int(time.Since(s.startedAt) / time.Minute)
}

func (s *Session) markSubmitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusSubmitted
}
