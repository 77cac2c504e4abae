package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/careerbridge/assessment/internal/assessment"
)

// Snapshot is the persisted partial state for one (user, section) key:
// the answers so far plus the question the user was on. Review markers
// are deliberately absent.
type Snapshot struct {
	Responses    map[string]assessment.Answer `json:"responses"`
	CurrentIndex int                          `json:"current_index"`
}

// SectionOverview is one section's server-side view on test entry.
type SectionOverview struct {
	Status   string    `json:"status"` // not_started|in_progress|submitted
	Snapshot *Snapshot `json:"snapshot,omitempty"`
}

// TestOverview is the getOrCreateTest response: completion flags and
// any persisted partial responses, per section.
type TestOverview struct {
	UserID   string                                  `json:"user_id"`
	Sections map[assessment.Section]SectionOverview `json:"sections"`
}

// SubmittedResult is the authoritative stored result returned by the
// backend on submission.
type SubmittedResult struct {
	ID               string                 `json:"id"`
	Section          assessment.Section     `json:"section"`
	Report           assessment.ScoreReport `json:"report"`
	CompletionPct    float64                `json:"completion_pct"`
	Status           string                 `json:"status"`
	TimeSpentMinutes int                    `json:"time_spent_minutes"`
	SubmittedAt      time.Time              `json:"submitted_at"`
}

// Gateway is the remote contract the session engine consumes. Backed
// by the HTTP client in production and by fakes in tests.
type Gateway interface {
	GetOrCreateTest(ctx context.Context) (TestOverview, error)
	SaveProgress(ctx context.Context, section assessment.Section, snap Snapshot) error
	ValidateSection(ctx context.Context, section assessment.Section, responses map[string]assessment.Answer) (assessment.ValidationResult, error)
	SubmitResults(ctx context.Context, section assessment.Section, responses map[string]assessment.Answer, timeSpentMinutes int) (SubmittedResult, error)
}

// ProgressSaver is the narrow slice of Gateway the autosaver needs.
type ProgressSaver interface {
	SaveProgress(ctx context.Context, section assessment.Section, snap Snapshot) error
}

// Kind classifies a remote failure. Raw transport errors never reach
// the user; they are mapped onto one of these first.
type Kind int

const (
	KindNetwork    Kind = iota // timeout or connectivity loss; retry
	KindAuth                   // session expired; re-login required
	KindValidation             // server rejected the payload
	KindServer                 // 5xx; retry after a delay
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	}
	return "unknown"
}

// FieldError maps a server-side rejection back onto a question.
type FieldError struct {
	QuestionID string `json:"question_id,omitempty"`
	Message    string `json:"message"`
}

// Error is a classified remote failure.
type Error struct {
	Kind        Kind
	Status      int // HTTP status, 0 for transport errors
	Msg         string
	FieldErrors []FieldError
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s error (http %d): %s", e.Kind, e.Status, e.Msg)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Msg)
}

// Retryable reports whether re-invoking the same call can succeed
// without user intervention.
func (e *Error) Retryable() bool {
	return e.Kind == KindNetwork || e.Kind == KindServer
}
