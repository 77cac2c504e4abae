package assessment

import "fmt"

// AnswerStatus is the derived per-question state shown by navigators
// and progress grids.
type AnswerStatus string

const (
	StatusUnanswered       AnswerStatus = "unanswered"
	StatusAnswered         AnswerStatus = "answered"
	StatusAnsweredNegative AnswerStatus = "answered-negative" // boolean scale, "no"
	StatusMarkedForReview  AnswerStatus = "marked-for-review"
)

// ResponseSet accumulates answers for one bank, plus the review marker
// set. Answers may be revised, recorded out of order, or left missing.
// Review markers are UI-session scoped and never persisted.
type ResponseSet struct {
	bank    Bank
	answers map[string]Answer
	review  map[string]struct{}
}

func NewResponseSet(bank Bank) *ResponseSet {
	return &ResponseSet{
		bank:    bank,
		answers: map[string]Answer{},
		review:  map[string]struct{}{},
	}
}

// Record inserts or overwrites the answer for a question. Answering a
// question clears its review marker: the flag means "come back to
// this", and coming back is exactly what just happened.
func (rs *ResponseSet) Record(questionID string, a Answer) error {
	if _, ok := rs.bank.QuestionByID(questionID); !ok {
		return fmt.Errorf("question %s not in %s bank", questionID, rs.bank.Section)
	}
	if !a.MatchesScale(rs.bank.Scale) {
		return fmt.Errorf("answer for %s does not match %s scale", questionID, rs.bank.Scale)
	}
	rs.answers[questionID] = a
	delete(rs.review, questionID)
	return nil
}

// MarkForReview flags a question to revisit. A question may be both
// answered and marked.
func (rs *ResponseSet) MarkForReview(questionID string) {
	if _, ok := rs.bank.QuestionByID(questionID); ok {
		rs.review[questionID] = struct{}{}
	}
}

func (rs *ResponseSet) UnmarkReview(questionID string) {
	delete(rs.review, questionID)
}

// Status derives the display state for a question. Review-marked takes
// precedence over answered.
func (rs *ResponseSet) Status(questionID string) AnswerStatus {
	if _, marked := rs.review[questionID]; marked {
		return StatusMarkedForReview
	}
	a, ok := rs.answers[questionID]
	if !ok {
		return StatusUnanswered
	}
	if rs.bank.Scale == ScaleBoolean && a.Flag != nil && !*a.Flag {
		return StatusAnsweredNegative
	}
	return StatusAnswered
}

// Answer returns the recorded answer, if any.
func (rs *ResponseSet) Answer(questionID string) (Answer, bool) {
	a, ok := rs.answers[questionID]
	return a, ok
}

// CompletionCount is the number of distinct answered questions.
func (rs *ResponseSet) CompletionCount() int { return len(rs.answers) }

// Progress is the completed fraction in [0,1].
func (rs *ResponseSet) Progress() float64 {
	if len(rs.bank.Questions) == 0 {
		return 0
	}
	return float64(len(rs.answers)) / float64(len(rs.bank.Questions))
}

// Snapshot copies the current answers for persistence.
func (rs *ResponseSet) Snapshot() map[string]Answer {
	out := make(map[string]Answer, len(rs.answers))
	for k, v := range rs.answers {
		out[k] = v
	}
	return out
}

// Restore replaces the accumulator contents with a persisted snapshot.
// Unknown ids and answers of the wrong shape are dropped rather than
// failing the whole resume.
func (rs *ResponseSet) Restore(snapshot map[string]Answer) {
	rs.answers = make(map[string]Answer, len(snapshot))
	for id, a := range snapshot {
		if _, ok := rs.bank.QuestionByID(id); !ok {
			continue
		}
		if !a.MatchesScale(rs.bank.Scale) {
			continue
		}
		rs.answers[id] = a
	}
}
