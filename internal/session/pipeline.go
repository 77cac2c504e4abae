package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/careerbridge/assessment/internal/assessment"
	"github.com/careerbridge/assessment/internal/gateway"
)

// Phase is the submission pipeline's explicit state. Transitions are
// checked; conditional rendering order never decides what is legal.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseValidating Phase = "validating"
	PhaseSubmitting Phase = "submitting"
	PhaseCompleted  Phase = "completed"
	PhaseFailed     Phase = "failed"
)

var transitions = map[Phase][]Phase{
	PhaseIdle:       {PhaseValidating},
	PhaseValidating: {PhaseIdle, PhaseSubmitting},
	PhaseSubmitting: {PhaseCompleted, PhaseFailed},
	PhaseFailed:     {PhaseValidating}, // retry re-enters the pipeline
	PhaseCompleted:  {},                // terminal
}

// ErrIncomplete wraps a local validation failure. The session stays
// editable; Missing lists the open questions in bank order.
type ErrIncomplete struct {
	Result assessment.ValidationResult
}

func (e *ErrIncomplete) Error() string {
	return fmt.Sprintf("submission blocked: %s", strings.Join(e.Result.Errors, "; "))
}

// Pipeline drives validate → submit → result for one session. The
// autosaver, when present, is stopped before the final write goes out
// and never restarted: a submitted session is terminal.
type Pipeline struct {
	session *Session
	gw      gateway.Gateway
	saver   *Autosaver
	phase   Phase
	result  *gateway.SubmittedResult
	lastErr *gateway.Error
}

func NewPipeline(s *Session, gw gateway.Gateway, saver *Autosaver) *Pipeline {
	return &Pipeline{session: s, gw: gw, saver: saver, phase: PhaseIdle}
}

func (p *Pipeline) Phase() Phase { return p.phase }

// Result returns the stored result once the pipeline has completed.
func (p *Pipeline) Result() (gateway.SubmittedResult, bool) {
	if p.result == nil {
		return gateway.SubmittedResult{}, false
	}
	return *p.result, true
}

// LastError returns the classified failure after PhaseFailed.
func (p *Pipeline) LastError() *gateway.Error { return p.lastErr }

func (p *Pipeline) transition(to Phase) error {
	for _, allowed := range transitions[p.phase] {
		if allowed == to {
			p.phase = to
			return nil
		}
	}
	return fmt.Errorf("invalid pipeline transition %s -> %s", p.phase, to)
}

// Submit runs the full pipeline. On local validation failure it
// returns *ErrIncomplete and the pipeline is back at idle. On remote
// failure it returns the classified *gateway.Error with the session
// untouched, so a retry loses nothing.
func (p *Pipeline) Submit(ctx context.Context) (gateway.SubmittedResult, error) {
	if err := p.transition(PhaseValidating); err != nil {
		return gateway.SubmittedResult{}, err
	}
	return p.run(ctx)
}

// Retry re-runs the pipeline after a remote failure. Only legal from
// the failed phase.
func (p *Pipeline) Retry(ctx context.Context) (gateway.SubmittedResult, error) {
	if p.phase != PhaseFailed {
		return gateway.SubmittedResult{}, fmt.Errorf("retry from %s not allowed", p.phase)
	}
	if err := p.transition(PhaseValidating); err != nil {
		return gateway.SubmittedResult{}, err
	}
	return p.run(ctx)
}

// run carries a pipeline already in the validating phase to a terminal
// or failed phase.
func (p *Pipeline) run(ctx context.Context) (gateway.SubmittedResult, error) {
	if v := p.session.Validate(); !v.IsValid {
		if err := p.transition(PhaseIdle); err != nil {
			return gateway.SubmittedResult{}, err
		}
		return gateway.SubmittedResult{}, &ErrIncomplete{Result: v}
	}

	// No periodic write may overlap the final one.
	if p.saver != nil {
		p.saver.Stop()
	}
	if err := p.transition(PhaseSubmitting); err != nil {
		return gateway.SubmittedResult{}, err
	}

	snap := p.session.Snapshot()
	res, err := p.gw.SubmitResults(ctx, p.session.Bank().Section, snap.Responses, p.session.ElapsedMinutes())
	if err != nil {
		_ = p.transition(PhaseFailed)
		p.lastErr = asGatewayError(err)
		return gateway.SubmittedResult{}, p.lastErr
	}

	if err := p.transition(PhaseCompleted); err != nil {
		return gateway.SubmittedResult{}, err
	}
	p.result = &res
	p.session.markSubmitted()
	return res, nil
}

func asGatewayError(err error) *gateway.Error {
	var ge *gateway.Error
	if errors.As(err, &ge) {
		return ge
	}
	return &gateway.Error{Kind: gateway.KindNetwork, Msg: err.Error()}
}

// Decision is the remedial action for a classified failure. Keeping
// the decision apart from the retry action makes it testable without
// a UI harness.
type Decision struct {
	Action string        // retry|retry_after_delay|relogin|edit
	Delay  time.Duration // nonzero only for retry_after_delay
}

// Decide maps a failure onto the user-facing remedy.
func Decide(err *gateway.Error) Decision {
	switch err.Kind {
	case gateway.KindAuth:
		return Decision{Action: "relogin"}
	case gateway.KindValidation:
		return Decision{Action: "edit"}
	case gateway.KindServer:
		return Decision{Action: "retry_after_delay", Delay: 5 * time.Second}
	default:
		return Decision{Action: "retry"}
	}
}
