package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/careerbridge/assessment/internal/assessment"
	"github.com/careerbridge/assessment/internal/gateway"
	"github.com/careerbridge/assessment/internal/session"
)

func TestPipeline_ValidationFailureReturnsToIdle(t *testing.T) {
	gw := &fakeGateway{}
	s := session.New(testBank(t))
	if err := s.Answer("q1", assessment.BoolAnswer(true)); err != nil {
		t.Fatalf("answer: %v", err)
	}

	p := session.NewPipeline(s, gw, nil)
	_, err := p.Submit(context.Background())
	var inc *session.ErrIncomplete
	if !errors.As(err, &inc) {
		t.Fatalf("err = %v, want ErrIncomplete", err)
	}
	if got := inc.Result.Missing; len(got) != 2 || got[0] != "q2" || got[1] != "q3" {
		t.Fatalf("missing = %v", got)
	}
	if p.Phase() != session.PhaseIdle {
		t.Fatalf("phase = %s, want idle", p.Phase())
	}
	if gw.submitCount() != 0 {
		t.Fatal("incomplete accumulator reached the backend")
	}
	// Still editable and resubmittable after answering the rest.
	answerAll(t, s)
	if _, err := p.Submit(context.Background()); err != nil {
		t.Fatalf("resubmit: %v", err)
	}
}

func TestPipeline_SuccessCompletesAndStopsAutosave(t *testing.T) {
	gw := &fakeGateway{}
	s := session.New(testBank(t))
	saver := session.NewAutosaver(s, gw, 5*time.Millisecond)
	saver.Start(context.Background())
	answerAll(t, s)

	p := session.NewPipeline(s, gw, saver)
	res, err := p.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if p.Phase() != session.PhaseCompleted {
		t.Fatalf("phase = %s", p.Phase())
	}
	if res.ID != "res-1" || res.Status != "submitted" {
		t.Fatalf("result = %+v", res)
	}
	if got, ok := p.Result(); !ok || got.ID != res.ID {
		t.Fatalf("stored result = %+v, ok=%v", got, ok)
	}
	if gw.overlapped {
		t.Fatal("a periodic save overlapped the submission write")
	}

	// Autosave must stay stopped after a terminal submit.
	before := gw.saveCount()
	time.Sleep(25 * time.Millisecond)
	if got := gw.saveCount(); got != before {
		t.Fatalf("autosave resumed after submit: %d -> %d", before, got)
	}
}

func TestPipeline_RemoteFailurePreservesStateAndRetries(t *testing.T) {
	gw := &fakeGateway{submitErr: &gateway.Error{Kind: gateway.KindNetwork, Msg: "dial tcp: timeout"}}
	s := session.New(testBank(t))
	answerAll(t, s)

	p := session.NewPipeline(s, gw, nil)
	_, err := p.Submit(context.Background())
	if err == nil {
		t.Fatal("expected submit failure")
	}
	if p.Phase() != session.PhaseFailed {
		t.Fatalf("phase = %s", p.Phase())
	}
	if ge := p.LastError(); ge == nil || ge.Kind != gateway.KindNetwork || !ge.Retryable() {
		t.Fatalf("last error = %+v", ge)
	}
	if got := s.CompletionCount(); got != 3 {
		t.Fatalf("answers lost on failure: %d", got)
	}
	if s.Status() == session.StatusSubmitted {
		t.Fatal("failed submit marked session submitted")
	}

	// Backend heals; retry succeeds without re-answering anything.
	gw.mu.Lock()
	gw.submitErr = nil
	gw.mu.Unlock()
	res, err := p.Retry(context.Background())
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if res.Status != "submitted" || p.Phase() != session.PhaseCompleted {
		t.Fatalf("after retry: res=%+v phase=%s", res, p.Phase())
	}
}

func TestPipeline_RepeatedRetriesStayLegal(t *testing.T) {
	gw := &fakeGateway{submitErr: &gateway.Error{Kind: gateway.KindServer, Status: 503, Msg: "unavailable"}}
	s := session.New(testBank(t))
	answerAll(t, s)

	p := session.NewPipeline(s, gw, nil)
	if _, err := p.Submit(context.Background()); err == nil {
		t.Fatal("expected submit failure")
	}
	// Each retry must re-enter through the declared failed -> validating
	// move, even when it fails again.
	if _, err := p.Retry(context.Background()); err == nil {
		t.Fatal("expected retry failure")
	}
	if p.Phase() != session.PhaseFailed {
		t.Fatalf("phase = %s, want failed", p.Phase())
	}

	gw.mu.Lock()
	gw.submitErr = nil
	gw.mu.Unlock()
	if _, err := p.Retry(context.Background()); err != nil {
		t.Fatalf("retry after heal: %v", err)
	}
	if p.Phase() != session.PhaseCompleted {
		t.Fatalf("phase = %s, want completed", p.Phase())
	}
}

func TestPipeline_RetryOnlyFromFailed(t *testing.T) {
	gw := &fakeGateway{}
	s := session.New(testBank(t))
	p := session.NewPipeline(s, gw, nil)
	if _, err := p.Retry(context.Background()); err == nil {
		t.Fatal("retry allowed from idle")
	}
}

func TestPipeline_CompletedIsTerminal(t *testing.T) {
	gw := &fakeGateway{}
	s := session.New(testBank(t))
	answerAll(t, s)
	p := session.NewPipeline(s, gw, nil)
	if _, err := p.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := p.Submit(context.Background()); err == nil {
		t.Fatal("double submit allowed")
	}
}

func TestDecide(t *testing.T) {
	cases := []struct {
		kind   gateway.Kind
		action string
	}{
		{gateway.KindAuth, "relogin"},
		{gateway.KindValidation, "edit"},
		{gateway.KindServer, "retry_after_delay"},
		{gateway.KindNetwork, "retry"},
	}
	for _, c := range cases {
		d := session.Decide(&gateway.Error{Kind: c.kind})
		if d.Action != c.action {
			t.Fatalf("Decide(%s) = %q, want %q", c.kind, d.Action, c.action)
		}
		if c.action == "retry_after_delay" && d.Delay == 0 {
			t.Fatal("server errors should back off before retrying")
		}
	}
}
