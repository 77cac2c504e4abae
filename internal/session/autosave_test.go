package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/careerbridge/assessment/internal/assessment"
	"github.com/careerbridge/assessment/internal/gateway"
	"github.com/careerbridge/assessment/internal/session"
)

func TestAutosaver_SavesOnlyOnGrowth(t *testing.T) {
	gw := &fakeGateway{}
	s := session.New(testBank(t))
	a := session.NewAutosaver(s, gw, 10*time.Millisecond)

	a.Start(context.Background())
	defer a.Stop()

	// No answers yet: several ticks, zero saves.
	time.Sleep(45 * time.Millisecond)
	if got := gw.saveCount(); got != 0 {
		t.Fatalf("saves without growth = %d", got)
	}

	// One new answer: exactly one save, no matter how many ticks pass,
	// because the watermark catches up on success.
	if err := s.Answer("q1", assessment.BoolAnswer(true)); err != nil {
		t.Fatalf("answer: %v", err)
	}
	time.Sleep(60 * time.Millisecond)
	if got := gw.saveCount(); got != 1 {
		t.Fatalf("saves after one answer = %d, want 1", got)
	}

	// Next growth step, next single save.
	if err := s.Answer("q2", assessment.BoolAnswer(false)); err != nil {
		t.Fatalf("answer: %v", err)
	}
	time.Sleep(60 * time.Millisecond)
	if got := gw.saveCount(); got != 2 {
		t.Fatalf("saves after second answer = %d, want 2", got)
	}
	gw.mu.Lock()
	last := gw.saves[len(gw.saves)-1]
	gw.mu.Unlock()
	if len(last.Responses) != 2 {
		t.Fatalf("last snapshot has %d responses, want 2", len(last.Responses))
	}
}

func TestAutosaver_FailureIsSwallowedAndRetriedNextTick(t *testing.T) {
	gw := &fakeGateway{saveErr: errBoom}
	s := session.New(testBank(t))
	a := session.NewAutosaver(s, gw, 10*time.Millisecond)

	a.Start(context.Background())
	defer a.Stop()

	if err := s.Answer("q1", assessment.BoolAnswer(true)); err != nil {
		t.Fatalf("answer: %v", err)
	}
	time.Sleep(35 * time.Millisecond)

	// Watermark must not advance on failure: once the backend heals,
	// the next tick saves.
	gw.mu.Lock()
	gw.saveErr = nil
	gw.mu.Unlock()
	time.Sleep(35 * time.Millisecond)
	if got := gw.saveCount(); got != 1 {
		t.Fatalf("saves after recovery = %d, want 1", got)
	}
}

func TestAutosaver_StartAfterResumeDoesNotRewrite(t *testing.T) {
	gw := &fakeGateway{}
	bank := testBank(t)
	s := session.Resume(bank, snapshotWith(t, "q1"))
	a := session.NewAutosaver(s, gw, 10*time.Millisecond)

	a.Start(context.Background())
	defer a.Stop()
	time.Sleep(35 * time.Millisecond)
	if got := gw.saveCount(); got != 0 {
		t.Fatalf("restored-but-unchanged session saved %d times", got)
	}
}

func TestAutosaver_FlushOnExit(t *testing.T) {
	gw := &fakeGateway{}
	s := session.New(testBank(t))
	a := session.NewAutosaver(s, gw, time.Hour) // ticker never fires

	a.Start(context.Background())
	if err := s.Answer("q1", assessment.BoolAnswer(true)); err != nil {
		t.Fatalf("answer: %v", err)
	}
	a.Stop() // stop the timer before the manual exit save
	if err := a.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if got := gw.saveCount(); got != 1 {
		t.Fatalf("saves = %d, want 1", got)
	}
	// Nothing new since: flush is a no-op.
	if err := a.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if got := gw.saveCount(); got != 1 {
		t.Fatalf("saves after idempotent flush = %d, want 1", got)
	}
}

func TestAutosaver_StopIdempotent(t *testing.T) {
	gw := &fakeGateway{}
	s := session.New(testBank(t))
	a := session.NewAutosaver(s, gw, 10*time.Millisecond)
	a.Start(context.Background())
	a.Stop()
	a.Stop() // must not panic or block
}

func snapshotWith(t *testing.T, ids ...string) gateway.Snapshot {
	t.Helper()
	snap := gateway.Snapshot{Responses: map[string]assessment.Answer{}}
	for _, id := range ids {
		snap.Responses[id] = assessment.BoolAnswer(true)
	}
	return snap
}
