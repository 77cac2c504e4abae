package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/careerbridge/assessment/internal/gateway"
)

// DefaultAutosaveInterval matches the cadence the mobile clients use.
const DefaultAutosaveInterval = 20 * time.Second

// Autosaver periodically persists the session snapshot. Saves are
// advisory and invisible: failures are logged and swallowed, never
// surfaced. A save only fires when the answered count has grown past
// the last successfully saved count (the watermark), so idle ticks
// write nothing.
type Autosaver struct {
	session  *Session
	saver    gateway.ProgressSaver
	interval time.Duration

	mu        sync.Mutex
	watermark int
	stopCh    chan struct{}
	doneCh    chan struct{}
	running   bool
}

func NewAutosaver(s *Session, saver gateway.ProgressSaver, interval time.Duration) *Autosaver {
	if interval <= 0 {
		interval = DefaultAutosaveInterval
	}
	return &Autosaver{session: s, saver: saver, interval: interval}
}

// Start launches the ticker goroutine. Starting twice is a no-op.
func (a *Autosaver) Start(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.running {
		return
	}
	a.running = true
	a.stopCh = make(chan struct{})
	a.doneCh = make(chan struct{})
	// resuming a session must not rewrite the restored answers
	a.watermark = a.session.CompletionCount()

	go func() {
		defer close(a.doneCh)
		t := time.NewTicker(a.interval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				a.saveIfGrown(ctx)
			case <-a.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop halts the ticker and waits for any in-flight save to finish,
// so a manual save or submission that follows cannot race a periodic
// write to the same key. Idempotent.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return
	}
	a.running = false
	close(a.stopCh)
	done := a.doneCh
	a.mu.Unlock()
	<-done
}

// Flush performs one best-effort save (exit path). The caller should
// Stop first. Unlike the ticker, Flush reports the error so save-and-
// exit flows can log it with context.
func (a *Autosaver) Flush(ctx context.Context) error {
	count := a.session.CompletionCount()
	a.mu.Lock()
	grown := count > a.watermark
	a.mu.Unlock()
	if !grown {
		return nil
	}
	err := a.saver.SaveProgress(ctx, a.session.Bank().Section, a.session.Snapshot())
	if err == nil {
		a.mu.Lock()
		if count > a.watermark {
			a.watermark = count
		}
		a.mu.Unlock()
	}
	return err
}

func (a *Autosaver) saveIfGrown(ctx context.Context) {
	if err := a.Flush(ctx); err != nil {
		log.Printf("autosave %s: %v", a.session.Bank().Section, err)
	}
}
