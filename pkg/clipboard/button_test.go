package clipboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-jobform/pkg/clipboard"
)

type recordingWriter struct {
	writes []string
	err    error
}

func (w *recordingWriter) WriteText(_ context.Context, text string) error {
	if w.err != nil {
		return w.err
	}
	w.writes = append(w.writes, text)
	return nil
}

type fakeTimer struct {
	fn      func()
	delay   time.Duration
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

func (t *fakeTimer) fire() {
	if !t.stopped {
		t.fn()
	}
}

type fakeScheduler struct {
	timers []*fakeTimer
}

func (s *fakeScheduler) schedule(d time.Duration, fn func()) clipboard.Timer {
	timer := &fakeTimer{fn: fn, delay: d}
	s.timers = append(s.timers, timer)
	return timer
}

func TestButtonCopy_EmptyTextIsNoop(t *testing.T) {
	writer := &recordingWriter{}
	button := clipboard.NewButton(writer)

	gen, err := button.Copy(context.Background(), "")
	if err != nil || gen != 0 {
		t.Fatalf("expected no-op, got gen=%d err=%v", gen, err)
	}
	if len(writer.writes) != 0 {
		t.Fatalf("clipboard written: %v", writer.writes)
	}
	if button.Label() != clipboard.DefaultLabel {
		t.Fatalf("label = %q", button.Label())
	}
}

func TestButtonCopy_AcknowledgesThenReverts(t *testing.T) {
	writer := &recordingWriter{}
	sched := &fakeScheduler{}
	button := clipboard.NewButton(writer, clipboard.WithScheduler(sched.schedule))

	if _, err := button.Copy(context.Background(), "http://x/job/a/job/parambuild/?env=prod"); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if button.Label() != "Copied!" {
		t.Fatalf("label = %q, want Copied!", button.Label())
	}
	if len(sched.timers) != 1 || sched.timers[0].delay != 2*time.Second {
		t.Fatalf("expected one 2s revert, got %+v", sched.timers)
	}

	sched.timers[0].fire()
	if button.Label() != clipboard.DefaultLabel {
		t.Fatalf("label not reverted: %q", button.Label())
	}
	if len(writer.writes) != 1 {
		t.Fatalf("writes = %v", writer.writes)
	}
}

func TestButtonCopy_OnlyLatestCopyReverts(t *testing.T) {
	sched := &fakeScheduler{}
	button := clipboard.NewButton(&recordingWriter{}, clipboard.WithScheduler(sched.schedule))

	first, _ := button.Copy(context.Background(), "one")
	second, _ := button.Copy(context.Background(), "two")
	if first == second {
		t.Fatalf("generations must differ")
	}
	if !sched.timers[0].stopped {
		t.Fatalf("first revert not cancelled")
	}

	// A stale revert that raced the cancel must not touch the label.
	sched.timers[0].fn()
	if button.Label() != "Copied!" {
		t.Fatalf("stale revert changed label to %q", button.Label())
	}

	sched.timers[1].fire()
	if button.Label() != clipboard.DefaultLabel {
		t.Fatalf("latest revert ignored: %q", button.Label())
	}
}

func TestButtonCopy_FailureKeepsLabel(t *testing.T) {
	cause := errors.New("permission denied")
	sched := &fakeScheduler{}
	button := clipboard.NewButton(&recordingWriter{err: cause}, clipboard.WithScheduler(sched.schedule))

	_, err := button.Copy(context.Background(), "url")
	if !errors.Is(err, clipboard.ErrClipboardFailure) || !errors.Is(err, cause) {
		t.Fatalf("expected clipboard failure wrapping cause, got %v", err)
	}
	var copyErr *clipboard.CopyError
	if !errors.As(err, &copyErr) || copyErr.Message() != "Failed to copy URL" {
		t.Fatalf("unexpected error: %v", err)
	}
	if button.Label() != clipboard.DefaultLabel || len(sched.timers) != 0 {
		t.Fatalf("failure must not acknowledge")
	}
}

func TestButton_ManualRevertAndReset(t *testing.T) {
	button := clipboard.NewButton(&recordingWriter{}, clipboard.ManualRevert(), clipboard.WithLabels("Copy", "Done"))

	gen, err := button.Copy(context.Background(), "url")
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	if button.Label() != "Done" {
		t.Fatalf("label = %q", button.Label())
	}
	if button.Revert(gen + 1) {
		t.Fatalf("unknown generation reverted")
	}
	if !button.Revert(gen) || button.Label() != "Copy" {
		t.Fatalf("manual revert failed: %q", button.Label())
	}

	gen, _ = button.Copy(context.Background(), "url")
	button.Reset()
	if button.Label() != "Copy" {
		t.Fatalf("reset label = %q", button.Label())
	}
	if button.Revert(gen) {
		t.Fatalf("revert after reset must be stale")
	}
}

func TestButton_RealTimerReverts(t *testing.T) {
	button := clipboard.NewButton(&recordingWriter{}, clipboard.WithRevertDelay(10*time.Millisecond))
	if _, err := button.Copy(context.Background(), "url"); err != nil {
		t.Fatalf("copy: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for button.Label() != clipboard.DefaultLabel {
		if time.Now().After(deadline) {
			t.Fatalf("label never reverted")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestWriterFunc(t *testing.T) {
	var got string
	w := clipboard.WriterFunc(func(_ context.Context, text string) error {
		got = text
		return nil
	})
	if err := w.WriteText(context.Background(), "hello"); err != nil || got != "hello" {
		t.Fatalf("writer func: %q %v", got, err)
	}
}
