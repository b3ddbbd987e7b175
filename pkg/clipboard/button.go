package clipboard

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	DefaultLabel       = "Copy URL"
	DefaultAckLabel    = "Copied!"
	DefaultRevertDelay = 2 * time.Second
)

// Timer is the handle of a scheduled revert.
type Timer interface {
	Stop() bool
}

// Scheduler runs fn once after d, never synchronously. It may return nil
// when the caller reverts the label itself (see ManualRevert).
type Scheduler func(d time.Duration, fn func()) Timer

// ButtonOption configures a Button.
type ButtonOption func(*Button)

// WithLabels overrides the idle and acknowledgement labels.
func WithLabels(label, ack string) ButtonOption {
	return func(b *Button) {
		if label != "" {
			b.label = label
		}
		if ack != "" {
			b.ack = ack
		}
	}
}

// WithRevertDelay overrides how long the acknowledgement stays up.
func WithRevertDelay(d time.Duration) ButtonOption {
	return func(b *Button) {
		if d > 0 {
			b.delay = d
		}
	}
}

// WithScheduler replaces time.AfterFunc.
func WithScheduler(s Scheduler) ButtonOption {
	return func(b *Button) {
		if s != nil {
			b.schedule = s
		}
	}
}

// ManualRevert leaves reverting to the caller, which must call Revert with
// the generation returned by Copy. Event-loop UIs use this to revert on
// their own tick message.
func ManualRevert() ButtonOption {
	return WithScheduler(func(time.Duration, func()) Timer { return nil })
}

// WithLogger sets the logger used for the clipboard failure trace.
func WithLogger(logger *slog.Logger) ButtonOption {
	return func(b *Button) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Button is the copy affordance. Safe for concurrent use: scheduled reverts
// run on their own goroutine.
type Button struct {
	writer   Writer
	label    string
	ack      string
	delay    time.Duration
	schedule Scheduler
	logger   *slog.Logger

	mu         sync.Mutex
	current    string
	generation uint64
	pending    Timer
}

// NewButton constructs a Button writing through w.
func NewButton(w Writer, options ...ButtonOption) *Button {
	b := &Button{
		writer: w,
		label:  DefaultLabel,
		ack:    DefaultAckLabel,
		delay:  DefaultRevertDelay,
		schedule: func(d time.Duration, fn func()) Timer {
			return time.AfterFunc(d, fn)
		},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt != nil {
			opt(b)
		}
	}
	b.current = b.label
	return b
}

// Label reports the label currently shown.
func (b *Button) Label() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// Delay reports the acknowledgement duration.
func (b *Button) Delay() time.Duration {
	return b.delay
}

// Copy writes text to the clipboard. Empty text is a no-op. On failure the
// label is left alone and a *CopyError is returned. On success the label
// flips to the acknowledgement and a revert is scheduled; any earlier
// pending revert is cancelled. The returned generation identifies this copy.
func (b *Button) Copy(ctx context.Context, text string) (uint64, error) {
	if text == "" {
		return 0, nil
	}
	if b.writer == nil {
		return 0, &CopyError{Err: ErrUnsupported}
	}
	if err := b.writer.WriteText(ctx, text); err != nil {
		b.logger.Debug("clipboard write failed", slog.String("error", err.Error()))
		return 0, &CopyError{Err: err}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pending != nil {
		b.pending.Stop()
		b.pending = nil
	}
	b.generation++
	gen := b.generation
	b.current = b.ack
	b.pending = b.schedule(b.delay, func() {
		b.Revert(gen)
	})
	return gen, nil
}

// Revert restores the idle label if gen is still the latest copy. Stale
// generations are ignored.
func (b *Button) Revert(gen uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if gen == 0 || gen != b.generation {
		return false
	}
	b.current = b.label
	b.pending = nil
	return true
}

// Reset cancels any pending revert and shows the idle label, e.g. when the
// URL the acknowledgement referred to is discarded.
func (b *Button) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pending != nil {
		b.pending.Stop()
		b.pending = nil
	}
	b.generation++
	b.current = b.label
}
