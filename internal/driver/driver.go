package driver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pixil98/go-errors"
)

const (
	// DefaultFrameLength paces the loop at 60 frames per second.
	DefaultFrameLength = time.Second / 60
)

// Session is the per-frame game client driven by the loop.
type Session interface {
	RunFrame(ctx context.Context, dt time.Duration) error
	ReadyToClose() bool
	Close() error
}

type FrameDriver struct {
	frameLength time.Duration
	session     Session
	now         func() time.Time
}

func NewFrameDriver(session Session, opts ...FrameDriverOpt) *FrameDriver {
	d := &FrameDriver{
		frameLength: DefaultFrameLength,
		session:     session,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Start runs frames until the context ends, the session asks to close, or a
// frame fails. The session is closed on every exit path.
func (d *FrameDriver) Start(ctx context.Context) (err error) {
	defer func() {
		el := errors.NewErrorList()
		el.Add(err)
		if closeErr := d.session.Close(); closeErr != nil {
			el.Add(fmt.Errorf("closing session: %w", closeErr))
		}
		err = el.Err()
	}()

	ticker := time.NewTicker(d.frameLength)
	defer ticker.Stop()

	last := d.now()
	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "frame loop stopped")
			return nil
		case <-ticker.C:
			now := d.now()
			dt := now.Sub(last)
			last = now

			done, err := d.Tick(ctx, dt)
			if err != nil {
				return err
			}
			if done {
				slog.InfoContext(ctx, "client requested close")
				return nil
			}
		}
	}
}

// Tick runs a single frame and reports whether the session wants to close.
func (d *FrameDriver) Tick(ctx context.Context, dt time.Duration) (bool, error) {
	if err := d.session.RunFrame(ctx, dt); err != nil {
		return false, fmt.Errorf("running frame: %w", err)
	}
	return d.session.ReadyToClose(), nil
}
