package sim

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/san-kum/fieldsim/internal/field"
)

// Event is a host change delivered to a running field.
type Event struct {
	Resize  *field.Viewport
	Visible *bool
	Mode    field.Mode
}

// ParseEvent reads one command: "resize WxH", "hide", "show" or "mode NAME".
func ParseEvent(line string) (Event, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Event{}, errors.New("empty event")
	}

	switch parts[0] {
	case "resize":
		if len(parts) != 2 {
			return Event{}, errors.New("usage: resize WIDTHxHEIGHT")
		}
		vp, err := field.ParseViewport(parts[1])
		if err != nil {
			return Event{}, err
		}
		return Event{Resize: &vp}, nil
	case "hide", "show":
		visible := parts[0] == "show"
		return Event{Visible: &visible}, nil
	case "mode":
		if len(parts) != 2 {
			return Event{}, errors.New("usage: mode particles|glow|none")
		}
		m, err := field.ParseMode(parts[1])
		if err != nil {
			return Event{}, err
		}
		return Event{Mode: m}, nil
	}
	return Event{}, fmt.Errorf("unknown event %q", parts[0])
}

type LiveConfig struct {
	Viewport field.Viewport
	Mode     field.Mode
	Reduced  bool
	// Interval is the wall-clock frame period, FrameInterval when zero.
	Interval time.Duration
	// Events are applied between frames in arrival order. May be nil.
	Events <-chan Event
}

// Live runs a field in real time on the loop's own ticker until ctx is done,
// then returns what was drawn. Per frame stats are not kept, so a live run
// may last indefinitely; observers and metrics still see every frame.
func (r *Runner) Live(ctx context.Context, lc LiveConfig, surface field.Surface) (*Result, error) {
	if !lc.Viewport.Valid() {
		return nil, fmt.Errorf("%w: viewport %s", ErrInvalidRun, lc.Viewport)
	}
	if lc.Mode != "" {
		if _, err := field.ParseMode(string(lc.Mode)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRun, err)
		}
	}
	interval := lc.Interval
	if interval <= 0 {
		interval = FrameInterval
	}

	s, err := r.mount(lc.Viewport, lc.Mode, lc.Reduced, surface, false)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	forwarded := make(chan struct{})
	go func() {
		defer close(forwarded)
		for {
			select {
			case <-runCtx.Done():
				return
			case ev, ok := <-lc.Events:
				if !ok {
					return
				}
				if s.loop.Post(runCtx, func() { s.apply(ev) }) != nil {
					return
				}
			}
		}
	}()

	// Run only returns once runCtx is done.
	_ = s.loop.Run(runCtx, interval)
	cancel()
	<-forwarded

	return s.finish(), nil
}
