// Package frame provides the host side of a field: a cooperative frame
// scheduler with resize and visibility notifications.
package frame

import (
	"context"
	"sync"
	"time"

	"github.com/san-kum/fieldsim/internal/field"
)

type entry struct {
	id field.FrameID
	fn func(time.Time)
}

// Loop schedules one-shot frame callbacks and fans out host signals. Callbacks
// registered during a Tick run on the next Tick. Loop implements [field.Host].
type Loop struct {
	mu       sync.Mutex
	nextID   field.FrameID
	pending  []entry
	live     map[field.FrameID]bool
	viewport field.Viewport
	visible  bool
	surfaces map[string]field.Surface

	nextSub    int
	resizeSubs map[int]func(field.Viewport)
	visSubs    map[int]func(bool)

	posted chan func()
	ticks  uint64
}

func NewLoop(vp field.Viewport) *Loop {
	return &Loop{
		live:       make(map[field.FrameID]bool),
		viewport:   vp,
		visible:    true,
		surfaces:   make(map[string]field.Surface),
		resizeSubs: make(map[int]func(field.Viewport)),
		visSubs:    make(map[int]func(bool)),
		posted:     make(chan func(), 64),
	}
}

// Mount registers a surface under id, replacing any previous one.
func (l *Loop) Mount(id string, s field.Surface) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.surfaces[id] = s
}

func (l *Loop) Unmount(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.surfaces, id)
}

func (l *Loop) Surface(id string) field.Surface {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.surfaces[id]
	if !ok {
		return nil
	}
	return s
}

func (l *Loop) Viewport() field.Viewport {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.viewport
}

func (l *Loop) Visible() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.visible
}

func (l *Loop) RequestFrame(fn func(time.Time)) field.FrameID {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	id := l.nextID
	l.pending = append(l.pending, entry{id: id, fn: fn})
	l.live[id] = true
	return id
}

func (l *Loop) CancelFrame(id field.FrameID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.live[id] {
		return
	}
	delete(l.live, id)
	for i, e := range l.pending {
		if e.id == id {
			l.pending = append(l.pending[:i], l.pending[i+1:]...)
			break
		}
	}
}

// Pending is the number of outstanding registrations.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.live)
}

// Ticks counts Tick calls.
func (l *Loop) Ticks() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ticks
}

// Tick runs, in issue order, every callback registered before the call.
// A callback cancelled by an earlier one in the same tick does not run.
// It returns the number of callbacks run.
func (l *Loop) Tick(now time.Time) int {
	l.mu.Lock()
	batch := l.pending
	l.pending = nil
	l.ticks++
	l.mu.Unlock()

	ran := 0
	for _, e := range batch {
		l.mu.Lock()
		ok := l.live[e.id]
		delete(l.live, e.id)
		l.mu.Unlock()
		if !ok {
			continue
		}
		e.fn(now)
		ran++
	}
	return ran
}

func (l *Loop) OnResize(fn func(field.Viewport)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextSub++
	id := l.nextSub
	l.resizeSubs[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.resizeSubs, id)
	}
}

func (l *Loop) OnVisibility(fn func(bool)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextSub++
	id := l.nextSub
	l.visSubs[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.visSubs, id)
	}
}

// Resize stores vp and notifies every resize subscriber once, in
// subscription order.
func (l *Loop) Resize(vp field.Viewport) {
	l.mu.Lock()
	l.viewport = vp
	subs := sortedSubs(l.resizeSubs)
	l.mu.Unlock()
	for _, fn := range subs {
		fn(vp)
	}
}

// SetVisible notifies visibility subscribers when the state changes.
func (l *Loop) SetVisible(visible bool) {
	l.mu.Lock()
	if l.visible == visible {
		l.mu.Unlock()
		return
	}
	l.visible = visible
	subs := sortedSubs(l.visSubs)
	l.mu.Unlock()
	for _, fn := range subs {
		fn(visible)
	}
}

// Post queues fn to run on the Run goroutine before the next frame. It is
// safe to call from any goroutine. While the queue is full it blocks, giving
// up with ctx.Err() once ctx is done.
func (l *Loop) Post(ctx context.Context, fn func()) error {
	select {
	case l.posted <- fn:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run ticks at interval until ctx is done, executing posted functions between
// frames on the same goroutine. It returns ctx.Err().
func (l *Loop) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.posted:
			fn()
		case now := <-ticker.C:
			l.Tick(now)
		}
	}
}
