package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/vidshop/backend/internal/domain"
)

// defaultTickInterval matches the progress interval of the reference player.
const defaultTickInterval = 100 * time.Millisecond

// MediaPlayer abstracts the underlying video player. Any component that can
// report playback time, report play/pause state, and seek can drive the
// product overlay pipeline.
type MediaPlayer interface {
	CurrentTime() float64
	Playing() bool
	SeekTo(t float64)
}

// PlaybackCallbacks are the side effects a PlaybackSource exposes upward.
// Nil callbacks are skipped.
type PlaybackCallbacks struct {
	// OnTimeUpdate fires on every delivered tick.
	OnTimeUpdate func(t float64)

	// OnVisibleProductsChange fires when the set of active products differs
	// from the previously delivered set.
	OnVisibleProductsChange func(products []domain.Product)

	// OnPlayerReady fires once when the source starts, handing the host a
	// seek handle.
	OnPlayerReady func(handle PlayerHandle)
}

// PlayerHandle lets the host seek playback, e.g. when the viewer clicks a
// product chip.
type PlayerHandle interface {
	SeekTo(t float64)
}

// PlaybackSource adapts a media player's progress into a bounded-interval
// tick stream. Ticks are delivered only while the player reports playing;
// SeekTo delivers an immediate tick regardless, since downstream consumers
// make no monotonicity assumptions.
type PlaybackSource struct {
	player   MediaPlayer
	interval time.Duration

	mu          sync.Mutex
	products    []domain.Product
	lastVisible []domain.Product
	callbacks   PlaybackCallbacks

	cancel context.CancelFunc
	done   chan struct{}
}

// NewPlaybackSource creates a playback source over the given player.
// A non-positive interval falls back to the 100ms default.
func NewPlaybackSource(player MediaPlayer, interval time.Duration) *PlaybackSource {
	if interval <= 0 {
		interval = defaultTickInterval
	}
	return &PlaybackSource{
		player:   player,
		interval: interval,
	}
}

// SetProducts replaces the product list consumed by visibility computation.
// The visible-set diff baseline resets so the next tick re-notifies.
func (s *PlaybackSource) SetProducts(products []domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
	s.lastVisible = nil
}

// Start begins tick delivery until ctx is cancelled or Stop is called.
func (s *PlaybackSource) Start(ctx context.Context, callbacks PlaybackCallbacks) {
	s.mu.Lock()
	s.callbacks = callbacks
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.mu.Unlock()

	if callbacks.OnPlayerReady != nil {
		callbacks.OnPlayerReady(s)
	}

	go s.run(ctx)
}

// Stop halts tick delivery and waits for the delivery goroutine to exit.
func (s *PlaybackSource) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// SeekTo forwards the seek to the player and delivers an immediate tick so
// visibility and collapse state catch up without waiting for the next
// interval. Backward jumps are ordinary ticks downstream.
func (s *PlaybackSource) SeekTo(t float64) {
	s.player.SeekTo(t)
	s.deliver(t)
}

func (s *PlaybackSource) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.player.Playing() {
				continue
			}
			s.deliver(s.player.CurrentTime())
		}
	}
}

// deliver pushes one tick through the visibility pipeline.
func (s *PlaybackSource) deliver(t float64) {
	s.mu.Lock()
	callbacks := s.callbacks
	visible := ActiveProducts(s.products, t)
	visibleChanged := !sameKeys(visible, s.lastVisible)
	if visibleChanged {
		s.lastVisible = visible
	}
	s.mu.Unlock()

	if callbacks.OnTimeUpdate != nil {
		callbacks.OnTimeUpdate(t)
	}
	if visibleChanged && callbacks.OnVisibleProductsChange != nil {
		callbacks.OnVisibleProductsChange(visible)
	}
}
