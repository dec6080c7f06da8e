package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/vidshop/backend/internal/domain"
)

// FakePlayer is a controllable MediaPlayer for tests.
type FakePlayer struct {
	mu      sync.Mutex
	time    float64
	playing bool
}

func (p *FakePlayer) CurrentTime() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.time
}

func (p *FakePlayer) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

func (p *FakePlayer) SeekTo(t float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.time = t
}

func (p *FakePlayer) setPlaying(playing bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = playing
}

// tickRecorder collects callback invocations behind a lock.
type tickRecorder struct {
	mu            sync.Mutex
	times         []float64
	visibleCalls  [][]domain.Product
	readyReceived PlayerHandle
}

func (r *tickRecorder) callbacks() PlaybackCallbacks {
	return PlaybackCallbacks{
		OnTimeUpdate: func(t float64) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.times = append(r.times, t)
		},
		OnVisibleProductsChange: func(products []domain.Product) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.visibleCalls = append(r.visibleCalls, products)
		},
		OnPlayerReady: func(handle PlayerHandle) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.readyReceived = handle
		},
	}
}

func (r *tickRecorder) tickCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.times)
}

func (r *tickRecorder) visibleCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.visibleCalls)
}

func TestPlaybackSource_TicksWhilePlaying(t *testing.T) {
	player := &FakePlayer{}
	player.setPlaying(true)
	player.SeekTo(5)

	source := NewPlaybackSource(player, 5*time.Millisecond)
	recorder := &tickRecorder{}

	source.Start(context.Background(), recorder.callbacks())
	defer source.Stop()

	deadline := time.After(time.Second)
	for recorder.tickCount() < 3 {
		select {
		case <-deadline:
			t.Fatalf("expected at least 3 ticks, got %d", recorder.tickCount())
		case <-time.After(5 * time.Millisecond):
		}
	}

	if recorder.readyReceived == nil {
		t.Errorf("OnPlayerReady was not invoked")
	}
}

func TestPlaybackSource_NoTicksWhilePaused(t *testing.T) {
	player := &FakePlayer{}
	player.setPlaying(false)

	source := NewPlaybackSource(player, 5*time.Millisecond)
	recorder := &tickRecorder{}

	source.Start(context.Background(), recorder.callbacks())
	defer source.Stop()

	time.Sleep(50 * time.Millisecond)
	if got := recorder.tickCount(); got != 0 {
		t.Errorf("tickCount = %d while paused, want 0", got)
	}
}

func TestPlaybackSource_SeekDeliversImmediateTick(t *testing.T) {
	player := &FakePlayer{} // paused: no interval ticks at all
	products := []domain.Product{makeProduct("turkey", 10, 20)}

	source := NewPlaybackSource(player, time.Hour)
	source.SetProducts(products)
	recorder := &tickRecorder{}

	source.Start(context.Background(), recorder.callbacks())
	defer source.Stop()

	source.SeekTo(15)
	if got := recorder.tickCount(); got != 1 {
		t.Fatalf("tickCount = %d after seek, want 1", got)
	}
	if player.CurrentTime() != 15 {
		t.Errorf("seek was not forwarded to the player")
	}
	if got := recorder.visibleCount(); got != 1 {
		t.Fatalf("visibleCount = %d after seeking into a window, want 1", got)
	}

	// Seeking backward out of the window is an ordinary tick too.
	source.SeekTo(5)
	if got := recorder.visibleCount(); got != 2 {
		t.Errorf("visibleCount = %d after seeking out, want 2", got)
	}
}

func TestPlaybackSource_VisibleChangeFiresOnlyOnDiff(t *testing.T) {
	player := &FakePlayer{}
	products := []domain.Product{makeProduct("turkey", 10, 20)}

	source := NewPlaybackSource(player, time.Hour)
	source.SetProducts(products)
	recorder := &tickRecorder{}

	source.Start(context.Background(), recorder.callbacks())
	defer source.Stop()

	source.SeekTo(15)
	source.SeekTo(16) // same active set
	source.SeekTo(17)

	if got := recorder.visibleCount(); got != 1 {
		t.Errorf("visibleCount = %d, want 1 (set unchanged across ticks)", got)
	}
	if got := recorder.tickCount(); got != 3 {
		t.Errorf("tickCount = %d, want 3 (time updates always fire)", got)
	}
}

func TestPlaybackSource_SetProductsResetsBaseline(t *testing.T) {
	player := &FakePlayer{}
	products := []domain.Product{makeProduct("turkey", 10, 20)}

	source := NewPlaybackSource(player, time.Hour)
	source.SetProducts(products)
	recorder := &tickRecorder{}

	source.Start(context.Background(), recorder.callbacks())
	defer source.Stop()

	source.SeekTo(15)
	source.SetProducts([]domain.Product{makeProduct("dough", 10, 20)})
	source.SeekTo(15)

	if got := recorder.visibleCount(); got != 2 {
		t.Errorf("visibleCount = %d, want 2 (new product list re-notifies)", got)
	}
}

func TestPlaybackSource_StopHaltsDelivery(t *testing.T) {
	player := &FakePlayer{}
	player.setPlaying(true)

	source := NewPlaybackSource(player, 5*time.Millisecond)
	recorder := &tickRecorder{}

	source.Start(context.Background(), recorder.callbacks())
	time.Sleep(20 * time.Millisecond)
	source.Stop()

	count := recorder.tickCount()
	time.Sleep(30 * time.Millisecond)
	if got := recorder.tickCount(); got != count {
		t.Errorf("ticks delivered after Stop: %d -> %d", count, got)
	}
}
