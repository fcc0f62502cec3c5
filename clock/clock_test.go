package clock

import (
	"sync"
	"testing"
	"time"
)

func TestMonotonic(t *testing.T) {
	src := NewMonotonic()

	t1 := src.Now()
	time.Sleep(5 * time.Millisecond)
	t2 := src.Now()

	if !t2.After(t1) {
		t.Errorf("Expected t2 to be after t1, got t1=%v, t2=%v", t1, t2)
	}
}

func TestMock(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMock(start)

	if now := mock.Now(); !now.Equal(start) {
		t.Errorf("Expected initial time %v, got %v", start, now)
	}

	next := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	mock.Set(next)
	if now := mock.Now(); !now.Equal(next) {
		t.Errorf("Expected %v after Set, got %v", next, now)
	}

	got := mock.Advance(16 * time.Millisecond)
	want := next.Add(16 * time.Millisecond)
	if !got.Equal(want) || !mock.Now().Equal(want) {
		t.Errorf("Expected %v after Advance, got %v", want, got)
	}
}

func TestMockConcurrency(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMock(start)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				_ = mock.Now()
			}
			done <- true
		}()
	}
	for i := 0; i < 5; i++ {
		go func() {
			for j := 0; j < 50; j++ {
				mock.Advance(time.Millisecond)
			}
			done <- true
		}()
	}
	for i := 0; i < 15; i++ {
		<-done
	}

	want := start.Add(250 * time.Millisecond)
	if now := mock.Now(); !now.Equal(want) {
		t.Errorf("Expected %v after concurrent advances, got %v", want, now)
	}
}

func TestPausableFreezesTime(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	base := NewMock(start)
	pc := NewPausable(base)

	base.Advance(100 * time.Millisecond)
	if got := pc.Now().Sub(start); got != 100*time.Millisecond {
		t.Fatalf("Expected 100ms elapsed, got %v", got)
	}

	pc.Pause()
	if !pc.IsPaused() {
		t.Fatal("Expected clock to be paused")
	}
	base.Advance(500 * time.Millisecond)
	if got := pc.Now().Sub(start); got != 100*time.Millisecond {
		t.Errorf("Expected frozen 100ms during pause, got %v", got)
	}
	if got := pc.TotalPauseDuration(); got != 500*time.Millisecond {
		t.Errorf("Expected 500ms active pause, got %v", got)
	}

	pc.Resume()
	base.Advance(50 * time.Millisecond)
	if got := pc.Now().Sub(start); got != 150*time.Millisecond {
		t.Errorf("Expected 150ms after resume, got %v", got)
	}
	if got := pc.RealTime().Sub(start); got != 650*time.Millisecond {
		t.Errorf("Expected real time 650ms, got %v", got)
	}
}

func TestPausableIdempotent(t *testing.T) {
	base := NewMock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	pc := NewPausable(base)

	pc.Resume() // not paused, no-op
	pc.SetPaused(true)
	pc.SetPaused(true)
	base.Advance(time.Second)
	pc.SetPaused(false)
	pc.SetPaused(false)

	if got := pc.TotalPauseDuration(); got != time.Second {
		t.Errorf("Expected single 1s pause, got %v", got)
	}
}

func TestPausableNowDuringToggle(t *testing.T) {
	epoch := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	base := NewMock(epoch)
	pc := NewPausable(base)
	base.Advance(time.Hour)
	limit := base.Now()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 2000; i++ {
			pc.SetPaused(i%2 == 0)
		}
	}()

	for i := 0; i < 2000; i++ {
		now := pc.Now()
		if now.Before(epoch) || now.After(limit) {
			t.Fatalf("Now() = %v outside [%v, %v] while toggling pause", now, epoch, limit)
		}
	}
	wg.Wait()
}

func TestSourceInterface(t *testing.T) {
	var _ Source = &Monotonic{}
	var _ Source = &Mock{}
	var _ Source = &Pausable{}
}
