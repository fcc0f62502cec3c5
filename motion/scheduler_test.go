package motion

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/parallax/clock"
	"github.com/lixenwraith/parallax/frame"
	"github.com/lixenwraith/parallax/frame/frametest"
	"github.com/lixenwraith/parallax/status"
	"github.com/lixenwraith/parallax/vmath"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

const frameStep = 16 * time.Millisecond

func newTestScheduler(t *testing.T, cfgs ...ChannelConfig) (*Store, *Scheduler, *frametest.Recorder) {
	t.Helper()
	store := NewStore(nil)
	for _, cfg := range cfgs {
		if _, err := store.Register(cfg); err != nil {
			t.Fatalf("Register(%q) failed: %v", cfg.ID, err)
		}
	}
	rec := frametest.NewRecorder()
	return store, NewScheduler(store, rec, nil), rec
}

// TestConvergenceMonotonicAndBounded verifies the damping step approaches
// the target monotonically and settles within the analytic bound
func TestConvergenceMonotonicAndBounded(t *testing.T) {
	tests := []struct {
		name    string
		damping float64
		start   float64
		target  float64
	}{
		{"unit_up_0.08", 0.08, 0, 1},
		{"unit_down_0.06", 0.06, 1, 0},
		{"negative_0.07", 0.07, 0.5, -0.5},
		{"fast_0.5", 0.5, -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _, rec := newTestScheduler(t, ChannelConfig{ID: "x", Initial: tt.start, Damping: tt.damping, Epsilon: 0.001})
			store.SetTarget("x", tt.target)

			bound := vmath.StepsToSettle(tt.damping, 0.001/math.Abs(tt.target-tt.start)) + 1
			prevDist := math.Abs(tt.target - tt.start)
			frames := 0
			now := epoch
			for rec.Live() > 0 {
				if frames > bound {
					t.Fatalf("Not settled after %d frames (bound %d)", frames, bound)
				}
				now = now.Add(frameStep)
				rec.Fire(now)
				frames++

				dist := math.Abs(tt.target - store.ReadCurrent("x"))
				if dist > prevDist {
					t.Fatalf("Frame %d moved away from target: %v > %v", frames, dist, prevDist)
				}
				prevDist = dist
			}

			if prevDist > 0.001 {
				t.Errorf("Expected settled within 0.001, got distance %v", prevDist)
			}
		})
	}
}

// TestSetTargetSettlesAndStopsRequesting eases 0 → 1 at damping 0.1 and
// expects the loop to go idle once within epsilon 0.001
func TestSetTargetSettlesAndStopsRequesting(t *testing.T) {
	store, sched, rec := newTestScheduler(t, ChannelConfig{ID: "x", Damping: 0.1, Epsilon: 0.001})

	store.SetTarget("x", 1)
	if !sched.Running() {
		t.Fatal("Expected scheduler to be running after SetTarget")
	}

	frames := rec.FireUntilIdle(epoch, frameStep, 1000)
	if frames != vmath.StepsToSettle(0.1, 0.001) {
		t.Errorf("Expected %d frames to settle, got %d", vmath.StepsToSettle(0.1, 0.001), frames)
	}
	if got := store.ReadCurrent("x"); math.Abs(got-1) > 0.001 {
		t.Errorf("ReadCurrent = %v, want within 0.001 of 1", got)
	}

	requests := rec.Requests
	rec.Fire(epoch.Add(time.Hour))
	if rec.Requests != requests || rec.Live() != 0 || sched.Running() {
		t.Errorf("Expected no further frame requests after settlement")
	}
}

func TestEnsureRunningIsSingleFlight(t *testing.T) {
	_, sched, rec := newTestScheduler(t, ChannelConfig{ID: "x"})

	for i := 0; i < 50; i++ {
		sched.EnsureRunning()
	}

	if rec.Requests != 1 {
		t.Errorf("Expected exactly 1 frame request, got %d", rec.Requests)
	}
	if rec.Live() != 1 {
		t.Errorf("Expected 1 live request, got %d", rec.Live())
	}
}

func TestSetTargetBurstIsSingleFlight(t *testing.T) {
	store, _, rec := newTestScheduler(t, ChannelConfig{ID: "x"}, ChannelConfig{ID: "y"})

	for i := 0; i < 100; i++ {
		store.SetTarget("x", float64(i)/100)
		store.SetTarget("y", -float64(i)/100)
	}
	if rec.Live() != 1 {
		t.Fatalf("Expected 1 live request after burst, got %d", rec.Live())
	}

	// Each frame re-requests at most once
	for i := 0; i < 10; i++ {
		rec.Fire(epoch.Add(time.Duration(i) * frameStep))
		store.SetTarget("x", 0.5)
		if rec.Live() > 1 {
			t.Fatalf("Frame %d: %d live requests", i, rec.Live())
		}
	}
}

func TestCancelFromSinkStopsLoop(t *testing.T) {
	store := NewStore(nil)
	rec := frametest.NewRecorder()
	var sched *Scheduler
	published := 0
	store.MustRegister(ChannelConfig{ID: "x", Damping: 0.1, Sink: SinkFunc(func(string, float64) {
		published++
		sched.Cancel()
	})})
	store.MustRegister(ChannelConfig{ID: "y", Damping: 0.1, Sink: SinkFunc(func(string, float64) {
		published++
	})})
	sched = NewScheduler(store, rec, nil)

	store.SetTarget("x", 1)
	store.SetTarget("y", 1)
	rec.Fire(epoch)

	if rec.Live() != 0 || sched.Running() {
		t.Fatalf("Expected cancelled scheduler idle after tick, live=%d running=%v", rec.Live(), sched.Running())
	}
	if published != 1 {
		t.Errorf("Expected publishing to stop at the cancelling sink, got %d publishes", published)
	}

	rec.Fire(epoch.Add(frameStep))
	if published != 1 {
		t.Errorf("Expected no publishes after cancel, got %d", published)
	}

	// A later write re-arms normally
	store.SetTarget("x", 0.5)
	if !sched.Running() {
		t.Error("Expected SetTarget to re-arm after an in-frame cancel")
	}
}

func TestCancelThenRearmInsideTick(t *testing.T) {
	store := NewStore(nil)
	rec := frametest.NewRecorder()
	var sched *Scheduler
	rearm := true
	store.MustRegister(ChannelConfig{ID: "x", Damping: 0.1, Sink: SinkFunc(func(string, float64) {
		if rearm {
			rearm = false
			sched.Cancel()
			store.SetTarget("x", -1)
		}
	})})
	sched = NewScheduler(store, rec, nil)

	store.SetTarget("x", 1)
	rec.Fire(epoch)

	if rec.Live() != 1 || !sched.Running() {
		t.Errorf("Expected re-armed scheduler with 1 live request, live=%d running=%v", rec.Live(), sched.Running())
	}
}

func TestCancelIsSafe(t *testing.T) {
	store, sched, rec := newTestScheduler(t, ChannelConfig{ID: "x"})

	// Before any SetTarget
	sched.Cancel()
	sched.Cancel()
	if rec.Live() != 0 || rec.Cancels != 0 {
		t.Errorf("Expected idle cancel to be a no-op, live=%d cancels=%d", rec.Live(), rec.Cancels)
	}

	store.SetTarget("x", 1)
	sched.Cancel()
	sched.Cancel()
	if rec.Live() != 0 {
		t.Errorf("Expected no pending request after cancel, got %d", rec.Live())
	}
	if rec.Cancels != 1 {
		t.Errorf("Expected exactly 1 cancellation, got %d", rec.Cancels)
	}
	if sched.Running() {
		t.Error("Expected scheduler idle after cancel")
	}

	// Re-arms after cancel
	store.SetTarget("x", -1)
	if !sched.Running() {
		t.Error("Expected SetTarget to re-arm after cancel")
	}
}

func TestFiniteGuard(t *testing.T) {
	reg := status.NewRegistry()
	store := NewStore(reg)
	store.MustRegister(ChannelConfig{ID: "x"})
	rec := frametest.NewRecorder()
	NewScheduler(store, rec, reg)

	store.SetTarget("x", 0.4)
	before, _ := store.State("x")

	store.SetTarget("x", math.NaN())
	store.SetTarget("x", math.Inf(1))
	store.SetVector(VectorIDs{X: "x", Y: "x"}, vmath.Vec2{X: 0.1, Y: math.Inf(-1)})
	store.Reset("x", math.NaN())

	after, _ := store.State("x")
	if after.Target != before.Target || after.Current != before.Current {
		t.Errorf("Expected channel unchanged, before=%+v after=%+v", before, after)
	}
	if got := reg.Ints.Get("motion.target_rejected").Load(); got != 4 {
		t.Errorf("Expected 4 rejected writes, got %d", got)
	}
}

func TestSettledTargetDoesNotArm(t *testing.T) {
	store, sched, rec := newTestScheduler(t, ChannelConfig{ID: "x", Epsilon: 0.01})

	store.SetTarget("x", 0.005)
	if sched.Running() || rec.Requests != 0 {
		t.Error("Expected a target within epsilon to leave the scheduler idle")
	}
	store.SetTarget("unknown", 1)
	if rec.Requests != 0 {
		t.Error("Expected unknown channel to be ignored")
	}
}

func TestResetSnapsAndPublishes(t *testing.T) {
	var published []float64
	store, _, rec := newTestScheduler(t, ChannelConfig{
		ID:   "x",
		Sink: SinkFunc(func(_ string, v float64) { published = append(published, v) }),
	})

	store.SetTarget("x", 1)
	rec.Fire(epoch)
	store.Reset("x", 0.25)

	if store.ReadCurrent("x") != 0.25 {
		t.Errorf("Expected current 0.25 after Reset, got %v", store.ReadCurrent("x"))
	}
	st, _ := store.State("x")
	if st.Target != 0.25 || !st.Settled {
		t.Errorf("Expected settled at 0.25, got %+v", st)
	}

	rec.Fire(epoch.Add(frameStep))
	if len(published) == 0 || published[len(published)-1] != 0.25 {
		t.Errorf("Expected reset value published on next frame, got %v", published)
	}
	if rec.Live() != 0 {
		t.Errorf("Expected idle after publishing reset, got %d live", rec.Live())
	}
}

func TestUpdateOrderFollowsRegistration(t *testing.T) {
	var order []string
	sink := SinkFunc(func(id string, _ float64) { order = append(order, id) })
	store, _, rec := newTestScheduler(t,
		ChannelConfig{ID: "c", Sink: sink},
		ChannelConfig{ID: "a", Sink: sink},
		ChannelConfig{ID: "b", Sink: sink},
	)

	store.SetTarget("b", 1)
	rec.Fire(epoch)

	want := []string{"c", "a", "b"}
	if len(order) != 3 {
		t.Fatalf("Expected 3 publishes, got %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
	if ids := store.IDs(); ids[0] != "c" || ids[2] != "b" {
		t.Errorf("IDs() = %v, want registration order", ids)
	}
}

type element struct {
	props map[string]string
}

func (e *element) SetProperty(name, value string) {
	e.props[name] = value
}

func TestMissingSinkSkipsPublishButKeepsRunning(t *testing.T) {
	reg := status.NewRegistry()
	el := &element{props: map[string]string{}}
	mounted := true
	resolve := func() StyleSetter {
		if !mounted {
			return nil
		}
		return el
	}

	store := NewStore(reg)
	store.MustRegister(ChannelConfig{ID: "x", Damping: 0.5, Sink: NewPropertySink("--mx", resolve)})
	rec := frametest.NewRecorder()
	sched := NewScheduler(store, rec, reg)

	store.SetTarget("x", 1)
	rec.Fire(epoch)
	if el.props["--mx"] != "0.5000" {
		t.Errorf("Expected --mx=0.5000, got %q", el.props["--mx"])
	}
	if got := reg.Floats.Get("motion.residual").Load(); got != 0.5 {
		t.Errorf("Expected residual 0.5 after one frame, got %f", got)
	}

	mounted = false
	rec.Fire(epoch.Add(frameStep))
	if got := reg.Ints.Get("motion.publish_skipped").Load(); got != 1 {
		t.Errorf("Expected 1 skipped publish, got %d", got)
	}
	if el.props["--mx"] != "0.5000" {
		t.Errorf("Expected stale value untouched, got %q", el.props["--mx"])
	}
	if !sched.Running() {
		t.Error("Expected loop to continue after a skipped publish")
	}
	if store.ReadCurrent("x") != 0.75 {
		t.Errorf("Expected current to keep advancing, got %v", store.ReadCurrent("x"))
	}

	sched.Cancel()
	if rec.Live() != 0 {
		t.Error("Expected teardown to leave no pending frame")
	}
}

func TestNilSinksAreTolerated(t *testing.T) {
	var fn SinkFunc
	var ps *PropertySink
	store, _, rec := newTestScheduler(t,
		ChannelConfig{ID: "a", Sink: fn},
		ChannelConfig{ID: "b", Sink: ps},
		ChannelConfig{ID: "c", Sink: MultiSink{nil, fn}},
	)
	store.SetTarget("a", 1)
	rec.FireUntilIdle(epoch, frameStep, 1000)

	if math.Abs(store.ReadCurrent("a")-1) > 0.001 {
		t.Errorf("Expected channel to settle with nil sinks, got %v", store.ReadCurrent("a"))
	}
}

func TestOnSettle(t *testing.T) {
	store, sched, rec := newTestScheduler(t, ChannelConfig{ID: "x", Damping: 1})
	settled := 0
	sched.OnSettle(func() { settled++ })

	store.SetTarget("x", 1)
	rec.FireUntilIdle(epoch, frameStep, 10)
	if settled != 1 {
		t.Errorf("Expected 1 settle callback, got %d", settled)
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  ChannelConfig
		want error
	}{
		{"empty_id", ChannelConfig{}, ErrEmptyID},
		{"damping_negative", ChannelConfig{ID: "x", Damping: -0.1}, ErrInvalidDamping},
		{"damping_above_one", ChannelConfig{ID: "x", Damping: 1.5}, ErrInvalidDamping},
		{"damping_nan", ChannelConfig{ID: "x", Damping: math.NaN()}, ErrInvalidDamping},
		{"epsilon_negative", ChannelConfig{ID: "x", Epsilon: -1}, ErrInvalidEpsilon},
		{"spring_negative", ChannelConfig{ID: "x", Spring: &SpringConfig{Frequency: -1}}, ErrInvalidSpring},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStore(nil).Register(tt.cfg)
			if !errors.Is(err, tt.want) {
				t.Errorf("Register error = %v, want %v", err, tt.want)
			}
		})
	}

	store := NewStore(nil)
	store.MustRegister(ChannelConfig{ID: "x"})
	if _, err := store.Register(ChannelConfig{ID: "x"}); !errors.Is(err, ErrDuplicateChannel) {
		t.Errorf("Expected ErrDuplicateChannel, got %v", err)
	}

	st, _ := store.State("x")
	if st.Damping != 0.07 || st.Epsilon != 0.001 {
		t.Errorf("Expected defaults damping=0.07 epsilon=0.001, got %+v", st)
	}
}

func TestSpringChannelSettles(t *testing.T) {
	store, sched, rec := newTestScheduler(t, ChannelConfig{
		ID:     "s",
		Spring: &SpringConfig{Frequency: 8, DampingRatio: 1},
	})

	store.SetTarget("s", 1)
	frames := rec.FireUntilIdle(epoch, frameStep, 600)
	if sched.Running() {
		t.Fatalf("Spring channel did not settle within %d frames", frames)
	}
	st, _ := store.State("s")
	if math.Abs(st.Current-1) > st.Epsilon || math.Abs(st.Velocity) > st.Epsilon {
		t.Errorf("Expected settled spring, got %+v", st)
	}
}

// TestSchedulerOnRealLoop runs the scheduler on frame.Loop end to end
func TestSchedulerOnRealLoop(t *testing.T) {
	loop := frame.NewLoop(clock.NewMock(epoch), frameStep, nil)
	store := NewStore(nil)
	store.MustRegister(ChannelConfig{ID: "x", Damping: 0.1})
	sched := NewScheduler(store, loop, nil)

	store.SetTarget("x", 1)
	frames := 0
	now := epoch
	for loop.Pending() > 0 && frames < 1000 {
		now = now.Add(frameStep)
		loop.Step(now)
		frames++
		if loop.Pending() > 1 {
			t.Fatalf("Expected at most 1 pending frame, got %d", loop.Pending())
		}
	}

	if sched.Running() {
		t.Fatal("Expected scheduler idle after settling")
	}
	if math.Abs(store.ReadCurrent("x")-1) > 0.001 {
		t.Errorf("Expected converged value, got %v", store.ReadCurrent("x"))
	}
}
