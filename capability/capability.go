// Package capability resolves whether fine-grained motion may run at all.
// The result is a hard gate: when motion is not allowed, consumers attach no
// listeners and start no scheduler.
package capability

// Media queries evaluated at resolve time
const (
	QueryFinePointer   = "(hover: hover) and (pointer: fine)"
	QueryReducedMotion = "(prefers-reduced-motion: reduce)"
	QueryCoarsePointer = "(pointer: coarse)"
)

// MediaMatcher answers media-query style capability questions
type MediaMatcher interface {
	Matches(query string) bool
}

// MatcherFunc adapts a function to MediaMatcher
type MatcherFunc func(query string) bool

// Matches implements MediaMatcher
func (f MatcherFunc) Matches(query string) bool {
	return f(query)
}

// Capability is the resolved device and user preference state
type Capability struct {
	HasFinePointer       bool
	PrefersReducedMotion bool
	IsCoarseOrTouch      bool
}

// MotionAllowed reports whether pointer-driven motion may activate
func (c Capability) MotionAllowed() bool {
	return c.HasFinePointer && !c.PrefersReducedMotion
}

// Resolve reads the capability queries once
// A nil matcher resolves to no fine pointer, which disables motion
func Resolve(m MediaMatcher) Capability {
	if m == nil {
		return Capability{IsCoarseOrTouch: true}
	}
	fine := m.Matches(QueryFinePointer)
	return Capability{
		HasFinePointer:       fine,
		PrefersReducedMotion: m.Matches(QueryReducedMotion),
		IsCoarseOrTouch:      !fine || m.Matches(QueryCoarsePointer),
	}
}

// StaticMatcher answers from a fixed table; unknown queries do not match
type StaticMatcher map[string]bool

// Matches implements MediaMatcher
func (s StaticMatcher) Matches(query string) bool {
	return s[query]
}
