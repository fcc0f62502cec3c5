package capability

import (
	"os"
	"strings"
)

// Environment overrides for what a host cannot report
const (
	EnvPointer       = "PARALLAX_POINTER"        // "fine" or "coarse"
	EnvReducedMotion = "PARALLAX_REDUCED_MOTION" // "1", "true", "yes" or "reduce"
)

// HostMatcher answers queries from a host pointer check plus environment overrides
// A host with a hover pointer is fine unless EnvPointer says coarse
type HostMatcher struct {
	Pointer func() bool // reports a hover-capable pointer
	Getenv  func(string) string
}

// Matches implements MediaMatcher
func (m *HostMatcher) Matches(query string) bool {
	getenv := m.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	hover := m.Pointer != nil && m.Pointer()
	coarse := strings.EqualFold(getenv(EnvPointer), "coarse")

	switch query {
	case QueryFinePointer:
		return hover && !coarse
	case QueryCoarsePointer:
		return !hover || coarse
	case QueryReducedMotion:
		switch strings.ToLower(getenv(EnvReducedMotion)) {
		case "1", "true", "yes", "reduce":
			return true
		}
	}
	return false
}
