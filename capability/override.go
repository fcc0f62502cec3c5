package capability

import "fmt"

// Mode forces a query result regardless of what the host reports
type Mode string

const (
	ModeAuto Mode = "auto"
	ModeOn   Mode = "on"
	ModeOff  Mode = "off"
)

// ParseMode validates a configuration string; empty means auto
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeOn, ModeOff:
		return Mode(s), nil
	default:
		return ModeAuto, fmt.Errorf("invalid capability mode %q (want auto, on or off)", s)
	}
}

// Override wraps m, forcing the answer for one query unless mode is auto
func Override(m MediaMatcher, query string, mode Mode) MediaMatcher {
	if mode == ModeAuto || mode == "" {
		return m
	}
	forced := mode == ModeOn
	return MatcherFunc(func(q string) bool {
		if q == query {
			return forced
		}
		if m == nil {
			return false
		}
		return m.Matches(q)
	})
}
