package motion

import "strconv"

// Sink receives a channel's current value once per frame
// Publish returns false when the target is gone; the value is skipped for that frame
type Sink interface {
	Publish(id string, value float64) bool
}

// SinkFunc delivers values to a plain callback
type SinkFunc func(id string, value float64)

// Publish implements Sink
func (f SinkFunc) Publish(id string, value float64) bool {
	if f == nil {
		return false
	}
	f(id, value)
	return true
}

// StyleSetter is a style target accepting custom property writes, e.g. "--mx"
type StyleSetter interface {
	SetProperty(name, value string)
}

// PropertySink writes the value as a custom property on an element resolved
// each frame. A nil resolution means the element was removed; the write is skipped
// Resolve must return an untyped nil for a missing element
type PropertySink struct {
	Name      string
	Resolve   func() StyleSetter
	Precision int
}

// NewPropertySink creates a sink writing name with 4 decimals
func NewPropertySink(name string, resolve func() StyleSetter) *PropertySink {
	return &PropertySink{Name: name, Resolve: resolve, Precision: 4}
}

// Publish implements Sink
func (p *PropertySink) Publish(_ string, value float64) bool {
	if p == nil || p.Resolve == nil {
		return false
	}
	el := p.Resolve()
	if el == nil {
		return false
	}
	el.SetProperty(p.Name, strconv.FormatFloat(value, 'f', p.Precision, 64))
	return true
}

// MultiSink fans a value out to several sinks; true if any accepted it
type MultiSink []Sink

// Publish implements Sink
func (m MultiSink) Publish(id string, value float64) bool {
	ok := false
	for _, s := range m {
		if s != nil && s.Publish(id, value) {
			ok = true
		}
	}
	return ok
}
