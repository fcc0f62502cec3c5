// Package page is the host-neutral page model both hosts render: a virtual
// scrolling document, hoverable regions and style-carrying elements.
package page

import "strconv"

// Element is a rendered node's style: custom properties written by sinks
type Element struct {
	props    map[string]string
	onChange func()
}

// NewElement creates an element; onChange runs after every property change
func NewElement(onChange func()) *Element {
	return &Element{props: make(map[string]string), onChange: onChange}
}

// SetProperty implements motion.StyleSetter
func (e *Element) SetProperty(name, value string) {
	if e.props[name] == value {
		return
	}
	e.props[name] = value
	if e.onChange != nil {
		e.onChange()
	}
}

// Property returns the raw value, empty when unset
func (e *Element) Property(name string) string {
	return e.props[name]
}

// Float parses a numeric property; unset or malformed reads 0
func (e *Element) Float(name string) float64 {
	v, err := strconv.ParseFloat(e.props[name], 64)
	if err != nil {
		return 0
	}
	return v
}
