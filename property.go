package ipgraph

// Properties is an ordered named key/value store. Every write bumps a
// monotonic version counter and fires the change callback; the node layer
// forwards that callback as its own dirty marker, and caches compare the
// version against a last-built stamp instead of comparing fields.
//
// Properties is not internally synchronized: callers serialize mutation
// with evaluation, as with the rest of the graph.
type Properties struct {
	names    []string
	values   map[string]any
	version  uint64
	onChange func(name string)
}

// NewProperties creates an empty property container.
func NewProperties() *Properties {
	return &Properties{values: make(map[string]any)}
}

// Add defines a property with a default value. Re-adding an existing name
// only updates the default and does not bump the version.
func (p *Properties) Add(name string, def any) {
	if _, ok := p.values[name]; !ok {
		p.names = append(p.names, name)
	}
	p.values[name] = def
}

// Get returns the value of a property, or nil when it is not defined.
func (p *Properties) Get(name string) any {
	return p.values[name]
}

// Set stores a property value, bumps the version and fires the change
// callback. Setting an undefined name defines it.
func (p *Properties) Set(name string, v any) {
	if _, ok := p.values[name]; !ok {
		p.names = append(p.names, name)
	}
	p.values[name] = v
	p.version++
	if p.onChange != nil {
		p.onChange(name)
	}
}

// Version returns the monotonic change counter. It starts at zero and
// increments on every Set.
func (p *Properties) Version() uint64 {
	return p.version
}

// Names returns the property names in definition order.
func (p *Properties) Names() []string {
	return append([]string(nil), p.names...)
}

// Map returns a copy of the current name/value pairs.
func (p *Properties) Map() map[string]any {
	out := make(map[string]any, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}

// Typed accessors. A missing or mistyped value returns the zero value;
// numeric values convert between int and float64 since JSON round-trips
// integers as floats.

// Float returns a property as float64.
func (p *Properties) Float(name string) float64 {
	switch v := p.values[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

// Int returns a property as int.
func (p *Properties) Int(name string) int {
	switch v := p.values[name].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

// Bool returns a property as bool.
func (p *Properties) Bool(name string) bool {
	v, _ := p.values[name].(bool)
	return v
}

// String returns a property as string.
func (p *Properties) String(name string) string {
	v, _ := p.values[name].(string)
	return v
}
