// Package focus walks a declarative, ordered list of form fields.
package focus

// Field one focusable field. Skip, when set, hides it from the walk.
type Field struct {
	Name string
	Skip func() bool
}

// F is a field that is never skipped.
func F(name string) Field { return Field{Name: name} }

// When is a field skipped while skip reports true.
func When(name string, skip func() bool) Field { return Field{Name: name, Skip: skip} }

// Chain the focus order of a page.
type Chain struct {
	fields []Field
}

// NewChain builds a chain in the given order.
func NewChain(fields ...Field) Chain { return Chain{fields: fields} }

// First the first field that is not skipped.
func (c Chain) First() string {
	next, _ := c.walk(-1, 1)
	return next
}

// Next the field after current; false past the last one.
func (c Chain) Next(current string) (string, bool) {
	return c.walk(c.index(current), 1)
}

// Prev the field before current; false before the first one.
func (c Chain) Prev(current string) (string, bool) {
	i := c.index(current)
	if i < 0 {
		i = len(c.fields)
	}
	return c.walk(i, -1)
}

// Fields the names currently reachable, in order.
func (c Chain) Fields() []string {
	out := make([]string, 0, len(c.fields))
	for _, f := range c.fields {
		if f.Skip == nil || !f.Skip() {
			out = append(out, f.Name)
		}
	}
	return out
}

func (c Chain) index(name string) int {
	for i, f := range c.fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

func (c Chain) walk(from, step int) (string, bool) {
	for i := from + step; i >= 0 && i < len(c.fields); i += step {
		f := c.fields[i]
		if f.Skip == nil || !f.Skip() {
			return f.Name, true
		}
	}
	return "", false
}
