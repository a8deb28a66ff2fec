package tree

// Key a keyboard key the view reacts to.
type Key string

// Keys handled by HandleKey.
const (
	KeyEnter      Key = "Enter"
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowDown  Key = "ArrowDown"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
)

// View is the state of a tree selector. Only expanded nodes show their children.
type View struct {
	Roots    []*Node
	Expanded map[string]bool
	Selected string
	Cursor   string

	// SelectParents lets click and Enter pick groups that have children.
	SelectParents bool
	OnSelect      func(*Node)

	index map[string]*Node
}

// NewView builds a collapsed view over roots.
func NewView(roots []*Node, onSelect func(*Node)) *View {
	v := &View{Roots: roots, Expanded: map[string]bool{}, OnSelect: onSelect, index: map[string]*Node{}}
	Walk(roots, func(n *Node) bool {
		v.index[n.Key] = n
		return true
	})
	return v
}

// Find returns the node with key, or nil.
func (v *View) Find(key string) *Node { return v.index[key] }

// FindCode returns the first node in document order with code.
func (v *View) FindCode(code string) *Node {
	var found *Node
	Walk(v.Roots, func(n *Node) bool {
		if n.Code == code {
			found = n
			return false
		}
		return true
	})
	return found
}

// IsExpanded reports the expansion of key.
func (v *View) IsExpanded(key string) bool { return v.Expanded[key] }

// Expand opens a parent node. Leaves are ignored.
func (v *View) Expand(key string) {
	if n := v.index[key]; n != nil && !n.IsLeaf() {
		v.Expanded[key] = true
	}
}

// Collapse closes key and forgets the expansion of every descendant, so a later
// Expand shows only the immediate children. A cursor inside moves up to key.
func (v *View) Collapse(key string) {
	n := v.index[key]
	if n == nil {
		return
	}
	delete(v.Expanded, key)
	Walk(n.Children, func(d *Node) bool {
		delete(v.Expanded, d.Key)
		if d.Key == v.Cursor {
			v.Cursor = key
		}
		return true
	})
}

// Toggle flips the expansion of key.
func (v *View) Toggle(key string) {
	if v.Expanded[key] {
		v.Collapse(key)
		return
	}
	v.Expand(key)
}

// Visible flattens the shown nodes in document order.
func (v *View) Visible() []*Node {
	var out []*Node
	var visit func([]*Node)
	visit = func(nodes []*Node) {
		for _, n := range nodes {
			out = append(out, n)
			if v.Expanded[n.Key] {
				visit(n.Children)
			}
		}
	}
	visit(v.Roots)
	return out
}

// Click moves the cursor to key. A leaf is selected; a parent toggles and is
// selected only with SelectParents.
func (v *View) Click(key string) {
	n := v.index[key]
	if n == nil {
		return
	}
	v.Cursor = key
	if n.IsLeaf() {
		v.selectNode(n)
		return
	}
	v.Toggle(key)
	if v.SelectParents {
		v.selectNode(n)
	}
}

// HandleKey applies a key at the cursor and reports whether it was used.
func (v *View) HandleKey(k Key) bool {
	switch k {
	case KeyArrowDown:
		return v.move(1)
	case KeyArrowUp:
		return v.move(-1)
	}

	n := v.index[v.Cursor]
	if n == nil {
		return false
	}
	switch k {
	case KeyEnter:
		switch {
		case n.IsLeaf():
			v.selectNode(n)
		case !v.Expanded[n.Key]:
			v.Expand(n.Key)
		case v.SelectParents:
			v.selectNode(n)
		default:
			return false
		}
		return true
	case KeyArrowRight:
		if n.IsLeaf() || v.Expanded[n.Key] {
			return false
		}
		v.Expand(n.Key)
		return true
	case KeyArrowLeft:
		if v.Expanded[n.Key] {
			v.Collapse(n.Key)
			return true
		}
		if n.ParentKey != "" {
			v.Cursor = n.ParentKey
			return true
		}
		return false
	}
	return false
}

// move steps the cursor through the visible nodes; with no cursor it lands on
// the first (down) or last (up) node.
func (v *View) move(step int) bool {
	vis := v.Visible()
	if len(vis) == 0 {
		return false
	}
	idx := -1
	for i, n := range vis {
		if n.Key == v.Cursor {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && step > 0:
		idx = 0
	case idx < 0:
		idx = len(vis) - 1
	default:
		idx += step
	}
	if idx < 0 || idx >= len(vis) {
		return false
	}
	v.Cursor = vis[idx].Key
	return true
}

func (v *View) selectNode(n *Node) {
	v.Selected = n.Key
	v.Cursor = n.Key
	if v.OnSelect != nil {
		v.OnSelect(n)
	}
}
