// Package tree holds the group tree selector: nodes built from the API tree and a
// view that tracks expansion, cursor and selection.
package tree

import (
	"strconv"

	"github.com/rsankarapandian/stores-backoffice/internal/desk/apiclient"
)

// Node one group in the selector.
type Node struct {
	Key         string // path of codes, unique across the tree
	ParentKey   string
	Code        string
	DisplayName string
	Depth       int
	Children    []*Node
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Build converts the API tree. Keys are "parentKey/code"; a key already taken
// anywhere in the tree gets a "~n" suffix and an empty code becomes "_".
func Build(groups []apiclient.GroupNode) []*Node {
	return build(groups, "", true, 0, map[string]bool{})
}

func build(groups []apiclient.GroupNode, parentKey string, root bool, depth int, used map[string]bool) []*Node {
	out := make([]*Node, 0, len(groups))
	for _, g := range groups {
		seg := g.Code
		if seg == "" {
			seg = "_"
		}
		base := seg
		if !root {
			base = parentKey + "/" + seg
		}
		key := base
		for n := 2; used[key]; n++ {
			key = base + "~" + strconv.Itoa(n)
		}
		used[key] = true

		name := g.Name
		if name == "" {
			name = g.Code
		}
		node := &Node{Key: key, ParentKey: parentKey, Code: g.Code, DisplayName: name, Depth: depth}
		node.Children = build(g.Children, key, false, depth+1, used)
		out = append(out, node)
	}
	return out
}

// Walk visits every node in document order until fn returns false.
func Walk(nodes []*Node, fn func(*Node) bool) bool {
	for _, n := range nodes {
		if !fn(n) || !Walk(n.Children, fn) {
			return false
		}
	}
	return true
}
