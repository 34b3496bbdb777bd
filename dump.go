package easel

import (
	"fmt"
	"io"
	"strings"
)

// NodeInfo is one node's debug summary, safe to hold after the node
// changes or dies.
type NodeInfo struct {
	ID          NodeID
	Protocol    ProtocolID
	Depth       int
	State       Lifecycle
	Children    int
	Label       string
	Geometry    string
	NeedsLayout bool
	NeedsPaint  bool
}

func (i NodeInfo) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %v [%s %s]", i.Label, i.ID, i.Protocol, i.State)
	if i.Geometry != "" {
		b.WriteString(" ")
		b.WriteString(i.Geometry)
	}
	if i.NeedsLayout {
		b.WriteString(" !layout")
	}
	if i.NeedsPaint {
		b.WriteString(" !paint")
	}
	return b.String()
}

// Info summarizes a node for debug output.
func Info(n TreeNode) NodeInfo {
	return n.debugInfo()
}

// Walk visits the attached tree preorder, parents before children.
// Returning false from fn skips the node's subtree.
func (c *Coordinator) Walk(fn func(TreeNode) bool) {
	root := c.Root()
	if root == nil {
		return
	}
	WalkSubtree(root, fn)
}

// WalkSubtree visits n and its descendants preorder. Works on detached
// subtrees too.
func WalkSubtree(n TreeNode, fn func(TreeNode) bool) {
	if !fn(n) {
		return
	}
	s := n.store()
	for i := 0; i < s.Len(); i++ {
		WalkSubtree(s.childAt(i), fn)
	}
}

// DumpTree writes an indented outline of the attached tree, one node per
// line with its protocol, state, geometry, and pending dirt.
func (c *Coordinator) DumpTree(w io.Writer) error {
	root := c.Root()
	if root == nil {
		_, err := fmt.Fprintln(w, "(no root)")
		return err
	}
	var werr error
	c.Walk(func(n TreeNode) bool {
		if werr != nil {
			return false
		}
		_, werr = fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", n.Depth()), n.debugInfo())
		return true
	})
	return werr
}
