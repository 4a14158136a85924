package partition

import "github.com/matzehuels/boundlayout/pkg/core/geom"

// Child slots of a node, one per strip around the carved-out box.
const (
	Left = iota
	Top
	Right
	Bottom
)

// None marks an absent parent or child.
const None = -1

var sideNames = [4]string{Left: "LEFT", Top: "TOP", Right: "RIGHT", Bottom: "BOTTOM"}

// Node is one rectangle in the decomposition.
type Node struct {
	Box      geom.Box
	Parent   int    // None for the root
	Children [4]int // indexed by Left, Top, Right, Bottom; None when absent
	Covered  bool   // box lies entirely inside an overlap
}

// HasChildren reports whether the node was split.
func (n Node) HasChildren() bool {
	for _, c := range n.Children {
		if c != None {
			return true
		}
	}
	return false
}

// IsLeaf reports whether the node is free space: unsplit and uncovered.
func (n Node) IsLeaf() bool {
	return !n.Covered && !n.HasChildren()
}

// Tree is an arena of partition nodes. Node 0 is the root.
type Tree struct {
	nodes []Node
}

// Decompose splits root around every box in overlaps. Overlaps that do not
// meet root's interior are ignored; the overlaps slice is not modified.
func Decompose(root geom.Box, overlaps []geom.Box) *Tree {
	t := &Tree{}
	id := t.add(root, None)
	t.split(id, overlaps)
	return t
}

func (t *Tree) add(box geom.Box, parent int) int {
	t.nodes = append(t.nodes, Node{
		Box:      box,
		Parent:   parent,
		Children: [4]int{None, None, None, None},
	})
	return len(t.nodes) - 1
}

func (t *Tree) split(id int, overlaps []geom.Box) {
	box := t.nodes[id].Box
	for i, o := range overlaps {
		if !box.Intersects(o) {
			continue
		}
		if o.Contains(box) {
			t.nodes[id].Covered = true
			return
		}
		rest := overlaps[i+1:]
		for side, strip := range strips(box, box.Intersect(o)) {
			if strip.IsEmpty() {
				continue
			}
			child := t.add(strip, id)
			t.nodes[id].Children[side] = child
			t.split(child, rest)
		}
		return
	}
}

// strips returns the four parts of box left over once in is removed.
func strips(box, in geom.Box) [4]geom.Box {
	var s [4]geom.Box
	s[Left] = geom.Box{X: box.X, Y: box.Y, W: in.X - box.X, H: box.H}
	s[Right] = geom.Box{X: in.MaxX(), Y: box.Y, W: box.MaxX() - in.MaxX(), H: box.H}
	s[Top] = geom.Box{X: in.X, Y: box.Y, W: in.W, H: in.Y - box.Y}
	s[Bottom] = geom.Box{X: in.X, Y: in.MaxY(), W: in.W, H: box.MaxY() - in.MaxY()}
	return s
}

// Root returns the root node id.
func (t *Tree) Root() int { return 0 }

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int { return len(t.nodes) }

// Node returns the node with the given id.
func (t *Tree) Node(id int) Node { return t.nodes[id] }

// LeafIDs returns the ids of all free-space leaves in depth-first order.
func (t *Tree) LeafIDs() []int {
	var ids []int
	t.walk(t.Root(), func(id int) {
		if t.nodes[id].IsLeaf() {
			ids = append(ids, id)
		}
	})
	return ids
}

// Leaves returns the free-space rectangles in depth-first order.
func (t *Tree) Leaves() []geom.Box {
	ids := t.LeafIDs()
	boxes := make([]geom.Box, len(ids))
	for i, id := range ids {
		boxes[i] = t.nodes[id].Box
	}
	return boxes
}

// FreeArea returns the summed area of all leaves.
func (t *Tree) FreeArea() float64 {
	var area float64
	for _, b := range t.Leaves() {
		area += b.Area()
	}
	return area
}

// Depth returns the number of ancestors of id.
func (t *Tree) Depth(id int) int {
	d := 0
	for p := t.nodes[id].Parent; p != None; p = t.nodes[p].Parent {
		d++
	}
	return d
}

func (t *Tree) walk(id int, fn func(int)) {
	fn(id)
	for _, c := range t.nodes[id].Children {
		if c != None {
			t.walk(c, fn)
		}
	}
}
