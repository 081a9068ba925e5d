package mechanism

// Direction says which way a path edge traverses its joint.
type Direction int

const (
	// Up traverses a joint from its successor to its predecessor.
	Up Direction = iota
	// Down traverses a joint from its predecessor to its successor.
	Down
)

// PathEdge is one joint on a tree path together with the direction it is
// traversed in.
type PathEdge struct {
	Joint     *Joint
	Direction Direction
}

// TreePath is the unique path between two bodies along the spanning tree:
// up from the source to the lowest common ancestor, then down to the
// target.
type TreePath struct {
	Source, Target BodyID
	Edges          []PathEdge
}

// Contains reports whether the joint lies on the path and in which
// direction it is traversed.
func (p TreePath) Contains(j *Joint) (Direction, bool) {
	for _, e := range p.Edges {
		if e.Joint == j {
			return e.Direction, true
		}
	}
	return 0, false
}

// Path computes the tree path from one body to another.
func (m *Mechanism) Path(from, to BodyID) TreePath {
	onFromChain := make(map[BodyID]bool)
	for b := from; ; b = m.parent[b] {
		onFromChain[b] = true
		if b == 0 {
			break
		}
	}
	ancestor := to
	for !onFromChain[ancestor] {
		ancestor = m.parent[ancestor]
	}

	var edges []PathEdge
	for b := from; b != ancestor; b = m.parent[b] {
		edges = append(edges, PathEdge{Joint: m.ParentJoint(b), Direction: Up})
	}
	downFrom := len(edges)
	for b := to; b != ancestor; b = m.parent[b] {
		edges = append(edges, PathEdge{Joint: m.ParentJoint(b), Direction: Down})
	}
	// the descent was collected target first
	for i, j := downFrom, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}
	return TreePath{Source: from, Target: to, Edges: edges}
}
