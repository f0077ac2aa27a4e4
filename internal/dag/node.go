package dag

// CommitNode is one commit in the ancestry graph.
//
// Parents preserves the exact order recorded in the commit object; the
// first entry is the mainline parent of a merge. Children is discovered
// incrementally while the graph is built and is membership-only.
type CommitNode struct {
	ID       string
	Parents  []string
	Children map[string]struct{}
}

// HasParent reports whether id appears in the node's parent list.
func (n *CommitNode) HasParent(id string) bool {
	for _, p := range n.Parents {
		if p == id {
			return true
		}
	}
	return false
}

// Graph maps commit IDs to their nodes. It is closed over the transitive
// parent closure of the heads it was built from, except where an object
// could not be resolved. Read-only once Build returns.
type Graph struct {
	nodes map[string]*CommitNode
}

// NewGraph allocates an empty Graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[string]*CommitNode)}
}

// Node returns the node for id, or nil if the graph has no such commit.
func (g *Graph) Node(id string) *CommitNode {
	return g.nodes[id]
}

// Len returns the number of commits in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// ensure returns the node for id, creating it if needed.
func (g *Graph) ensure(id string) *CommitNode {
	n, ok := g.nodes[id]
	if !ok {
		n = &CommitNode{ID: id, Children: make(map[string]struct{})}
		g.nodes[id] = n
	}
	return n
}
