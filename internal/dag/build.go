package dag

import (
	"errors"
	"fmt"
)

// ErrObjectNotFound reports that no object exists for the requested commit
// ID. ParentReader implementations wrap it so Build can recover locally.
var ErrObjectNotFound = errors.New("object not found")

// ParentReader resolves a commit ID to the ordered parent IDs recorded in
// its object. A missing object fails with an error matching
// ErrObjectNotFound; any other failure means the object exists but could
// not be decoded.
type ParentReader interface {
	ReadParents(id string) ([]string, error)
}

// Build traverses parent links from the given heads and returns the
// resulting commit graph.
//
// The traversal is an iterative work stack with a visited guard — multiple
// heads or multiple children can reach the same ancestor, and histories
// can be long enough that recursion is not an option. A commit whose
// object is missing is kept in the graph as a parentless boundary node;
// this keeps shallow or partial object stores usable. Any other read
// error aborts the build.
func Build(r ParentReader, heads []string) (*Graph, error) {
	g := NewGraph()
	visited := make(map[string]struct{})

	stack := make([]string, 0, len(heads))
	stack = append(stack, heads...)

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, ok := visited[id]; ok {
			continue
		}
		visited[id] = struct{}{}

		node := g.ensure(id)

		parents, err := r.ReadParents(id)
		if err != nil {
			if errors.Is(err, ErrObjectNotFound) {
				continue
			}
			return nil, fmt.Errorf("read commit %s: %w", id, err)
		}

		node.Parents = parents
		for _, p := range parents {
			g.ensure(p).Children[id] = struct{}{}
			stack = append(stack, p)
		}
	}

	return g, nil
}
