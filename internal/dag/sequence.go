package dag

import "sort"

// Sequence produces one total ordering of every commit in the graph, newest
// first: for every parent edge, the parent appears strictly after the
// child. The ordering is deterministic and part of the tool's observable
// contract.
//
// This is Kahn's algorithm counting *children* instead of parents, so that
// childless commits (the branch heads) come out first and no reversal pass
// is needed. Selection per step is two-tiered: if the previously emitted
// commit's first parent is ready, it is taken — keeping mainline history
// contiguous across merges — otherwise the smallest ready ID wins.
func (g *Graph) Sequence() []string {
	pending := make(map[string]int, len(g.nodes))
	ready := make([]string, 0)
	for id, n := range g.nodes {
		pending[id] = len(n.Children)
		if len(n.Children) == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(g.nodes))
	current := ""

	for len(ready) > 0 {
		chosen := -1
		if current != "" {
			if n := g.nodes[current]; n != nil && len(n.Parents) > 0 {
				if i := index(ready, n.Parents[0]); i >= 0 {
					chosen = i
				}
			}
		}
		if chosen < 0 {
			chosen = 0
		}

		id := ready[chosen]
		ready = append(ready[:chosen], ready[chosen+1:]...)
		order = append(order, id)
		current = id

		if n := g.nodes[id]; n != nil {
			for _, p := range n.Parents {
				pending[p]--
				if pending[p] == 0 {
					ready = insert(ready, p)
				}
			}
		}
	}

	return order
}

// index returns the position of id in the sorted slice s, or -1.
func index(s []string, id string) int {
	i := sort.SearchStrings(s, id)
	if i < len(s) && s[i] == id {
		return i
	}
	return -1
}

// insert adds id to the sorted slice s, keeping it sorted.
func insert(s []string, id string) []string {
	i := sort.SearchStrings(s, id)
	s = append(s, "")
	copy(s[i+1:], s[i:])
	s[i] = id
	return s
}
