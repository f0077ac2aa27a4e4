package dag

import (
	"sort"
	"strings"
)

// Render turns a sequenced ordering into output lines.
//
// Each commit prints as `<id>` or, at a branch head, `<id> <name...>` with
// names sorted ascending. Whenever the next commit in the ordering is not
// a direct parent of the current one the output is jumping between
// unrelated regions of history, and a three-line "sticky end" makes the
// seam explicit: the current commit's sorted parents followed by `=`, a
// blank line, then `=` followed by the next commit's sorted children. A
// commit with no parents (or no children) contributes a bare `=`.
func Render(g *Graph, order []string, headBranches map[string][]string) []string {
	var out []string

	for i, id := range order {
		line := id
		if names := headBranches[id]; len(names) > 0 {
			sorted := append([]string(nil), names...)
			sort.Strings(sorted)
			line += " " + strings.Join(sorted, " ")
		}
		out = append(out, line)

		if i == len(order)-1 {
			continue
		}
		node := g.Node(id)
		next := order[i+1]
		if node != nil && node.HasParent(next) {
			continue
		}

		out = append(out, stickyClose(node), "", stickyOpen(g.Node(next)))
	}

	return out
}

// stickyClose formats the segment-closing line: sorted parents then `=`.
func stickyClose(n *CommitNode) string {
	if n == nil || len(n.Parents) == 0 {
		return "="
	}
	parents := append([]string(nil), n.Parents...)
	sort.Strings(parents)
	return strings.Join(parents, " ") + "="
}

// stickyOpen formats the segment-opening line: `=` then sorted children.
func stickyOpen(n *CommitNode) string {
	if n == nil || len(n.Children) == 0 {
		return "="
	}
	children := make([]string, 0, len(n.Children))
	for c := range n.Children {
		children = append(children, c)
	}
	sort.Strings(children)
	return "=" + strings.Join(children, " ")
}
