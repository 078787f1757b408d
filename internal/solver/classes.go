package solver

import (
	"slices"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// closedClasses returns the closed communicating classes of the chain: the
// strongly connected components, over transitions with a positive rate,
// that no transition leaves. The balance system has a unique solution iff
// there is exactly one. Each class is sorted by state id, and classes are
// ordered by their smallest id.
func closedClasses(rates [][]float64) [][]int {
	g := simple.NewDirectedGraph()
	for i := range rates {
		g.AddNode(simple.Node(i))
	}
	for i, row := range rates {
		for j, r := range row {
			if i != j && r > 0 {
				g.SetEdge(g.NewEdge(simple.Node(i), simple.Node(j)))
			}
		}
	}

	var closed [][]int
	for _, scc := range topo.TarjanSCC(g) {
		members := make(map[int64]struct{}, len(scc))
		for _, n := range scc {
			members[n.ID()] = struct{}{}
		}

		leaves := false
		for _, n := range scc {
			to := g.From(n.ID())
			for to.Next() {
				if _, ok := members[to.Node().ID()]; !ok {
					leaves = true
					break
				}
			}
			if leaves {
				break
			}
		}
		if leaves {
			continue
		}

		ids := make([]int, 0, len(scc))
		for _, n := range scc {
			ids = append(ids, int(n.ID()))
		}
		slices.Sort(ids)
		closed = append(closed, ids)
	}

	slices.SortFunc(closed, func(a, b []int) int { return a[0] - b[0] })
	return closed
}
