package refgraph

// countCycles counts strongly connected components with more than one node
// over the edge set. Self-edges never occur (a file cannot import itself via
// a resolvable relative specifier to another file), so component size is the
// cycle criterion.
func countCycles(graph *ReferenceGraph) int {
	adjacency := make(map[string][]string, len(graph.Nodes))
	for _, edge := range graph.Edges {
		adjacency[edge.From] = append(adjacency[edge.From], edge.To)
	}

	state := &tarjanState{
		adjacency: adjacency,
		indices:   make(map[string]int),
		lowLinks:  make(map[string]int),
		onStack:   make(map[string]bool),
	}
	for _, id := range sortedNodeIDs(graph.Nodes) {
		if _, visited := state.indices[id]; !visited {
			state.strongConnect(id)
		}
	}
	return state.cycles
}

type tarjanState struct {
	adjacency map[string][]string
	indices   map[string]int
	lowLinks  map[string]int
	onStack   map[string]bool
	stack     []string
	counter   int
	cycles    int
}

func (s *tarjanState) strongConnect(id string) {
	s.indices[id] = s.counter
	s.lowLinks[id] = s.counter
	s.counter++
	s.stack = append(s.stack, id)
	s.onStack[id] = true

	for _, next := range s.adjacency[id] {
		if _, visited := s.indices[next]; !visited {
			s.strongConnect(next)
			if s.lowLinks[next] < s.lowLinks[id] {
				s.lowLinks[id] = s.lowLinks[next]
			}
		} else if s.onStack[next] && s.indices[next] < s.lowLinks[id] {
			s.lowLinks[id] = s.indices[next]
		}
	}

	if s.lowLinks[id] == s.indices[id] {
		size := 0
		for {
			top := s.stack[len(s.stack)-1]
			s.stack = s.stack[:len(s.stack)-1]
			s.onStack[top] = false
			size++
			if top == id {
				break
			}
		}
		if size > 1 {
			s.cycles++
		}
	}
}
