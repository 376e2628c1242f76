package gitgraph

// MainBranch is the branch that exists before any directive runs. It always
// occupies lane 0.
const MainBranch = "main"

// MergeLabel is the display text of every merge node.
const MergeLabel = "Merge"

// Branch is one named timeline. Lane fixes its vertical slot for the whole
// parse; Tip tracks the most recently appended node on its timeline and is
// empty until the first commit lands on it.
type Branch struct {
	Name  string `json:"name"`
	Lane  int    `json:"lane"`
	Tip   string `json:"tip,omitempty"`
	Color string `json:"color"`
}

// CommitNode is one positioned node. X strictly increases in creation order
// across the whole model (one shared step counter, not one per branch); Y is
// fixed by the owning branch's lane. Color is copied from the branch at
// creation time and never updated afterwards.
type CommitNode struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Branch string  `json:"branch"`
	Color  string  `json:"color"`
	Merge  bool    `json:"merge,omitempty"`
}

// Edge connects two nodes by id. Color is the color of the branch the edge
// logically belongs to; MergeLine is true only for the edge arriving from
// the branch being merged in.
type Edge struct {
	Source    string `json:"source"`
	Target    string `json:"target"`
	Color     string `json:"color"`
	MergeLine bool   `json:"merge_line,omitempty"`
}

// Model is the immutable result of one parse: branches in creation order,
// nodes and edges in append order. Emitters must preserve these orders
// (they are the z-order of the drawing) and must not touch ids, coordinates
// or colors.
type Model struct {
	Branches []Branch     `json:"branches"`
	Nodes    []CommitNode `json:"nodes"`
	Edges    []Edge       `json:"edges"`
}

// Branch returns the branch record with the given name, if present.
func (m *Model) Branch(name string) (Branch, bool) {
	for _, b := range m.Branches {
		if b.Name == name {
			return b, true
		}
	}
	return Branch{}, false
}

// Node returns the node with the given id, if present.
func (m *Model) Node(id string) (CommitNode, bool) {
	for _, n := range m.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return CommitNode{}, false
}
