package gitgraph

import "fmt"

// Default spacing between nodes, in document units. One horizontal step per
// commit-like directive, one vertical step per lane.
const (
	DefaultXSpacing = 120.0
	DefaultYSpacing = 80.0
)

// Option adjusts parser geometry or colors. Invalid values (non-positive
// spacing, empty palette) are ignored so that an Option can never make
// [Parse] fail.
type Option func(*parser)

// WithSpacing overrides the horizontal and vertical node spacing.
func WithSpacing(x, y float64) Option {
	return func(p *parser) {
		if x > 0 {
			p.xSpacing = x
		}
		if y > 0 {
			p.ySpacing = y
		}
	}
}

// WithPalette overrides the branch color cycle.
func WithPalette(colors []string) Option {
	return func(p *parser) {
		if len(colors) > 0 {
			p.palette = colors
		}
	}
}

// parser is the state carried across directives during one pass. It is
// created per Parse call and nothing escapes it except the final Model, so
// no locking is needed anywhere in this package.
type parser struct {
	xSpacing float64
	ySpacing float64
	palette  []string

	current  string             // branch new commits attach to
	branches map[string]*Branch // every branch ever declared, by name
	order    []string           // branch names in creation order
	nextLane int                // lane for the next new branch
	step     int                // shared horizontal step counter

	nodes []CommitNode
	edges []Edge
}

// Parse replays the directives of src through the state machine and returns
// the finished model. It never returns an error: the permissive policy
// documented on the package turns every malformed or dangling construct
// into a no-op or an omission.
func Parse(src string, opts ...Option) *Model {
	p := newParser(opts...)
	for _, d := range Tokenize(src) {
		p.apply(d)
	}
	return p.model()
}

func newParser(opts ...Option) *parser {
	p := &parser{
		xSpacing: DefaultXSpacing,
		ySpacing: DefaultYSpacing,
		palette:  DefaultPalette,
		current:  MainBranch,
		branches: make(map[string]*Branch),
		nextLane: 1,
		nodes:    []CommitNode{},
		edges:    []Edge{},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.branches[MainBranch] = &Branch{Name: MainBranch, Lane: 0, Color: p.palette[0]}
	p.order = []string{MainBranch}
	return p
}

func (p *parser) apply(d Directive) {
	switch d.Kind {
	case KindCommit:
		p.commit(d)
	case KindBranch:
		p.branch(d)
	case KindCheckout:
		p.checkout(d)
	case KindMerge:
		p.merge(d)
	}
	// KindUnrecognized falls through: unknown lines are skipped, not errors.
}

// commit appends a plain commit node to the current branch's timeline.
//
// The id is the explicit one when supplied, else "commit-<line>"; the label
// is the tag when supplied, else the id. If the branch already has a tip, a
// timeline edge from that tip to the new node is recorded first.
func (p *parser) commit(d Directive) {
	id := d.ID
	if id == "" {
		id = fmt.Sprintf("commit-%d", d.Line)
	}
	label := d.Tag
	if label == "" {
		label = id
	}

	br := p.branches[p.current]
	if br.Tip != "" {
		p.edges = append(p.edges, Edge{Source: br.Tip, Target: id, Color: br.Color})
	}
	p.nodes = append(p.nodes, CommitNode{
		ID:     id,
		Label:  label,
		X:      float64(p.step) * p.xSpacing,
		Y:      float64(br.Lane) * p.ySpacing,
		Branch: br.Name,
		Color:  br.Color,
	})
	br.Tip = id
	p.step++
}

// branch declares a branch and makes it current.
//
// A new name claims the next unused lane, inherits the current branch's tip
// as its fork point, and gets palette[lane mod len(palette)] as its color.
// Re-declaring an existing name changes nothing but the current branch: the
// lane counter does not advance, and lane, tip and color stay exactly as
// they were.
func (p *parser) branch(d Directive) {
	if _, ok := p.branches[d.Name]; !ok {
		lane := p.nextLane
		p.nextLane++
		p.branches[d.Name] = &Branch{
			Name:  d.Name,
			Lane:  lane,
			Tip:   p.branches[p.current].Tip,
			Color: p.palette[lane%len(p.palette)],
		}
		p.order = append(p.order, d.Name)
	}
	p.current = d.Name
}

// checkout switches the current branch. A name that was never declared
// leaves the current branch unchanged.
func (p *parser) checkout(d Directive) {
	if _, ok := p.branches[d.Name]; ok {
		p.current = d.Name
	}
}

// merge joins the named branch into the current one.
//
// The merge node lands on the current (target) branch's lane at the next
// shared step, labeled [MergeLabel], with a synthetic "merge-<line>" id: the
// id scheme is disjoint from plain commits so the two can never collide.
// Up to two edges arrive at it, in this order: the target branch's timeline
// edge, then the merged branch's tip edge flagged MergeLine. Either edge is
// omitted when its branch has no tip, and the source edge also when the
// name was never declared.
//
// Only the target branch's tip advances to the merge node. The merged
// branch keeps its old tip, so its next commit chains from the pre-merge
// state; merges are one-way joins.
func (p *parser) merge(d Directive) {
	target := p.branches[p.current]
	id := fmt.Sprintf("merge-%d", d.Line)

	if target.Tip != "" {
		p.edges = append(p.edges, Edge{Source: target.Tip, Target: id, Color: target.Color})
	}
	if src, ok := p.branches[d.Name]; ok && src.Tip != "" {
		p.edges = append(p.edges, Edge{Source: src.Tip, Target: id, Color: src.Color, MergeLine: true})
	}
	p.nodes = append(p.nodes, CommitNode{
		ID:     id,
		Label:  MergeLabel,
		X:      float64(p.step) * p.xSpacing,
		Y:      float64(target.Lane) * p.ySpacing,
		Branch: target.Name,
		Color:  target.Color,
		Merge:  true,
	})
	target.Tip = id
	p.step++
}

// model snapshots the accumulators into the immutable result.
func (p *parser) model() *Model {
	m := &Model{
		Branches: make([]Branch, len(p.order)),
		Nodes:    p.nodes,
		Edges:    p.edges,
	}
	for i, name := range p.order {
		m.Branches[i] = *p.branches[name]
	}
	return m
}
