// Package merge reconciles person entries across wikis and plans their
// relocation into the unified people tree.
//
// Planning is pure: it reads the tree but never mutates it. The resulting
// Plan is a value the executor can apply, report in dry-run form, or apply
// again after a partial failure.
package merge

// Move relocates one node to its new home.
type Move struct {
	// Source is the repo-relative path being moved
	Source string

	// Dest is the repo-relative destination
	Dest string

	// Desc is a one-line account of the move for reports
	Desc string
}

// Remove deletes a node made redundant by the merge.
type Remove struct {
	// Path is the repo-relative path to delete
	Path string

	// Reason explains why the node is redundant
	Reason string
}

// Plan is the full set of mutations for one migration run. Moves and
// removes are disjoint: a node is either relocated or deleted, never both.
type Plan struct {
	// Moves is the ordered list of relocations
	Moves []Move

	// Removes is the ordered list of deletions
	Removes []Remove

	// Redirects maps each vacated document path to its successor
	Redirects map[string]string
}

// NewPlan creates an empty plan.
func NewPlan() *Plan {
	return &Plan{
		Moves:     []Move{},
		Removes:   []Remove{},
		Redirects: map[string]string{},
	}
}

// AddMove appends a relocation to the plan.
func (p *Plan) AddMove(source, dest, desc string) {
	p.Moves = append(p.Moves, Move{Source: source, Dest: dest, Desc: desc})
}

// AddRemove appends a deletion to the plan.
func (p *Plan) AddRemove(path, reason string) {
	p.Removes = append(p.Removes, Remove{Path: path, Reason: reason})
}
