package ast

// NodeIdx addresses a node inside one of a Program's arenas. NoIdx marks the
// absence of a node (e.g. the Root of a Program before one is decoded).
type NodeIdx int32

// NoIdx is the sentinel "no node" index.
const NoIdx NodeIdx = -1

// Program owns every Aexp, Bexp and Cmd node reachable from its Root,
// addressed by index rather than by pointer. This mirrors spec.md §9's
// preferred replacement for the source's Rc/RefCell sharing: function
// declarations and their bodies stay alive as long as the Program itself,
// with no reference counting and no cycles, and the whole tree is freed in
// one shot when the Program is dropped.
type Program struct {
	Aexps []Aexp
	Bexps []Bexp
	Cmds  []Cmd
	Root  NodeIdx
}

// NewProgram returns an empty Program ready to receive decoded nodes.
func NewProgram() *Program {
	return &Program{Root: NoIdx}
}

func (p *Program) pushAexp(a Aexp) NodeIdx {
	p.Aexps = append(p.Aexps, a)
	return NodeIdx(len(p.Aexps) - 1)
}

func (p *Program) pushBexp(b Bexp) NodeIdx {
	p.Bexps = append(p.Bexps, b)
	return NodeIdx(len(p.Bexps) - 1)
}

func (p *Program) pushCmd(c Cmd) NodeIdx {
	p.Cmds = append(p.Cmds, c)
	return NodeIdx(len(p.Cmds) - 1)
}

// Aexp returns a pointer to the arena slot at idx; callers must not retain it
// across further decode calls on the same Program, since appends may
// reallocate the backing array.
func (p *Program) Aexp(idx NodeIdx) *Aexp { return &p.Aexps[idx] }

// Bexp returns a pointer to the arena slot at idx.
func (p *Program) Bexp(idx NodeIdx) *Bexp { return &p.Bexps[idx] }

// Cmd returns a pointer to the arena slot at idx.
func (p *Program) Cmd(idx NodeIdx) *Cmd { return &p.Cmds[idx] }

// ParseProgram decodes a root Cmd from b, returning the populated Program and
// whatever bytes trail the program (e.g. a verifier certificate).
func ParseProgram(b []byte) (*Program, []byte, error) {
	p := NewProgram()
	root, rest, err := p.DecodeCmd(b)
	if err != nil {
		return nil, nil, err
	}
	p.Root = root
	return p, rest, nil
}

// Bytes re-serializes the program's root Cmd.
func (p *Program) Bytes() []byte {
	return p.EncodeCmd(nil, p.Root)
}
