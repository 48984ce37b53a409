package engine

import "strings"

// AttrGroup is the container attribute holding the focus-group token list.
const AttrGroup = "focusgroup"

// Behavior is the first token of a group attribute. It selects role
// inference and navigation specialization; unrecognized values degrade to
// BehaviorUnknown, which still gets roving reachability management.
type Behavior int

const (
	BehaviorUnknown Behavior = iota
	BehaviorToolbar
	BehaviorTablist
	BehaviorRadiogroup
	BehaviorListbox
	BehaviorMenu
	BehaviorMenubar
	BehaviorGrid
	// BehaviorNone opts the container and its whole subtree out of any
	// enclosing group's discovery. The container keeps an empty item list.
	BehaviorNone
)

var behaviorNames = map[string]Behavior{
	"toolbar":    BehaviorToolbar,
	"tablist":    BehaviorTablist,
	"radiogroup": BehaviorRadiogroup,
	"listbox":    BehaviorListbox,
	"menu":       BehaviorMenu,
	"menubar":    BehaviorMenubar,
	"grid":       BehaviorGrid,
	"none":       BehaviorNone,
}

func (b Behavior) String() string {
	for name, v := range behaviorNames {
		if v == b {
			return name
		}
	}
	return "unknown"
}

// TokenSet is the parsed configuration of one group attribute. Raw tokens
// are interpreted exactly once per rebuild; nothing else re-inspects the
// attribute string.
type TokenSet struct {
	Behavior Behavior

	Wrap       bool
	InlineOnly bool
	BlockOnly  bool
	// Memory defaults to true; the literal token "no-memory" clears it.
	Memory          bool
	Grid            bool
	ShadowInclusive bool
	RowWrap         bool
	ColWrap         bool
	RowFlow         bool
	ColFlow         bool
}

// ParseTokens parses a whitespace-separated token list. The first token is
// the behavior; every other known token is presence-tested independently
// and unknown extras are ignored.
func ParseTokens(raw string) TokenSet {
	ts := TokenSet{Memory: true}

	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return ts
	}

	if b, ok := behaviorNames[fields[0]]; ok {
		ts.Behavior = b
	}
	ts.Grid = ts.Behavior == BehaviorGrid

	for _, tok := range fields[1:] {
		switch tok {
		case "wrap":
			ts.Wrap = true
		case "inline":
			ts.InlineOnly = true
		case "block":
			ts.BlockOnly = true
		case "no-memory":
			ts.Memory = false
		case "shadow-inclusive":
			ts.ShadowInclusive = true
		case "row-wrap":
			ts.RowWrap = true
		case "col-wrap":
			ts.ColWrap = true
		case "row-flow":
			ts.RowFlow = true
		case "col-flow":
			ts.ColFlow = true
		}
	}

	return ts
}
