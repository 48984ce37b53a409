package engine

// Key is a recognized navigation key. Everything else delivered by the
// input source is ignored.
type Key int

const (
	KeyNone Key = iota
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyHome
	KeyEnd
)

var keyNames = map[string]Key{
	"ArrowUp":    KeyArrowUp,
	"ArrowDown":  KeyArrowDown,
	"ArrowLeft":  KeyArrowLeft,
	"ArrowRight": KeyArrowRight,
	"Home":       KeyHome,
	"End":        KeyEnd,
}

// ParseKey maps a DOM key identifier to a navigation key. ok is false for
// identifiers the engine does not handle.
func ParseKey(name string) (Key, bool) {
	k, ok := keyNames[name]
	return k, ok
}

func (k Key) String() string {
	for name, v := range keyNames {
		if v == k {
			return name
		}
	}
	return "none"
}

// horizontal reports whether the key moves along the screen x axis.
func (k Key) horizontal() bool {
	return k == KeyArrowLeft || k == KeyArrowRight
}
