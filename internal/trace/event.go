package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Layer is the granularity of an event. Lower values are coarser.
type Layer uint8

const (
	LayerDriver Layer = iota + 1 // CLI commands
	LayerPass                    // lex, parse, bind
	LayerFile                    // one source file
	LayerNode                    // scopes and declarations
)

func (l Layer) String() string {
	switch l {
	case LayerDriver:
		return "driver"
	case LayerPass:
		return "pass"
	case LayerFile:
		return "file"
	case LayerNode:
		return "node"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Layer    Layer
	SpanID   uint64
	ParentID uint64
	Name     string // e.g. "parse", "scope.open"
	Detail   string
	Extra    map[string]string
}
