package scope

import (
	"fmt"

	"fortio.org/safecast"

	"scopekit/internal/ast"
	"scopekit/internal/diag"
	"scopekit/internal/source"
	"scopekit/internal/trace"
)

// Options configures an Info.
type Options struct {
	Reporter diag.Reporter
	Strings  *source.Interner // shared with the lexer/parser; allocated when nil
	Tracer   trace.Tracer
}

// Info is the per-parse scope state: the stack of open scopes, the value
// and type tables and the unresolved type list.
type Info struct {
	strings  *source.Interner
	reporter diag.Reporter
	tracer   trace.Tracer

	values *Table[ast.ValueDecl]
	types  *Table[*ast.TypeAliasDecl]

	stack   []*Scope
	records []record // index 0 reserved for NoScopeID

	unresolved []pending
	byName     map[source.StringID][]int // indexes into unresolved
}

// pending is one entry of the unresolved type list.
type pending struct {
	decl  *ast.TypeAliasDecl
	scope ScopeID
}

func NewInfo(opts Options) *Info {
	strs := opts.Strings
	if strs == nil {
		strs = source.NewInterner()
	}
	tr := opts.Tracer
	if tr == nil {
		tr = trace.Nop
	}
	return &Info{
		strings:  strs,
		reporter: opts.Reporter,
		tracer:   tr,
		values:   NewTable[ast.ValueDecl](),
		types:    NewTable[*ast.TypeAliasDecl](),
		stack:    make([]*Scope, 0, 8),
		records:  make([]record, 1, 32),
		byName:   make(map[source.StringID][]int),
	}
}

// Strings exposes the interner names are spelled in.
func (i *Info) Strings() *source.Interner {
	return i.strings
}

// Open pushes a new scope nested in the current one (or the root scope at
// depth 0 when none is open) and makes it current.
func (i *Info) Open() *Scope {
	parent := NoScopeID
	depth := uint32(0)
	if top := i.top(); top != nil {
		parent = top.id
		depth = top.depth + 1
	}
	n, err := safecast.Conv[uint32](len(i.records))
	if err != nil {
		panic(fmt.Errorf("scope arena overflow: %w", err))
	}
	sc := &Scope{info: i, id: ScopeID(n), depth: depth}
	i.records = append(i.records, record{parent: parent, depth: depth})
	i.values.Enter()
	i.types.Enter()
	i.stack = append(i.stack, sc)
	trace.Point(i.tracer, trace.LayerNode, "scope.open", fmt.Sprintf("#%d depth=%d", sc.id, depth))
	return sc
}

func (i *Info) close(sc *Scope) {
	top := i.top()
	if top != sc {
		if top == nil {
			violation("Scope.Close", "closing scope #%d (depth %d) with no scope open", sc.id, sc.depth)
		}
		violation("Scope.Close", "closing scope #%d (depth %d) while scope #%d (depth %d) is current",
			sc.id, sc.depth, top.id, top.depth)
	}
	i.values.Leave()
	i.types.Leave()
	i.stack[len(i.stack)-1] = nil
	i.stack = i.stack[:len(i.stack)-1]
	sc.closed = true
	trace.Point(i.tracer, trace.LayerNode, "scope.close", fmt.Sprintf("#%d depth=%d", sc.id, sc.depth))
	if debugChecks {
		if err := i.Verify(); err != nil {
			violation("Scope.Close", "%v", err)
		}
	}
}

func (i *Info) top() *Scope {
	if len(i.stack) == 0 {
		return nil
	}
	return i.stack[len(i.stack)-1]
}

// Current returns the innermost open scope, or nil.
func (i *Info) Current() *Scope {
	return i.top()
}

// CurrentDepth returns the depth of the current scope. Calling it with no
// scope open is a contract violation.
func (i *Info) CurrentDepth() uint32 {
	top := i.top()
	if top == nil {
		violation("CurrentDepth", "no scope is open")
	}
	return top.depth
}

// OpenScopes reports the height of the scope stack.
func (i *Info) OpenScopes() int {
	return len(i.stack)
}

// encloses reports whether scope inner is outer itself or was opened
// (directly or transitively) inside outer.
func (i *Info) encloses(outer *Scope, inner ScopeID) bool {
	for id := inner; id.IsValid(); id = i.records[id].parent {
		if id == outer.id {
			return true
		}
		if i.records[id].depth <= outer.depth {
			return false
		}
	}
	return false
}

// isOpen reports whether id is on the scope stack, which makes it the
// current scope or one enclosing it.
func (i *Info) isOpen(id ScopeID) bool {
	for _, sc := range i.stack {
		if sc.id == id {
			return true
		}
	}
	return false
}

// Verify cross-checks the stack against both tables.
func (i *Info) Verify() error {
	if i.values.Frames() != len(i.stack) || i.types.Frames() != len(i.stack) {
		return fmt.Errorf("stack height %d, value frames %d, type frames %d",
			len(i.stack), i.values.Frames(), i.types.Frames())
	}
	for idx, sc := range i.stack {
		if int(sc.depth) != idx {
			return fmt.Errorf("scope #%d at stack position %d has depth %d", sc.id, idx, sc.depth)
		}
	}
	if err := i.values.verify(); err != nil {
		return fmt.Errorf("value table: %w", err)
	}
	if err := i.types.verify(); err != nil {
		return fmt.Errorf("type table: %w", err)
	}
	return nil
}

func (i *Info) name(id source.StringID) string {
	if s, ok := i.strings.Lookup(id); ok {
		return s
	}
	return fmt.Sprintf("#%d", id)
}
