package scope

import (
	"errors"
	"strings"
	"testing"

	"scopekit/internal/ast"
	"scopekit/internal/diag"
	"scopekit/internal/source"
	"scopekit/internal/trace"
)

type fixture struct {
	info *Info
	bag  *diag.Bag
	strs *source.Interner
}

func newFixture() *fixture {
	bag := diag.NewBag(16)
	strs := source.NewInterner()
	return &fixture{
		info: NewInfo(Options{Reporter: diag.BagReporter{Bag: bag}, Strings: strs}),
		bag:  bag,
		strs: strs,
	}
}

func (f *fixture) id(s string) source.StringID { return f.strs.Intern(s) }

func (f *fixture) variable(name string) *ast.VarDecl {
	return &ast.VarDecl{Name: f.id(name)}
}

func expectViolation(t *testing.T, op string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected contract violation in %s, got none", op)
		}
		err, ok := r.(error)
		var ce *ContractError
		if !ok || !errors.As(err, &ce) {
			t.Fatalf("expected *ContractError, got %T: %v", r, r)
		}
		if ce.Op != op {
			t.Fatalf("violation reported by %s, want %s (%s)", ce.Op, op, ce.Msg)
		}
	}()
	fn()
}

func TestOpenCloseDepth(t *testing.T) {
	f := newFixture()
	root := f.info.Open()
	if root.Depth() != 0 || f.info.CurrentDepth() != 0 {
		t.Fatalf("root depth = %d", root.Depth())
	}

	// matched open/close restores the previous depth, however deep
	for n := 1; n <= 5; n++ {
		before := f.info.CurrentDepth()
		opened := make([]*Scope, 0, n)
		for k := 0; k < n; k++ {
			sc := f.info.Open()
			if sc.Depth() != before+uint32(k)+1 {
				t.Fatalf("depth = %d, want %d", sc.Depth(), before+uint32(k)+1)
			}
			opened = append(opened, sc)
		}
		for k := len(opened) - 1; k >= 0; k-- {
			opened[k].Close()
		}
		if got := f.info.CurrentDepth(); got != before {
			t.Fatalf("depth after %d matched pairs = %d, want %d", n, got, before)
		}
	}
	root.Close()
	if f.info.OpenScopes() != 0 {
		t.Fatalf("stack not empty")
	}
	if err := f.info.Verify(); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestCloseOutOfOrderPanics(t *testing.T) {
	f := newFixture()
	root := f.info.Open()
	a := f.info.Open()
	b := f.info.Open()

	expectViolation(t, "Scope.Close", a.Close)
	expectViolation(t, "Scope.Close", root.Close)

	// the failed attempts changed nothing
	if !b.IsCurrent() || f.info.CurrentDepth() != 2 {
		t.Fatalf("stack disturbed by failed close")
	}
	b.Close()
	expectViolation(t, "Scope.Close", b.Close)
	expectViolation(t, "Scope.Depth", func() { b.Depth() })
	expectViolation(t, "Scope.ID", func() { b.ID() })
	a.Close()
	root.Close()
	expectViolation(t, "CurrentDepth", func() { f.info.CurrentDepth() })
	expectViolation(t, "CurrentDepth", func() { f.info.AddToScope(f.variable("x")) })
}

func TestScopedAcquisitionReleasesOnEarlyReturn(t *testing.T) {
	f := newFixture()
	root := f.info.Open()
	defer root.Close()

	handler := func(fail bool) error {
		defer f.info.Open().Close()
		f.info.AddToScope(f.variable("tmp"))
		if fail {
			return errors.New("syntax error")
		}
		return nil
	}
	_ = handler(true)
	_ = handler(false)

	if f.info.CurrentDepth() != 0 {
		t.Fatalf("handler leaked a scope")
	}
	if d := f.info.LookupValueName(f.id("tmp")); d != nil {
		t.Fatalf("binding leaked out of handler scope")
	}
}

func TestValueShadowingScenario(t *testing.T) {
	f := newFixture()
	root := f.info.Open()
	x := f.id("x")

	a := f.info.Open()
	declA := f.variable("x")
	f.info.AddToScope(declA)
	if got := f.info.LookupValueName(x); got != declA {
		t.Fatalf("depth 1 lookup = %v", got)
	}

	b := f.info.Open()
	declB := f.variable("x")
	f.info.AddToScope(declB)
	if got := f.info.LookupValueName(x); got != declB {
		t.Fatalf("shadowed lookup = %v", got)
	}
	b.Close()
	if got := f.info.LookupValueName(x); got != declA {
		t.Fatalf("after closing B lookup = %v", got)
	}
	a.Close()
	if got := f.info.LookupValueName(x); got != nil {
		t.Fatalf("after closing A lookup = %v", got)
	}
	root.Close()
}

func TestValueLookupSuppressesTopLevel(t *testing.T) {
	f := newFixture()
	root := f.info.Open()
	top := &ast.FuncDecl{Name: f.id("f")}
	f.info.AddToScope(top)

	var opened []*Scope
	for k := 0; k < 4; k++ {
		if got := f.info.LookupValueName(top.Name); got != nil {
			t.Fatalf("top-level value visible at depth %d", k)
		}
		opened = append(opened, f.info.Open())
	}
	if d, level, ok := f.info.LookupValueNameAndLevel(top.Name); !ok || d != top || level != 0 {
		t.Fatalf("raw lookup = %v,%d,%v", d, level, ok)
	}
	for k := len(opened) - 1; k >= 0; k-- {
		opened[k].Close()
	}

	// same-depth duplicates coexist, newest wins
	inner := f.info.Open()
	first, second := f.variable("dup"), f.variable("dup")
	f.info.AddToScope(first)
	f.info.AddToScope(second)
	if got := f.info.LookupValueName(f.id("dup")); got != second {
		t.Fatalf("expected newest duplicate")
	}
	f.info.AddToScope(&ast.VarDecl{})
	inner.Close()
	root.Close()
}

func TestTypeLookupSeesTopLevel(t *testing.T) {
	f := newFixture()
	root := f.info.Open()
	name := f.id("Point")
	def := f.info.AddTypeAliasToScope(source.Span{Start: 1, End: 6}, name, &ast.TupleType{})

	var opened []*Scope
	for k := 0; k < 6; k++ {
		opened = append(opened, f.info.Open())
	}
	d, level, ok := f.info.LookupTypeNameAndLevel(name)
	if !ok || d != def || level != 0 {
		t.Fatalf("lookup from depth 6 = %v,%d,%v", d, level, ok)
	}
	if got := f.info.LookupOrInsertTypeNameDecl(name, source.Span{}); got != def {
		t.Fatalf("LookupOrInsert returned %v", got)
	}
	if len(f.info.Unresolved()) != 0 {
		t.Fatalf("hit must not create placeholders")
	}
	for k := len(opened) - 1; k >= 0; k-- {
		opened[k].Close()
	}
	if _, _, ok := f.info.LookupTypeNameAndLevel(f.id("Missing")); ok {
		t.Fatalf("unexpected hit for unknown name")
	}
	root.Close()
}

func TestForwardReferenceIdempotent(t *testing.T) {
	f := newFixture()
	root := f.info.Open()
	fn := f.info.Open()
	foo := f.id("Foo")

	p1 := f.info.LookupOrInsertTypeNameDecl(foo, source.Span{Start: 3, End: 6})
	p2 := f.info.LookupOrInsertTypeNameDecl(foo, source.Span{Start: 9, End: 12})
	if p1 != p2 {
		t.Fatalf("second reference created a new placeholder")
	}
	if !p1.IsUnresolved() || p1.Depth != 1 {
		t.Fatalf("placeholder = %+v", p1)
	}
	if got := f.info.Unresolved(); len(got) != 1 || got[0] != p1 {
		t.Fatalf("unresolved list = %v", got)
	}

	named, ok := f.info.LookupOrInsertTypeName(foo, source.Span{Start: 20, End: 23}).(*ast.NamedType)
	if !ok || named.Decl != p1 || named.Span.Start != 20 {
		t.Fatalf("wrapped type = %+v", named)
	}
	fn.Close()
	root.Close()
}

func TestForwardReferenceReconciledAtSameDepth(t *testing.T) {
	f := newFixture()
	root := f.info.Open()
	fn := f.info.Open()
	foo := f.id("Foo")

	p := f.info.LookupOrInsertTypeNameDecl(foo, source.Span{Start: 1, End: 4})
	if len(f.info.Unresolved()) != 1 {
		t.Fatalf("expected one unresolved entry")
	}

	underlying := &ast.BuiltinType{Kind: ast.BuiltinInt}
	def := f.info.AddTypeAliasToScope(source.Span{Start: 10, End: 13}, foo, underlying)
	if def == p || def.IsPlaceholder() {
		t.Fatalf("definition must be a fresh declaration")
	}
	if p.IsUnresolved() || p.ResolvedTo != def || p.Underlying != underlying {
		t.Fatalf("placeholder not reconciled: %+v", p)
	}
	if got := f.info.LookupOrInsertTypeNameDecl(foo, source.Span{}); got != def {
		t.Fatalf("lookup after definition returned %+v", got)
	}
	if got := f.info.Unresolved(); len(got) != 1 {
		t.Fatalf("unresolved list must not shrink or grow, len=%d", len(got))
	}
	if len(f.info.Pending()) != 0 {
		t.Fatalf("nothing should be pending")
	}
	if f.bag.Len() != 0 {
		t.Fatalf("reconciliation is not a redefinition: %+v", f.bag.Items())
	}
	fn.Close()
	root.Close()
}

func TestForwardReferenceFromClosedNestedScope(t *testing.T) {
	f := newFixture()
	root := f.info.Open()
	foo := f.id("Foo")

	inner := f.info.Open()
	p := f.info.LookupOrInsertTypeNameDecl(foo, source.Span{})
	inner.Close()

	other := f.info.Open()
	def := f.info.AddTypeAliasToScope(source.Span{}, foo, &ast.TupleType{})
	other.Close()
	if !p.IsUnresolved() {
		t.Fatalf("a sibling scope's definition must not reconcile the placeholder")
	}
	_ = def

	top := f.info.AddTypeAliasToScope(source.Span{}, foo, &ast.TupleType{})
	if p.ResolvedTo != top {
		t.Fatalf("enclosing definition must reconcile nested placeholder, got %+v", p.ResolvedTo)
	}
	root.Close()
}

func TestInnerDefinitionReconcilesEnclosingPlaceholder(t *testing.T) {
	f := newFixture()
	root := f.info.Open()
	foo := f.id("Foo")
	p := f.info.LookupOrInsertTypeNameDecl(foo, source.Span{})

	nested := f.info.Open()
	shadow := f.info.AddTypeAliasToScope(source.Span{}, foo, &ast.TupleType{})
	if p.ResolvedTo != shadow || p.IsUnresolved() {
		t.Fatalf("inner definition must reconcile the enclosing placeholder, got %+v", p.ResolvedTo)
	}
	if got, level, _ := f.info.LookupTypeNameAndLevel(foo); got != shadow || level != 1 {
		t.Fatalf("inner definition must shadow, got %v@%d", got, level)
	}
	nested.Close()
	if got, _, _ := f.info.LookupTypeNameAndLevel(foo); got != p || got.Canonical() != shadow {
		t.Fatalf("placeholder must be visible again and lead to the definition")
	}
	if got := f.info.Pending(); len(got) != 0 {
		t.Fatalf("pending = %v", got)
	}

	top := f.info.AddTypeAliasToScope(source.Span{}, foo, &ast.TupleType{})
	if top.Flags&ast.TypeAliasRedefinition != 0 || f.bag.Len() != 0 {
		t.Fatalf("a reconciled placeholder is not a previous definition: %+v", f.bag.Items())
	}
	if got, _, _ := f.info.LookupTypeNameAndLevel(foo); got != top {
		t.Fatalf("top-level definition must be bound")
	}
	root.Close()
}

func TestPlaceholderInClosedSiblingStaysPending(t *testing.T) {
	f := newFixture()
	root := f.info.Open()
	foo := f.id("Foo")

	first := f.info.Open()
	p := f.info.LookupOrInsertTypeNameDecl(foo, source.Span{})
	first.Close()

	second := f.info.Open()
	f.info.AddTypeAliasToScope(source.Span{}, foo, &ast.TupleType{})
	second.Close()

	if got := f.info.Pending(); len(got) != 1 || got[0] != p {
		t.Fatalf("pending = %v", got)
	}
	root.Close()
}

func TestTypeRedefinitionFirstWins(t *testing.T) {
	f := newFixture()
	root := f.info.Open()
	name := f.id("T")
	first := f.info.AddTypeAliasToScope(source.Span{Start: 0, End: 1}, name, &ast.BuiltinType{Kind: ast.BuiltinInt})
	second := f.info.AddTypeAliasToScope(source.Span{Start: 10, End: 11}, name, &ast.BuiltinType{Kind: ast.BuiltinBool})

	if second == first || second.Flags&ast.TypeAliasRedefinition == 0 {
		t.Fatalf("second definition must be a flagged new declaration: %+v", second)
	}
	if got, _, _ := f.info.LookupTypeNameAndLevel(name); got != first {
		t.Fatalf("first definition must stay bound")
	}
	items := f.bag.Items()
	if len(items) != 1 || items[0].Code != diag.SemaTypeRedefinition {
		t.Fatalf("diagnostics = %+v", items)
	}
	if !strings.Contains(items[0].Message, "'T'") || items[0].Primary.Start != 10 {
		t.Fatalf("diagnostic = %+v", items[0])
	}
	if len(items[0].Notes) != 1 || items[0].Notes[0].Span.Start != 0 {
		t.Fatalf("expected note at previous definition: %+v", items[0].Notes)
	}

	// shadowing in a nested scope is legal
	nested := f.info.Open()
	inner := f.info.AddTypeAliasToScope(source.Span{}, name, &ast.TupleType{})
	if inner.Flags&ast.TypeAliasRedefinition != 0 || f.bag.Len() != 1 {
		t.Fatalf("nested definition reported as redefinition")
	}
	nested.Close()
	root.Close()
}

func TestPrelude(t *testing.T) {
	f := newFixture()
	root := f.info.Open()
	builtins := f.info.InstallPrelude(DefaultPrelude())
	if len(builtins) != 3 {
		t.Fatalf("prelude size = %d", len(builtins))
	}
	intDecl, level, ok := f.info.LookupTypeNameAndLevel(f.id("Int"))
	if !ok || level != 0 || intDecl.Flags&ast.TypeAliasBuiltin == 0 {
		t.Fatalf("Int not installed: %+v", intDecl)
	}
	f.info.AddTypeAliasToScope(source.Span{Start: 4, End: 7}, f.id("Int"), &ast.TupleType{})
	if f.bag.Len() != 1 || f.bag.Items()[0].Notes[0].Msg != "built-in declaration here" {
		t.Fatalf("expected built-in redefinition note: %+v", f.bag.Items())
	}

	nested := f.info.Open()
	expectViolation(t, "InstallPrelude", func() { f.info.InstallPrelude(DefaultPrelude()) })
	nested.Close()
	root.Close()
}

func TestScopeEventsTraced(t *testing.T) {
	ring := trace.NewRingTracer(32, trace.LevelDebug)
	strs := source.NewInterner()
	info := NewInfo(Options{Strings: strs, Tracer: ring})
	root := info.Open()
	info.LookupOrInsertTypeNameDecl(strs.Intern("Foo"), source.Span{})
	info.AddTypeAliasToScope(source.Span{}, strs.Intern("Foo"), &ast.TupleType{})
	root.Close()

	var names []string
	for _, ev := range ring.Snapshot() {
		names = append(names, ev.Name)
	}
	want := "scope.open,type.placeholder,type.reconcile,scope.close"
	if got := strings.Join(names, ","); got != want {
		t.Fatalf("events = %s, want %s", got, want)
	}
}
