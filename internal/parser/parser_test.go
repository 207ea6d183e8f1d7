package parser

import (
	"testing"

	"scopekit/internal/ast"
	"scopekit/internal/diag"
)

func TestLocalsResolveWhileParsing(t *testing.T) {
	p := mustParse(t, `
func f(x: Int) -> Int {
	var y = x;
	{
		var x = 1;
		x;
		y;
	}
	return x;
}`)
	fn := p.fn(t, "f")
	param := fn.Params[0]
	body := fn.Body.Stmts
	if len(body) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(body))
	}

	y := body[0].(*ast.DeclStmt).Decl.(*ast.VarDecl)
	if ref, ok := y.Init.(*ast.DeclRefExpr); !ok || ref.Decl != param {
		t.Fatalf("y's initialiser should refer to the parameter, got %#v", y.Init)
	}

	inner := body[1].(*ast.BlockStmt).Stmts
	innerX := inner[0].(*ast.DeclStmt).Decl
	if ref := exprOf(t, inner[1]).(*ast.DeclRefExpr); ref.Decl != innerX {
		t.Fatalf("inner x should shadow the parameter")
	}
	if ref := exprOf(t, inner[2]).(*ast.DeclRefExpr); ref.Decl != y {
		t.Fatalf("y should be visible in the nested block")
	}
	if ref := exprOf(t, body[2]).(*ast.DeclRefExpr); ref.Decl != param {
		t.Fatalf("after the block x should be the parameter again")
	}
	if len(p.File.UnresolvedRefs) != 0 {
		t.Fatalf("unexpected unresolved references: %d", len(p.File.UnresolvedRefs))
	}
}

func TestVarNotVisibleInOwnInitialiser(t *testing.T) {
	p := mustParse(t, `func f(x: Int) { var x = x; }`)
	v := p.fn(t, "f").Body.Stmts[0].(*ast.DeclStmt).Decl.(*ast.VarDecl)
	if ref, ok := v.Init.(*ast.DeclRefExpr); !ok || ref.Decl != p.fn(t, "f").Params[0] {
		t.Fatalf("initialiser must see the outer x, got %#v", v.Init)
	}
}

func TestTopLevelValuesLeftForBinding(t *testing.T) {
	p := mustParse(t, `
var g = 1;
func f() { g; f(); h; }
var top = g;`)
	refs := p.File.UnresolvedRefs
	if len(refs) != 4 {
		t.Fatalf("expected 4 unresolved refs, got %d", len(refs))
	}
	want := []string{"g", "f", "h", "g"}
	for i, ref := range refs {
		if p.name(ref.Name) != want[i] {
			t.Fatalf("ref %d = %s, want %s", i, p.name(ref.Name), want[i])
		}
	}
	if _, ok := exprOf(t, p.fn(t, "f").Body.Stmts[1]).(*ast.CallExpr).Callee.(*ast.UnresolvedDeclRefExpr); !ok {
		t.Fatalf("recursive call to a top-level function must be left unresolved")
	}
}

func TestNestedFunctionIsLocal(t *testing.T) {
	p := mustParse(t, `
func outer() {
	func inner(n: Int) { inner(n); }
	inner(1);
}`)
	body := p.fn(t, "outer").Body.Stmts
	inner := body[0].(*ast.DeclStmt).Decl.(*ast.FuncDecl)
	selfCall := exprOf(t, inner.Body.Stmts[0]).(*ast.CallExpr)
	if ref, ok := selfCall.Callee.(*ast.DeclRefExpr); !ok || ref.Decl != inner {
		t.Fatalf("nested function must see itself, got %#v", selfCall.Callee)
	}
	call := exprOf(t, body[1]).(*ast.CallExpr)
	if ref, ok := call.Callee.(*ast.DeclRefExpr); !ok || ref.Decl != inner {
		t.Fatalf("call after the nested function must bind, got %#v", call.Callee)
	}
}

func TestForwardTypeReference(t *testing.T) {
	p := mustParse(t, `
var a: Foo;
func f(p: Later) -> Foo { }
typealias Foo = Int;
typealias Later = (Foo, Bool);`)
	foo := p.decl(t, "Foo").(*ast.TypeAliasDecl)
	later := p.decl(t, "Later").(*ast.TypeAliasDecl)

	a := p.decl(t, "a").(*ast.VarDecl)
	ph := a.Type.(*ast.NamedType).Decl
	if !ph.IsPlaceholder() || ph.ResolvedTo != foo || ph.Canonical() != foo {
		t.Fatalf("a's type should be reconciled with Foo: %+v", ph)
	}
	fn := p.fn(t, "f")
	if fn.Result.(*ast.NamedType).Decl != ph {
		t.Fatalf("second use of Foo must reuse the placeholder")
	}
	paramTy := fn.Params[0].Type.(*ast.NamedType).Decl
	if paramTy.ResolvedTo != later || paramTy.Depth != 1 {
		t.Fatalf("placeholder from the closed function scope must be reconciled: %+v", paramTy)
	}
	if len(p.Unresolved) != 2 || len(p.Scopes.Pending()) != 0 {
		t.Fatalf("unresolved = %d, pending = %d", len(p.Unresolved), len(p.Scopes.Pending()))
	}
}

func TestResultTypeReconciledInBody(t *testing.T) {
	p := mustParse(t, `
func f() -> Foo {
	typealias Foo = Int;
	var x: Foo;
}`)
	fn := p.fn(t, "f")
	ph := fn.Result.(*ast.NamedType).Decl
	def := fn.Body.Stmts[0].(*ast.DeclStmt).Decl.(*ast.TypeAliasDecl)
	if ph.ResolvedTo != def {
		t.Fatalf("result type placeholder must be reconciled with the body definition")
	}
	x := fn.Body.Stmts[1].(*ast.DeclStmt).Decl.(*ast.VarDecl)
	if x.Type.(*ast.NamedType).Decl != def {
		t.Fatalf("lookup after the definition must return it, not the placeholder")
	}
}

func TestUndefinedTypeStaysPending(t *testing.T) {
	p := mustParse(t, `
func f() {
	{ var x: Missing; }
	{ typealias Missing = Int; }
}`)
	pending := p.Scopes.Pending()
	if len(pending) != 1 || p.name(pending[0].Name) != "Missing" {
		t.Fatalf("pending = %v", pending)
	}
}

func TestInnerDefinitionReconcilesOuterReference(t *testing.T) {
	p := mustParse(t, `
var x: Foo;
func f() { typealias Foo = Int; }`)
	x := p.decl(t, "x").(*ast.VarDecl)
	ph := x.Type.(*ast.NamedType).Decl
	def := p.fn(t, "f").Body.Stmts[0].(*ast.DeclStmt).Decl.(*ast.TypeAliasDecl)
	if ph.ResolvedTo != def {
		t.Fatalf("top-level reference must be reconciled with the nested definition")
	}
	if len(p.Scopes.Pending()) != 0 {
		t.Fatalf("pending = %v", p.Scopes.Pending())
	}
}

func TestStructSelfReference(t *testing.T) {
	p := mustParse(t, `
struct Node {
	var value: Int;
	var next: Node;
}`)
	node := p.decl(t, "Node").(*ast.TypeAliasDecl)
	st := node.Underlying.(*ast.StructType)
	if len(st.Members) != 2 {
		t.Fatalf("members = %d", len(st.Members))
	}
	if st.Members[1].Type.(*ast.NamedType).Decl != node {
		t.Fatalf("member type must bind to the struct being declared")
	}
	intDecl := st.Members[0].Type.(*ast.NamedType).Decl
	if intDecl.Flags&ast.TypeAliasBuiltin == 0 {
		t.Fatalf("Int must come from the prelude")
	}
	if len(p.Unresolved) != 0 {
		t.Fatalf("no placeholders expected")
	}
}

func TestFunctionTypes(t *testing.T) {
	p := mustParse(t, `typealias F = Int -> (Int, Bool) -> String;`)
	ft := p.decl(t, "F").(*ast.TypeAliasDecl).Underlying.(*ast.FuncType)
	if _, ok := ft.Result.(*ast.FuncType); !ok {
		t.Fatalf("arrow must associate to the right, got %T", ft.Result)
	}
}

func TestTypeRedefinition(t *testing.T) {
	p := parseSource(t, `
typealias T = Int;
typealias T = Bool;
typealias Int = String;
func f() { typealias T = String; }`)
	if got := p.bag.Count(diag.SemaTypeRedefinition); got != 2 {
		t.Fatalf("redefinitions = %d: %s", got, diagnosticsSummary(p.bag))
	}
	var ts []*ast.TypeAliasDecl
	for _, d := range p.File.Decls {
		if td, ok := d.(*ast.TypeAliasDecl); ok && p.name(td.Name) == "T" {
			ts = append(ts, td)
		}
	}
	if len(ts) != 2 || ts[0].Flags&ast.TypeAliasRedefinition != 0 || ts[1].Flags&ast.TypeAliasRedefinition == 0 {
		t.Fatalf("second T must be flagged as a redefinition")
	}
}

func TestSyntaxRecovery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
		decls int
	}{
		{"missing name", "var = 1; var ok = 2;", diag.SynExpectIdentifier, 1},
		{"missing semicolon", "var a = 1 var b = 2;", diag.SynExpectSemicolon, 2},
		{"missing type", "var a: = 1; var b = 2;", diag.SynExpectType, 2},
		{"missing expression", "var a = ; var b = 2;", diag.SynExpectExpression, 2},
		{"missing colon", "func f(a Int) { } var b = 1;", diag.SynExpectColon, 2},
		{"unclosed brace", "func f() { var x = 1;", diag.SynUnclosedBrace, 1},
		{"unclosed paren", "var a = (1 + 2; var b = 1;", diag.SynUnclosedParen, 2},
		{"stray token", "; ) var ok = 1;", diag.SynUnexpectedToken, 1},
		{"bad statement", "func f() { ) ; var y = 1; y; }", diag.SynExpectExpression, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parseSource(t, tt.input)
			if p.bag.Count(tt.code) == 0 {
				t.Fatalf("expected %s, got %s", tt.code.ID(), diagnosticsSummary(p.bag))
			}
			if len(p.File.Decls) != tt.decls {
				t.Fatalf("decls = %d, want %d", len(p.File.Decls), tt.decls)
			}
		})
	}
}

func TestMaxErrors(t *testing.T) {
	p := parseWith(t, "var = 1; var = 2; var = 3; var = 4;", Options{MaxErrors: 2})
	if p.bag.Len() != 2 {
		t.Fatalf("expected reporting to stop after 2 errors, got %d", p.bag.Len())
	}
	if p.Errors != 4 {
		t.Fatalf("all errors must still be counted, got %d", p.Errors)
	}
}

func TestRedefinitionCountsTowardsMaxErrors(t *testing.T) {
	p := parseWith(t, "typealias T = Int;\ntypealias T = Bool;\nvar = 1;", Options{MaxErrors: 1})
	if p.Errors != 2 {
		t.Fatalf("redefinition and syntax error must both be counted, got %d", p.Errors)
	}
	if p.bag.Len() != 1 || p.bag.Items()[0].Code != diag.SemaTypeRedefinition {
		t.Fatalf("only the first error may reach the reporter: %s", diagnosticsSummary(p.bag))
	}
}

func TestUnderscoreIsNotBound(t *testing.T) {
	p := mustParse(t, `func f(_: Int) { var _ = 1; _x; }`)
	if len(p.File.UnresolvedRefs) != 1 {
		t.Fatalf("refs = %d", len(p.File.UnresolvedRefs))
	}
}
