package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"scopekit/internal/ast"
	"scopekit/internal/source"
)

type treeNode struct {
	label    string
	children []*treeNode
}

type astPrinter struct {
	strs *source.Interner
	fs   *source.FileSet
}

// FormatASTPretty prints file as an indented tree. Type names carry their
// resolution state: `Foo?` is a pending placeholder, `Foo~` a placeholder
// reconciled with a later definition.
func FormatASTPretty(w io.Writer, file *ast.File, strs *source.Interner, fs *source.FileSet) error {
	if file == nil {
		return fmt.Errorf("file not found")
	}
	p := astPrinter{strs: strs, fs: fs}
	header := "File"
	if fs != nil {
		if f := fs.Get(file.ID); f != nil {
			header = f.Path
		}
	}
	root := &treeNode{label: fmt.Sprintf("%s (span: %s)", header, formatSpan(file.Span, fs))}
	for i, d := range file.Decls {
		n := p.decl(d)
		n.label = fmt.Sprintf("Item[%d]: %s", i, n.label)
		root.children = append(root.children, n)
	}
	var sb strings.Builder
	sb.WriteString(root.label)
	sb.WriteByte('\n')
	writeChildren(&sb, root.children, "")
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeChildren(sb *strings.Builder, children []*treeNode, prefix string) {
	for i, c := range children {
		branch, next := "├─ ", "│  "
		if i == len(children)-1 {
			branch, next = "└─ ", "   "
		}
		sb.WriteString(prefix + branch + c.label + "\n")
		writeChildren(sb, c.children, prefix+next)
	}
}

func (p astPrinter) name(id source.StringID) string {
	if id == source.NoStringID {
		return "_"
	}
	if s, ok := p.strs.Lookup(id); ok {
		return s
	}
	return fmt.Sprintf("#%d", id)
}

func (p astPrinter) decl(d ast.Decl) *treeNode {
	switch d := d.(type) {
	case *ast.TypeAliasDecl:
		if st, ok := d.Underlying.(*ast.StructType); ok {
			n := &treeNode{label: fmt.Sprintf("Struct %s%s (span: %s)", p.name(d.Name), aliasMarks(d), formatSpan(d.Span, p.fs))}
			for _, m := range st.Members {
				n.children = append(n.children, p.decl(m))
			}
			return n
		}
		return &treeNode{label: fmt.Sprintf("TypeAlias %s%s = %s (span: %s)",
			p.name(d.Name), aliasMarks(d), p.typ(d.Underlying), formatSpan(d.Span, p.fs))}
	case *ast.VarDecl:
		label := "Var " + p.name(d.Name)
		if d.Type != nil {
			label += ": " + p.typ(d.Type)
		}
		if d.Init != nil {
			label += " = " + p.expr(d.Init)
		}
		return &treeNode{label: fmt.Sprintf("%s (span: %s)", label, formatSpan(d.Span, p.fs))}
	case *ast.FuncDecl:
		params := make([]string, len(d.Params))
		for i, prm := range d.Params {
			params[i] = p.name(prm.Name) + ": " + p.typ(prm.Type)
		}
		label := fmt.Sprintf("Func %s(%s)", p.name(d.Name), strings.Join(params, ", "))
		if d.Result != nil {
			label += " -> " + p.typ(d.Result)
		}
		n := &treeNode{label: fmt.Sprintf("%s (span: %s)", label, formatSpan(d.Span, p.fs))}
		if d.Body != nil {
			n.children = p.stmts(d.Body.Stmts)
		}
		return n
	case *ast.ParamDecl:
		return &treeNode{label: "Param " + p.name(d.Name) + ": " + p.typ(d.Type)}
	default:
		return &treeNode{label: fmt.Sprintf("<%T>", d)}
	}
}

func aliasMarks(d *ast.TypeAliasDecl) string {
	var marks []string
	if d.Flags&ast.TypeAliasRedefinition != 0 {
		marks = append(marks, "redefinition")
	}
	if d.Flags&ast.TypeAliasBuiltin != 0 {
		marks = append(marks, "builtin")
	}
	if len(marks) == 0 {
		return ""
	}
	return " [" + strings.Join(marks, ", ") + "]"
}

func (p astPrinter) stmts(list []ast.Stmt) []*treeNode {
	out := make([]*treeNode, 0, len(list))
	for _, s := range list {
		out = append(out, p.stmt(s))
	}
	return out
}

func (p astPrinter) stmt(s ast.Stmt) *treeNode {
	switch s := s.(type) {
	case *ast.DeclStmt:
		return p.decl(s.Decl)
	case *ast.BlockStmt:
		return &treeNode{label: "Block", children: p.stmts(s.Stmts)}
	case *ast.ReturnStmt:
		if s.Value == nil {
			return &treeNode{label: "Return"}
		}
		return &treeNode{label: "Return " + p.expr(s.Value)}
	case *ast.ExprStmt:
		return &treeNode{label: "Expr " + p.expr(s.X)}
	default:
		return &treeNode{label: fmt.Sprintf("<%T>", s)}
	}
}

func (p astPrinter) typ(t ast.Type) string {
	switch t := t.(type) {
	case nil:
		return "<none>"
	case *ast.NamedType:
		d := t.Decl
		switch {
		case d == nil:
			return "<nil>"
		case d.IsUnresolved():
			return p.name(d.Name) + "?"
		case d.ResolvedTo != nil:
			return p.name(d.Name) + "~"
		default:
			return p.name(d.Name)
		}
	case *ast.TupleType:
		elems := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = p.typ(e)
		}
		return "(" + strings.Join(elems, ", ") + ")"
	case *ast.FuncType:
		param := p.typ(t.Param)
		if _, nested := t.Param.(*ast.FuncType); nested {
			param = "(" + param + ")"
		}
		return param + " -> " + p.typ(t.Result)
	case *ast.StructType:
		return fmt.Sprintf("struct{%d}", len(t.Members))
	case *ast.BuiltinType:
		return t.Kind.String()
	case *ast.ErrorType:
		return "<error>"
	default:
		return fmt.Sprintf("<%T>", t)
	}
}

func (p astPrinter) expr(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.IntLit:
		return e.Text
	case *ast.DeclRefExpr:
		return p.name(e.Decl.DeclName())
	case *ast.UnresolvedDeclRefExpr:
		switch {
		case e.Bound != nil:
			return p.name(e.Name)
		case len(e.Candidates) > 0:
			return fmt.Sprintf("%s<%d overloads>", p.name(e.Name), len(e.Candidates))
		default:
			return p.name(e.Name) + "<unbound>"
		}
	case *ast.CallExpr:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = p.expr(a)
		}
		return p.expr(e.Callee) + "(" + strings.Join(args, ", ") + ")"
	case *ast.BinaryExpr:
		return "(" + p.expr(e.LHS) + " " + e.Op.String() + " " + p.expr(e.RHS) + ")"
	case *ast.ParenExpr:
		return p.expr(e.Inner)
	case *ast.ErrorExpr:
		return "<error>"
	default:
		return fmt.Sprintf("<%T>", e)
	}
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}
