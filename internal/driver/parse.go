package driver

import (
	"context"
	"fmt"

	"scopekit/internal/ast"
	"scopekit/internal/diag"
	"scopekit/internal/lexer"
	"scopekit/internal/namebind"
	"scopekit/internal/observ"
	"scopekit/internal/parser"
	"scopekit/internal/source"
	"scopekit/internal/trace"
)

// Result is everything one file run produced.
type Result struct {
	FileSet *source.FileSet
	File    *source.File
	AST     *ast.File
	Strings *source.Interner
	Bag     *diag.Bag
	Errors  uint // counted even past the bag limit

	// Unresolved is the complete forward type reference list, reconciled
	// entries included.
	Unresolved []*ast.TypeAliasDecl
	Builtins   []*ast.TypeAliasDecl
	Binding    namebind.Result
	Timing     observ.Report
}

// Pending returns the placeholders that are still unresolved.
func (r *Result) Pending() []*ast.TypeAliasDecl {
	var out []*ast.TypeAliasDecl
	for _, d := range r.Unresolved {
		if d.IsUnresolved() {
			out = append(out, d)
		}
	}
	return out
}

// ParseFile loads path and runs lex, parse and bind over it.
func ParseFile(ctx context.Context, path string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return parseLoaded(ctx, fs, fs.Get(fileID), opts)
}

// ParseSource is ParseFile for in-memory content.
func ParseSource(ctx context.Context, name string, content []byte, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	return parseLoaded(ctx, fs, fs.Get(fs.AddVirtual(name, content)), opts)
}

// parseLoaded runs the pipeline for a file already in fs. It only reads
// fs, so several files of one set may be processed concurrently.
func parseLoaded(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.LayerFile, "file", 0).WithExtra("path", file.Path)

	bag := diag.NewBag(opts.MaxDiagnostics)
	counting := &diag.CountingReporter{Next: diag.NewDedupReporter(diag.BagReporter{Bag: bag})}
	strs := source.NewInterner()
	timer := observ.NewTimer()

	var parsed parser.Result
	timer.Track("parse", func() string {
		lx := lexer.New(file, lexer.Options{Reporter: counting})
		// no parser cap: the bag limit drops, counting sees every error
		parsed = parser.ParseFile(lx, strs, parser.Options{
			Reporter: counting,
			Tracer:   tracer,
			Prelude:  opts.Prelude,
		})
		return fmt.Sprintf("%d decls", len(parsed.File.Decls))
	})

	res := &Result{
		FileSet:    fs,
		File:       file,
		AST:        parsed.File,
		Strings:    strs,
		Bag:        bag,
		Unresolved: parsed.Unresolved,
		Builtins:   parsed.Builtins,
	}
	if !opts.SkipBind {
		timer.Track("bind", func() string {
			res.Binding = namebind.Bind(parsed.File, parsed.Unresolved, namebind.Options{
				Reporter: counting,
				Strings:  strs,
				Tracer:   tracer,
			})
			return fmt.Sprintf("%d bound, %d undefined", res.Binding.Bound, res.Binding.Undefined)
		})
	}
	bag.Sort()
	res.Errors = counting.Errors
	res.Timing = timer.Report()
	span.WithExtra("errors", fmt.Sprint(res.Errors)).End("")
	return res, nil
}
