package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"scopekit/internal/diag"
	"scopekit/internal/source"
	"scopekit/internal/trace"
)

// DirResult is the outcome for one file of a directory run. Result is set
// even when the file failed to load; its bag then holds the I/O error.
type DirResult struct {
	Path   string
	Result *Result
}

// listFiles returns all files below dir with the given extension, sorted.
func listFiles(dir, ext string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// ParseDir parses every source file under dir in parallel. Each file gets
// its own interner, scope session and bag; only the loaded FileSet is
// shared, read-only.
func ParseDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []DirResult, error) {
	files, err := listFiles(dir, opts.ext())
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSet()
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	span := trace.Begin(trace.FromContext(ctx), trace.LayerDriver, "parse_dir", 0).
		WithExtra("files", fmt.Sprint(len(files)))
	defer span.End("")

	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error)
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// each goroutine writes its own index
	results := make([]DirResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if loadErr, failed := loadErrors[path]; failed {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file: "+loadErr.Error()))
				results[i] = DirResult{Path: path, Result: &Result{FileSet: fileSet, Bag: bag, Errors: 1}}
				return nil
			}
			res, err := parseLoaded(gctx, fileSet, fileSet.Get(fileIDs[path]), opts)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = DirResult{Path: path, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
