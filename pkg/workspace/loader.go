package workspace

import (
	"context"
	"fmt"
	"io"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/folio/pkg/metrics"
	"github.com/vanderheijden86/folio/pkg/model"
	"github.com/vanderheijden86/folio/pkg/seed"
)

// LoadResult is the outcome of reading one seed file.
type LoadResult struct {
	Path    string
	Entries []seed.Entry
	Error   error
}

// SeedLoader reads several seed files and merges them into one forest.
type SeedLoader struct {
	paths  []string
	logger *log.Logger
}

// NewSeedLoader returns a loader for paths. Output order follows paths.
func NewSeedLoader(paths ...string) *SeedLoader {
	return &SeedLoader{
		paths: paths,
		// Silent unless the caller opts in; the TUI owns the terminal.
		logger: log.New(io.Discard, "", 0),
	}
}

// SetLogger sets a custom logger for per-file failures.
func (l *SeedLoader) SetLogger(logger *log.Logger) {
	l.logger = logger
}

// LoadAll reads every seed file concurrently and builds one forest from the
// entries of the files that loaded, in path order. A file that fails is
// logged and skipped; LoadAll fails only when no file loaded or the merged
// entries do not build.
func (l *SeedLoader) LoadAll(ctx context.Context) (*model.Forest, []LoadResult, error) {
	if len(l.paths) == 0 {
		return nil, nil, fmt.Errorf("no seed files given")
	}
	defer metrics.Timer(metrics.SeedLoad)()

	results := l.readParallel(ctx)

	var entries []seed.Entry
	loaded := 0
	for _, r := range results {
		if r.Error != nil {
			l.logger.Printf("WARNING: failed to load seed %q: %v", r.Path, r.Error)
			continue
		}
		loaded++
		entries = append(entries, r.Entries...)
	}
	if loaded == 0 {
		return nil, results, fmt.Errorf("none of %d seed files loaded: %w", len(results), results[0].Error)
	}

	f, err := seed.Build(entries)
	if err != nil {
		return nil, results, fmt.Errorf("merging seeds: %w", err)
	}
	return f, results, nil
}

func (l *SeedLoader) readParallel(ctx context.Context) []LoadResult {
	results := make([]LoadResult, len(l.paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for i, path := range l.paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				results[i] = LoadResult{Path: path, Error: ctx.Err()}
				return nil
			default:
			}

			file, err := seed.ReadFile(path)
			results[i] = LoadResult{Path: path, Entries: file.Entries, Error: err}
			// Per-file errors live in results.
			return nil
		})
	}
	_ = g.Wait()

	l.logger.Printf("read %d seed files", len(l.paths))
	return results
}

// LoadSummary counts the outcome of a LoadAll call.
type LoadSummary struct {
	TotalFiles   int
	LoadedFiles  int
	FailedFiles  int
	TotalEntries int
	FailedPaths  []string
}

// Summarize returns a summary of load results.
func Summarize(results []LoadResult) LoadSummary {
	summary := LoadSummary{TotalFiles: len(results)}
	for _, r := range results {
		if r.Error != nil {
			summary.FailedFiles++
			summary.FailedPaths = append(summary.FailedPaths, r.Path)
			continue
		}
		summary.LoadedFiles++
		summary.TotalEntries += len(r.Entries)
	}
	return summary
}
