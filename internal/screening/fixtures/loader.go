// Package fixtures serves the test-case catalogue from snapshot files on
// disk, so the gallery works without the screening service running.
package fixtures

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"amlscope/internal/screening"
)

// maxParallel bounds how many files are decoded at once.
const maxParallel = 8

// Loader reads every *.json file in a directory. Each file holds a JSON
// array of test cases.
type Loader struct {
	fsys   fs.FS
	logger *slog.Logger
}

// New returns a loader rooted at dir. A missing directory yields an empty
// catalogue.
func New(dir string, logger *slog.Logger) *Loader {
	return NewFS(os.DirFS(dir), logger)
}

// NewFS returns a loader over fsys.
func NewFS(fsys fs.FS, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{fsys: fsys, logger: logger}
}

// FetchTests loads all snapshot files in filename order. Files that cannot
// be decoded, or that are not arrays, are skipped.
func (l *Loader) FetchTests(ctx context.Context) ([]screening.TestCase, error) {
	names, err := fs.Glob(l.fsys, "*.json")
	if err != nil {
		return nil, fmt.Errorf("list fixtures: %w", err)
	}
	sort.Strings(names)

	perFile := make([][]screening.TestCase, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cases, err := l.readFile(name)
			if err != nil {
				l.logger.WarnContext(ctx, "skipping fixture file",
					"file", name,
					"error", err,
				)
				return nil
			}
			perFile[i] = cases
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := []screening.TestCase{}
	for _, cases := range perFile {
		out = append(out, cases...)
	}
	return out, nil
}

var errNotArray = errors.New("payload is not a JSON array")

func (l *Loader) readFile(name string) ([]screening.TestCase, error) {
	raw, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, err
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, errNotArray
		}
		return nil, err
	}

	stem := strings.TrimSuffix(path.Base(name), path.Ext(name))
	cases := make([]screening.TestCase, 0, len(entries))
	for idx, entry := range entries {
		// Fields present in the entry win over the derived ones.
		tc := screening.TestCase{
			SubjectSlug: stem,
			SourceFile:  path.Base(name),
			RecordIndex: idx,
		}
		if err := json.Unmarshal(entry, &tc); err != nil {
			return nil, fmt.Errorf("record %d: %w", idx, err)
		}
		cases = append(cases, tc)
	}
	return cases, nil
}
