// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package walker enumerates candidate files below a set of roots.
package walker

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"word-scan/internal/observability"
	"word-scan/internal/platform"
)

// Options configures an Enumerator.
type Options struct {
	// Roots are the directories traversal starts from. Roots themselves are
	// never attribute-tested.
	Roots []string
	// Extensions selects files by lower-case extension with a leading dot.
	Extensions []string
	// ExcludePatterns are filepath.Match globs tested against directory base names.
	ExcludePatterns []string
	// SkipDirs are directories that are never entered, such as the output directory.
	SkipDirs []string
	Observer *observability.StandardObserver
}

// Enumerator produces absolute paths of files whose extension is selected.
// Hidden and system directories are pruned with their whole subtree.
// Unreadable directories are skipped silently. An Enumerator holds no
// traversal state, so concurrent or repeated enumerations are independent.
type Enumerator struct {
	roots      []string
	extensions map[string]bool
	exclude    []string
	skipDirs   map[string]bool
	foldCase   bool
	observer   *observability.StandardObserver
}

// NewEnumerator creates an Enumerator. Relative roots are made absolute
// against the working directory.
func NewEnumerator(opts Options) *Enumerator {
	e := &Enumerator{
		extensions: make(map[string]bool, len(opts.Extensions)),
		exclude:    opts.ExcludePatterns,
		skipDirs:   make(map[string]bool, len(opts.SkipDirs)),
		foldCase:   !platform.GetPlatform().SupportsCaseSensitivePaths(),
		observer:   opts.Observer,
	}
	if e.observer == nil {
		e.observer = observability.Nop()
	}

	for _, root := range opts.Roots {
		e.roots = append(e.roots, absPath(root))
	}
	for _, ext := range opts.Extensions {
		e.extensions[strings.ToLower(ext)] = true
	}
	for _, dir := range opts.SkipDirs {
		e.skipDirs[e.dirKey(absPath(dir))] = true
	}
	return e
}

// GetComponentName returns the component identifier
func (e *Enumerator) GetComponentName() string {
	return "walker"
}

// Roots returns the absolute roots in traversal order.
func (e *Enumerator) Roots() []string {
	return append([]string(nil), e.roots...)
}

// Enumerate walks every root in order and calls visit for each selected file.
// Returning false from visit stops the walk. rootDone, when non-nil, is called
// after each root that was fully traversed, with the number of files that
// root yielded. Enumerate returns the total number of files visited; it stops
// quietly when ctx is done.
func (e *Enumerator) Enumerate(ctx context.Context, visit func(path string) bool, rootDone func(root string, files int)) int {
	total := 0
	count := func(path string) bool {
		total++
		return visit(path)
	}

	for _, root := range e.roots {
		before := total
		finishTiming := e.observer.StartTiming("walker", "enumerate_root", root)
		completed := e.walk(ctx, root, count)
		finishTiming(true, map[string]interface{}{"files": total - before, "stopped": !completed})
		if !completed {
			break
		}
		if rootDone != nil {
			rootDone(root, total-before)
		}
	}
	return total
}

// Paths returns a lazy sequence of selected files. Each range over the
// sequence starts a fresh traversal.
func (e *Enumerator) Paths(ctx context.Context) iter.Seq[string] {
	return func(yield func(string) bool) {
		e.Enumerate(ctx, yield, nil)
	}
}

// walk lists dir's files before descending into its subdirectories. It
// returns false when the traversal must stop.
func (e *Enumerator) walk(ctx context.Context, dir string, visit func(string) bool) bool {
	if ctx.Err() != nil {
		return false
	}
	if e.skipDirs[e.dirKey(dir)] {
		return true
	}

	// ReadDir returns the entries it read before an error; keep them.
	entries, err := os.ReadDir(dir)
	if err != nil {
		// Unreadable subtrees are skipped silently; only debug output shows them.
		e.observer.LogOperation(observability.StandardObservabilityData{
			Component: "walker",
			Operation: "read_dir",
			FilePath:  dir,
			Success:   true,
			Metadata:  map[string]interface{}{"skipped": "unreadable", "reason": err.Error()},
		})
		if len(entries) == 0 {
			return true
		}
	}

	var subdirs []string
	for _, entry := range entries {
		if ctx.Err() != nil {
			return false
		}

		full := filepath.Join(dir, entry.Name())
		switch typ := entry.Type(); {
		case typ.IsDir():
			if e.descend(full, entry) {
				subdirs = append(subdirs, full)
			}
		case typ.IsRegular():
			if e.selected(entry.Name()) && !visit(full) {
				return false
			}
		case typ&fs.ModeSymlink != 0:
			// Linked files are scanned; linked directories are not followed.
			if !e.selected(entry.Name()) {
				continue
			}
			if info, err := os.Stat(full); err == nil && info.Mode().IsRegular() && !visit(full) {
				return false
			}
		}
	}

	for _, sub := range subdirs {
		if !e.walk(ctx, sub, visit) {
			return false
		}
	}
	return true
}

// descend applies the attribute and exclude rules to a subdirectory.
func (e *Enumerator) descend(dir string, entry fs.DirEntry) bool {
	for _, pattern := range e.exclude {
		if ok, _ := filepath.Match(pattern, entry.Name()); ok {
			return false
		}
	}

	info, err := entry.Info()
	if err != nil {
		return false
	}
	if platform.AttributesFromInfo(dir, info).Skip() {
		e.observer.LogOperation(observability.StandardObservabilityData{
			Component: "walker",
			Operation: "skip_dir",
			FilePath:  dir,
			Success:   true,
		})
		return false
	}
	return true
}

func (e *Enumerator) selected(name string) bool {
	return e.extensions[strings.ToLower(filepath.Ext(name))]
}

func (e *Enumerator) dirKey(dir string) string {
	dir = filepath.Clean(dir)
	if e.foldCase {
		return strings.ToLower(dir)
	}
	return dir
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
