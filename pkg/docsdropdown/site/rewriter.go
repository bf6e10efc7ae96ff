// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package site

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"carvel.dev/docsdropdown/pkg/docsdropdown/dropdown"
	"github.com/bmatcuk/doublestar"
	"github.com/otiai10/copy"
)

var DefaultIncludePaths = []string{"**/index.html"}

// Rewriter copies a documentation tree and splices the dropdown
// into every page matching Include (relative, '/'-separated globs).
type Rewriter struct {
	SourceDir string
	OutputDir string
	Include   []string

	Version    string
	SelectHTML string

	// RequirePlaceholder fails before anything is copied
	// when no included page contains the placeholder.
	RequirePlaceholder bool
}

type Result struct {
	Pages []Page
}

// Page is a page matching Include, relative to the output directory
type Page struct {
	Path     string
	Replaced bool
}

func (r Result) Replaced() int {
	var count int
	for _, page := range r.Pages {
		if page.Replaced {
			count++
		}
	}
	return count
}

func (r Rewriter) Run() (Result, error) {
	includePaths := r.Include
	if len(includePaths) == 0 {
		includePaths = DefaultIncludePaths
	}

	for _, pattern := range includePaths {
		_, err := doublestar.Match(pattern, pattern)
		if err != nil {
			return Result{}, fmt.Errorf("Parsing include path '%s': %s", pattern, err)
		}
	}

	srcInfo, err := os.Stat(r.SourceDir)
	if err != nil {
		return Result{}, fmt.Errorf("Checking site directory '%s': %s", r.SourceDir, err)
	}
	if !srcInfo.IsDir() {
		return Result{}, fmt.Errorf("Expected site source '%s' to be a directory", r.SourceDir)
	}

	pagePaths, err := r.includedPages(includePaths)
	if err != nil {
		return Result{}, err
	}

	if r.RequirePlaceholder {
		err := r.checkPlaceholder(pagePaths)
		if err != nil {
			return Result{}, err
		}
	}

	err = copy.Copy(r.SourceDir, r.OutputDir)
	if err != nil {
		return Result{}, dropdown.OutputWriteError{Path: r.OutputDir, Err: err}
	}

	var result Result

	for _, relPath := range pagePaths {
		replaced, err := r.rewrite(filepath.Join(r.OutputDir, filepath.FromSlash(relPath)))
		if err != nil {
			return Result{}, err
		}
		result.Pages = append(result.Pages, Page{Path: relPath, Replaced: replaced})
	}

	return result, nil
}

// includedPages lists source pages matching includePaths, sorted
func (r Rewriter) includedPages(includePaths []string) ([]string, error) {
	var pagePaths []string

	err := filepath.Walk(r.SourceDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(r.SourceDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		matched, err := matchAgainstPatterns(relPath, includePaths)
		if err != nil || !matched {
			return err
		}

		pagePaths = append(pagePaths, relPath)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(pagePaths)

	return pagePaths, nil
}

func (r Rewriter) checkPlaceholder(pagePaths []string) error {
	placeholder := dropdown.PlaceholderHTML(r.Version)

	for _, relPath := range pagePaths {
		path := filepath.Join(r.SourceDir, filepath.FromSlash(relPath))

		bs, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("Reading page '%s': %s", path, err)
		}
		if strings.Contains(string(bs), placeholder) {
			return nil
		}
	}

	return dropdown.MissingPlaceholderError{Path: r.SourceDir, Placeholder: placeholder}
}

func (r Rewriter) rewrite(path string) (bool, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("Reading page '%s': %s", path, err)
	}

	content, replaced := dropdown.Splice(string(bs), r.Version, r.SelectHTML)
	if !replaced {
		return false, nil
	}

	return true, dropdown.WriteOutput(path, content)
}

func matchAgainstPatterns(path string, patterns []string) (bool, error) {
	for _, pattern := range patterns {
		ok, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, fmt.Errorf("Parsing include path '%s': %s", pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
