// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package dropdown

import (
	"fmt"
	"os"
	"path/filepath"
)

// Task renders the dropdown into a single documentation page.
type Task struct {
	SourceIndex string
	OutputIndex string
	Slug        string
	Version     string
	Tags        []string

	// RequirePlaceholder turns a page without placeholder into an error
	// instead of copying it through unchanged.
	RequirePlaceholder bool
}

type Result struct {
	OutputPath string
	Entries    int
	Replaced   bool
}

func (t Task) Run() (Result, error) {
	slug, err := ParseSlug(t.Slug)
	if err != nil {
		return Result{}, err
	}

	original, err := os.ReadFile(t.SourceIndex)
	if err != nil {
		return Result{}, fmt.Errorf("Reading source index '%s': %s", t.SourceIndex, err)
	}

	entries := Entries(slug, t.Version, t.Tags)

	content, replaced := Splice(string(original), t.Version, RenderSelect(entries))
	if !replaced && t.RequirePlaceholder {
		return Result{}, MissingPlaceholderError{Path: t.SourceIndex, Placeholder: PlaceholderHTML(t.Version)}
	}

	err = WriteOutput(t.OutputIndex, content)
	if err != nil {
		return Result{}, err
	}

	return Result{OutputPath: t.OutputIndex, Entries: len(entries), Replaced: replaced}, nil
}

// WriteOutput writes content as UTF-8, creating parent directories as needed.
func WriteOutput(path string, content string) error {
	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return OutputWriteError{Path: path, Err: err}
	}

	err = os.WriteFile(path, []byte(content), 0644)
	if err != nil {
		return OutputWriteError{Path: path, Err: err}
	}
	return nil
}
