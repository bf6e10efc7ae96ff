// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package dropdown

import (
	"fmt"
)

// InvalidSlugError is returned when a slug is not in 'org/repo' form.
type InvalidSlugError struct {
	Slug string
}

func (e InvalidSlugError) Error() string {
	return fmt.Sprintf("Expected slug '%s' to be in format 'org/repo'", e.Slug)
}

// OutputWriteError is returned when the output file or its parent
// directory cannot be created or written.
type OutputWriteError struct {
	Path string
	Err  error
}

func (e OutputWriteError) Error() string {
	return fmt.Sprintf("Cannot create '%s': %s", e.Path, e.Err)
}

func (e OutputWriteError) Unwrap() error { return e.Err }

// MissingPlaceholderError is only returned when a task requires the
// placeholder to be present.
type MissingPlaceholderError struct {
	Path        string
	Placeholder string
}

func (e MissingPlaceholderError) Error() string {
	return fmt.Sprintf("Expected '%s' to contain placeholder '%s'", e.Path, e.Placeholder)
}
