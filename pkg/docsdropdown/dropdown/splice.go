// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package dropdown

import (
	"strings"
)

const (
	versionPrefixHTML = "<p><strong>Version:</strong> "

	selectStyleOriginal = " style='margin-top: 10px' "
	selectStyleInline   = " style='max-width: 200px' "
)

// PlaceholderHTML is the block a documentation page carries
// in place of the dropdown.
func PlaceholderHTML(version string) string {
	return versionPrefixHTML + version + "</p>"
}

// ReplacementHTML wraps the select in the version paragraph,
// narrowing it to fit inline.
func ReplacementHTML(selectHTML string) string {
	inline := strings.ReplaceAll(selectHTML, selectStyleOriginal, selectStyleInline)
	return versionPrefixHTML + inline + " </p>"
}

// Splice replaces every placeholder for version with the dropdown.
// Content without a placeholder is returned unchanged and false.
func Splice(content, version, selectHTML string) (string, bool) {
	placeholder := PlaceholderHTML(version)
	if !strings.Contains(content, placeholder) {
		return content, false
	}
	return strings.ReplaceAll(content, placeholder, ReplacementHTML(selectHTML)), true
}
