// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package dropdown

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

const (
	SnapshotLabel = "SNAPSHOT"
	LatestLabel   = "LATEST"

	selectOpenHTML  = "<select style='margin-top: 10px' onChange='window.document.location.href=this.options[this.selectedIndex].value;'>"
	selectCloseHTML = "</select>"
)

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

// Entry is a single option of the dropdown.
type Entry struct {
	Href     string
	Label    string
	Selected bool
}

// Entries lists SNAPSHOT and LATEST followed by one entry per tag
// in the given order. SNAPSHOT is selected for any version ending
// in SNAPSHOT; LATEST is never selected.
func Entries(slug Slug, version string, tags []string) []Entry {
	entries := []Entry{
		{Href: slug.SnapshotURL(), Label: SnapshotLabel, Selected: strings.HasSuffix(version, SnapshotLabel)},
		{Href: slug.LatestURL(), Label: LatestLabel},
	}
	for _, tag := range tags {
		entries = append(entries, Entry{
			Href:     slug.VersionURL(tag),
			Label:    tag,
			Selected: version == tag,
		})
	}
	return entries
}

// ComposeSelectHTML builds the <select> markup for the given slug.
func ComposeSelectHTML(slug string, version string, tags []string) (string, error) {
	parsedSlug, err := ParseSlug(slug)
	if err != nil {
		return "", err
	}
	return RenderSelect(Entries(parsedSlug, version, tags)), nil
}

func RenderSelect(entries []Entry) string {
	var sb strings.Builder
	sb.WriteString(selectOpenHTML)
	for _, entry := range entries {
		sb.WriteString(renderOption(entry))
	}
	sb.WriteString(selectCloseHTML)
	return sb.String()
}

func renderOption(entry Entry) string {
	var sb strings.Builder
	if entry.Selected {
		sb.WriteString("<option selected='selected' value='")
	} else {
		sb.WriteString("<option value='")
	}
	sb.WriteString(html.EscapeString(entry.Href))
	sb.WriteString("'>")
	sb.WriteString(sanitizeLabel(entry.Label))
	sb.WriteString("</option>")
	return sb.String()
}

// Tags come from remote APIs so any markup in them is stripped
func sanitizeLabel(label string) string {
	labelPolicyOnce.Do(func() {
		labelPolicy = bluemonday.StrictPolicy()
	})
	return labelPolicy.Sanitize(label)
}
