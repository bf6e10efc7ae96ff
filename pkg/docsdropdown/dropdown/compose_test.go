// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package dropdown_test

import (
	"strings"
	"testing"

	"carvel.dev/docsdropdown/pkg/docsdropdown/dropdown"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const selectOpen = "<select style='margin-top: 10px' onChange='window.document.location.href=this.options[this.selectedIndex].value;'>"

func TestComposeSelectHTML(t *testing.T) {
	result, err := dropdown.ComposeSelectHTML("org/repo", "1.0.0", []string{"1.1.0", "1.0.0"})
	require.NoError(t, err)

	expected := selectOpen +
		"<option value='https://org.github.io/repo/snapshot/guide/index.html'>SNAPSHOT</option>" +
		"<option value='https://org.github.io/repo/latest/guide/index.html'>LATEST</option>" +
		"<option value='https://org.github.io/repo/1.1.0/guide/index.html'>1.1.0</option>" +
		"<option selected='selected' value='https://org.github.io/repo/1.0.0/guide/index.html'>1.0.0</option>" +
		"</select>"

	if diff := cmp.Diff(expected, result); diff != "" {
		t.Fatalf("select markup mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotVersionSelectsSnapshot(t *testing.T) {
	slug := dropdown.Slug{Org: "org", Repo: "repo"}

	entries := dropdown.Entries(slug, "2.0.0-SNAPSHOT", []string{"1.1.0", "1.0.0"})
	require.Len(t, entries, 4)

	assert.Equal(t, dropdown.SnapshotLabel, entries[0].Label)
	assert.True(t, entries[0].Selected)
	for _, entry := range entries[1:] {
		assert.False(t, entry.Selected, "Expected '%s' to not be selected", entry.Label)
	}

	result, err := dropdown.ComposeSelectHTML("org/repo", "2.0.0-SNAPSHOT", []string{"1.1.0", "1.0.0"})
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(result, "selected='selected'"))
	assert.Contains(t, result, "<option selected='selected' value='https://org.github.io/repo/snapshot/guide/index.html'>SNAPSHOT</option>")
}

func TestReleasedVersionSelectsMatchingTag(t *testing.T) {
	slug := dropdown.Slug{Org: "org", Repo: "repo"}

	entries := dropdown.Entries(slug, "3.5.2", []string{"3.6.0", "3.5.2", "3.5.1"})

	var selected []string
	for _, entry := range entries {
		if entry.Selected {
			selected = append(selected, entry.Label)
		}
	}
	assert.Equal(t, []string{"3.5.2"}, selected)
}

func TestMicronautCoreUsesDocsDomain(t *testing.T) {
	result, err := dropdown.ComposeSelectHTML("micronaut-projects/micronaut-core", "3.5.2", []string{"3.5.2"})
	require.NoError(t, err)

	assert.Contains(t, result, "value='https://docs.micronaut.io/snapshot/guide/index.html'")
	assert.Contains(t, result, "value='https://docs.micronaut.io/latest/guide/index.html'")
	assert.Contains(t, result, "<option selected='selected' value='https://docs.micronaut.io/3.5.2/guide/index.html'>3.5.2</option>")
	assert.NotContains(t, result, "github.io")

	// Only the exact pair is special
	result, err = dropdown.ComposeSelectHTML("micronaut-projects/micronaut-data", "3.5.2", []string{"3.5.2"})
	require.NoError(t, err)
	assert.Contains(t, result, "https://micronaut-projects.github.io/micronaut-data/3.5.2/guide/index.html")
	assert.NotContains(t, result, "docs.micronaut.io")
}

func TestComposeWithoutTags(t *testing.T) {
	result, err := dropdown.ComposeSelectHTML("org/repo", "1.0.0", nil)
	require.NoError(t, err)

	expected := selectOpen +
		"<option value='https://org.github.io/repo/snapshot/guide/index.html'>SNAPSHOT</option>" +
		"<option value='https://org.github.io/repo/latest/guide/index.html'>LATEST</option>" +
		"</select>"

	if diff := cmp.Diff(expected, result); diff != "" {
		t.Fatalf("select markup mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, strings.Count(result, "<option"))
}

func TestComposeStripsMarkupFromLabels(t *testing.T) {
	result, err := dropdown.ComposeSelectHTML("org/repo", "1.0", []string{"<b>1.0</b>"})
	require.NoError(t, err)
	assert.NotContains(t, result, "<b>")
	assert.Contains(t, result, ">1.0</option>")
}

func TestComposeEscapesTagsInValues(t *testing.T) {
	result, err := dropdown.ComposeSelectHTML("org/repo", "1.0", []string{"1.0' onmouseover='alert(1)", "<b>2.0</b>"})
	require.NoError(t, err)

	assert.NotContains(t, result, "' onmouseover")
	assert.NotContains(t, result, "<b>")
	assert.Contains(t, result, "<option value='https://org.github.io/repo/1.0%27%20onmouseover=%27alert%281%29/guide/index.html'>")
	assert.Contains(t, result, "<option value='https://org.github.io/repo/%3Cb%3E2.0%3C%2Fb%3E/guide/index.html'>")
	assert.Equal(t, 4, strings.Count(result, "<option"))
}

func TestInvalidSlug(t *testing.T) {
	for _, slug := range []string{"", "repo", "org/", "/repo", "org/repo/extra"} {
		t.Run(slug, func(t *testing.T) {
			_, err := dropdown.ComposeSelectHTML(slug, "1.0", nil)
			require.Error(t, err)

			var slugErr dropdown.InvalidSlugError
			require.ErrorAs(t, err, &slugErr)
			assert.Equal(t, slug, slugErr.Slug)
			assert.Contains(t, err.Error(), "Expected slug")
		})
	}
}

func TestParseSlug(t *testing.T) {
	slug, err := dropdown.ParseSlug("micronaut-projects/micronaut-core")
	require.NoError(t, err)
	assert.Equal(t, "micronaut-projects", slug.Org)
	assert.Equal(t, "micronaut-core", slug.Repo)
	assert.True(t, slug.IsMicronautCore())
	assert.Equal(t, "micronaut-projects/micronaut-core", slug.String())
}
