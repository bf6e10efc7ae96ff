// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package dropdown_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"carvel.dev/docsdropdown/pkg/docsdropdown/dropdown"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	pageHead = "<html><head><title>Guide</title></head><body><div id='header'>"
	pageTail = "</div><p>Version: 1.0 is great</p></body></html>"
)

func TestSpliceReplacesPlaceholderOnly(t *testing.T) {
	template := pageHead + "<p><strong>Version:</strong> 1.0</p>" + pageTail

	selectHTML, err := dropdown.ComposeSelectHTML("org/repo", "1.0", []string{"1.0"})
	require.NoError(t, err)

	result, replaced := dropdown.Splice(template, "1.0", selectHTML)
	require.True(t, replaced)

	expected := pageHead + "<p><strong>Version:</strong> " +
		"<select style='max-width: 200px' onChange='window.document.location.href=this.options[this.selectedIndex].value;'>" +
		"<option value='https://org.github.io/repo/snapshot/guide/index.html'>SNAPSHOT</option>" +
		"<option value='https://org.github.io/repo/latest/guide/index.html'>LATEST</option>" +
		"<option selected='selected' value='https://org.github.io/repo/1.0/guide/index.html'>1.0</option>" +
		"</select> </p>" + pageTail

	if diff := cmp.Diff(expected, result); diff != "" {
		t.Fatalf("spliced page mismatch (-want +got):\n%s", diff)
	}
}

func TestSpliceWithoutPlaceholderIsNoop(t *testing.T) {
	template := pageHead + "<p><strong>Version:</strong> 2.0</p>" + pageTail

	result, replaced := dropdown.Splice(template, "1.0", "<select></select>")
	assert.False(t, replaced)
	assert.Equal(t, template, result)
}

func TestReplacementHTML(t *testing.T) {
	result := dropdown.ReplacementHTML("<select style='margin-top: 10px' onChange='x'></select>")
	assert.Equal(t, "<p><strong>Version:</strong> <select style='max-width: 200px' onChange='x'></select> </p>", result)
}

func TestTaskRun(t *testing.T) {
	tmpDir := t.TempDir()
	sourcePath := filepath.Join(tmpDir, "src", "index.html")
	outputPath := filepath.Join(tmpDir, "build", "docs", "guide", "index.html")

	require.NoError(t, os.MkdirAll(filepath.Dir(sourcePath), 0755))
	require.NoError(t, os.WriteFile(sourcePath, []byte(pageHead+"<p><strong>Version:</strong> 1.1.0</p>"+pageTail), 0644))

	result, err := dropdown.Task{
		SourceIndex: sourcePath,
		OutputIndex: outputPath,
		Slug:        "org/repo",
		Version:     "1.1.0",
		Tags:        []string{"1.1.0", "1.0.0"},
	}.Run()
	require.NoError(t, err)

	assert.True(t, result.Replaced)
	assert.Equal(t, 4, result.Entries)
	assert.Equal(t, outputPath, result.OutputPath)

	bs, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(bs), pageHead))
	assert.True(t, strings.HasSuffix(string(bs), pageTail))
	assert.Contains(t, string(bs), "<option selected='selected' value='https://org.github.io/repo/1.1.0/guide/index.html'>1.1.0</option>")
}

func TestTaskRunMissingPlaceholder(t *testing.T) {
	tmpDir := t.TempDir()
	sourcePath := filepath.Join(tmpDir, "index.html")
	outputPath := filepath.Join(tmpDir, "out", "index.html")
	original := pageHead + pageTail

	require.NoError(t, os.WriteFile(sourcePath, []byte(original), 0644))

	task := dropdown.Task{
		SourceIndex: sourcePath,
		OutputIndex: outputPath,
		Slug:        "org/repo",
		Version:     "1.0",
	}

	t.Run("copies page unchanged by default", func(t *testing.T) {
		result, err := task.Run()
		require.NoError(t, err)
		assert.False(t, result.Replaced)

		bs, err := os.ReadFile(outputPath)
		require.NoError(t, err)
		assert.Equal(t, original, string(bs))
	})

	t.Run("fails when placeholder is required", func(t *testing.T) {
		task.RequirePlaceholder = true
		task.OutputIndex = filepath.Join(tmpDir, "strict", "index.html")

		_, err := task.Run()
		var placeholderErr dropdown.MissingPlaceholderError
		require.ErrorAs(t, err, &placeholderErr)
		assert.Equal(t, "<p><strong>Version:</strong> 1.0</p>", placeholderErr.Placeholder)

		_, statErr := os.Stat(task.OutputIndex)
		assert.True(t, os.IsNotExist(statErr))
	})
}

func TestTaskRunInvalidSlug(t *testing.T) {
	_, err := dropdown.Task{Slug: "no-slash", Version: "1.0"}.Run()
	require.ErrorAs(t, err, &dropdown.InvalidSlugError{})
}

func TestWriteOutputFailure(t *testing.T) {
	tmpDir := t.TempDir()
	blocker := filepath.Join(tmpDir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("file, not dir"), 0644))

	outputPath := filepath.Join(blocker, "docs", "index.html")
	err := dropdown.WriteOutput(outputPath, "content")

	var writeErr dropdown.OutputWriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, outputPath, writeErr.Path)
	assert.Contains(t, err.Error(), "Cannot create")
}

func TestTimeBucket(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, start.Unix(), dropdown.TimeBucket(start))
	assert.Equal(t, start.Unix(), dropdown.TimeBucket(start.Add(59*time.Minute+59*time.Second)))
	assert.Equal(t, start.Add(time.Hour).Unix(), dropdown.TimeBucket(start.Add(time.Hour)))

	beforeEpoch := time.Date(1969, 12, 31, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, int64(-3600), dropdown.TimeBucket(beforeEpoch))
	assert.Equal(t, int64(-3600), dropdown.TimeBucket(time.Unix(-3600, 0)))
}
