// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package dropdown

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	micronautOrganization = "micronaut-projects"
	micronautCoreRepo     = "micronaut-core"
	micronautDocsHost     = "docs.micronaut.io"
)

// Slug identifies a GitHub repository as organization/repository.
type Slug struct {
	Org  string
	Repo string
}

// ParseSlug expects exactly two non-empty parts separated by '/'
func ParseSlug(slug string) (Slug, error) {
	pieces := strings.Split(slug, "/")
	if len(pieces) != 2 || len(pieces[0]) == 0 || len(pieces[1]) == 0 {
		return Slug{}, InvalidSlugError{Slug: slug}
	}
	return Slug{Org: pieces[0], Repo: pieces[1]}, nil
}

func (s Slug) String() string { return s.Org + "/" + s.Repo }

// IsMicronautCore reports whether guide URLs resolve to the
// canonical docs.micronaut.io domain instead of GitHub Pages.
func (s Slug) IsMicronautCore() bool {
	return s.Org == micronautOrganization && s.Repo == micronautCoreRepo
}

func (s Slug) SnapshotURL() string { return s.guideURL("snapshot") }

func (s Slug) LatestURL() string { return s.guideURL("latest") }

// VersionURL escapes version as a single path segment
func (s Slug) VersionURL(version string) string { return s.guideURL(url.PathEscape(version)) }

func (s Slug) guideURL(dir string) string {
	if s.IsMicronautCore() {
		return fmt.Sprintf("https://%s/%s/guide/index.html", micronautDocsHost, dir)
	}
	return fmt.Sprintf("https://%s.github.io/%s/%s/guide/index.html", s.Org, s.Repo, dir)
}
