// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"carvel.dev/docsdropdown/pkg/docsdropdown/dropdown"
	gh "github.com/google/go-github/github"
	"golang.org/x/oauth2"
)

type Kind string

const (
	KindTags     Kind = "tags"
	KindReleases Kind = "releases"

	TokenEnvVar = "DOCSDROPDOWN_GITHUB_API_TOKEN"

	defaultPerPage = 100
)

type TagSourceOpts struct {
	// APIURL overrides https://api.github.com/ (e.g. GitHub Enterprise)
	APIURL string
	Token  string
	Kind   Kind

	PerPage  int
	MaxPages int
}

// Tag is the subset of the GitHub tags API object the dropdown needs.
type Tag struct {
	Name string `json:"name"`
}

type TagSource struct {
	opts   TagSourceOpts
	client *gh.Client
}

func NewTagSource(opts TagSourceOpts) (TagSource, error) {
	switch opts.Kind {
	case "":
		opts.Kind = KindTags
	case KindTags, KindReleases:
	default:
		return TagSource{}, fmt.Errorf("Expected kind to be '%s' or '%s', but was '%s'", KindTags, KindReleases, opts.Kind)
	}

	if opts.PerPage <= 0 {
		opts.PerPage = defaultPerPage
	}

	httpClient := http.DefaultClient
	if len(opts.Token) > 0 {
		tokenSrc := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
		httpClient = oauth2.NewClient(context.Background(), tokenSrc)
	}

	client := gh.NewClient(httpClient)

	if len(opts.APIURL) > 0 {
		apiURL := opts.APIURL
		if !strings.HasSuffix(apiURL, "/") {
			apiURL += "/"
		}
		baseURL, err := url.Parse(apiURL)
		if err != nil {
			return TagSource{}, fmt.Errorf("Parsing GitHub API URL '%s': %s", opts.APIURL, err)
		}
		client.BaseURL = baseURL
	}

	return TagSource{opts, client}, nil
}

func (s TagSource) Desc(slug dropdown.Slug) string {
	return fmt.Sprintf("%s of %s", s.opts.Kind, slug)
}

// List returns all tags (or non-draft release tags) following pagination.
func (s TagSource) List(ctx context.Context, slug dropdown.Slug) ([]Tag, error) {
	var result []Tag

	listOpts := &gh.ListOptions{PerPage: s.opts.PerPage}

	for page := 1; ; page++ {
		var (
			names []string
			resp  *gh.Response
			err   error
		)

		switch s.opts.Kind {
		case KindReleases:
			names, resp, err = s.releasesPage(ctx, slug, listOpts)
		default:
			names, resp, err = s.tagsPage(ctx, slug, listOpts)
		}
		if err != nil {
			return nil, s.hintErr(slug, resp, err)
		}

		for _, name := range names {
			result = append(result, Tag{Name: name})
		}

		if resp.NextPage == 0 || (s.opts.MaxPages > 0 && page >= s.opts.MaxPages) {
			break
		}
		listOpts.Page = resp.NextPage
	}

	return result, nil
}

func (s TagSource) tagsPage(ctx context.Context, slug dropdown.Slug, listOpts *gh.ListOptions) ([]string, *gh.Response, error) {
	tags, resp, err := s.client.Repositories.ListTags(ctx, slug.Org, slug.Repo, listOpts)
	if err != nil {
		return nil, resp, err
	}

	var names []string
	for _, tag := range tags {
		names = append(names, tag.GetName())
	}
	return names, resp, nil
}

func (s TagSource) releasesPage(ctx context.Context, slug dropdown.Slug, listOpts *gh.ListOptions) ([]string, *gh.Response, error) {
	releases, resp, err := s.client.Repositories.ListReleases(ctx, slug.Org, slug.Repo, listOpts)
	if err != nil {
		return nil, resp, err
	}

	var names []string
	for _, release := range releases {
		if release.GetDraft() {
			continue
		}
		names = append(names, release.GetTagName())
	}
	return names, resp, nil
}

func (s TagSource) hintErr(slug dropdown.Slug, resp *gh.Response, err error) error {
	errMsg := fmt.Sprintf("Listing %s: %s", s.Desc(slug), err)
	if resp != nil {
		switch resp.StatusCode {
		case 401, 403:
			errMsg += fmt.Sprintf(" (hint: consider setting %s env variable to increase API rate limits)", TokenEnvVar)
		case 404:
			errMsg += " (hint: check that the repository exists and is visible with the given token)"
		}
	}
	return fmt.Errorf("%s", errMsg)
}

// MarshalTags produces the JSON document versions.ParseTags reads.
func MarshalTags(tags []Tag) ([]byte, error) {
	if tags == nil {
		tags = []Tag{}
	}
	return json.MarshalIndent(tags, "", "  ")
}
