// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	ctlconf "carvel.dev/docsdropdown/pkg/docsdropdown/config"
	"carvel.dev/docsdropdown/pkg/docsdropdown/dropdown"
	ctlgh "carvel.dev/docsdropdown/pkg/docsdropdown/fetch/github"
	"carvel.dev/docsdropdown/pkg/docsdropdown/site"
	ctlver "carvel.dev/docsdropdown/pkg/docsdropdown/versions"
	"github.com/cppforlife/go-cli-ui/ui"
	uitable "github.com/cppforlife/go-cli-ui/ui/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type GenerateOptions struct {
	ui  ui.UI
	now func() time.Time

	Files []string

	Slug               string
	Version            string
	SourceIndex        string
	OutputIndex        string
	VersionsFile       string
	RequirePlaceholder bool

	Fetch        bool
	GithubAPIURL string
	GithubKind   string

	Constraints           []string
	PrereleaseIdentifiers []string
	ExcludePrereleases    bool
	Limit                 int

	SiteSourceDir string
	SiteOutputDir string
	SiteInclude   []string
}

func NewGenerateOptions(ui ui.UI) *GenerateOptions {
	return &GenerateOptions{ui: ui, now: time.Now}
}

func NewGenerateCmd(o *GenerateOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"g", "gen"},
		Short:   "Replace the version placeholder of documentation pages with a version dropdown",
		RunE:    func(cmd *cobra.Command, _ []string) error { return o.Run(cmd.Context()) },
	}
	cmd.Flags().StringSliceVarP(&o.Files, "file", "f", nil, "Set configuration file (YAML or TOML, '-' reads stdin)")

	cmd.Flags().StringVar(&o.Slug, "slug", "", "GitHub repository (format: org/repo)")
	cmd.Flags().StringVar(&o.Version, "version", "", "Version of the documentation being generated")
	cmd.Flags().StringVar(&o.SourceIndex, "source-index", "", "Page containing the version placeholder")
	cmd.Flags().StringVar(&o.OutputIndex, "output-index", "", "Path to write the rewritten page to")
	cmd.Flags().StringVar(&o.VersionsFile, "versions-file", "", "JSON list of tags (GitHub tags or releases API format)")
	cmd.Flags().BoolVar(&o.RequirePlaceholder, "require-placeholder", false, "Fail when a page does not contain the version placeholder")

	cmd.Flags().BoolVar(&o.Fetch, "fetch", false, "Fetch tags from GitHub when no versions file is given (implied by a 'github' config section)")
	cmd.Flags().StringVar(&o.GithubAPIURL, "github-api-url", "", "Override GitHub API URL")
	cmd.Flags().StringVar(&o.GithubKind, "github-kind", "", "List 'tags' or 'releases' when fetching")

	cmd.Flags().StringSliceVarP(&o.Constraints, "constraint", "c", nil, "Only list versions matching constraints (e.g. '>=v1.0, <v2.0')")
	cmd.Flags().StringSliceVar(&o.PrereleaseIdentifiers, "prerelease-identifier", nil, "Only list prereleases with these identifiers (e.g. 'RC')")
	cmd.Flags().BoolVar(&o.ExcludePrereleases, "exclude-prereleases", false, "Do not list prerelease versions")
	cmd.Flags().IntVar(&o.Limit, "limit", 0, "Maximum number of released versions to list")

	cmd.Flags().StringVar(&o.SiteSourceDir, "site-source", "", "Documentation tree to copy and rewrite")
	cmd.Flags().StringVar(&o.SiteOutputDir, "site-output", "", "Directory to write the rewritten documentation tree to")
	cmd.Flags().StringSliceVar(&o.SiteInclude, "include", nil, "Pages of the documentation tree to rewrite (default '**/index.html')")
	return cmd
}

func (o *GenerateOptions) Run(ctx context.Context) error {
	conf, err := o.config()
	if err != nil {
		return err
	}

	slug, err := dropdown.ParseSlug(conf.Slug)
	if err != nil {
		return err
	}

	tags, err := o.tags(ctx, conf, slug)
	if err != nil {
		return err
	}

	selected, err := ctlver.Select(tags, conf.VersionSelection)
	if err != nil {
		return fmt.Errorf("Selecting versions: %s", err)
	}

	log.Debug().Str("slug", slug.String()).Str("version", conf.Version).
		Int("tags", len(tags)).Int("selected", len(selected)).Msg("Composing dropdown")

	table := uitable.Table{
		Title:   "Pages",
		Content: "pages",
		Header: []uitable.Header{
			uitable.NewHeader("Path"),
			uitable.NewHeader("Dropdown"),
		},
	}

	if len(conf.SourceIndex) > 0 {
		result, err := dropdown.Task{
			SourceIndex:        conf.SourceIndex,
			OutputIndex:        conf.OutputIndex,
			Slug:               conf.Slug,
			Version:            conf.Version,
			Tags:               selected,
			RequirePlaceholder: conf.RequirePlaceholder,
		}.Run()
		if err != nil {
			return err
		}

		if !result.Replaced {
			o.warnMissingPlaceholder(conf.SourceIndex, conf.Version)
		}

		table.Rows = append(table.Rows, o.pageRow(result.OutputPath, result.Replaced))
	}

	if conf.Site != nil {
		siteResult, err := site.Rewriter{
			SourceDir:  conf.Site.SourceDir,
			OutputDir:  conf.Site.OutputDir,
			Include:    conf.Site.Include,
			Version:    conf.Version,
			SelectHTML: dropdown.RenderSelect(dropdown.Entries(slug, conf.Version, selected)),

			RequirePlaceholder: conf.RequirePlaceholder,
		}.Run()
		if err != nil {
			return fmt.Errorf("Rewriting site '%s': %w", conf.Site.SourceDir, err)
		}

		if siteResult.Replaced() == 0 {
			o.warnMissingPlaceholder(conf.Site.SourceDir, conf.Version)
		}

		for _, page := range siteResult.Pages {
			table.Rows = append(table.Rows, o.pageRow(page.Path, page.Replaced))
		}
	}

	o.ui.PrintTable(table)

	o.ui.PrintLinef("Versions listed: %d (+ SNAPSHOT, LATEST)", len(selected))
	o.ui.PrintLinef("Time bucket: %d", dropdown.TimeBucket(o.now()))

	return nil
}

func (o *GenerateOptions) config() (ctlconf.Config, error) {
	conf := ctlconf.NewConfig()

	if len(o.Files) > 0 {
		var err error
		conf, err = ctlconf.NewConfigFromFiles(o.Files)
		if err != nil {
			return ctlconf.Config{}, err
		}
	}

	o.applyFlags(&conf)

	err := conf.ExpandPaths()
	if err != nil {
		return ctlconf.Config{}, err
	}

	err = conf.Validate()
	if err != nil {
		return ctlconf.Config{}, fmt.Errorf("Validating config: %s", err)
	}

	return conf, nil
}

// applyFlags lets explicitly set flags win over config file values
func (o *GenerateOptions) applyFlags(conf *ctlconf.Config) {
	overrides := []struct {
		flag string
		dst  *string
	}{
		{o.Slug, &conf.Slug},
		{o.Version, &conf.Version},
		{o.SourceIndex, &conf.SourceIndex},
		{o.OutputIndex, &conf.OutputIndex},
		{o.VersionsFile, &conf.VersionsFile},
	}
	for _, override := range overrides {
		if len(override.flag) > 0 {
			*override.dst = override.flag
		}
	}

	if o.RequirePlaceholder {
		conf.RequirePlaceholder = true
	}

	if len(o.GithubAPIURL) > 0 || len(o.GithubKind) > 0 {
		if conf.Github == nil {
			conf.Github = &ctlconf.Github{}
		}
		if len(o.GithubAPIURL) > 0 {
			conf.Github.APIURL = o.GithubAPIURL
		}
		if len(o.GithubKind) > 0 {
			conf.Github.Kind = o.GithubKind
		}
	}

	if len(o.Constraints) > 0 || len(o.PrereleaseIdentifiers) > 0 || o.ExcludePrereleases || o.Limit > 0 {
		if conf.VersionSelection == nil {
			conf.VersionSelection = &ctlver.VersionSelection{}
		}
		if o.Limit > 0 {
			conf.VersionSelection.Limit = o.Limit
		}
		if len(o.Constraints) > 0 || len(o.PrereleaseIdentifiers) > 0 || o.ExcludePrereleases {
			if conf.VersionSelection.Semver == nil {
				conf.VersionSelection.Semver = &ctlver.VersionSelectionSemver{}
			}
			semverConf := conf.VersionSelection.Semver
			if len(o.Constraints) > 0 {
				semverConf.Constraints = strings.Join(o.Constraints, ", ")
			}
			if len(o.PrereleaseIdentifiers) > 0 || o.ExcludePrereleases {
				semverConf.Prereleases = &ctlver.VersionSelectionSemverPrereleases{
					Identifiers: o.PrereleaseIdentifiers,
					Exclude:     o.ExcludePrereleases,
				}
			}
		}
	}

	if len(o.SiteSourceDir) > 0 || len(o.SiteOutputDir) > 0 {
		if conf.Site == nil {
			conf.Site = &ctlconf.Site{}
		}
		if len(o.SiteSourceDir) > 0 {
			conf.Site.SourceDir = o.SiteSourceDir
		}
		if len(o.SiteOutputDir) > 0 {
			conf.Site.OutputDir = o.SiteOutputDir
		}
	}
	if len(o.SiteInclude) > 0 && conf.Site != nil {
		conf.Site.Include = o.SiteInclude
	}
}

func (o *GenerateOptions) tags(ctx context.Context, conf ctlconf.Config, slug dropdown.Slug) ([]string, error) {
	if len(conf.VersionsFile) > 0 {
		bs, err := os.ReadFile(conf.VersionsFile)
		if err != nil {
			return nil, fmt.Errorf("Reading versions file '%s': %s", conf.VersionsFile, err)
		}

		tags, err := ctlver.ParseTags(bs)
		if err != nil {
			return nil, fmt.Errorf("Parsing versions file '%s': %s", conf.VersionsFile, err)
		}
		return tags, nil
	}

	if !o.Fetch && conf.Github == nil {
		log.Debug().Msg("No versions file given, listing SNAPSHOT and LATEST only")
		return nil, nil
	}

	src, err := ctlgh.NewTagSource(tagSourceOpts(conf.Github))
	if err != nil {
		return nil, err
	}

	ghTags, err := src.List(ctx, slug)
	if err != nil {
		return nil, err
	}

	var tags []string
	for _, tag := range ghTags {
		tags = append(tags, ctlver.VersionText(tag.Name))
	}
	return tags, nil
}

func (o *GenerateOptions) warnMissingPlaceholder(path, version string) {
	o.ui.ErrorLinef("Warning: '%s' does not contain placeholder '%s', copied unchanged",
		path, dropdown.PlaceholderHTML(version))
}

func (*GenerateOptions) pageRow(path string, replaced bool) []uitable.Value {
	return []uitable.Value{
		uitable.NewValueString(path),
		uitable.NewValueBool(replaced),
	}
}

func tagSourceOpts(conf *ctlconf.Github) ctlgh.TagSourceOpts {
	opts := ctlgh.TagSourceOpts{Token: os.Getenv(ctlgh.TokenEnvVar)}
	if conf != nil {
		opts.APIURL = conf.APIURL
		opts.Kind = ctlgh.Kind(conf.Kind)
		opts.MaxPages = conf.MaxPages
	}
	return opts
}
