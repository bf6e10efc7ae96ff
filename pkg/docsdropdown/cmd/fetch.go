// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"

	ctlconf "carvel.dev/docsdropdown/pkg/docsdropdown/config"
	"carvel.dev/docsdropdown/pkg/docsdropdown/dropdown"
	ctlgh "carvel.dev/docsdropdown/pkg/docsdropdown/fetch/github"
	"github.com/cppforlife/go-cli-ui/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type FetchOptions struct {
	ui ui.UI

	Slug     string
	Kind     string
	APIURL   string
	MaxPages int
	Output   string
}

func NewFetchOptions(ui ui.UI) *FetchOptions {
	return &FetchOptions{ui: ui}
}

func NewFetchCmd(o *FetchOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch repository tags from GitHub into a versions file",
		RunE:  func(cmd *cobra.Command, _ []string) error { return o.Run(cmd.Context()) },
	}
	cmd.Flags().StringVar(&o.Slug, "slug", "", "GitHub repository (format: org/repo)")
	cmd.Flags().StringVar(&o.Kind, "kind", string(ctlgh.KindTags), "List 'tags' or 'releases'")
	cmd.Flags().StringVar(&o.APIURL, "github-api-url", "", "Override GitHub API URL")
	cmd.Flags().IntVar(&o.MaxPages, "max-pages", 0, "Maximum number of API pages to read (0 reads all)")
	cmd.Flags().StringVarP(&o.Output, "output", "o", "", "Write versions file to path instead of stdout")
	return cmd
}

func (o *FetchOptions) Run(ctx context.Context) error {
	slug, err := dropdown.ParseSlug(o.Slug)
	if err != nil {
		return err
	}

	opts := tagSourceOpts(&ctlconf.Github{APIURL: o.APIURL, Kind: o.Kind, MaxPages: o.MaxPages})

	src, err := ctlgh.NewTagSource(opts)
	if err != nil {
		return err
	}

	log.Debug().Str("source", src.Desc(slug)).Msg("Fetching versions")

	tags, err := src.List(ctx, slug)
	if err != nil {
		return err
	}

	bs, err := ctlgh.MarshalTags(tags)
	if err != nil {
		return fmt.Errorf("Marshaling tags: %s", err)
	}

	if len(o.Output) == 0 || o.Output == "-" {
		o.ui.PrintBlock(append(bs, '\n'))
		return nil
	}

	output, err := homedir.Expand(o.Output)
	if err != nil {
		return fmt.Errorf("Expanding path '%s': %s", o.Output, err)
	}

	err = dropdown.WriteOutput(output, string(bs)+"\n")
	if err != nil {
		return err
	}

	o.ui.PrintLinef("Fetched %d %s into '%s'", len(tags), src.Desc(slug), output)

	return nil
}
