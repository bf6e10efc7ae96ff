// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"strings"

	ctlver "carvel.dev/docsdropdown/pkg/docsdropdown/versions"
	"github.com/cppforlife/go-cli-ui/ui"
	uitable "github.com/cppforlife/go-cli-ui/ui/table"
	"github.com/spf13/cobra"
)

type SortVersionsOptions struct {
	ui ui.UI

	Constraints           []string
	Versions              []string
	PrereleaseIdentifiers []string
	ExcludePrereleases    bool
	Limit                 int
}

func NewSortVersionsOptions(ui ui.UI) *SortVersionsOptions {
	return &SortVersionsOptions{ui: ui}
}

func NewSortVersionsCmd(o *SortVersionsOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sort-versions",
		Short: "Sort versions the way they are listed in the dropdown",
		RunE:  func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringSliceVarP(&o.Constraints, "constraint", "c", nil, "Constraints (e.g. '>=v1.0, <v2.0')")
	cmd.Flags().StringSliceVarP(&o.Versions, "version", "v", nil, "List of versions")
	cmd.Flags().StringSliceVar(&o.PrereleaseIdentifiers, "prerelease-identifier", nil, "Only include prereleases with these identifiers")
	cmd.Flags().BoolVar(&o.ExcludePrereleases, "exclude-prereleases", false, "Exclude prerelease versions")
	cmd.Flags().IntVar(&o.Limit, "limit", 0, "Maximum number of versions to list")
	return cmd
}

func (o *SortVersionsOptions) Run() error {
	allVers, err := ctlver.Select(o.versions(), o.selection())
	if err != nil {
		return err
	}

	table := uitable.Table{
		Title:           "Versions",
		FillFirstColumn: true,
		Header: []uitable.Header{
			uitable.NewHeader("Version"),
		},
	}

	for _, ver := range allVers {
		table.Rows = append(table.Rows, []uitable.Value{
			uitable.NewValueString(ver),
		})
	}

	o.ui.PrintTable(table)

	highestVer, found := ctlver.NewRelaxedSemvers(allVers).Highest()
	if found {
		o.ui.PrintLinef("Highest version: %s", highestVer)
	}

	return nil
}

func (o *SortVersionsOptions) versions() []string {
	var vers []string
	for _, ver := range o.Versions {
		vers = append(vers, strings.Fields(ver)...)
	}
	return vers
}

func (o *SortVersionsOptions) selection() *ctlver.VersionSelection {
	selection := &ctlver.VersionSelection{Limit: o.Limit}

	if len(o.Constraints) > 0 || len(o.PrereleaseIdentifiers) > 0 || o.ExcludePrereleases {
		selection.Semver = &ctlver.VersionSelectionSemver{
			Constraints: strings.Join(o.Constraints, ", "),
		}
		if len(o.PrereleaseIdentifiers) > 0 || o.ExcludePrereleases {
			selection.Semver.Prereleases = &ctlver.VersionSelectionSemverPrereleases{
				Identifiers: o.PrereleaseIdentifiers,
				Exclude:     o.ExcludePrereleases,
			}
		}
	}

	return selection
}
