// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package versions

import (
	"k8s.io/apimachinery/pkg/util/sets"
)

type VersionSelection struct {
	Semver *VersionSelectionSemver `json:"semver,omitempty"`
	// Limit caps the number of released versions listed (0 lists all)
	Limit int `json:"limit,omitempty"`
}

type VersionSelectionSemver struct {
	Constraints string                             `json:"constraints,omitempty"`
	Prereleases *VersionSelectionSemverPrereleases `json:"prereleases,omitempty"`
}

type VersionSelectionSemverPrereleases struct {
	Identifiers []string `json:"identifiers,omitempty"`
	Exclude     bool     `json:"exclude,omitempty"`
}

func (p VersionSelectionSemverPrereleases) IdentifiersAsMap() map[string]struct{} {
	result := map[string]struct{}{}
	for _, name := range p.Identifiers {
		result[name] = struct{}{}
	}
	return result
}

// Select de-duplicates tags, applies the selection and returns them
// newest first. Tags that are not semver are listed last in their
// given order, unless a semver selection is configured.
func Select(tags []string, selection *VersionSelection) ([]string, error) {
	seen := sets.NewString()
	var parsed []Semver
	var unparsed []string

	for _, tag := range tags {
		if seen.Has(tag) {
			continue
		}
		seen.Insert(tag)

		ver, err := NewRelaxedSemver(tag)
		if err != nil {
			unparsed = append(unparsed, tag)
			continue
		}
		parsed = append(parsed, ver)
	}

	semvers := Semvers{parsed}

	if selection != nil && selection.Semver != nil {
		semvers = semvers.FilterPrereleases(selection.Semver.Prereleases)

		if len(selection.Semver.Constraints) > 0 {
			var err error
			semvers, err = semvers.FilterConstraints(selection.Semver.Constraints)
			if err != nil {
				return nil, err
			}
		}

		unparsed = nil
	}

	result := append(semvers.SortedDesc().All(), unparsed...)

	if selection != nil && selection.Limit > 0 && len(result) > selection.Limit {
		result = result[:selection.Limit]
	}

	return result, nil
}
