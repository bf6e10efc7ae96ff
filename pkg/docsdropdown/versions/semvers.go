// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package versions

import (
	"fmt"
	"sort"

	goversion "github.com/hashicorp/go-version"
	semver "github.com/k14s/semver/v4"
)

const (
	lessThan    = -1
	greaterThan = 1
)

type Semvers struct {
	versions []Semver
}

// Semver keeps the tag as it was written next to its parsed form
type Semver struct {
	version  semver.Version
	Original string
}

func NewRelaxedSemver(version string) (Semver, error) {
	parsed, err := semver.ParseTolerant(version)
	if err != nil {
		return Semver{}, err
	}
	return Semver{parsed, version}, nil
}

// NewRelaxedSemvers drops tags that do not parse as semver
func NewRelaxedSemvers(versions []string) Semvers {
	var parsed []Semver

	for _, vStr := range versions {
		ver, err := NewRelaxedSemver(vStr)
		if err != nil {
			continue
		}
		parsed = append(parsed, ver)
	}

	return Semvers{parsed}
}

func (s Semver) IsPrerelease() bool { return len(s.version.Pre) > 0 }

func (s Semver) Compare(subj Semver) int {
	return s.version.Compare(subj.version)
}

func (v Semvers) Len() int { return len(v.versions) }

func (v Semvers) Sorted() Semvers {
	versions := append([]Semver{}, v.versions...)

	sort.SliceStable(versions, func(i, j int) bool {
		return versions[i].Compare(versions[j]) == lessThan
	})

	return Semvers{versions}
}

// SortedDesc orders newest first, the way the dropdown lists them.
func (v Semvers) SortedDesc() Semvers {
	versions := append([]Semver{}, v.versions...)

	sort.SliceStable(versions, func(i, j int) bool {
		return versions[i].Compare(versions[j]) == greaterThan
	})

	return Semvers{versions}
}

// FilterConstraints keeps versions matching a constraint list such as '>= 2.0, < 4.0'.
func (v Semvers) FilterConstraints(constraintList string) (Semvers, error) {
	constraints, err := goversion.NewConstraint(constraintList)
	if err != nil {
		return Semvers{}, fmt.Errorf("Parsing version constraint '%s': %s", constraintList, err)
	}

	var matching []Semver

	for _, ver := range v.versions {
		checked, err := goversion.NewVersion(ver.Original)
		if err != nil {
			continue
		}
		if constraints.Check(checked) {
			matching = append(matching, ver)
		}
	}

	return Semvers{matching}, nil
}

func (v Semvers) FilterPrereleases(prereleases *VersionSelectionSemverPrereleases) Semvers {
	if prereleases == nil {
		return v
	}

	if prereleases.Exclude {
		var result []Semver
		for _, ver := range v.versions {
			if !ver.IsPrerelease() {
				result = append(result, ver)
			}
		}
		return Semvers{result}
	}

	preIdentifiers := prereleases.IdentifiersAsMap()

	var result []Semver
	for _, ver := range v.versions {
		if !ver.IsPrerelease() || keepPrerelease(ver.version, preIdentifiers) {
			result = append(result, ver)
		}
	}
	return Semvers{result}
}

func keepPrerelease(ver semver.Version, preIdentifiers map[string]struct{}) bool {
	if len(preIdentifiers) == 0 {
		return true
	}
	for _, prePart := range ver.Pre {
		if len(prePart.VersionStr) > 0 {
			if _, found := preIdentifiers[prePart.VersionStr]; found {
				return true
			}
		}
	}
	return false
}

func (v Semvers) Highest() (string, bool) {
	v = v.Sorted()

	if len(v.versions) == 0 {
		return "", false
	}

	return v.versions[len(v.versions)-1].Original, true
}

func (v Semvers) All() []string {
	var verStrs []string
	for _, ver := range v.versions {
		verStrs = append(verStrs, ver.Original)
	}
	return verStrs
}
