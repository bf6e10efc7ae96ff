// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package versions_test

import (
	"reflect"
	"testing"

	"carvel.dev/docsdropdown/pkg/docsdropdown/versions"
)

var unordered = []string{
	"2.0.0-10+meta.10",
	"0.0.1-pre.10",
	"0.0.1-pre.1",
	"0.1.0",
	"2.0.0-10",
	"2.0.0",
	"0.0.1-rc.0",
}

func TestSemverOrder(t *testing.T) {
	result := versions.NewRelaxedSemvers(append([]string{"v2.1.0", "not-a-version"}, unordered...)).Sorted().All()

	expectedOrder := []string{
		"0.0.1-pre.1",
		"0.0.1-pre.10",
		"0.0.1-rc.0",
		"0.1.0",
		"2.0.0-10",
		"2.0.0-10+meta.10",
		"2.0.0",
		"v2.1.0",
	}

	if !reflect.DeepEqual(result, expectedOrder) {
		t.Fatalf("Expected result '%#v' to equal '%#v'", result, expectedOrder)
	}
}

func TestSemverDescendingOrder(t *testing.T) {
	result := versions.NewRelaxedSemvers([]string{"3.5.1", "4.0.0-M1", "3.10.0", "4.0.0", "3.5.10"}).SortedDesc().All()

	expectedOrder := []string{"4.0.0", "4.0.0-M1", "3.10.0", "3.5.10", "3.5.1"}

	if !reflect.DeepEqual(result, expectedOrder) {
		t.Fatalf("Expected result '%#v' to equal '%#v'", result, expectedOrder)
	}
}

func TestSemverFilterConstraints(t *testing.T) {
	result, err := versions.NewRelaxedSemvers([]string{"1.0.0", "2.0.0", "2.5.1", "3.0.0", "4.1.0"}).
		Sorted().FilterConstraints(">= 2.0, < 4.0")
	if err != nil {
		t.Fatalf("Expected filtering to succeed: %s", err)
	}

	expectedOrder := []string{"2.0.0", "2.5.1", "3.0.0"}

	if !reflect.DeepEqual(result.All(), expectedOrder) {
		t.Fatalf("Expected result '%#v' to equal '%#v'", result.All(), expectedOrder)
	}
}

func TestSemverFilterInvalidConstraints(t *testing.T) {
	_, err := versions.NewRelaxedSemvers([]string{"1.0.0"}).FilterConstraints("~~> what")
	if err == nil {
		t.Fatalf("Expected filtering to fail")
	}
}

func TestSemverPrereleasesKeptWithoutConf(t *testing.T) {
	result := versions.NewRelaxedSemvers(unordered).FilterPrereleases(nil)

	if !reflect.DeepEqual(result.All(), unordered) {
		t.Fatalf("Expected result '%#v' to equal '%#v'", result.All(), unordered)
	}
}

func TestSemverPrereleasesExcluded(t *testing.T) {
	preConf := &versions.VersionSelectionSemverPrereleases{Exclude: true}

	result := versions.NewRelaxedSemvers(unordered).FilterPrereleases(preConf)

	expectedOrder := []string{"0.1.0", "2.0.0"}

	if !reflect.DeepEqual(result.All(), expectedOrder) {
		t.Fatalf("Expected result '%#v' to equal '%#v'", result.All(), expectedOrder)
	}
}

func TestSemverWithPrereleaseIdentifiers(t *testing.T) {
	preConf := &versions.VersionSelectionSemverPrereleases{Identifiers: []string{"alpha", "rc"}}

	result := versions.NewRelaxedSemvers([]string{
		"2.0.0-10+meta.10",
		"0.0.1-pre.10",
		"0.0.1-alpha.1",
		"0.1.0",
		"2.0.0-10",
		"2.0.0",
		"0.0.1-rc.0",
	}).Sorted().FilterPrereleases(preConf)

	expectedOrder := []string{
		"0.0.1-alpha.1",
		"0.0.1-rc.0",
		"0.1.0",
		"2.0.0",
	}

	if !reflect.DeepEqual(result.All(), expectedOrder) {
		t.Fatalf("Expected result '%#v' to equal '%#v'", result.All(), expectedOrder)
	}
}

func TestSemverHighest(t *testing.T) {
	highest, found := versions.NewRelaxedSemvers([]string{"1.0.0", "v3.1.0", "2.0.0"}).Highest()
	if !found || highest != "v3.1.0" {
		t.Fatalf("Expected highest to be 'v3.1.0', but was '%s' (found: %t)", highest, found)
	}

	_, found = versions.NewRelaxedSemvers(nil).Highest()
	if found {
		t.Fatalf("Expected no highest version")
	}
}

func TestSemverBuildMetadataSortsAfterPlainVersion(t *testing.T) {
	result := versions.NewRelaxedSemvers([]string{"1.0.0+build.2", "1.0.0", "1.0.0+build.1"}).Sorted().All()

	expectedOrder := []string{"1.0.0", "1.0.0+build.1", "1.0.0+build.2"}

	if !reflect.DeepEqual(result, expectedOrder) {
		t.Fatalf("Expected result '%#v' to equal '%#v'", result, expectedOrder)
	}
}
