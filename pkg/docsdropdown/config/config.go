// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"carvel.dev/docsdropdown/pkg/docsdropdown/dropdown"
	"carvel.dev/docsdropdown/pkg/docsdropdown/versions"
	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"sigs.k8s.io/yaml"
)

const (
	knownAPIVersion = "docsdropdown.carvel.dev/v1alpha1"
	knownKind       = "Config"
)

var knownGithubKinds = []string{"tags", "releases"}

type Config struct {
	APIVersion string `json:"apiVersion"`
	Kind       string `json:"kind"`

	Slug    string `json:"slug,omitempty"`
	Version string `json:"version,omitempty"`

	SourceIndex  string `json:"sourceIndex,omitempty"`
	OutputIndex  string `json:"outputIndex,omitempty"`
	VersionsFile string `json:"versionsFile,omitempty"`

	RequirePlaceholder bool `json:"requirePlaceholder,omitempty"`

	Site             *Site                      `json:"site,omitempty"`
	VersionSelection *versions.VersionSelection `json:"versionSelection,omitempty"`
	Github           *Github                    `json:"github,omitempty"`
}

// Site rewrites a whole documentation tree instead of a single index
type Site struct {
	SourceDir string   `json:"sourceDir"`
	OutputDir string   `json:"outputDir"`
	Include   []string `json:"include,omitempty"`
}

type Github struct {
	APIURL string `json:"apiURL,omitempty"`
	// Kind is either 'tags' (default) or 'releases'
	Kind     string `json:"kind,omitempty"`
	MaxPages int    `json:"maxPages,omitempty"`
}

func NewConfig() Config {
	return Config{APIVersion: knownAPIVersion, Kind: knownKind}
}

// NewConfigFromFiles reads exactly one Config resource from the given
// files. Files ending in .toml are decoded as TOML, everything else
// as (multi-document) YAML; '-' reads stdin.
func NewConfigFromFiles(paths []string) (Config, error) {
	var configs []Config

	for _, path := range paths {
		bs, err := readConfigBytes(path)
		if err != nil {
			return Config{}, err
		}

		if strings.EqualFold(filepath.Ext(path), ".toml") {
			var config Config
			_, err := toml.Decode(string(bs), &config)
			if err != nil {
				return Config{}, fmt.Errorf("Unmarshaling config '%s': %s", path, err)
			}
			configs = append(configs, config)
			continue
		}

		err = parseYAMLResources(path, bs, func(docBytes []byte) error {
			var res resource

			err := yaml.Unmarshal(docBytes, &res)
			if err != nil {
				return fmt.Errorf("Unmarshaling doc: %s", err)
			}

			switch {
			case res.APIVersion == knownAPIVersion && res.Kind == knownKind:
				var config Config
				err := yaml.UnmarshalStrict(docBytes, &config)
				if err != nil {
					return fmt.Errorf("Unmarshaling config: %s", err)
				}
				configs = append(configs, config)
			default:
				return fmt.Errorf("Unknown apiVersion '%s' or kind '%s' for resource (known: %s %s)",
					res.APIVersion, res.Kind, knownAPIVersion, knownKind)
			}
			return nil
		})
		if err != nil {
			return Config{}, err
		}
	}

	if len(configs) != 1 {
		return Config{}, fmt.Errorf("Expected exactly one config, but found %d", len(configs))
	}

	return configs[0], nil
}

func (c Config) Validate() error {
	var errs []error

	if c.APIVersion != knownAPIVersion {
		errs = append(errs, fmt.Errorf("Validating apiVersion: Unknown version (known: %s)", knownAPIVersion))
	}
	if c.Kind != knownKind {
		errs = append(errs, fmt.Errorf("Validating kind: Unknown kind (known: %s)", knownKind))
	}

	_, err := dropdown.ParseSlug(c.Slug)
	if err != nil {
		errs = append(errs, fmt.Errorf("Validating slug: %s", err))
	}

	if len(c.Version) == 0 {
		errs = append(errs, fmt.Errorf("Validating version: Expected to be non-empty"))
	}

	hasIndex := len(c.SourceIndex) > 0 || len(c.OutputIndex) > 0
	switch {
	case hasIndex && (len(c.SourceIndex) == 0 || len(c.OutputIndex) == 0):
		errs = append(errs, fmt.Errorf("Validating index: Expected both sourceIndex and outputIndex"))
	case !hasIndex && c.Site == nil:
		errs = append(errs, fmt.Errorf("Validating index: Expected sourceIndex and outputIndex or site to be specified"))
	}

	if c.Site != nil {
		if len(c.Site.SourceDir) == 0 || len(c.Site.OutputDir) == 0 {
			errs = append(errs, fmt.Errorf("Validating site: Expected both sourceDir and outputDir"))
		}
	}

	if c.VersionSelection != nil && c.VersionSelection.Limit < 0 {
		errs = append(errs, fmt.Errorf("Validating versionSelection: Expected limit to be >= 0"))
	}

	if c.Github != nil && len(c.Github.Kind) > 0 && !c.Github.knownKind() {
		errs = append(errs, fmt.Errorf("Validating github: Unknown kind '%s' (known: %s)",
			c.Github.Kind, strings.Join(knownGithubKinds, ", ")))
	}

	return utilerrors.NewAggregate(errs)
}

// ExpandPaths resolves '~' in all configured paths.
func (c *Config) ExpandPaths() error {
	paths := []*string{&c.SourceIndex, &c.OutputIndex, &c.VersionsFile}
	if c.Site != nil {
		paths = append(paths, &c.Site.SourceDir, &c.Site.OutputDir)
	}

	for _, path := range paths {
		expanded, err := homedir.Expand(*path)
		if err != nil {
			return fmt.Errorf("Expanding path '%s': %s", *path, err)
		}
		*path = expanded
	}
	return nil
}

func (c Config) AsBytes() ([]byte, error) {
	bs, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("Marshaling config: %s", err)
	}
	return bs, nil
}

func (g Github) knownKind() bool {
	for _, kind := range knownGithubKinds {
		if g.Kind == kind {
			return true
		}
	}
	return false
}
