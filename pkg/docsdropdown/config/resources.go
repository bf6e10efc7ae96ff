// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	kyaml "k8s.io/apimachinery/pkg/util/yaml"
)

type resource struct {
	APIVersion string `json:"apiVersion"`
	Kind       string `json:"kind"`
}

func readConfigBytes(path string) ([]byte, error) {
	if path == "-" {
		bs, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("Reading config from stdin: %s", err)
		}
		return bs, nil
	}

	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Reading config '%s': %s", path, err)
	}
	return bs, nil
}

// parseYAMLResources calls resourceFunc for every non-empty YAML document.
func parseYAMLResources(path string, bs []byte, resourceFunc func([]byte) error) error {
	reader := kyaml.NewYAMLReader(bufio.NewReaderSize(bytes.NewReader(bs), 4096))

	for {
		docBytes, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("Parsing config '%s': %s", path, err)
		}
		if len(bytes.TrimSpace(docBytes)) == 0 {
			continue
		}
		err = resourceFunc(docBytes)
		if err != nil {
			return fmt.Errorf("Parsing resource config '%s': %s", path, err)
		}
	}
	return nil
}
