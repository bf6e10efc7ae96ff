// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package versions

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Accepts both the GitHub tags API shape ({"name": ...})
// and the releases API shape ({"tag_name": ...}).
const tagsSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "name": {"type": "string"},
      "tag_name": {"type": "string"}
    },
    "anyOf": [
      {"required": ["name"]},
      {"required": ["tag_name"]}
    ]
  }
}`

var tagsSchema = jsonschema.MustCompileString("tags.schema.json", tagsSchemaJSON)

type tagJSON struct {
	Name    string `json:"name"`
	TagName string `json:"tag_name"`
}

// ParseTags extracts version texts from a JSON array of tag objects
// in document order. 'v3.5.2' becomes '3.5.2'.
func ParseTags(bs []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(bs))
	dec.UseNumber()

	var doc interface{}

	err := dec.Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("Unmarshaling versions: %s", err)
	}

	err = tagsSchema.Validate(doc)
	if err != nil {
		return nil, fmt.Errorf("Validating versions: %s", err)
	}

	var tags []tagJSON

	err = json.Unmarshal(bs, &tags)
	if err != nil {
		return nil, fmt.Errorf("Unmarshaling versions: %s", err)
	}

	var result []string

	for _, tag := range tags {
		name := tag.Name
		if len(name) == 0 {
			name = tag.TagName
		}
		if len(name) == 0 {
			continue
		}
		result = append(result, VersionText(name))
	}

	return result, nil
}

// VersionText strips a leading 'v' when it prefixes a version number.
func VersionText(tag string) string {
	if len(tag) > 1 && tag[0] == 'v' && tag[1] >= '0' && tag[1] <= '9' {
		return tag[1:]
	}
	return tag
}
