package culture

import (
	"fmt"
	"os"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// FromYAML decodes a culture snapshot from YAML and validates it.
// The tag is derived from the name field when it parses as BCP-47.
func FromYAML(data []byte) (Culture, error) {
	var c Culture
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Culture{}, fmt.Errorf("decoding culture: %w", err)
	}
	if tag, err := language.Parse(c.Name); err == nil {
		c.Tag = tag
	} else {
		c.Tag = language.Und
	}
	if err := c.Validate(); err != nil {
		return Culture{}, err
	}
	return c, nil
}

// FromFile reads a culture snapshot from a YAML file.
func FromFile(path string) (Culture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Culture{}, fmt.Errorf("reading culture file: %w", err)
	}
	c, err := FromYAML(data)
	if err != nil {
		return Culture{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
