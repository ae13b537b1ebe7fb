package notification

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var defaultTemplatesYAML []byte

// DefaultTemplates parses the embedded default template set.
func DefaultTemplates() (map[string]Template, error) {
	templates := map[string]Template{}
	if err := yaml.Unmarshal(defaultTemplatesYAML, &templates); err != nil {
		return nil, fmt.Errorf("parsing default templates: %w", err)
	}
	return templates, nil
}
