// Package catalog serves the built-in template set. The catalog is
// embedded at build time and parsed once; callers always receive deep
// copies so the built-ins cannot be mutated at runtime.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/promptmaster/promptmaster/internal/models"
)

//go:embed builtins.yaml
var builtinsYAML []byte

type catalogFile struct {
	Templates []models.Template `yaml:"templates"`
}

var (
	loadOnce sync.Once
	builtins []models.Template
)

// load parses the embedded catalog. A malformed embedded file is a
// build defect, not a runtime condition, so parse failure leaves the
// catalog empty and warns on stderr rather than crashing the UI.
func load() {
	var file catalogFile
	if err := yaml.Unmarshal(builtinsYAML, &file); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: built-in catalog is unreadable: %v\n", err)
		return
	}
	for i := range file.Templates {
		file.Templates[i].Normalize()
	}
	builtins = file.Templates
}

// Templates returns the built-in templates in catalog order. Each call
// returns fresh copies.
func Templates() []models.Template {
	loadOnce.Do(load)
	out := make([]models.Template, len(builtins))
	for i, t := range builtins {
		out[i] = t.Clone()
	}
	return out
}

// Get returns the built-in template with the given id
func Get(id string) (models.Template, bool) {
	loadOnce.Do(load)
	for _, t := range builtins {
		if t.ID == id {
			return t.Clone(), true
		}
	}
	return models.Template{}, false
}

// Len returns the number of built-in templates
func Len() int {
	loadOnce.Do(load)
	return len(builtins)
}
