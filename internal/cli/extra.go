package cli

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/toyz/routedoc/internal/errors"
	"github.com/toyz/routedoc/pkg/routedoc"
)

// extraFile is the layout of an -extra YAML file:
//
//	entries:
//	  - route: {path: /_hooks/stripe, methods: [POST], controller: Hooks::stripe}
//	    annotation: {section: Hooks, description: Stripe webhook}
type extraFile struct {
	Entries []routedoc.Annotated `yaml:"entries"`
}

// LoadExtraEntries reads additional documentation entries from a YAML file
func LoadExtraEntries(path string) (routedoc.StaticProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFileSystemError("read", path, err)
	}

	var file extraFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, errors.WrapConfigurationError(path, "parse", err).
			WithSuggestion("entries need a route (path, methods, controller) and an annotation")
	}

	provider := make(routedoc.StaticProvider, 0, len(file.Entries))
	for i, entry := range file.Entries {
		if entry.Route == nil || entry.Route.Path == "" {
			return nil, errors.Newf(errors.ConfigurationErrorCode, "entry %d has no route path", i).
				WithLocation(errors.SourceLocation{File: path})
		}
		entry.Route.SetMethods(entry.Route.Methods...)
		if entry.Route.Controller == "" {
			entry.Route.Controller = fmt.Sprintf("extra::%d", i)
		}
		provider = append(provider, entry)
	}
	return provider, nil
}
