package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/toyz/routedoc/internal/errors"
	"github.com/toyz/routedoc/pkg/routedoc"
)

// Document is the rendered documentation of a module for one view
type Document struct {
	Module    string             `json:"module" yaml:"module"`
	View      string             `json:"view" yaml:"view"`
	Resources []ResourceDocument `json:"resources" yaml:"resources"`
}

// ResourceDocument lists the entries of one resource in render order
type ResourceDocument struct {
	Resource string          `json:"resource" yaml:"resource"`
	Entries  []EntryDocument `json:"entries" yaml:"entries"`
}

// EntryDocument is a single documented route
type EntryDocument struct {
	ID           string              `json:"id" yaml:"id"`
	Methods      []string            `json:"methods" yaml:"methods"`
	Path         string              `json:"path" yaml:"path"`
	Controller   string              `json:"controller" yaml:"controller"`
	Name         string              `json:"name,omitempty" yaml:"name,omitempty"`
	Requirements map[string]string   `json:"requirements,omitempty" yaml:"requirements,omitempty"`
	Source       string              `json:"source,omitempty" yaml:"source,omitempty"`
	Annotation   routedoc.Annotation `json:"annotation" yaml:"annotation"`
}

// NewDocument builds the output document from ordered entries
func NewDocument(module, view string, entries []routedoc.Entry) Document {
	doc := Document{
		Module:    module,
		View:      view,
		Resources: make([]ResourceDocument, 0),
	}

	for _, group := range routedoc.GroupByResource(entries) {
		resource := ResourceDocument{
			Resource: group.Resource,
			Entries:  make([]EntryDocument, 0, len(group.Entries)),
		}
		for _, e := range group.Entries {
			entry := EntryDocument{
				ID:           e.ID().String(),
				Methods:      e.Route.Methods,
				Path:         e.Route.Path,
				Controller:   e.Route.Controller,
				Name:         e.Route.Name,
				Requirements: e.Route.Requirements,
				Annotation:   e.Annotation,
			}
			if e.Method != nil && e.Method.File != "" {
				entry.Source = fmt.Sprintf("%s:%d", e.Method.File, e.Method.Line)
			}
			resource.Entries = append(resource.Entries, entry)
		}
		doc.Resources = append(doc.Resources, resource)
	}

	return doc
}

// WriteDocument encodes the document in the given format
func WriteDocument(w io.Writer, format string, doc Document) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format: %s (supported: json, yaml)", format)
	}
	return nil
}

// WriteDocumentFile writes the document to a file, creating parent directories
func WriteDocumentFile(path, format string, doc Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapOutputError(format, path, err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.WrapOutputError(format, path, err)
	}

	if err := WriteDocument(file, format, doc); err != nil {
		file.Close()
		return errors.WrapOutputError(format, path, err)
	}
	if err := file.Close(); err != nil {
		return errors.WrapOutputError(format, path, err)
	}
	return nil
}
