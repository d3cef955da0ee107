package cli

import (
	"io"
	"os"
	"strings"

	"github.com/toyz/routedoc/internal/errors"
	"github.com/toyz/routedoc/internal/source"
	"github.com/toyz/routedoc/internal/utils"
	"github.com/toyz/routedoc/pkg/routedoc"
)

// Runner collects the documentation described by a Config and writes it out
type Runner struct {
	config *Config
	diag   *utils.DiagnosticSystem
	stdout io.Writer
}

// Summary reports what a run produced
type Summary struct {
	Module    string
	Methods   int
	Routes    int
	Entries   int
	Resources int
}

// NewRunner creates a runner for a finalized configuration
func NewRunner(config *Config, diag *utils.DiagnosticSystem) *Runner {
	if diag == nil {
		diag = utils.NewDiagnosticSystem(utils.DiagnosticSilent)
	}
	return &Runner{
		config: config,
		diag:   diag,
		stdout: os.Stdout,
	}
}

// SetStdout sets where the document goes when no output file is configured
func (r *Runner) SetStdout(w io.Writer) {
	r.stdout = w
}

// Run executes the collection pipeline
func (r *Runner) Run() (*Summary, error) {
	r.diag.Header("Collecting route documentation")

	r.diag.PhaseHeader("Resolving module")
	module, err := r.resolveModule()
	if err != nil {
		if r.config.ModuleName != "" {
			return nil, err
		}
		r.diag.Warn("%v", err)
	} else {
		r.diag.PhaseItem("module %s", module)
	}

	r.diag.PhaseHeader("Indexing sources")
	idx, err := source.NewLoader(source.WithDiagnostics(r.diag)).Load(r.config.Directories...)
	if err != nil {
		return nil, err
	}
	r.diag.PhaseItem("%d methods, %d routes", idx.Methods(), len(idx.Routes()))

	opts := []routedoc.Option{routedoc.WithExcludedSections(r.config.ExcludeSections...)}
	if r.config.Extra != "" {
		provider, err := LoadExtraEntries(r.config.Extra)
		if err != nil {
			return nil, err
		}
		r.diag.PhaseItem("%d extra entries from %s", len(provider), r.config.Extra)
		opts = append(opts, routedoc.WithProviders(provider))
	}

	r.diag.PhaseHeader("Collecting entries")
	entries, err := routedoc.NewCollector(idx, idx, opts...).Collect(idx.Routes(), r.config.View)
	if err != nil {
		return nil, err
	}

	doc := NewDocument(module, r.config.View, entries)
	for _, resource := range doc.Resources {
		r.diag.Verbose("%s (%d)", resource.Resource, len(resource.Entries))
	}

	r.diag.PhaseHeader("Writing output")
	if err := r.write(doc); err != nil {
		return nil, err
	}

	summary := &Summary{
		Module:    module,
		Methods:   idx.Methods(),
		Routes:    len(idx.Routes()),
		Entries:   len(entries),
		Resources: len(doc.Resources),
	}
	r.diag.Summary("Summary", map[string]any{
		"methods":   summary.Methods,
		"routes":    summary.Routes,
		"entries":   summary.Entries,
		"resources": summary.Resources,
	})
	return summary, nil
}

// resolveModule resolves the module name starting from the first scanned directory
func (r *Runner) resolveModule() (string, error) {
	dir := ""
	if len(r.config.Directories) > 0 {
		dir = strings.TrimSuffix(r.config.Directories[0], "...")
		if dir == "" {
			dir = "."
		}
	}
	return NewModuleResolverAt(dir).ResolveModuleName(r.config.ModuleName)
}

func (r *Runner) write(doc Document) error {
	if r.config.Output == "" || r.config.Output == "-" {
		if err := WriteDocument(r.stdout, r.config.Format, doc); err != nil {
			return errors.WrapOutputError(r.config.Format, "stdout", err)
		}
		return nil
	}
	if err := WriteDocumentFile(r.config.Output, r.config.Format, doc); err != nil {
		return err
	}
	r.diag.Success("wrote %s", r.config.Output)
	return nil
}
