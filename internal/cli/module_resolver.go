package cli

import (
	"os"

	"github.com/toyz/routedoc/internal/errors"
	"github.com/toyz/routedoc/internal/utils"
)

// ModuleResolver handles resolving Go module information
type ModuleResolver struct {
	workDir string
}

// NewModuleResolver creates a module resolver searching from the working directory
func NewModuleResolver() *ModuleResolver {
	return &ModuleResolver{}
}

// NewModuleResolverAt creates a module resolver searching from dir
func NewModuleResolverAt(dir string) *ModuleResolver {
	return &ModuleResolver{workDir: dir}
}

// ResolveModuleName resolves the module name reported in the output.
// If customModule is provided, it uses that; otherwise reads from the nearest go.mod.
func (r *ModuleResolver) ResolveModuleName(customModule string) (string, error) {
	if customModule != "" {
		return customModule, nil
	}

	dir := r.workDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.WrapFileSystemError("resolve", "working directory", err)
		}
		dir = wd
	}

	goModPath, err := utils.FindGoModFile(dir)
	if err != nil {
		return "", errors.Wrap(errors.ConfigurationErrorCode, "failed to determine module name", err).
			WithSuggestion("run inside a Go module or pass -module")
	}

	moduleName, err := utils.ParseModuleName(goModPath)
	if err != nil {
		return "", errors.Wrap(errors.ConfigurationErrorCode, "failed to determine module name", err).
			WithLocation(errors.SourceLocation{File: goModPath}).
			WithSuggestion("consider using -module flag")
	}

	return moduleName, nil
}
