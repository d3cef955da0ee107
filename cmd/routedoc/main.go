package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/toyz/routedoc/internal/cli"
	"github.com/toyz/routedoc/internal/utils"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("routedoc", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		configFlag  = flags.String("config", "", "TOML configuration file (defaults to ./"+cli.DefaultConfigFile+" when present)")
		viewFlag    = flags.String("view", "", "Documentation view to collect (default \"default\")")
		excludeFlag = flags.String("exclude", "", "Comma-separated sections to leave out")
		formatFlag  = flags.String("format", "", "Output format: json or yaml (default json)")
		outputFlag  = flags.String("output", "", "Output file (defaults to stdout)")
		extraFlag   = flags.String("extra", "", "YAML file with additional documentation entries")
		moduleFlag  = flags.String("module", "", "Module name reported in the output (defaults to go.mod module)")
		verboseFlag = flags.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag   = flags.Bool("quiet", false, "Only show errors")
		helpFlag    = flags.Bool("help", false, "Show help information")
	)

	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: routedoc [options] [directory-paths...]\n\n")
		fmt.Fprintf(stderr, "Route Documentation Collector\n")
		fmt.Fprintf(stderr, "Scans Go packages for axon::route and axon::doc annotations and writes the API documentation entries.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(stderr, "\nArguments:\n")
		fmt.Fprintf(stderr, "  directory-paths    Directories to scan (default ./...)\n")
		fmt.Fprintf(stderr, "                     Supports Go-style patterns like './...' for recursive scanning\n")
		fmt.Fprintf(stderr, "\nEnvironment:\n")
		fmt.Fprintf(stderr, "  %-18s Overrides the configured view\n", cli.EnvView)
		fmt.Fprintf(stderr, "  %-18s Overrides the configured format\n", cli.EnvFormat)
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  routedoc ./...                                  # Document everything as JSON on stdout\n")
		fmt.Fprintf(stderr, "  routedoc -view=public -format=yaml ./api/...    # Public view as YAML\n")
		fmt.Fprintf(stderr, "  routedoc -exclude=Internal,Debug -output=docs/api.json ./...\n")
		fmt.Fprintf(stderr, "  routedoc -extra=extra.yaml ./...                # Add entries not backed by annotated methods\n")
	}

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if *helpFlag {
		flags.Usage()
		return 0
	}

	reporter := cli.NewDiagnosticReporter(*verboseFlag)
	reporter.SetOutput(stderr)

	configPath := *configFlag
	if configPath == "" {
		configPath = cli.DefaultConfigFile
	}
	cfg, err := cli.LoadConfig(configPath, *configFlag != "")
	if err != nil {
		reporter.ReportError(err)
		return 1
	}

	cfg.LoadEnv()
	cfg.Merge(&cli.Config{
		Directories:     flags.Args(),
		View:            *viewFlag,
		ExcludeSections: splitList(*excludeFlag),
		Format:          *formatFlag,
		Output:          *outputFlag,
		Extra:           *extraFlag,
		ModuleName:      *moduleFlag,
		Verbose:         *verboseFlag,
		Quiet:           *quietFlag,
	})
	if err := cfg.Finalize(); err != nil {
		reporter.ReportError(err)
		return 1
	}

	// Create diagnostic system based on configuration
	var diagnostics *utils.DiagnosticSystem
	switch {
	case cfg.Quiet:
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticError)
	case cfg.Verbose:
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticVerbose)
	default:
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	diagnostics.SetOutput(stderr, stderr)

	if cfg.Verbose {
		diagnostics.Verbose("directories: %s", strings.Join(cfg.Directories, ", "))
		diagnostics.Verbose("view: %s, format: %s", cfg.View, cfg.Format)
		if len(cfg.ExcludeSections) > 0 {
			diagnostics.Verbose("excluded sections: %s", strings.Join(cfg.ExcludeSections, ", "))
		}
	}

	runner := cli.NewRunner(cfg, diagnostics)
	runner.SetStdout(stdout)
	if _, err := runner.Run(); err != nil {
		reporter.ReportError(err)
		return 1
	}
	return 0
}

// splitList splits a comma-separated flag value, dropping empty items
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
