package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"go/token"
	"log/slog"
	"os"

	"github.com/statconf/statconf"
	"github.com/statconf/statconf/internal/extractor"
	"github.com/statconf/statconf/internal/loader"
	"github.com/statconf/statconf/internal/schema"
)

// Options holds the configuration for the statconf tool itself,
// typically derived from its command-line arguments.
type Options struct {
	SchemaFile string // Path to a JSON Schema file overriding the base schema
	ConfigName string // Identifier of the config object variable (e.g., "Config")
	Target     string // Target Go file (extract) or directory (scan)
}

func main() {
	// debug mode: if DEBUG environment variable is set, enable debug logging
	if _, ok := os.LookupEnv("DEBUG"); ok {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: statconf <subcommand> [options]")
		fmt.Fprintln(os.Stderr, "Available subcommands: extract, scan")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "extract":
		extractCmd := flag.NewFlagSet("extract", flag.ExitOnError)
		var (
			schemaFile string
			configName string
		)
		extractCmd.StringVar(&schemaFile, "schema", "", "Path to a JSON Schema file overriding the base schema")
		extractCmd.StringVar(&configName, "name", "Config", "Identifier of the config object variable")
		extractCmd.Usage = func() {
			fmt.Fprintf(os.Stderr, "Usage: statconf extract [options] <target_gofile.go>\n\nOptions:\n")
			extractCmd.PrintDefaults()
		}
		extractCmd.Parse(os.Args[2:])

		if extractCmd.NArg() < 1 {
			fmt.Fprintln(os.Stderr, "Error: Target Go file must be specified for extract.")
			extractCmd.Usage()
			os.Exit(1)
		}

		opts := &Options{SchemaFile: schemaFile, ConfigName: configName, Target: extractCmd.Arg(0)}
		if err := runExtract(opts); err != nil {
			slog.Error("Error running statconf (extract)", "error", err)
			os.Exit(1)
		}

	case "scan":
		scanCmd := flag.NewFlagSet("scan", flag.ExitOnError)
		var (
			schemaFile string
			configName string
		)
		scanCmd.StringVar(&schemaFile, "schema", "", "Path to a JSON Schema file overriding the base schema")
		scanCmd.StringVar(&configName, "name", "Config", "Identifier of the config object variable")
		scanCmd.Usage = func() {
			fmt.Fprintf(os.Stderr, "Usage: statconf scan [options] <target_dir>\n\nOptions:\n")
			scanCmd.PrintDefaults()
		}
		scanCmd.Parse(os.Args[2:])

		if scanCmd.NArg() < 1 {
			fmt.Fprintln(os.Stderr, "Error: Target directory must be specified for scan.")
			scanCmd.Usage()
			os.Exit(1)
		}

		opts := &Options{SchemaFile: schemaFile, ConfigName: configName, Target: scanCmd.Arg(0)}
		if err := runScan(opts); err != nil {
			slog.Error("Error running statconf (scan)", "error", err)
			os.Exit(1)
		}

	default:
		fmt.Fprintf(os.Stderr, "Error: Unknown subcommand '%s'\n", os.Args[1])
		fmt.Fprintln(os.Stderr, "Available subcommands: extract, scan")
		os.Exit(1)
	}
}

func runExtract(opts *Options) error {
	extractOpts, err := buildOptions(opts)
	if err != nil {
		return err
	}

	slog.Info("statconf: extracting configuration", "targetFile", opts.Target, "configName", opts.ConfigName)

	cfg, err := statconf.ExtractFile(opts.Target, extractOpts...)
	if err != nil {
		return err
	}
	if cfg == nil {
		fmt.Println("null")
		return nil
	}

	jsonData, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal configuration to JSON: %w", err)
	}
	fmt.Println(string(jsonData))
	return nil
}

// fileReport is one scan result entry; File is relative to the scanned
// directory when possible.
type fileReport struct {
	File   string          `json:"file"`
	Config json.RawMessage `json:"config"`
}

type scanReport struct {
	Package    string       `json:"package"`
	ImportPath string       `json:"importPath,omitempty"`
	Dir        string       `json:"dir"`
	Configs    []fileReport `json:"configs"`
}

func runScan(opts *Options) error {
	sch, err := loadSchema(opts.SchemaFile)
	if err != nil {
		return err
	}

	fset := token.NewFileSet()
	pkg, err := loader.LoadDir(fset, opts.Target)
	if err != nil {
		return err
	}

	slog.Info("statconf: scanning package", "dir", pkg.Dir, "importPath", pkg.ImportPath, "files", len(pkg.Files))

	report := scanReport{Package: pkg.Name, ImportPath: pkg.ImportPath, Dir: pkg.Dir, Configs: []fileReport{}}
	for _, file := range pkg.Files {
		result, err := extractor.Extract(file.AST, extractor.Options{Schema: sch, ConfigName: opts.ConfigName})
		if err != nil {
			return fmt.Errorf("extraction failed for %s: %w", file.Path, err)
		}
		if result == nil {
			slog.Debug("no configuration declared", "file", file.Path)
			continue
		}
		cfg := &statconf.Config{Values: result.Values, Sources: result.Sources}
		data, err := cfg.MarshalJSON()
		if err != nil {
			return fmt.Errorf("failed to marshal configuration for %s: %w", file.Path, err)
		}
		report.Configs = append(report.Configs, fileReport{File: file.Path, Config: data})
	}

	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scan report to JSON: %w", err)
	}
	fmt.Println(string(jsonData))
	return nil
}

func buildOptions(opts *Options) ([]statconf.Option, error) {
	var out []statconf.Option
	if opts.ConfigName != "" {
		out = append(out, statconf.WithConfigName(opts.ConfigName))
	}
	sch, err := loadSchema(opts.SchemaFile)
	if err != nil {
		return nil, err
	}
	if sch != nil {
		out = append(out, statconf.WithSchema(sch))
	}
	return out, nil
}

func loadSchema(path string) (*schema.Schema, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}
	sch, err := schema.Compile(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema file %s: %w", path, err)
	}
	return sch, nil
}
