package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	gojson "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	actionopts "github.com/reoring/actionopts"
	"github.com/reoring/actionopts/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}
	switch args[0] {
	case "kinds":
		return kindsCmd(args[1:], stdout, stderr)
	case "validate":
		return validateCmd(args[1:], stdin, stdout, stderr)
	case "schema":
		return schemaCmd(args[1:], stdout, stderr)
	default:
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "actionopts CLI\n\nUsage:\n  actionopts kinds [-config FILE]\n  actionopts validate -kind K [-in FILE|-] [-format json|yaml] [-no-validate] [-strict] [-config FILE] [-lang en|ja] [-v]\n  actionopts schema -kind K [-config FILE]\n\nNotes:\n  - validate reads options from stdin when -in is omitted or \"-\".\n  - Unknown option keys are ignored, as on construction.")
}

func kindsCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("kinds", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var cfgPath string
	fs.StringVar(&cfgPath, "config", "", "configuration file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fail(stderr, err)
	}
	cat, err := cfg.Catalog()
	if err != nil {
		return fail(stderr, err)
	}
	for _, name := range cat.Names() {
		k, _ := cat.Kind(name)
		if k.Parent() == "" {
			fmt.Fprintln(stdout, name)
			continue
		}
		fmt.Fprintf(stdout, "%s (extends %s)\n", name, k.Parent())
	}
	return 0
}

func validateCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var kind, in, format, cfgPath, lang string
	var noValidate, strict, verbose bool
	fs.StringVar(&kind, "kind", "", "option kind (see `actionopts kinds`)")
	fs.StringVar(&in, "in", "-", "input file, - for stdin")
	fs.StringVar(&format, "format", "json", "input format: json or yaml")
	fs.BoolVar(&noValidate, "no-validate", false, "copy values without running checks")
	fs.BoolVar(&strict, "strict", false, "reject JSON input that repeats a key")
	fs.StringVar(&cfgPath, "config", "", "configuration file")
	fs.StringVar(&lang, "lang", "", "message language: en or ja (overrides config)")
	fs.BoolVar(&verbose, "v", false, "enable debug logs")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if kind == "" {
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fail(stderr, err)
	}
	if lang != "" {
		cfg.Language = lang
	}
	cfg.Apply()
	log := cfg.Logger(stderr)
	if verbose {
		log = log.Level(zerolog.DebugLevel)
	}
	ctx := log.WithContext(context.Background())

	cat, err := cfg.Catalog()
	if err != nil {
		return fail(stderr, err)
	}
	if _, ok := cat.Kind(kind); !ok {
		return fail(stderr, fmt.Errorf("unknown kind %q", kind))
	}

	data, err := readInput(in, stdin)
	if err != nil {
		return fail(stderr, err)
	}
	var raw map[string]any
	switch format {
	case "json":
		if strict {
			raw, err = actionopts.FromJSONStrict(data)
		} else {
			raw, err = actionopts.FromJSON(data)
		}
	case "yaml":
		raw, err = actionopts.FromYAML(data)
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return fail(stderr, err)
	}

	opts, err := cat.New(ctx, kind, raw, !noValidate)
	if err != nil {
		if iss, ok := actionopts.AsIssues(err); ok {
			for _, it := range iss {
				log.Debug().Str("kind", kind).Str("path", it.Path).Str("code", it.Code).Msg("options rejected")
			}
		}
		return fail(stderr, err)
	}
	log.Debug().Str("kind", kind).Msg("options constructed")
	return writeJSON(stdout, stderr, opts)
}

func schemaCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("schema", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var kind, cfgPath string
	fs.StringVar(&kind, "kind", "", "option kind")
	fs.StringVar(&cfgPath, "config", "", "configuration file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if kind == "" {
		fs.Usage()
		return 2
	}
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fail(stderr, err)
	}
	cat, err := cfg.Catalog()
	if err != nil {
		return fail(stderr, err)
	}
	k, ok := cat.Kind(kind)
	if !ok {
		return fail(stderr, fmt.Errorf("unknown kind %q", kind))
	}
	s, err := k.JSONSchema()
	if err != nil {
		return fail(stderr, err)
	}
	return writeJSON(stdout, stderr, s)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		if stdin == nil {
			return nil, errors.New("no input")
		}
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func writeJSON(stdout, stderr io.Writer, v any) int {
	out, err := gojson.MarshalIndent(v, "", "  ")
	if err != nil {
		return fail(stderr, err)
	}
	fmt.Fprintln(stdout, string(out))
	return 0
}

func fail(w io.Writer, err error) int {
	fmt.Fprintln(w, "error:", err)
	return 1
}
