// Package main implements the jsonschema-validate CLI tool.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"

	sv "github.com/goschema/validator"
	"github.com/goschema/validator/engine"
	"github.com/goschema/validator/loader"
)

const (
	version = "0.1.0"
	usage   = `jsonschema-validate - JSON Schema validator (drafts 4, 6, 7)

Usage:
  jsonschema-validate -schema schema.json [options] <file>...
  jsonschema-validate -schema schema.json -        (read instance from stdin)
  cat instance.json | jsonschema-validate -schema schema.json -

Examples:
  jsonschema-validate -schema schema.json instance.json
  jsonschema-validate -schema schema.yaml -draft 4 instances/*.json
  jsonschema-validate -schema schema.json -output json instance.json
  jsonschema-validate -schema schema.json -check-schema instance.json
  jsonschema-validate -schema schema.json -doc https://example.com/defs.json=defs.json instance.json

Options:
`
)

// OutputFormat specifies the output format.
type OutputFormat string

const (
	// OutputText prints human-readable results.
	OutputText OutputFormat = "text"
	// OutputJSON prints one JSON document for the whole run.
	OutputJSON OutputFormat = "json"
)

// Config holds the CLI configuration.
type Config struct {
	SchemaPath  string
	Draft       int
	Output      OutputFormat
	CheckSchema bool
	NoFormats   bool
	MaxErrors   int
	Docs        []string
	Quiet       bool
	ShowVersion bool
	Help        bool
	Files       []string
}

// ValidationOutput is the JSON output for one instance document.
type ValidationOutput struct {
	Instance string        `json:"instance"`
	Valid    bool          `json:"valid"`
	Errors   []ErrorOutput `json:"errors,omitempty"`
	Duration string        `json:"duration"`
}

// ErrorOutput is one validation error in JSON output.
type ErrorOutput struct {
	Keyword      string `json:"keyword"`
	Message      string `json:"message"`
	InstancePath string `json:"instancePath"`
	SchemaPath   string `json:"schemaPath"`
	Cyclic       bool   `json:"cyclic,omitempty"`
}

func main() {
	config := parseFlags()

	if config.ShowVersion {
		fmt.Printf("jsonschema-validate v%s\n", version)
		os.Exit(0)
	}

	if config.Help || config.SchemaPath == "" || len(config.Files) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	os.Exit(run(config))
}

func parseFlags() *Config {
	config := &Config{Output: OutputText}

	var output, docs string
	flag.StringVar(&config.SchemaPath, "schema", "", "Schema file (JSON or YAML)")
	flag.IntVar(&config.Draft, "draft", 0, "Pin the draft: 4, 6 or 7 (default: read $schema)")
	flag.StringVar(&output, "output", "text", "Output format: text, json")
	flag.BoolVar(&config.CheckSchema, "check-schema", false, "Validate the schema against its metaschema first")
	flag.BoolVar(&config.NoFormats, "no-formats", false, "Disable format checking")
	flag.IntVar(&config.MaxErrors, "max-errors", 0, "Stop after this many errors per instance (0 = unlimited)")
	flag.StringVar(&docs, "doc", "", "External schema documents as uri=path pairs (comma-separated)")
	flag.BoolVar(&config.Quiet, "quiet", false, "Only report invalid instances")
	flag.BoolVar(&config.ShowVersion, "v", false, "Show version")
	flag.BoolVar(&config.Help, "help", false, "Show help")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}

	flag.Parse()

	if strings.EqualFold(output, "json") {
		config.Output = OutputJSON
	}
	if docs != "" {
		config.Docs = strings.Split(docs, ",")
	}
	config.Files = flag.Args()

	return config
}

func run(config *Config) int {
	schema, err := loader.LoadFile(config.SchemaPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	opts := []sv.Option{
		sv.WithValidateSchema(config.CheckSchema),
		sv.WithFormats(!config.NoFormats),
		sv.WithMaxErrors(config.MaxErrors),
	}
	switch config.Draft {
	case 0:
	case 4, 6, 7:
		opts = append(opts, sv.WithDraft(sv.Draft(config.Draft)))
	default:
		fmt.Fprintf(os.Stderr, "Error: unsupported draft %d (supported: 4, 6, 7)\n", config.Draft)
		return 2
	}

	store := loader.NewStore()
	for _, pair := range config.Docs {
		uri, path, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: -doc wants uri=path, got %q\n", pair)
			return 2
		}
		if err := store.AddFile(uri, path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 2
		}
	}

	v, err := engine.New(schema, opts...)
	if err != nil {
		var schemaErr *sv.SchemaError
		if errors.As(err, &schemaErr) && len(schemaErr.Errs) > 0 {
			fmt.Fprintf(os.Stderr, "Error: schema %s does not validate against its metaschema:\n", config.SchemaPath)
			for _, e := range schemaErr.Errs {
				fmt.Fprintf(os.Stderr, "  %s\n", e)
			}
		} else {
			fmt.Fprintf(os.Stderr, "Error: invalid schema %s: %v\n", config.SchemaPath, err)
		}
		return 2
	}
	store.Range(func(uri string, doc any) bool {
		v.RegisterDocument(uri, doc)
		return true
	})

	hasErrors := false
	outputs := make([]ValidationOutput, 0, len(config.Files))

	for _, file := range config.Files {
		if file == "-" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
				hasErrors = true
				continue
			}
			out, invalid := validateData(v, data, "stdin", config)
			outputs = append(outputs, out)
			hasErrors = hasErrors || invalid
			continue
		}

		matches, globErr := filepath.Glob(file)
		if globErr != nil {
			fmt.Fprintf(os.Stderr, "Error with pattern %q: %v\n", file, globErr)
			hasErrors = true
			continue
		}
		if len(matches) == 0 {
			fmt.Fprintf(os.Stderr, "No files match pattern: %s\n", file)
			hasErrors = true
			continue
		}
		for _, match := range matches {
			out, invalid := validateFile(v, match, config)
			outputs = append(outputs, out)
			hasErrors = hasErrors || invalid
		}
	}

	if config.Output == OutputJSON {
		jsonOutput, _ := json.MarshalIndent(outputs, "", "  ")
		fmt.Println(string(jsonOutput))
	}

	if hasErrors {
		return 1
	}
	return 0
}

func validateFile(v *engine.Validator, path string, config *Config) (ValidationOutput, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		if config.Output == OutputText {
			fmt.Printf("Error reading %s: %v\n", path, err)
		}
		return ValidationOutput{
			Instance: path,
			Valid:    false,
			Errors:   []ErrorOutput{{Message: fmt.Sprintf("failed to read file: %v", err)}},
		}, true
	}
	return validateData(v, data, path, config)
}

func validateData(v *engine.Validator, data []byte, name string, config *Config) (ValidationOutput, bool) {
	start := time.Now()

	instance, err := loader.Parse(data, name)
	if err != nil {
		if config.Output == OutputText {
			fmt.Printf("Error parsing %s: %v\n", name, err)
		}
		return ValidationOutput{
			Instance: name,
			Valid:    false,
			Errors:   []ErrorOutput{{Message: err.Error()}},
			Duration: time.Since(start).String(),
		}, true
	}

	result := v.ValidateResult(instance)
	defer result.Release()
	duration := time.Since(start)

	output := ValidationOutput{
		Instance: name,
		Valid:    result.Valid,
		Duration: duration.Round(time.Microsecond).String(),
	}
	for _, e := range result.Errors {
		output.Errors = append(output.Errors, ErrorOutput{
			Keyword:      e.Keyword,
			Message:      e.Message,
			InstancePath: e.InstancePath.Pointer(),
			SchemaPath:   e.SchemaPath.Pointer(),
			Cyclic:       e.Cyclic,
		})
	}

	if config.Output == OutputText {
		printTextResult(name, result, duration, config)
	}
	return output, !result.Valid
}

func printTextResult(name string, result *sv.Result, duration time.Duration, config *Config) {
	if config.Quiet && result.Valid {
		return
	}

	status := "VALID"
	if !result.Valid {
		status = "INVALID"
	}

	fmt.Printf("== %s ==\n", name)
	fmt.Printf("Status: %s\n", status)
	fmt.Printf("Errors: %d\n", result.ErrorCount())
	fmt.Printf("Duration: %s\n", duration.Round(time.Microsecond))

	if len(result.Errors) > 0 {
		fmt.Println("\nErrors:")
		for _, e := range result.Errors {
			fmt.Printf("  %s\n", e)
		}
	}
	fmt.Println()
}
