// Package report writes an aggregate report in one of sift's output formats.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/dkoosis/sift/pkg/aggregate"
	"github.com/dkoosis/sift/pkg/diag"
	"github.com/dkoosis/sift/pkg/mapper"
	"github.com/dkoosis/sift/pkg/pattern"
	"github.com/dkoosis/sift/pkg/render"
	"github.com/dkoosis/sift/pkg/sarif"
)

// Format names an output format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
	FormatTerminal Format = "terminal"
	FormatLLM      Format = "llm"
	FormatSARIF    Format = "sarif"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatYAML, FormatMarkdown, FormatText, FormatTerminal, FormatLLM, FormatSARIF}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return "", fmt.Errorf("unknown format %q (expected one of %s)", s, strings.Join(names, ", "))
}

// Options carries everything a format may need beyond the report itself.
type Options struct {
	Tool        string // generator name
	Version     string // generator version
	GeneratedAt time.Time
	Top         int // files listed; 0 means mapper.DefaultTop
	Theme       render.Theme
	Width       int // terminal width in cells
	Previous    *mapper.Baseline
	Totals      []int // recent run totals, oldest first
}

func (o Options) top() int {
	if o.Top <= 0 {
		return mapper.DefaultTop
	}
	return o.Top
}

// Generator identifies the program that wrote a report.
type Generator struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
}

// Envelope is the top-level document of the json and yaml formats.
type Envelope struct {
	Generator   Generator         `json:"generator" yaml:"generator"`
	GeneratedAt time.Time         `json:"generatedAt" yaml:"generatedAt"`
	Report      *aggregate.Report `json:"report" yaml:"report"`
}

// Write renders r to w in format f.
func Write(w io.Writer, f Format, r *aggregate.Report, opts Options) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, r, opts)
	case FormatYAML:
		return writeYAML(w, r, opts)
	case FormatMarkdown:
		return writeMarkdown(w, r, opts)
	case FormatText:
		return writeText(w, r, opts)
	case FormatTerminal:
		out := render.NewTerminal(opts.Theme, opts.Width).Render(patterns(r, opts))
		_, err := io.WriteString(w, out)
		return err
	case FormatLLM:
		_, err := io.WriteString(w, render.NewLLM().Render(patterns(r, opts)))
		return err
	case FormatSARIF:
		return writeSARIF(w, r, opts)
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

func patterns(r *aggregate.Report, opts Options) []pattern.Pattern {
	return mapper.FromReport(r, mapper.Options{
		Top:      opts.top(),
		Previous: opts.Previous,
		Totals:   opts.Totals,
	})
}

func envelope(r *aggregate.Report, opts Options) Envelope {
	return Envelope{
		Generator:   Generator{Name: opts.Tool, Version: opts.Version},
		GeneratedAt: opts.GeneratedAt.UTC(),
		Report:      r,
	}
}

func writeJSON(w io.Writer, r *aggregate.Report, opts Options) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(envelope(r, opts)); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, r *aggregate.Report, opts Options) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(envelope(r, opts)); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func writeSARIF(w io.Writer, r *aggregate.Report, opts Options) error {
	doc := sarif.FromRecords(opts.Tool, opts.Version, AllRecords(r), func(c diag.Category) (string, map[string]any) {
		p := aggregate.PriorityOf(c)
		return p.Description, map[string]any{"priority": string(p.Priority)}
	})
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode sarif: %w", err)
	}
	return nil
}

// AllRecords flattens the per-file lists of r, ordered by file then position.
func AllRecords(r *aggregate.Report) []diag.Record {
	out := make([]diag.Record, 0, r.TotalRecords)
	for _, ft := range sortedFiles(r) {
		out = append(out, r.PerFile[ft]...)
	}
	return out
}

func sortedFiles(r *aggregate.Report) []string {
	files := make([]string, 0, len(r.PerFile))
	for f := range r.PerFile {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Title renders a category as words: "null_undefined_errors" becomes
// "Null Undefined Errors". Casers are stateful, so each call gets its own.
func Title(c diag.Category) string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(c), "_", " "))
}
