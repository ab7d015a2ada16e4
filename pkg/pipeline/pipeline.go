// Package pipeline runs captured checker output through every stage:
// decode, strip color, scan, normalize paths, classify, then aggregate.
// Each stage is a pure function of the previous stage's output.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"

	"github.com/dkoosis/sift/pkg/aggregate"
	"github.com/dkoosis/sift/pkg/ansi"
	"github.com/dkoosis/sift/pkg/classify"
	"github.com/dkoosis/sift/pkg/diag"
	"github.com/dkoosis/sift/pkg/paths"
	"github.com/dkoosis/sift/pkg/scanner"
)

// StdinName is the input argument that selects standard input.
const StdinName = "-"

// stdinSource is the source identifier recorded for standard input.
const stdinSource = "<stdin>"

// Options configures a Pipeline.
type Options struct {
	// Root is trimmed from diagnostic paths to make them project-relative.
	Root string
	// Logger receives progress and warnings. The zero value discards.
	Logger logr.Logger
}

// Pipeline turns captures into records and reports. It holds no per-run
// state and may be reused.
type Pipeline struct {
	paths paths.Normalizer
	log   logr.Logger
}

// New returns a Pipeline configured by opts.
func New(opts Options) *Pipeline {
	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Pipeline{paths: paths.NewNormalizer(opts.Root), log: log}
}

// Process extracts and classifies every diagnostic in text. source names the
// capture and is copied onto each record.
func (p *Pipeline) Process(source, text string) []diag.Record {
	raws := scanner.Scan(ansi.Strip(text))
	records := make([]diag.Record, 0, len(raws))
	for _, raw := range raws {
		records = append(records, p.record(source, raw))
	}
	p.log.V(1).Info("Scanned source", "source", source, "records", len(records))
	return records
}

func (p *Pipeline) record(source string, raw scanner.Raw) diag.Record {
	msg := classify.NormalizeMessage(raw.Message)
	cat := classify.ClassifyCoded(msg, classify.DocCode(raw.RawMessage))
	return diag.Record{
		File:       p.paths.Normalize(raw.File),
		Line:       raw.Line,
		Column:     raw.Column,
		Severity:   classify.Severity(raw.Severity, cat),
		Message:    msg,
		RawMessage: raw.RawMessage,
		Category:   cat,
		Tag:        raw.Tag,
		Source:     source,
	}
}

// Result is the outcome of one Analyze call.
type Result struct {
	Report  *aggregate.Report
	Records []diag.Record
}

// Analyze reads each input, processes it and aggregates the union. A missing
// or unreadable input becomes a report warning; processing continues with the
// rest. stdin is read for the input "-". Cancellation is checked between
// inputs only.
func (p *Pipeline) Analyze(ctx context.Context, inputs []string, stdin io.Reader) (*Result, error) {
	var (
		records  []diag.Record
		sources  []string
		warnings []string
	)
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("analyze interrupted before %s: %w", in, err)
		}

		source, text, err := p.read(in, stdin)
		if err != nil {
			w := readWarning(in, err)
			p.log.Info("Skipping input", "input", in, "reason", w)
			warnings = append(warnings, w)
			continue
		}
		sources = append(sources, source)
		records = append(records, p.Process(source, text)...)
	}

	report := aggregate.Build(records, sources, warnings)
	p.log.V(1).Info("Aggregated run",
		"sources", len(report.FilesAnalyzed),
		"records", report.TotalRecords,
		"duplicates", len(report.DuplicateGroups))
	return &Result{Report: report, Records: records}, nil
}

func (p *Pipeline) read(in string, stdin io.Reader) (source, text string, err error) {
	if in == StdinName {
		if stdin == nil {
			return "", "", errors.New("no standard input")
		}
		text, err := ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return stdinSource, text, nil
	}

	b, err := os.ReadFile(in)
	if err != nil {
		return "", "", err
	}
	return filepath.ToSlash(in), Decode(b), nil
}

func readWarning(in string, err error) string {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Sprintf("%s: file not found", in)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Sprintf("%s: permission denied", in)
	default:
		return fmt.Sprintf("%s: %v", in, err)
	}
}
