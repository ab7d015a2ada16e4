package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/dkoosis/sift/internal/config"
	"github.com/dkoosis/sift/internal/history"
	"github.com/dkoosis/sift/internal/logging"
	"github.com/dkoosis/sift/internal/version"
	"github.com/dkoosis/sift/pkg/aggregate"
	"github.com/dkoosis/sift/pkg/mapper"
	"github.com/dkoosis/sift/pkg/pipeline"
	"github.com/dkoosis/sift/pkg/render"
	"github.com/dkoosis/sift/pkg/report"
)

// trendRuns is how many earlier runs feed the terminal sparkline.
const trendRuns = 9

func (a *app) newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [capture...]",
		Short: "Extract, classify and report diagnostics from captured checker output.",
		Long: `Analyze reads one or more captured checker outputs ("-" for stdin; stdin
is also used when no capture is named) and writes a triage report.

Captures that cannot be read are reported as warnings and skipped.`,
		Example: `  sift analyze check.log
  sift analyze --format markdown -o report.md run1.log run2.log
  svelte-check 2>&1 | sift analyze --fail-on error -`,
		RunE: a.analyze,
	}

	f := cmd.Flags()
	f.StringP("format", "f", config.DefaultFormat, "output format: auto, "+strings.Join(formatNames(), ", "))
	f.StringP("output", "o", "", "write the report to this file instead of stdout")
	f.Int("top", config.DefaultTop, "number of files listed in rankings")
	f.String("root", "", "project root stripped from diagnostic paths")
	f.String("theme", config.DefaultTheme, "terminal theme: "+strings.Join(render.Themes, ", "))
	f.Int("width", 0, "terminal width (0 detects)")
	f.String("history", "", `SQLite run history path ("default" uses the user config dir)`)
	f.String("label", "", "label stored with this run in history")
	f.String("fail-on", "", "exit 1 when a diagnostic at or above this severity is found (error, warning, info)")
	return cmd
}

func formatNames() []string {
	names := make([]string, len(report.Formats))
	for i, f := range report.Formats {
		names[i] = string(f)
	}
	return names
}

func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := config.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}
	file, _ := cmd.Flags().GetString("config")
	return config.Load(v, file)
}

func (a *app) analyze(cmd *cobra.Command, args []string) error {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}
	log := logging.New(a.stderr, cfg.Verbose)
	if cfg.File != "" {
		log.V(1).Info("Loaded config", "file", cfg.File)
	}

	format, err := resolveFormat(cfg.Format, cfg.Output, a.stdout)
	if err != nil {
		return err
	}
	theme, err := render.ThemeByName(cfg.Theme)
	if err != nil {
		return err
	}

	inputs := args
	if len(inputs) == 0 {
		inputs = cfg.Inputs
	}
	if len(inputs) == 0 {
		inputs = []string{pipeline.StdinName}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	p := pipeline.New(pipeline.Options{Root: cfg.Root, Logger: log})
	res, err := p.Analyze(ctx, inputs, a.stdin)
	if err != nil {
		return err
	}
	r := res.Report

	now := a.now()
	opts := report.Options{
		Tool:        version.Name,
		Version:     version.Version,
		GeneratedAt: now.UTC(),
		Top:         cfg.Top,
		Theme:       theme,
		Width:       cfg.Width,
	}
	if opts.Width <= 0 {
		opts.Width = termWidth(a.stdout)
	}

	store, err := a.openHistory(cfg, log)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
		if err := loadTrend(ctx, store, r, &opts); err != nil {
			return err
		}
	}

	if err := a.writeReport(format, cfg.Output, r, opts); err != nil {
		return err
	}

	if store != nil {
		id, err := store.Record(ctx, history.FromReport(r, now, cfg.Label))
		if err != nil {
			return fmt.Errorf("record run: %w", err)
		}
		log.V(1).Info("Recorded run", "id", id, "history", store.Path())
	}

	if sev, ok := cfg.FailOnSeverity(); ok {
		if n := r.CountAtLeast(sev); n > 0 {
			color.New(color.FgRed).Fprintf(a.stderr, "sift: %d diagnostic(s) at or above %s\n", n, sev)
			return &exitError{code: 1}
		}
	}
	return nil
}

func (a *app) openHistory(cfg *config.Config, log logr.Logger) (*history.Store, error) {
	path, err := cfg.HistoryPath(history.DefaultPath)
	if err != nil || path == "" {
		return nil, err
	}
	store, err := history.Open(path)
	if err != nil {
		return nil, err
	}
	log.V(1).Info("Opened history", "path", path)
	return store, nil
}

// loadTrend fills the comparison baseline and sparkline totals from earlier
// runs.
func loadTrend(ctx context.Context, store *history.Store, r *aggregate.Report, opts *report.Options) error {
	prev, err := store.Latest(ctx)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	if prev != nil {
		opts.Previous = &mapper.Baseline{Total: prev.Total, Categories: prev.Categories}
	}

	runs, err := store.Recent(ctx, trendRuns)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	if len(runs) == 0 {
		return nil
	}
	totals := make([]int, 0, len(runs)+1)
	for _, run := range runs {
		totals = append(totals, run.Total)
	}
	opts.Totals = append(totals, r.TotalRecords)
	return nil
}

func (a *app) writeReport(format report.Format, output string, r *aggregate.Report, opts report.Options) error {
	if output == "" {
		return report.Write(a.stdout, format, r, opts)
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, format, r, opts); err != nil {
		return err
	}
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	ok := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(a.stderr, "%s %s report written to %s (%d diagnostics from %d captures)\n",
		ok("✓"), format, output, r.TotalRecords, len(r.FilesAnalyzed))
	for _, w := range r.Warnings {
		color.New(color.FgYellow).Fprintf(a.stderr, "warning: %s\n", w)
	}
	return nil
}

// resolveFormat turns the configured format into a concrete one. "auto"
// picks by output extension, then by whether stdout is a terminal.
func resolveFormat(name, output string, stdout io.Writer) (report.Format, error) {
	if name != "" && name != config.DefaultFormat {
		return report.ParseFormat(name)
	}
	if output != "" {
		switch strings.ToLower(filepath.Ext(output)) {
		case ".json":
			return report.FormatJSON, nil
		case ".yaml", ".yml":
			return report.FormatYAML, nil
		case ".sarif":
			return report.FormatSARIF, nil
		case ".txt":
			return report.FormatText, nil
		default:
			return report.FormatMarkdown, nil
		}
	}
	if isTTYWriter(stdout) {
		return report.FormatTerminal, nil
	}
	return report.FormatLLM, nil
}
