package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/dkoosis/sift/pkg/diag"
	"github.com/dkoosis/sift/pkg/pipeline"
)

const capture = "K:\\driplo\\src\\lib\\a.ts:12:5\n" +
	"Error: Type 'string' is not assignable to type 'number' (ts)\n"

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, data, 0o600))
	return p
}

func TestProcess_TwoLineExtraction(t *testing.T) {
	t.Parallel()

	records := pipeline.New(pipeline.Options{}).Process("a.log", capture)

	require.Len(t, records, 1)
	r := records[0]
	assert.Equal(t, "K:/driplo/src/lib/a.ts", r.File)
	assert.Equal(t, 12, r.Line)
	assert.Equal(t, 5, r.Column)
	assert.Equal(t, diag.SeverityError, r.Severity)
	assert.Equal(t, "Type 'string' is not assignable to type 'number'", r.Message)
	assert.Equal(t, "ts", r.Tag)
	assert.Equal(t, diag.CategoryTypeAssignment, r.Category)
	assert.Equal(t, "a.log", r.Source)
}

func TestProcess_ColoredCaptureWithRoot(t *testing.T) {
	t.Parallel()

	text := "\x1b[32mk:\\driplo\\[32msrc\\lib\\a.ts[39m:3:7\n" +
		"\x1b[31mError\x1b[39m: Property 'x' does not exist on type 'Y'. (ts)\n"

	records := pipeline.New(pipeline.Options{Root: `K:\driplo`}).Process("a.log", text)

	require.Len(t, records, 1)
	assert.Equal(t, "src/lib/a.ts", records[0].File)
	assert.Equal(t, diag.CategoryObjectProperty, records[0].Category)
}

func TestProcess_AccessibilityDowngraded(t *testing.T) {
	t.Parallel()

	text := "src/routes/+page.svelte:4:1\n" +
		"Warn: A11y: <img> element should have an alt attribute https://svelte.dev/e/a11y_missing_attribute (svelte)\n"

	records := pipeline.New(pipeline.Options{}).Process("a.log", text)

	require.Len(t, records, 1)
	assert.Equal(t, diag.CategoryAccessibility, records[0].Category)
	assert.Equal(t, diag.SeverityInfo, records[0].Severity)
	assert.Equal(t, "A11y: <img> element should have an alt attribute", records[0].Message)
	assert.Contains(t, records[0].RawMessage, "https://svelte.dev/e/")
}

func TestProcess_AccessibilityCodeFromDocLink(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, text, message string
	}{
		{
			"label",
			"src/a.svelte:4:1\n" +
				"Warn: A form label must be associated with a control\n" +
				"https://svelte.dev/e/a11y_label_has_associated_control (svelte)\n",
			"A form label must be associated with a control",
		},
		{
			"autofocus",
			"src/a.svelte:9:3\n" +
				"Warn: Avoid using autofocus\n" +
				"https://svelte.dev/e/a11y_autofocus (svelte)\n",
			"Avoid using autofocus",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			records := pipeline.New(pipeline.Options{}).Process("a.log", tt.text)

			require.Len(t, records, 1)
			assert.Equal(t, diag.CategoryAccessibility, records[0].Category)
			assert.Equal(t, diag.SeverityInfo, records[0].Severity)
			assert.Equal(t, tt.message, records[0].Message)
			assert.Equal(t, "svelte", records[0].Tag)
		})
	}
}

func TestProcess_NoMatch(t *testing.T) {
	t.Parallel()

	p := pipeline.New(pipeline.Options{})
	for _, text := range []string{
		"npm WARN deprecated foo@1.0.0",
		"",
		"\n\n\n",
		"Loading svelte-check in workspace\nGetting Svelte diagnostics...\n",
	} {
		assert.Empty(t, p.Process("a.log", text), "input %q", text)
	}
}

func TestAnalyze_DedupAcrossSources(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "a.log", []byte(capture))
	b := writeFile(t, dir, "b.log", []byte(strings.ReplaceAll(capture, "\n", "\r\n")))

	res, err := pipeline.New(pipeline.Options{}).Analyze(context.Background(), []string{a, b}, nil)
	require.NoError(t, err)

	r := res.Report
	assert.Equal(t, 2, r.TotalRecords)
	assert.Equal(t, 2, r.TotalsByCategory[diag.CategoryTypeAssignment])
	require.Len(t, r.DuplicateGroups, 1)
	assert.Equal(t, 2, r.DuplicateGroups[0].Occurrences)
	assert.Equal(t, []string{filepath.ToSlash(a), filepath.ToSlash(b)}, r.DuplicateGroups[0].Files)
	assert.Len(t, res.Records, 2)
}

func TestAnalyze_MissingInputIsWarning(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "a.log", []byte(capture))
	missing := filepath.Join(dir, "nope.log")

	res, err := pipeline.New(pipeline.Options{}).Analyze(context.Background(), []string{missing, a}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Report.TotalRecords)
	assert.Equal(t, []string{filepath.ToSlash(a)}, res.Report.FilesAnalyzed)
	require.Len(t, res.Report.Warnings, 1)
	assert.Contains(t, res.Report.Warnings[0], "file not found")
}

func TestAnalyze_EmptyInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	empty := writeFile(t, dir, "empty.log", nil)

	res, err := pipeline.New(pipeline.Options{}).Analyze(context.Background(), []string{empty}, nil)
	require.NoError(t, err)

	assert.Zero(t, res.Report.TotalRecords)
	assert.Empty(t, res.Report.DuplicateGroups)
	assert.Equal(t, []string{filepath.ToSlash(empty)}, res.Report.FilesAnalyzed)
}

func TestAnalyze_Stdin(t *testing.T) {
	t.Parallel()

	res, err := pipeline.New(pipeline.Options{}).Analyze(context.Background(), []string{"-"}, strings.NewReader(capture))
	require.NoError(t, err)

	require.Equal(t, 1, res.Report.TotalRecords)
	assert.Equal(t, "<stdin>", res.Records[0].Source)
}

func TestAnalyze_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pipeline.New(pipeline.Options{}).Analyze(ctx, []string{"-"}, strings.NewReader(capture))
	require.ErrorIs(t, err, context.Canceled)
}

func TestAnalyze_OrderIndependent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "a.log", []byte(capture+"src/b.ts:1:1\nWarn: 'x' is declared but its value is never read. (ts)\n"))
	b := writeFile(t, dir, "b.log", []byte("src/c.ts:9:2\nError: Expected 2 arguments, but got 1. (ts)\n"+capture))

	p := pipeline.New(pipeline.Options{})
	ab, err := p.Analyze(context.Background(), []string{a, b}, nil)
	require.NoError(t, err)
	ba, err := p.Analyze(context.Background(), []string{b, a}, nil)
	require.NoError(t, err)

	assert.Equal(t, ab.Report, ba.Report)
}

func TestDecode_UTF16(t *testing.T) {
	t.Parallel()

	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	utf16, err := enc.Bytes([]byte(strings.ReplaceAll(capture, "\n", "\r\n")))
	require.NoError(t, err)

	assert.Equal(t, capture, pipeline.Decode(utf16))
}

func TestDecode_InvalidBytes(t *testing.T) {
	t.Parallel()

	got := pipeline.Decode([]byte("ok \xff\xfe\xfd end"))
	assert.True(t, strings.HasPrefix(got, "ok "))
	assert.Contains(t, got, "\uFFFD")
	assert.True(t, strings.HasSuffix(got, " end"))
}

func TestDecode_UTF8BOM(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a\nb", pipeline.Decode([]byte("\xef\xbb\xbfa\r\nb")))
}
