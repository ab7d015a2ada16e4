package sarif

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/sift/pkg/diag"
)

func TestBuilder_BasicOutput(t *testing.T) {
	b := NewBuilder("sift", "1.0")
	b.AddResult("parse_errors", "error", "';' expected.", "src/a.ts", 15, 3)

	var buf bytes.Buffer
	_, err := b.WriteTo(&buf)
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc), "output is valid JSON")

	assert.Equal(t, "2.1.0", doc.Version)
	require.Len(t, doc.Runs, 1)
	assert.Equal(t, "sift", doc.Runs[0].Tool.Driver.Name)
	require.Len(t, doc.Runs[0].Results, 1)
	r := doc.Runs[0].Results[0]
	assert.Equal(t, "parse_errors", r.RuleID)
	assert.Equal(t, 15, r.Locations[0].PhysicalLocation.Region.StartLine)
	require.Len(t, doc.Runs[0].Tool.Driver.Rules, 1)
}

func TestBuilder_RulesRegisteredOnce(t *testing.T) {
	b := NewBuilder("sift", "").
		AddResult("r1", "error", "m1", "a.ts", 1, 1).
		AddResult("r2", "warning", "m2", "b.ts", 2, 1).
		AddResult("r1", "note", "m3", "c.ts", 3, 1)

	doc := b.Document()
	assert.Len(t, doc.Runs[0].Results, 3)
	assert.Len(t, doc.Runs[0].Tool.Driver.Rules, 2)
	assert.Equal(t, 0, doc.Runs[0].Results[2].RuleIndex)
}

func TestLevel(t *testing.T) {
	assert.Equal(t, "error", Level(diag.SeverityError))
	assert.Equal(t, "warning", Level(diag.SeverityWarning))
	assert.Equal(t, "note", Level(diag.SeverityInfo))
}

func TestFromRecords(t *testing.T) {
	records := []diag.Record{
		{File: "b.ts", Line: 1, Column: 1, Severity: diag.SeverityInfo, Category: diag.CategoryAccessibility, Message: "A11y", Source: "x.log"},
		{File: "a.ts", Line: 2, Column: 4, Severity: diag.SeverityError, Category: diag.CategoryParse, Message: "bad", Tag: "ts", Source: "x.log"},
	}

	doc := FromRecords("sift", "dev", records, func(c diag.Category) (string, map[string]any) {
		return "desc " + string(c), map[string]any{"priority": "p"}
	})

	run := doc.Runs[0]
	require.Len(t, run.Tool.Driver.Rules, len(diag.Categories))
	assert.Equal(t, string(diag.CategoryMissingTranslationKeys), run.Tool.Driver.Rules[0].ID)
	assert.Equal(t, "desc other", run.Tool.Driver.Rules[len(diag.Categories)-1].ShortDescription.Text)

	require.Len(t, run.Results, 2)
	assert.Equal(t, "a.ts", run.Results[0].Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Equal(t, diag.CategoryParse.Index(), run.Results[0].RuleIndex)
	assert.Equal(t, "ts", run.Results[0].Properties["tag"])
	assert.Equal(t, "note", run.Results[1].Level)
	assert.Equal(t, "b.ts", records[0].File, "input untouched")
}
