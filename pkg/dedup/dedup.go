// Package dedup finds diagnostics that were captured more than once, typically
// the same checker run redirected into several log files.
package dedup

import (
	"sort"

	"github.com/dkoosis/sift/pkg/diag"
)

// Group is one diagnostic seen more than once. Files lists the distinct source
// captures it appeared in, sorted.
type Group struct {
	Message     string   `json:"canonicalMessage" yaml:"canonicalMessage"`
	File        string   `json:"file" yaml:"file"`
	Line        int      `json:"line" yaml:"line"`
	Column      int      `json:"column" yaml:"column"`
	Occurrences int      `json:"occurrences" yaml:"occurrences"`
	Files       []string `json:"files" yaml:"files"`
}

// Key identifies a diagnostic independent of the capture it came from.
type Key struct {
	Message string
	File    string
	Line    int
	Column  int
}

// KeyOf returns the dedup key of r.
func KeyOf(r diag.Record) Key {
	return Key{Message: r.Message, File: r.File, Line: r.Line, Column: r.Column}
}

// Groups returns every key with more than one occurrence. Records are only
// read; the full set still feeds the totals.
func Groups(records []diag.Record) []Group {
	type acc struct {
		count   int
		sources map[string]struct{}
	}
	byKey := make(map[Key]*acc)
	for _, r := range records {
		k := KeyOf(r)
		a, ok := byKey[k]
		if !ok {
			a = &acc{sources: make(map[string]struct{})}
			byKey[k] = a
		}
		a.count++
		a.sources[r.Source] = struct{}{}
	}

	var groups []Group
	for k, a := range byKey {
		if a.count < 2 {
			continue
		}
		files := make([]string, 0, len(a.sources))
		for s := range a.sources {
			files = append(files, s)
		}
		sort.Strings(files)
		groups = append(groups, Group{
			Message:     k.Message,
			File:        k.File,
			Line:        k.Line,
			Column:      k.Column,
			Occurrences: a.count,
			Files:       files,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		if a.Occurrences != b.Occurrences {
			return a.Occurrences > b.Occurrences
		}
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return a.Message < b.Message
	})
	return groups
}
