package parse

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/linwc/twse-chip-data/internal/model"
)

// totalMarker appears in the identifier cell of aggregate rows (合計, 總計,
// 小計); such rows are never securities.
const totalMarker = "計"

// Kind selects the parsing strategy for a source layout.
type Kind int

const (
	// KindTwoLevel is a header spanning two consecutive lines with
	// forward-filled group labels.
	KindTwoLevel Kind = iota
	// KindSimple is a single-line header with 1:1 column renames.
	KindSimple
	// KindSuffix is a single-line header whose columns may carry an
	// optional unit suffix.
	KindSuffix
)

// GroupedField selects one (group, sub) column of a two-level header and
// names its canonical output column.
type GroupedField struct {
	Group, Sub string
	Out        string
}

// FlatField selects one column of a flat header and names its canonical
// output column.
type FlatField struct {
	In  string
	Out string
}

// Spec describes how one publisher export maps onto the canonical shape.
type Spec struct {
	Kind Kind

	// IDMarker and NameMarker must both appear in a line for it to be
	// recognized as the header line.
	IDMarker, NameMarker string

	// IDColumn and NameColumn are the source spellings of the identifier
	// and name columns. For KindTwoLevel they name both group and sub (the
	// publisher repeats them on both header lines).
	IDColumn, NameColumn string

	// Grouped lists the share-count columns for KindTwoLevel. Combinations
	// not listed here are dropped.
	Grouped []GroupedField

	// Flat lists the share-count columns for KindSimple and KindSuffix.
	Flat []FlatField

	// Suffix is the optional unit suffix tolerated on flat columns
	// (KindSuffix only).
	Suffix string
}

// Parser turns decoded source text into a canonical table.
type Parser interface {
	// Parse returns an empty table when the text simply carries no data,
	// and an error only when the structure is malformed beyond tolerance.
	Parse(text string) (model.Table, error)
}

// New returns the strategy implementation for the spec's kind.
func New(spec Spec) Parser {
	switch spec.Kind {
	case KindTwoLevel:
		return &twoLevelParser{spec: spec}
	case KindSuffix:
		return &suffixParser{spec: spec}
	default:
		return &simpleParser{spec: spec}
	}
}

// splitLines returns the non-blank lines of text, carriage returns stripped.
func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

// findHeader returns the index of the first line containing both markers,
// or -1 when no such line exists.
func findHeader(lines []string, idMarker, nameMarker string) int {
	for i, line := range lines {
		if strings.Contains(line, idMarker) && strings.Contains(line, nameMarker) {
			return i
		}
	}
	return -1
}

// cells splits one CSV line into fields. Publisher lines with stray quoting
// that the csv reader rejects fall back to a plain comma split.
func cells(line string) []string {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	record, err := r.Read()
	if err != nil {
		return strings.Split(line, ",")
	}
	return record
}

// cleanCell strips the Excel-guard characters the publishers wrap cells in
// (="0050") along with surrounding whitespace.
func cleanCell(s string) string {
	s = strings.ReplaceAll(s, "=", "")
	s = strings.ReplaceAll(s, `"`, "")
	return strings.TrimSpace(s)
}

// parseCount coerces a possibly comma-grouped numeric string into a signed
// share count. Unparseable values report ok=false and are resolved to zero at
// merge time.
func parseCount(s string) (int64, bool) {
	s = strings.ReplaceAll(cleanCell(s), ",", "")
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	// Some exports render counts as floats (123.0).
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f), true
	}
	return 0, false
}

// keepRow applies the uniform row filter: a usable row has a non-blank
// identifier that is not an aggregate line.
func keepRow(securityID string) bool {
	return securityID != "" && !strings.Contains(securityID, totalMarker)
}

// cell returns record[i] or "" when the row is short.
func cell(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}

// structureError builds the hard-failure error for a header that was found
// but could not be used.
func structureError(what string) error {
	return fmt.Errorf("header found but %s", what)
}
