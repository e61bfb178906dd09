package model

import (
	"slices"

	"github.com/linwc/twse-chip-data/internal/date"
)

// Market says which venue a security trades on. The values match the labels
// used in the tracked-stock list.
type Market string

const (
	// MarketListed is the exchange-listed venue (TWSE).
	MarketListed Market = "上市"
	// MarketOTC is the over-the-counter venue (TPEX).
	MarketOTC Market = "上櫃"
)

// Valid reports whether m is one of the two known venues.
func (m Market) Valid() bool { return m == MarketListed || m == MarketOTC }

// Row is one security's share counts from one source (or, after a merge, from
// all sources of one market) for one day.
type Row struct {
	SecurityID   string
	SecurityName string

	// Shares maps canonical column name to a signed share count. A missing
	// key means the value was not reported or failed numeric coercion.
	Shares map[string]int64
}

// Share returns the named count, zero when absent.
func (r Row) Share(col string) int64 { return r.Shares[col] }

// Clone returns a deep copy of the row.
func (r Row) Clone() Row {
	out := r
	out.Shares = make(map[string]int64, len(r.Shares))
	for k, v := range r.Shares {
		out.Shares[k] = v
	}
	return out
}

// Table is an ordered collection of rows from one source for one day.
// Security IDs are unique within a table; Columns lists the share-count
// columns in first-appearance order.
type Table struct {
	Columns []string
	Rows    []Row
}

// Empty reports whether the table has no rows.
func (t Table) Empty() bool { return len(t.Rows) == 0 }

// HasColumn reports whether the table carries the named share-count column.
func (t Table) HasColumn(name string) bool { return slices.Contains(t.Columns, name) }

// AddColumn appends a column name unless it is already present.
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

// Find returns the row for the given security ID.
func (t Table) Find(securityID string) (Row, bool) {
	for _, r := range t.Rows {
		if r.SecurityID == securityID {
			return r, true
		}
	}
	return Row{}, false
}

// DatedRow is a row stamped with its trading day, the unit of persistence.
type DatedRow struct {
	Date date.Date
	Row
}
