// Package merge joins canonical tables from multiple sources of one market
// into a single per-day table.
package merge

import "github.com/linwc/twse-chip-data/internal/model"

// Tables performs a full outer join of the given tables on
// (security ID, security name), accumulating share-count columns. Tables
// without any rows contribute nothing but their columns. After the join,
// every share-count column missing from a security is filled with zero: an
// absent value means "no reported activity", never "unknown".
//
// The result's row membership does not depend on input order; row and column
// order follow first appearance.
func Tables(tables []model.Table) model.Table {
	if len(tables) == 0 {
		return model.Table{}
	}

	type key struct {
		id, name string
	}

	out := model.Table{}
	index := make(map[key]int)

	for _, t := range tables {
		for _, col := range t.Columns {
			out.AddColumn(col)
		}
		for _, r := range t.Rows {
			k := key{r.SecurityID, r.SecurityName}
			i, ok := index[k]
			if !ok {
				index[k] = len(out.Rows)
				out.Rows = append(out.Rows, model.Row{
					SecurityID:   r.SecurityID,
					SecurityName: r.SecurityName,
					Shares:       make(map[string]int64, len(out.Columns)),
				})
				i = len(out.Rows) - 1
			}
			for col, v := range r.Shares {
				out.Rows[i].Shares[col] = v
			}
		}
	}

	// Zero-fill so downstream never sees a missing share-count value.
	for i := range out.Rows {
		for _, col := range out.Columns {
			if _, ok := out.Rows[i].Shares[col]; !ok {
				out.Rows[i].Shares[col] = 0
			}
		}
	}
	return out
}
