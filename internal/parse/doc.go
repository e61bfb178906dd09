// Package parse turns decoded publisher CSV text into canonical tables.
//
// The two publishers ship three structurally different layouts for the same
// logical data:
//
//   - two-level header: foreign-investor and dealer exports, where a group
//     label row (外資及陸資, 自營商(避險), ...) sits above a sub-label row and
//     blank group cells inherit from the left
//   - simple flat header: investment-trust export, plain column names renamed
//     1:1 to canonical names
//   - flat with suffix: the over-the-counter export, where each column may or
//     may not carry a (股) unit suffix depending on the day
//
// Each layout is a Parser strategy selected by the source Spec. Absence of
// data (no header found, too few lines) yields an empty table, never an
// error; an error means the document claimed to have a header but its
// structure could not be used.
package parse
