// Package model defines the canonical data types shared across the pipeline.
//
// Conventions:
//   - Share counts: int64, signed (net columns go negative)
//   - Column names: localized, source-qualified strings (e.g. 外資_買進股數) so
//     same-named fields from different sources never collide after a merge
//   - A column absent from a row's Shares map means the source did not report
//     a usable number; merging resolves absence to zero
package model
