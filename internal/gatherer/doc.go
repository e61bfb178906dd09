// Package gatherer drives the per-day pipeline and fans it out across dates.
//
// Day processes one target date end to end: fetch each publisher export,
// decode, parse, merge per market, then persist per tracked security. Every
// data-availability problem short of a storage failure degrades to "that
// source is empty today" so the remaining sources and securities still land.
//
// Coordinator runs Day over a window of trailing calendar days with a
// bounded worker pool. Date tasks share nothing in memory; the snapshot
// existence check plus the store's per-security lock make the filesystem
// safe to share.
package gatherer
