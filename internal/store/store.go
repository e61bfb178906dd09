package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/linwc/twse-chip-data/internal/date"
	"github.com/linwc/twse-chip-data/internal/model"
)

// Store writes per-security snapshot and history files under one directory
// tree per market.
type Store struct {
	listedDir string
	otcDir    string
	logger    *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a store rooted at the two market directories.
func New(listedDir, otcDir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		listedDir: listedDir,
		otcDir:    otcDir,
		logger:    logger,
		locks:     make(map[string]*sync.Mutex),
	}
}

// SecurityDir returns the directory holding one security's files.
func (s *Store) SecurityDir(market model.Market, securityID string) string {
	base := s.listedDir
	if market == model.MarketOTC {
		base = s.otcDir
	}
	return filepath.Join(base, securityID)
}

// SnapshotPath returns the path of the write-once daily snapshot file.
func (s *Store) SnapshotPath(market model.Market, securityID string, day date.Date) string {
	return filepath.Join(s.SecurityDir(market, securityID), day.String()+".csv")
}

// HistoryPath returns the path of the accumulated history file.
func (s *Store) HistoryPath(market model.Market, securityID string) string {
	return filepath.Join(s.SecurityDir(market, securityID), securityID+".csv")
}

// SnapshotExists reports whether the (security, day) pair was already
// captured. Callers must check this before deriving data for the pair; the
// check is the pipeline's only exactly-once safeguard.
func (s *Store) SnapshotExists(market model.Market, securityID string, day date.Date) bool {
	_, err := os.Stat(s.SnapshotPath(market, securityID, day))
	return err == nil
}

// WriteSnapshot persists the immutable daily record for one security. The
// file is written atomically and never modified afterwards.
func (s *Store) WriteSnapshot(market model.Market, columns []string, row model.DatedRow) error {
	data, err := encodeCSV(columns, []model.DatedRow{row})
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", row.SecurityID, err)
	}
	path := s.SnapshotPath(market, row.SecurityID, row.Date)
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("write snapshot %s: %w", path, err)
	}
	s.logger.Info("snapshot saved", "security", row.SecurityID, "file", path)
	return nil
}

// Accumulate merges one day's row into the security's history file: load,
// append, deduplicate by day keeping the newest write, sort ascending, and
// rewrite atomically. Calling it again with the same (security, day) row is
// a no-op in effect; calling it with corrected numbers for an existing day
// replaces that day's row.
func (s *Store) Accumulate(market model.Market, columns []string, row model.DatedRow) error {
	lock := s.lockFor(market, row.SecurityID)
	lock.Lock()
	defer lock.Unlock()

	path := s.HistoryPath(market, row.SecurityID)

	var existingCols []string
	var rows []model.DatedRow
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		existingCols, rows, err = decodeCSV(data)
		if err != nil {
			return fmt.Errorf("load history %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// First day for this security.
	default:
		return fmt.Errorf("load history %s: %w", path, err)
	}

	// Column union: keep the file's order, append columns this day
	// introduces.
	allCols := existingCols
	for _, col := range columns {
		if !slices.Contains(allCols, col) {
			allCols = append(allCols, col)
		}
	}

	rows = append(rows, row)
	rows = dedupeByDate(rows)
	slices.SortStableFunc(rows, func(a, b model.DatedRow) int {
		return a.Date.Compare(b.Date)
	})

	out, err := encodeCSV(allCols, rows)
	if err != nil {
		return fmt.Errorf("encode history %s: %w", path, err)
	}
	if err := writeFileAtomic(path, out); err != nil {
		return fmt.Errorf("write history %s: %w", path, err)
	}
	s.logger.Info("history updated", "security", row.SecurityID, "days", len(rows))
	return nil
}

// dedupeByDate keeps the last occurrence of each day, preserving the order
// of last occurrences.
func dedupeByDate(rows []model.DatedRow) []model.DatedRow {
	last := make(map[date.Date]int, len(rows))
	for i, r := range rows {
		last[r.Date] = i
	}
	out := rows[:0:0]
	for i, r := range rows {
		if last[r.Date] == i {
			out = append(out, r)
		}
	}
	return out
}

func (s *Store) lockFor(market model.Market, securityID string) *sync.Mutex {
	key := string(market) + "/" + securityID
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it into place, so a crash never leaves a half-written file visible.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
