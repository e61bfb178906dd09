package store

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/linwc/twse-chip-data/internal/date"
	"github.com/linwc/twse-chip-data/internal/model"
)

// Localized header names for the non-share columns.
const (
	colID   = "證券代號"
	colName = "證券名稱"
	colDate = "日期"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// encodeCSV renders rows as BOM-marked UTF-8 CSV. Column order is
// identifier, name, share columns as given, then the day.
func encodeCSV(columns []string, rows []model.DatedRow) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	header := make([]string, 0, len(columns)+3)
	header = append(header, colID, colName)
	header = append(header, columns...)
	header = append(header, colDate)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(header))
	for _, r := range rows {
		record = record[:0]
		record = append(record, r.SecurityID, r.SecurityName)
		for _, col := range columns {
			record = append(record, strconv.FormatInt(r.Share(col), 10))
		}
		record = append(record, r.Date.String())
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write row %s: %w", r.SecurityID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// decodeCSV parses a history or snapshot file back into rows. The header
// determines the share columns; unknown numeric cells that fail to parse are
// left missing, consistent with the ingestion side.
func decodeCSV(data []byte) ([]string, []model.DatedRow, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}

	header := records[0]
	idIdx, nameIdx, dateIdx := -1, -1, -1
	var columns []string
	colIdx := make(map[string]int)
	for i, h := range header {
		switch h {
		case colID:
			idIdx = i
		case colName:
			nameIdx = i
		case colDate:
			dateIdx = i
		default:
			columns = append(columns, h)
			colIdx[h] = i
		}
	}
	if idIdx == -1 || dateIdx == -1 {
		return nil, nil, fmt.Errorf("malformed header %v: identifier or date column missing", header)
	}

	rows := make([]model.DatedRow, 0, len(records)-1)
	for _, record := range records[1:] {
		if idIdx >= len(record) || dateIdx >= len(record) {
			continue
		}
		day, err := date.Parse(record[dateIdx])
		if err != nil {
			return nil, nil, fmt.Errorf("row %q: %w", record[idIdx], err)
		}
		row := model.DatedRow{
			Date: day,
			Row: model.Row{
				SecurityID: record[idIdx],
				Shares:     make(map[string]int64, len(columns)),
			},
		}
		if nameIdx >= 0 && nameIdx < len(record) {
			row.SecurityName = record[nameIdx]
		}
		for col, i := range colIdx {
			if i >= len(record) {
				continue
			}
			if n, err := strconv.ParseInt(record[i], 10, 64); err == nil {
				row.Shares[col] = n
			}
		}
		rows = append(rows, row)
	}
	return columns, rows, nil
}
