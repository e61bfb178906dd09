// Package stocklist loads the registry of tracked securities.
//
// The list is a CSV with a stock_code column and a 上市上櫃 market-membership
// column. People maintain this file by hand in spreadsheets, so the header
// row can sit below banner or comment lines; it is located by scanning for
// both required column tokens, the same way publisher exports are handled.
package stocklist

import (
	"fmt"
	"os"
	"strings"

	"github.com/linwc/twse-chip-data/internal/decode"
	"github.com/linwc/twse-chip-data/internal/model"
)

// Column tokens that identify the header row.
const (
	codeToken   = "stock_code"
	marketToken = "上市上櫃"
)

// Security is one tracked instrument.
type Security struct {
	ID     string
	Market model.Market
}

// Load reads and parses the tracked-security list. Any failure here is a
// configuration failure: the caller is expected to abort the run.
func Load(path string) ([]Security, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stock list %s: %w", path, err)
	}
	text, err := decode.Text(raw)
	if err != nil {
		return nil, fmt.Errorf("decode stock list %s: %w", path, err)
	}
	return Parse(text)
}

// Parse parses the stock-list text.
func Parse(text string) ([]Security, error) {
	lines := nonBlankLines(text)

	header := -1
	for i, line := range lines {
		if strings.Contains(line, codeToken) && strings.Contains(line, marketToken) {
			header = i
			break
		}
	}
	if header == -1 {
		return nil, fmt.Errorf("stock list has no header row containing %q and %q", codeToken, marketToken)
	}

	cols := splitRow(lines[header])
	codeIdx, marketIdx := -1, -1
	for i, c := range cols {
		switch strings.TrimSpace(c) {
		case codeToken:
			codeIdx = i
		case marketToken:
			marketIdx = i
		}
	}
	if codeIdx == -1 || marketIdx == -1 {
		return nil, fmt.Errorf("stock list header %v: required columns not found", cols)
	}

	var out []Security
	seen := make(map[string]int)
	for _, line := range lines[header+1:] {
		record := splitRow(line)
		var id, market string
		if codeIdx < len(record) {
			id = strings.TrimSpace(record[codeIdx])
		}
		if marketIdx < len(record) {
			market = strings.TrimSpace(record[marketIdx])
		}
		if id == "" {
			continue
		}
		sec := Security{ID: id, Market: model.Market(market)}
		if !sec.Market.Valid() {
			return nil, fmt.Errorf("stock %s: market %q is not one of %q or %q",
				id, market, model.MarketListed, model.MarketOTC)
		}
		// Duplicate entries: the last line wins, mirroring hand-edited
		// lists where an appended correction supersedes the original.
		if i, ok := seen[id]; ok {
			out[i] = sec
			continue
		}
		seen[id] = len(out)
		out = append(out, sec)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("stock list contains no securities")
	}
	return out, nil
}

func nonBlankLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(strings.ReplaceAll(line, ",", "")) != "" {
			out = append(out, line)
		}
	}
	return out
}

func splitRow(line string) []string {
	return strings.Split(line, ",")
}
