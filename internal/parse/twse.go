package parse

import "github.com/linwc/twse-chip-data/internal/model"

// Specs for the three exchange-listed exports.
var (
	// ForeignSpec maps the 外資及陸資 export (TWT38U).
	ForeignSpec = Spec{
		Kind:       KindTwoLevel,
		IDMarker:   "證券代號",
		NameMarker: "證券名稱",
		IDColumn:   "證券代號",
		NameColumn: "證券名稱",
		Grouped: []GroupedField{
			{Group: "外資及陸資", Sub: "買進股數", Out: "外資_買進股數"},
			{Group: "外資及陸資", Sub: "賣出股數", Out: "外資_賣出股數"},
			{Group: "外資及陸資", Sub: "買賣超股數", Out: "外資_買賣超股數"},
		},
	}

	// DealerSpec maps the 自營商 export (TWT43U), which splits proprietary
	// trading from hedging.
	DealerSpec = Spec{
		Kind:       KindTwoLevel,
		IDMarker:   "證券代號",
		NameMarker: "證券名稱",
		IDColumn:   "證券代號",
		NameColumn: "證券名稱",
		Grouped: []GroupedField{
			{Group: "自營商(自行買賣)", Sub: "買進股數", Out: "自營商_自行買賣_買進股數"},
			{Group: "自營商(自行買賣)", Sub: "賣出股數", Out: "自營商_自行買賣_賣出股數"},
			{Group: "自營商(自行買賣)", Sub: "買賣超股數", Out: "自營商_自行買賣_買賣超股數"},
			{Group: "自營商(避險)", Sub: "買進股數", Out: "自營商_避險_買進股數"},
			{Group: "自營商(避險)", Sub: "賣出股數", Out: "自營商_避險_賣出股數"},
			{Group: "自營商(避險)", Sub: "買賣超股數", Out: "自營商_避險_買賣超股數"},
		},
	}

	// TrustSpec maps the 投信 export (TWT44U), a plain flat table.
	TrustSpec = Spec{
		Kind:       KindSimple,
		IDMarker:   "證券代號",
		NameMarker: "證券名稱",
		IDColumn:   "證券代號",
		NameColumn: "證券名稱",
		Flat: []FlatField{
			{In: "買進股數", Out: "投信_買進股數"},
			{In: "賣出股數", Out: "投信_賣出股數"},
			{In: "買賣超股數", Out: "投信_買賣超股數"},
		},
	}
)

// twoLevelParser handles headers spanning two consecutive lines. The first
// line carries group labels where a blank cell inherits the previous
// non-blank label left-to-right; the second carries sub-labels. Data rows
// start two lines after the header line.
type twoLevelParser struct {
	spec Spec
}

type groupedKey struct {
	group, sub string
}

func (p *twoLevelParser) Parse(text string) (model.Table, error) {
	lines := splitLines(text)
	if len(lines) < 2 {
		return model.Table{}, nil
	}
	h := findHeader(lines, p.spec.IDMarker, p.spec.NameMarker)
	if h == -1 {
		return model.Table{}, nil
	}
	if h+1 >= len(lines) {
		return model.Table{}, structureError("the sub-label line is missing")
	}

	top := cells(lines[h])
	sub := cells(lines[h+1])

	// Forward-fill blank group labels, then index columns by (group, sub).
	index := make(map[groupedKey]int, len(top))
	group := ""
	for i := range top {
		if g := cleanCell(top[i]); g != "" {
			group = g
		}
		key := groupedKey{group: group, sub: cleanCell(cell(sub, i))}
		if _, ok := index[key]; !ok {
			index[key] = i
		}
	}

	idIdx, ok := index[groupedKey{p.spec.IDColumn, p.spec.IDColumn}]
	if !ok {
		return model.Table{}, structureError("the identifier column could not be located")
	}
	nameIdx, hasName := index[groupedKey{p.spec.NameColumn, p.spec.NameColumn}]
	if !hasName {
		return model.Table{}, structureError("the name column could not be located")
	}

	table := model.Table{}
	for _, f := range p.spec.Grouped {
		table.AddColumn(f.Out)
	}
	for _, line := range lines[h+2:] {
		record := cells(line)
		id := cleanCell(cell(record, idIdx))
		if !keepRow(id) {
			continue
		}
		row := model.Row{
			SecurityID:   id,
			SecurityName: cleanCell(cell(record, nameIdx)),
			Shares:       make(map[string]int64, len(p.spec.Grouped)),
		}
		for _, f := range p.spec.Grouped {
			i, ok := index[groupedKey{f.Group, f.Sub}]
			if !ok {
				continue
			}
			if n, ok := parseCount(cell(record, i)); ok {
				row.Shares[f.Out] = n
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// simpleParser handles single-line headers whose columns rename 1:1.
type simpleParser struct {
	spec Spec
}

func (p *simpleParser) Parse(text string) (model.Table, error) {
	lines := splitLines(text)
	if len(lines) < 2 {
		return model.Table{}, nil
	}
	h := findHeader(lines, p.spec.IDMarker, p.spec.NameMarker)
	if h == -1 {
		return model.Table{}, nil
	}

	header := cells(lines[h])
	index := make(map[string]int, len(header))
	for i, c := range header {
		name := cleanCell(c)
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}

	idIdx, ok := index[p.spec.IDColumn]
	if !ok {
		return model.Table{}, structureError("the identifier column could not be located")
	}
	nameIdx, ok := index[p.spec.NameColumn]
	if !ok {
		return model.Table{}, structureError("the name column could not be located")
	}

	table := model.Table{}
	for _, f := range p.spec.Flat {
		table.AddColumn(f.Out)
	}
	for _, line := range lines[h+1:] {
		record := cells(line)
		id := cleanCell(cell(record, idIdx))
		if !keepRow(id) {
			continue
		}
		row := model.Row{
			SecurityID:   id,
			SecurityName: cleanCell(cell(record, nameIdx)),
			Shares:       make(map[string]int64, len(p.spec.Flat)),
		}
		for _, f := range p.spec.Flat {
			i, ok := index[f.In]
			if !ok {
				continue
			}
			if n, ok := parseCount(cell(record, i)); ok {
				row.Shares[f.Out] = n
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
