package parse

import "github.com/linwc/twse-chip-data/internal/model"

// TPEXSpec maps the over-the-counter daily institutional export. Its header
// is flat, but each share-count column may or may not carry a (股) unit
// suffix depending on the day; both spellings resolve to the bare name.
var TPEXSpec = Spec{
	Kind:       KindSuffix,
	IDMarker:   "代號",
	NameMarker: "名稱",
	IDColumn:   "代號",
	NameColumn: "名稱",
	Suffix:     "(股)",
	Flat: []FlatField{
		{In: "外資及陸資買進股數", Out: "外資及陸資買進股數"},
		{In: "外資及陸資賣出股數", Out: "外資及陸資賣出股數"},
		{In: "外資及陸資買賣超股數", Out: "外資及陸資買賣超股數"},
		{In: "投信買進股數", Out: "投信買進股數"},
		{In: "投信賣出股數", Out: "投信賣出股數"},
		{In: "投信買賣超股數", Out: "投信買賣超股數"},
		{In: "自營商(自行買賣)買進股數", Out: "自營商(自行買賣)買進股數"},
		{In: "自營商(自行買賣)賣出股數", Out: "自營商(自行買賣)賣出股數"},
		{In: "自營商(自行買賣)買賣超股數", Out: "自營商(自行買賣)買賣超股數"},
		{In: "自營商(避險)買進股數", Out: "自營商(避險)買進股數"},
		{In: "自營商(避險)賣出股數", Out: "自營商(避險)賣出股數"},
		{In: "自營商(避險)買賣超股數", Out: "自營商(避險)買賣超股數"},
	},
}

// suffixParser is the flat-with-suffix strategy: for each expected field it
// selects whichever spelling the header carries, bare or suffixed, and
// renames to the canonical column.
type suffixParser struct {
	spec Spec
}

func (p *suffixParser) Parse(text string) (model.Table, error) {
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

	// Resolve each expected field to whichever spelling is present.
	resolved := make(map[string]int, len(p.spec.Flat))
	table := model.Table{}
	for _, f := range p.spec.Flat {
		if i, ok := index[f.In]; ok {
			resolved[f.Out] = i
			table.AddColumn(f.Out)
		} else if i, ok := index[f.In+p.spec.Suffix]; ok {
			resolved[f.Out] = i
			table.AddColumn(f.Out)
		}
	}

	for _, line := range lines[h+1:] {
		record := cells(line)
		if allBlank(record) {
			continue
		}
		id := cleanCell(cell(record, idIdx))
		if !keepRow(id) {
			continue
		}
		row := model.Row{
			SecurityID:   id,
			SecurityName: cleanCell(cell(record, nameIdx)),
			Shares:       make(map[string]int64, len(resolved)),
		}
		for out, i := range resolved {
			if n, ok := parseCount(cell(record, i)); ok {
				row.Shares[out] = n
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func allBlank(record []string) bool {
	for _, c := range record {
		if cleanCell(c) != "" {
			return false
		}
	}
	return true
}
