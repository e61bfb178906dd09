package model

import "testing"

func TestMarketValid(t *testing.T) {
	if !MarketListed.Valid() {
		t.Error("MarketListed.Valid() = false, want true")
	}
	if !MarketOTC.Valid() {
		t.Error("MarketOTC.Valid() = false, want true")
	}
	if Market("興櫃").Valid() {
		t.Error(`Market("興櫃").Valid() = true, want false`)
	}
}

func TestRowShare(t *testing.T) {
	r := Row{SecurityID: "2330", Shares: map[string]int64{"外資_買賣超股數": -1200}}

	if got := r.Share("外資_買賣超股數"); got != -1200 {
		t.Errorf("Share() = %d, want -1200", got)
	}
	if got := r.Share("投信_買進股數"); got != 0 {
		t.Errorf("Share(missing) = %d, want 0", got)
	}
}

func TestRowClone(t *testing.T) {
	r := Row{SecurityID: "2330", Shares: map[string]int64{"外資_買進股數": 100}}
	c := r.Clone()
	c.Shares["外資_買進股數"] = 999

	if r.Shares["外資_買進股數"] != 100 {
		t.Error("Clone() shares alias the original map")
	}
}

func TestTable(t *testing.T) {
	var tb Table
	if !tb.Empty() {
		t.Error("Empty() = false for zero table")
	}

	tb.AddColumn("外資_買進股數")
	tb.AddColumn("外資_買進股數")
	tb.AddColumn("外資_賣出股數")
	if len(tb.Columns) != 2 {
		t.Errorf("AddColumn dedupe failed, columns = %v", tb.Columns)
	}

	tb.Rows = append(tb.Rows, Row{SecurityID: "2330", SecurityName: "台積電"})
	if _, ok := tb.Find("2330"); !ok {
		t.Error("Find(2330) = not found")
	}
	if _, ok := tb.Find("2317"); ok {
		t.Error("Find(2317) found a row that is not there")
	}
}
