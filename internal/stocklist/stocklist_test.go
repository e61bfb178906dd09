package stocklist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/linwc/twse-chip-data/internal/model"
)

func TestParse(t *testing.T) {
	t.Run("header below banner lines", func(t *testing.T) {
		text := "我的追蹤清單\n,,\nstock_code,上市上櫃,備註\n2330,上市,台積電\n5483,上櫃,\n"
		secs, err := Parse(text)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if len(secs) != 2 {
			t.Fatalf("securities = %d, want 2", len(secs))
		}
		if secs[0] != (Security{ID: "2330", Market: model.MarketListed}) {
			t.Errorf("secs[0] = %+v", secs[0])
		}
		if secs[1] != (Security{ID: "5483", Market: model.MarketOTC}) {
			t.Errorf("secs[1] = %+v", secs[1])
		}
	})

	t.Run("blank rows skipped", func(t *testing.T) {
		text := "stock_code,上市上櫃\n2330,上市\n,,\n,\n2317,上市\n"
		secs, err := Parse(text)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if len(secs) != 2 {
			t.Errorf("securities = %d, want 2", len(secs))
		}
	})

	t.Run("duplicate id keeps the later line", func(t *testing.T) {
		text := "stock_code,上市上櫃\n2330,上市\n2330,上櫃\n"
		secs, err := Parse(text)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if len(secs) != 1 {
			t.Fatalf("securities = %d, want 1", len(secs))
		}
		if secs[0].Market != model.MarketOTC {
			t.Errorf("market = %q, want the later 上櫃", secs[0].Market)
		}
	})

	t.Run("missing header is an error", func(t *testing.T) {
		if _, err := Parse("id,market\n2330,上市\n"); err == nil {
			t.Error("Parse() expected error for missing header tokens")
		}
	})

	t.Run("unknown market label is an error", func(t *testing.T) {
		if _, err := Parse("stock_code,上市上櫃\n2330,興櫃\n"); err == nil {
			t.Error("Parse() expected error for unknown market label")
		}
	})

	t.Run("empty list is an error", func(t *testing.T) {
		if _, err := Parse("stock_code,上市上櫃\n"); err == nil {
			t.Error("Parse() expected error for empty list")
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("utf-8 with BOM", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "stock_list.csv")
		content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("stock_code,上市上櫃\n2330,上市\n")...)
		if err := os.WriteFile(path, content, 0o644); err != nil {
			t.Fatal(err)
		}

		secs, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(secs) != 1 || secs[0].ID != "2330" {
			t.Errorf("securities = %+v", secs)
		}
	})

	t.Run("missing file is an error", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
			t.Error("Load() expected error for missing file")
		}
	})
}
