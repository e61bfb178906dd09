package gatherer

import (
	"context"
	"log/slog"
	"time"

	"github.com/linwc/twse-chip-data/internal/config"
	"github.com/linwc/twse-chip-data/internal/date"
	"github.com/linwc/twse-chip-data/internal/decode"
	"github.com/linwc/twse-chip-data/internal/fetch"
	"github.com/linwc/twse-chip-data/internal/merge"
	"github.com/linwc/twse-chip-data/internal/model"
	"github.com/linwc/twse-chip-data/internal/parse"
	"github.com/linwc/twse-chip-data/internal/stocklist"
	"github.com/linwc/twse-chip-data/internal/store"
)

// source binds one publisher export to its parser and query shape.
type source struct {
	name   string
	url    string
	parser parse.Parser
	params func(day date.Date) map[string]string
}

// Day processes single target dates through the whole pipeline.
type Day struct {
	client *fetch.Client
	store  *store.Store
	pace   time.Duration
	logger *slog.Logger

	twseSources []source
	tpexSource  source
}

// NewDay wires the per-date pipeline from configuration.
func NewDay(cfg *config.GathererConfig, client *fetch.Client, st *store.Store, logger *slog.Logger) *Day {
	if logger == nil {
		logger = slog.Default()
	}
	twseParams := func(day date.Date) map[string]string {
		return map[string]string{"date": day.Compact(), "response": "csv"}
	}
	return &Day{
		client: client,
		store:  st,
		pace:   cfg.Fetch.Pace,
		logger: logger,
		twseSources: []source{
			{name: "TWSE 外資", url: cfg.Sources.TWSE.ForeignURL, parser: parse.New(parse.ForeignSpec), params: twseParams},
			{name: "TWSE 投信", url: cfg.Sources.TWSE.TrustURL, parser: parse.New(parse.TrustSpec), params: twseParams},
			{name: "TWSE 自營商", url: cfg.Sources.TWSE.DealerURL, parser: parse.New(parse.DealerSpec), params: twseParams},
		},
		tpexSource: source{
			name:   "TPEX",
			url:    cfg.Sources.TPEX.URL,
			parser: parse.New(parse.TPEXSpec),
			params: func(day date.Date) map[string]string {
				return map[string]string{"d": day.ROC(), "t": "D", "o": "csv"}
			},
		},
	}
}

// Process runs the pipeline for one target date: fetch, decode, parse, and
// merge both markets, then persist each tracked security. All failures past
// configuration are contained; a storage error aborts only the security it
// hit.
func (d *Day) Process(ctx context.Context, day date.Date, securities []stocklist.Security) {
	logger := d.logger.With("date", day.String())

	listed := d.marketTable(ctx, logger, day, d.twseSources)
	otc := d.marketTable(ctx, logger, day, []source{d.tpexSource})

	if listed.Empty() && otc.Empty() {
		logger.Warn("no market data for date")
		return
	}

	var persisted, skipped, failed int
	for _, sec := range securities {
		market := sec.Market
		table := listed
		if market == model.MarketOTC {
			table = otc
		}
		if table.Empty() {
			skipped++
			continue
		}
		row, ok := table.Find(sec.ID)
		if !ok {
			skipped++
			continue
		}
		if d.store.SnapshotExists(market, sec.ID, day) {
			logger.Info("snapshot already captured, skipping", "security", sec.ID)
			skipped++
			continue
		}

		dated := model.DatedRow{Date: day, Row: row.Clone()}
		if err := d.store.WriteSnapshot(market, table.Columns, dated); err != nil {
			logger.Error("failed to persist security", "security", sec.ID, "error", err)
			failed++
			continue
		}
		if err := d.store.Accumulate(market, table.Columns, dated); err != nil {
			logger.Error("failed to update history", "security", sec.ID, "error", err)
			failed++
			continue
		}
		persisted++
	}

	logger.Info("date complete",
		"listed_rows", len(listed.Rows),
		"otc_rows", len(otc.Rows),
		"persisted", persisted,
		"skipped", skipped,
		"failed", failed,
	)
}

// marketTable fetches, decodes, and parses every source of one publisher,
// pacing successive requests, and merges the results into the per-market
// table. Sources that are unavailable or unparsable contribute nothing.
func (d *Day) marketTable(ctx context.Context, logger *slog.Logger, day date.Date, sources []source) model.Table {
	var tables []model.Table
	for i, src := range sources {
		if i > 0 && d.pace > 0 {
			time.Sleep(d.pace)
		}
		t, ok := d.sourceTable(ctx, logger, day, src)
		if ok {
			tables = append(tables, t)
		}
	}
	return merge.Tables(tables)
}

func (d *Day) sourceTable(ctx context.Context, logger *slog.Logger, day date.Date, src source) (model.Table, bool) {
	raw, err := d.client.Fetch(ctx, src.url, src.params(day), src.name+" "+day.String())
	if err != nil {
		logger.Info("source unavailable", "source", src.name, "reason", err)
		return model.Table{}, false
	}

	text, err := decode.Text(raw)
	if err != nil {
		logger.Error("source undecodable", "source", src.name, "error", err)
		return model.Table{}, false
	}

	table, err := src.parser.Parse(text)
	if err != nil {
		logger.Error("source unparsable, treating as empty",
			"source", src.name,
			"bytes", len(raw),
			"error", err,
		)
		return model.Table{}, false
	}
	if table.Empty() {
		logger.Info("source has no rows", "source", src.name)
		return model.Table{}, false
	}
	return table, true
}
