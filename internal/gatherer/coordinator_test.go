package gatherer

import (
	"context"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/linwc/twse-chip-data/internal/date"
	"github.com/linwc/twse-chip-data/internal/model"
)

func TestTrailingDates(t *testing.T) {
	end := date.MustParse("2026-08-31")

	got := TrailingDates(end, 3)
	want := []string{"2026-08-31", "2026-08-30", "2026-08-29"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].String() != w {
			t.Errorf("dates[%d] = %s, want %s", i, got[i], w)
		}
	}
}

func TestCoordinatorRun(t *testing.T) {
	// Only one date has data published; the other two come back as stubs.
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("date") == "20260831" || r.URL.Query().Get("d") == "115/08/31" {
			serveAll(w, r)
			return
		}
		w.Write([]byte("x"))
	})

	c := NewCoordinator(env.day, 2, nil)
	dates := TrailingDates(date.MustParse("2026-08-31"), 3)
	c.Run(context.Background(), dates, testSecurities)

	// Every date fetched every source.
	for _, path := range []string{"/foreign", "/trust", "/dealer", "/tpex"} {
		if env.requests[path] != 3 {
			t.Errorf("requests[%s] = %d, want 3", path, env.requests[path])
		}
	}

	// Only the published date produced files.
	if !env.store.SnapshotExists(model.MarketListed, "2330", date.MustParse("2026-08-31")) {
		t.Error("snapshot missing for the published date")
	}
	if env.store.SnapshotExists(model.MarketListed, "2330", date.MustParse("2026-08-30")) {
		t.Error("snapshot written for a date with no data")
	}
}

func TestCoordinatorHonoursCancellation(t *testing.T) {
	env := newTestEnv(t, serveAll)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewCoordinator(env.day, 1, nil)
	c.Run(ctx, TrailingDates(date.MustParse("2026-08-31"), 3), testSecurities)

	// With the semaphore free, the first acquire may still win the select
	// race, so at most one date task ran.
	total := 0
	for _, n := range env.requests {
		total += n
	}
	if total > 4 {
		t.Errorf("requests = %d, want at most one date task's worth (4)", total)
	}
}

func TestCoordinatorFinishesInFlightTaskOnShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		serveAll(w, r)
		if r.URL.Path == "/foreign" {
			// Shutdown arrives while the date task is mid-flight.
			cancel()
		}
	})

	day := date.MustParse("2026-08-31")
	c := NewCoordinator(env.day, 1, nil)
	c.Run(ctx, []date.Date{day}, testSecurities)

	// The remaining sources must still have been fetched after the
	// shutdown signal; a partial capture would be frozen forever by the
	// write-once snapshot guard.
	for _, path := range []string{"/foreign", "/trust", "/dealer", "/tpex"} {
		if env.requests[path] != 1 {
			t.Errorf("requests[%s] = %d, want 1", path, env.requests[path])
		}
	}

	data, err := os.ReadFile(env.store.SnapshotPath(model.MarketListed, "2330", day))
	if err != nil {
		t.Fatalf("snapshot missing: %v", err)
	}
	for _, want := range []string{"投信_買進股數", "自營商_避險_買賣超股數"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("snapshot missing %q after shutdown mid-task", want)
		}
	}
}

func TestCoordinatorMinimumConcurrency(t *testing.T) {
	c := NewCoordinator(nil, 0, nil)
	if c.concurrency != 1 {
		t.Errorf("concurrency = %d, want clamped to 1", c.concurrency)
	}
}
