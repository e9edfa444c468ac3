package service_test

import (
	"context"
	"testing"

	"github.com/Jenn623/NutriBuddy/internal/model"
	"github.com/Jenn623/NutriBuddy/internal/service"
	"github.com/Jenn623/NutriBuddy/internal/store"
)

func snapshots(dates ...string) model.History {
	h := make(model.History, 0, len(dates))
	for i, d := range dates {
		h = append(h, model.DailySnapshot{Date: d, CaloriesConsumed: 1000 + i})
	}
	return h
}

func TestLoadHistoryEmptyWhenAbsent(t *testing.T) {
	t.Parallel()
	h, err := service.LoadHistory(context.Background(), store.NewMemory(), "nobody")
	if err != nil {
		t.Fatalf("load history: %v", err)
	}
	if h == nil || len(h) != 0 {
		t.Fatalf("expected empty non-nil history, got %#v", h)
	}
}

func TestSaveAndFindByDate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := store.NewMemory()
	if err := service.SaveHistory(ctx, st, "ana", snapshots("2026-03-01", "2026-03-02")); err != nil {
		t.Fatalf("save history: %v", err)
	}
	h, err := service.LoadHistory(ctx, st, "ana")
	if err != nil {
		t.Fatalf("load history: %v", err)
	}
	snap, ok := service.FindByDate(h, "2026-03-02")
	if !ok || snap.CaloriesConsumed != 1001 {
		t.Fatalf("expected 2026-03-02 with 1001 kcal, got %+v (ok=%v)", snap, ok)
	}
	if _, ok := service.FindByDate(h, "2026-02-28"); ok {
		t.Fatalf("expected missing date to be not found")
	}
	if other, _ := service.LoadHistory(ctx, st, "ben"); len(other) != 0 {
		t.Fatalf("expected histories to be per user, got %+v", other)
	}
}

func TestMergeSnapshotReplacesInPlace(t *testing.T) {
	t.Parallel()
	h := snapshots("2026-03-01", "2026-03-02", "2026-03-03")
	merged := service.MergeSnapshot(h, model.DailySnapshot{Date: "2026-03-02", CaloriesConsumed: 42}, service.HistoryLimit)
	if len(merged) != 3 || merged[1].CaloriesConsumed != 42 {
		t.Fatalf("expected in-place replacement, got %+v", merged)
	}
	if h[1].CaloriesConsumed != 1001 {
		t.Fatalf("input history was modified")
	}
}

func TestMergeSnapshotTruncatesOldest(t *testing.T) {
	t.Parallel()
	h := snapshots("2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05")
	merged := service.MergeSnapshot(h, model.DailySnapshot{Date: "2026-03-06"}, service.HistoryLimit)
	if len(merged) != 5 {
		t.Fatalf("expected 5 snapshots, got %d", len(merged))
	}
	if merged[0].Date != "2026-03-02" || merged[4].Date != "2026-03-06" {
		t.Fatalf("unexpected window %s..%s", merged[0].Date, merged[4].Date)
	}
	for i := 1; i < len(merged); i++ {
		if merged[i].Date == merged[i-1].Date {
			t.Fatalf("duplicate date %s", merged[i].Date)
		}
	}
}

func TestLatestDateAndTrend(t *testing.T) {
	t.Parallel()
	if _, ok := service.LatestDate(nil); ok {
		t.Fatalf("expected no latest date for empty history")
	}
	h := model.History{
		{Date: "2026-03-01", CaloriesConsumed: 2000},
		{Date: "2026-03-02", CaloriesConsumed: 1200},
		{Date: "2026-03-03", CaloriesConsumed: 2500},
	}
	latest, ok := service.LatestDate(h)
	if !ok || latest != "2026-03-03" {
		t.Fatalf("expected latest 2026-03-03, got %q", latest)
	}

	goals := model.Goals{CalorieTarget: 2000}
	points := service.CalorieTrend(h, goals, service.HistoryThresholds)
	want := []service.Band{service.BandOnTrack, service.BandDeficient, service.BandExceeded}
	if len(points) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(points))
	}
	for i, p := range points {
		if p.Band != want[i] || p.Goal != 2000 || p.Date != h[i].Date {
			t.Fatalf("point %d: unexpected %+v", i, p)
		}
	}

	msg := service.HistoryMessage(service.NewHistoryFeedback(service.HistoryThresholds, fixedRand(0)), h[2], goals)
	if msg.Band != service.BandExceeded || msg.Excess != 500 {
		t.Fatalf("expected exceeded by 500, got %+v", msg)
	}
}
