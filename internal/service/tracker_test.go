package service_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/Jenn623/NutriBuddy/internal/model"
	"github.com/Jenn623/NutriBuddy/internal/service"
	"github.com/Jenn623/NutriBuddy/internal/store"
)

func TestAddFoodScalesCaloriesByPortion(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := store.NewMemory()
	p := registerUser(t, st, "ana")
	tr := newTracker(t, st, p, newClock("2026-03-10"))

	entry, err := tr.AddFood(ctx, model.FoodRecord{ID: "x", Name: "Apple", PortionSizeG: 100, Calories: 52}, 50)
	if err != nil {
		t.Fatalf("add food: %v", err)
	}
	if entry.TotalCalories != 26 {
		t.Fatalf("expected 26 kcal, got %d", entry.TotalCalories)
	}
	if got := tr.Totals().Calories; got != 26 {
		t.Fatalf("expected total 26 kcal, got %d", got)
	}
}

func TestAddRemoveRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := store.NewMemory()
	p := registerUser(t, st, "ana")
	tr := newTracker(t, st, p, newClock("2026-03-10"))

	if _, err := tr.AddFood(ctx, foodByID(t, "2"), 150); err != nil {
		t.Fatalf("add chicken: %v", err)
	}
	before := tr.Totals()

	if _, err := tr.AddFood(ctx, foodByID(t, "3"), 200); err != nil {
		t.Fatalf("add rice: %v", err)
	}
	if err := tr.RemoveFood(ctx, 1); err != nil {
		t.Fatalf("remove rice: %v", err)
	}
	if after := tr.Totals(); after != before {
		t.Fatalf("expected totals %+v after round trip, got %+v", before, after)
	}
	if len(tr.Entries()) != 1 || tr.Entries()[0].Food.ID != "2" {
		t.Fatalf("unexpected entries after removal: %+v", tr.Entries())
	}
}

func TestTotalsRoundMacrosAfterSumming(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := store.NewMemory()
	p := registerUser(t, st, "ana")
	tr := newTracker(t, st, p, newClock("2026-03-10"))

	food := model.FoodRecord{ID: "q", Name: "Quarter", PortionSizeG: 100, Calories: 10, Macros: model.FoodMacros{ProteinG: 0.3}}
	for i := 0; i < 2; i++ {
		if _, err := tr.AddFood(ctx, food, 100); err != nil {
			t.Fatalf("add food: %v", err)
		}
	}
	// 0.3 + 0.3 rounds to 1, while rounding each entry first would give 0.
	tot := tr.Totals()
	if tot.Macros.ProteinG != 1 {
		t.Fatalf("expected protein 1g, got %d", tot.Macros.ProteinG)
	}
	if again := tr.Totals(); again != tot {
		t.Fatalf("totals not stable: %+v vs %+v", tot, again)
	}
}

func TestRemainingIsGoalMinusTotals(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := store.NewMemory()
	p := registerUser(t, st, "ana")
	tr := newTracker(t, st, p, newClock("2026-03-10"))

	if _, err := tr.AddFood(ctx, foodByID(t, "6"), 100); err != nil {
		t.Fatalf("add salmon: %v", err)
	}
	rem := tr.Remaining()
	if rem.Calories != tr.Goals().CalorieTarget-208 {
		t.Fatalf("expected remaining %d, got %d", tr.Goals().CalorieTarget-208, rem.Calories)
	}
	if rem.Macros.ProteinG != tr.Goals().ProteinG-20 {
		t.Fatalf("unexpected remaining protein %d", rem.Macros.ProteinG)
	}
}

func TestAddFoodValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := store.NewMemory()
	p := registerUser(t, st, "ana")
	tr := newTracker(t, st, p, newClock("2026-03-10"))

	if _, err := tr.AddFood(ctx, foodByID(t, "1"), 0); !errors.Is(err, service.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := tr.AddFood(ctx, model.FoodRecord{ID: "z", Name: "Zero", Calories: 10}, 10); !errors.Is(err, service.ErrInvalidPortion) {
		t.Fatalf("expected ErrInvalidPortion, got %v", err)
	}
	for _, q := range []float64{math.Inf(1), math.NaN(), 1e300, -5} {
		if _, err := tr.AddFood(ctx, foodByID(t, "1"), q); !errors.Is(err, service.ErrInvalidQuantity) {
			t.Fatalf("quantity %v: expected ErrInvalidQuantity, got %v", q, err)
		}
	}
	if err := tr.RemoveFood(ctx, 0); !errors.Is(err, service.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if len(tr.Entries()) != 0 {
		t.Fatalf("expected no entries, got %d", len(tr.Entries()))
	}
	if got := tr.Totals().Calories; got != 0 {
		t.Fatalf("expected zero calories after rejected adds, got %d", got)
	}

	restored := newTracker(t, st, p, newClock("2026-03-10"))
	if len(restored.Entries()) != 0 {
		t.Fatalf("expected rejected entries not persisted, got %+v", restored.Entries())
	}
}

func TestWorkingDayRestoredSameDay(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := store.NewMemory()
	p := registerUser(t, st, "ana")
	c := newClock("2026-03-10")

	first := newTracker(t, st, p, c)
	if _, err := first.AddFood(ctx, foodByID(t, "5"), 100); err != nil {
		t.Fatalf("add egg: %v", err)
	}

	second := newTracker(t, st, p, c)
	entries := second.Entries()
	if len(entries) != 1 || entries[0].TotalCalories != 156 {
		t.Fatalf("expected restored egg entry of 156 kcal, got %+v", entries)
	}
}

func TestWorkingDayFromYesterdayIsDiscarded(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := store.NewMemory()
	p := registerUser(t, st, "ana")

	if err := store.PutRecord(ctx, st, store.WorkingDayKey(p.Name), store.KindWorkingDay, model.WorkingDay{
		Date:    "2026-03-09",
		Entries: []model.ConsumedEntry{{Food: foodByID(t, "1"), QuantityG: 100, TotalCalories: 52}},
	}); err != nil {
		t.Fatalf("seed working day: %v", err)
	}

	tr := newTracker(t, st, p, newClock("2026-03-10"))
	if len(tr.Entries()) != 0 {
		t.Fatalf("expected empty working list, got %+v", tr.Entries())
	}
	wd, found, err := store.GetRecord[model.WorkingDay](ctx, st, store.WorkingDayKey(p.Name), store.KindWorkingDay)
	if err != nil || !found {
		t.Fatalf("load working day: found=%v err=%v", found, err)
	}
	if wd.Date != "2026-03-10" || len(wd.Entries) != 0 {
		t.Fatalf("expected empty working day for today, got %+v", wd)
	}
}

func TestTrackerRollsOverAtMidnight(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := store.NewMemory()
	p := registerUser(t, st, "ana")
	c := newClock("2026-03-10")
	tr := newTracker(t, st, p, c)

	if _, err := tr.AddFood(ctx, foodByID(t, "1"), 100); err != nil {
		t.Fatalf("add apple: %v", err)
	}
	c.advanceDays(1)
	if _, err := tr.AddFood(ctx, foodByID(t, "4"), 350); err != nil {
		t.Fatalf("add cola: %v", err)
	}
	if tr.Day() != "2026-03-11" {
		t.Fatalf("expected day 2026-03-11, got %s", tr.Day())
	}
	if got := tr.Totals().Calories; got != 140 {
		t.Fatalf("expected only today's 140 kcal, got %d", got)
	}
}

func TestSaveSnapshotReplacesSameDayAndKeepsEntries(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := store.NewMemory()
	p := registerUser(t, st, "ana")
	tr := newTracker(t, st, p, newClock("2026-03-10"))

	if _, err := tr.AddFood(ctx, foodByID(t, "1"), 100); err != nil {
		t.Fatalf("add apple: %v", err)
	}
	if _, err := tr.SaveSnapshot(ctx); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if _, err := tr.AddFood(ctx, foodByID(t, "1"), 100); err != nil {
		t.Fatalf("add second apple: %v", err)
	}
	snap, err := tr.SaveSnapshot(ctx)
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if snap.CaloriesConsumed != 104 {
		t.Fatalf("expected 104 kcal snapshot, got %d", snap.CaloriesConsumed)
	}

	h, err := service.LoadHistory(ctx, st, p.Name)
	if err != nil {
		t.Fatalf("load history: %v", err)
	}
	if len(h) != 1 || h[0].CaloriesConsumed != 104 || len(h[0].FoodsConsumed) != 2 {
		t.Fatalf("expected one replaced snapshot, got %+v", h)
	}
	if len(tr.Entries()) != 2 {
		t.Fatalf("expected working list kept after save, got %d entries", len(tr.Entries()))
	}
}

func TestSaveSnapshotKeepsFiveMostRecentDays(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := store.NewMemory()
	p := registerUser(t, st, "ana")
	c := newClock("2026-03-01")
	tr := newTracker(t, st, p, c)

	for day := 0; day < 7; day++ {
		if _, err := tr.AddFood(ctx, foodByID(t, "3"), 100); err != nil {
			t.Fatalf("day %d add: %v", day, err)
		}
		if _, err := tr.SaveSnapshot(ctx); err != nil {
			t.Fatalf("day %d save: %v", day, err)
		}
		c.advanceDays(1)
	}

	h, err := service.LoadHistory(ctx, st, p.Name)
	if err != nil {
		t.Fatalf("load history: %v", err)
	}
	if len(h) != service.HistoryLimit {
		t.Fatalf("expected %d snapshots, got %d", service.HistoryLimit, len(h))
	}
	if h[0].Date != "2026-03-03" || h[4].Date != "2026-03-07" {
		t.Fatalf("expected 2026-03-03..2026-03-07, got %s..%s", h[0].Date, h[4].Date)
	}
}

func TestPersistFailureKeepsMemoryState(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := &flakyStore{Memory: store.NewMemory()}
	p := registerUser(t, st, "ana")
	tr := newTracker(t, st, p, newClock("2026-03-10"))

	st.failPuts = true
	_, err := tr.AddFood(ctx, foodByID(t, "1"), 100)
	if !errors.Is(err, service.ErrPersist) || !errors.Is(err, errStoreDown) {
		t.Fatalf("expected ErrPersist wrapping the store error, got %v", err)
	}
	if len(tr.Entries()) != 1 {
		t.Fatalf("expected entry kept in memory, got %d", len(tr.Entries()))
	}
	if _, err := tr.SaveSnapshot(ctx); !errors.Is(err, service.ErrPersist) {
		t.Fatalf("expected ErrPersist from save, got %v", err)
	}

	st.failPuts = false
	if err := tr.Close(ctx); err != nil {
		t.Fatalf("close after recovery: %v", err)
	}
	wd, _, err := store.GetRecord[model.WorkingDay](ctx, st, store.WorkingDayKey(p.Name), store.KindWorkingDay)
	if err != nil || len(wd.Entries) != 1 {
		t.Fatalf("expected recovered working day with one entry, got %+v (err %v)", wd, err)
	}
}

func TestTrackerMessageUsesLiveBand(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := store.NewMemory()
	p := registerUser(t, st, "ana")
	tr := newTracker(t, st, p, newClock("2026-03-10"))

	if msg := tr.Message(); msg.Band != service.BandDeficient {
		t.Fatalf("expected deficient with nothing eaten, got %s", msg.Band)
	}
	if _, err := tr.AddFood(ctx, foodByID(t, "6"), 1300); err != nil {
		t.Fatalf("add salmon: %v", err)
	}
	if msg := tr.Message(); msg.Band != service.BandExceeded || msg.Excess != 2704-2556 {
		t.Fatalf("expected exceeded by %d, got %+v", 2704-2556, msg)
	}
}
