package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Jenn623/NutriBuddy/internal/logger"
	"github.com/Jenn623/NutriBuddy/internal/model"
	"github.com/Jenn623/NutriBuddy/internal/store"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be > 0")
	ErrInvalidPortion  = errors.New("food portion size must be > 0")
	ErrIndexOutOfRange = errors.New("entry index out of range")
	// ErrPersist wraps store failures. The in-memory state is kept.
	ErrPersist = errors.New("persist tracker state")
)

// maxEntryCalories bounds a single entry so totals stay representable.
const maxEntryCalories = math.MaxInt32

type Totals struct {
	Calories int              `json:"calories"`
	Macros   model.MacroGrams `json:"macros"`
}

// Tracker holds one user's working day. It is not safe for concurrent use;
// a session has a single actor.
type Tracker struct {
	store    store.Store
	profile  model.Profile
	goals    model.Goals
	day      string
	entries  []model.ConsumedEntry
	now      func() time.Time
	feedback *Feedback
	log      *logger.Logger
}

type TrackerOption func(*Tracker)

func WithClock(now func() time.Time) TrackerOption {
	return func(t *Tracker) { t.now = now }
}

func WithFeedback(f *Feedback) TrackerOption {
	return func(t *Tracker) { t.feedback = f }
}

func WithLogger(l *logger.Logger) TrackerOption {
	return func(t *Tracker) { t.log = l.Named("tracker") }
}

// NewTracker restores today's working day for the profile. A stored working
// day from another date is discarded.
func NewTracker(ctx context.Context, st store.Store, profile model.Profile, opts ...TrackerOption) (*Tracker, error) {
	goals, err := ComputeGoals(profile.Stats())
	if err != nil {
		return nil, fmt.Errorf("compute goals for %q: %w", profile.Name, err)
	}
	t := &Tracker{
		store:    st,
		profile:  profile,
		goals:    goals,
		now:      time.Now,
		feedback: NewLiveFeedback(LiveThresholds, nil),
		log:      logger.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.day = t.today()

	wd, found, err := store.GetRecord[model.WorkingDay](ctx, st, store.WorkingDayKey(profile.Name), store.KindWorkingDay)
	if err != nil {
		return nil, fmt.Errorf("load working day for %q: %w", profile.Name, err)
	}
	if found && wd.Date == t.day {
		t.entries = wd.Entries
		t.log.Debugw("restored working day", "user", profile.Name, "date", t.day, "entries", len(wd.Entries))
		return t, nil
	}
	if found {
		t.log.Infow("discarding stale working day", "user", profile.Name, "stored_date", wd.Date, "today", t.day)
		if err := t.persist(ctx); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Tracker) today() string {
	return t.now().Format(model.DateLayout)
}

// rollover starts an empty working day when the calendar day has changed.
func (t *Tracker) rollover() {
	today := t.today()
	if today == t.day {
		return
	}
	t.log.Infow("calendar day changed, resetting working day", "user", t.profile.Name, "from", t.day, "to", today)
	t.day = today
	t.entries = nil
}

func (t *Tracker) Day() string { return t.day }

func (t *Tracker) Profile() model.Profile { return t.profile }

// Goals are derived from the profile, never read from its stored copy.
func (t *Tracker) Goals() model.Goals { return t.goals }

func (t *Tracker) Entries() []model.ConsumedEntry {
	out := make([]model.ConsumedEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *Tracker) AddFood(ctx context.Context, food model.FoodRecord, quantityG float64) (model.ConsumedEntry, error) {
	if !(quantityG > 0) || math.IsInf(quantityG, 0) {
		return model.ConsumedEntry{}, fmt.Errorf("%w: got %v", ErrInvalidQuantity, quantityG)
	}
	if !(food.PortionSizeG > 0) || math.IsInf(food.PortionSizeG, 0) {
		return model.ConsumedEntry{}, fmt.Errorf("%w: %q has %v", ErrInvalidPortion, food.Name, food.PortionSizeG)
	}
	factor := quantityG / food.PortionSizeG
	if kcal := math.Abs(food.Calories * factor); math.IsNaN(kcal) || kcal > maxEntryCalories {
		return model.ConsumedEntry{}, fmt.Errorf("%w: %vg of %q is out of range", ErrInvalidQuantity, quantityG, food.Name)
	}
	t.rollover()

	entry := model.ConsumedEntry{
		Food:          food,
		QuantityG:     quantityG,
		TotalCalories: roundHalfUp(food.Calories * factor),
	}
	t.entries = append(t.entries, entry)
	return entry, t.persist(ctx)
}

func (t *Tracker) RemoveFood(ctx context.Context, index int) error {
	t.rollover()
	if index < 0 || index >= len(t.entries) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(t.entries))
	}
	next := make([]model.ConsumedEntry, 0, len(t.entries)-1)
	next = append(next, t.entries[:index]...)
	next = append(next, t.entries[index+1:]...)
	t.entries = next
	return t.persist(ctx)
}

// Totals is recomputed from the whole working list on every call. Calories
// sum the per-entry rounded values; macros are rounded once after summing.
func (t *Tracker) Totals() Totals {
	var calories int
	var protein, carbs, fat float64
	for _, e := range t.entries {
		factor := e.Factor()
		calories += e.TotalCalories
		protein += e.Food.Macros.ProteinG * factor
		carbs += e.Food.Macros.CarbsG * factor
		fat += e.Food.Macros.FatG * factor
	}
	return Totals{
		Calories: calories,
		Macros: model.MacroGrams{
			ProteinG: roundHalfUp(protein),
			CarbsG:   roundHalfUp(carbs),
			FatG:     roundHalfUp(fat),
		},
	}
}

// Remaining is goals minus totals; negative values mean over the goal.
func (t *Tracker) Remaining() Totals {
	tot := t.Totals()
	return Totals{
		Calories: t.goals.CalorieTarget - tot.Calories,
		Macros: model.MacroGrams{
			ProteinG: t.goals.ProteinG - tot.Macros.ProteinG,
			CarbsG:   t.goals.CarbsG - tot.Macros.CarbsG,
			FatG:     t.goals.FatG - tot.Macros.FatG,
		},
	}
}

func (t *Tracker) Message() Message {
	return t.feedback.Evaluate(t.Totals().Calories, t.goals.CalorieTarget)
}

// SaveSnapshot writes today's totals into the history, replacing an existing
// snapshot for the same date. The working list is kept.
func (t *Tracker) SaveSnapshot(ctx context.Context) (model.DailySnapshot, error) {
	t.rollover()
	tot := t.Totals()
	snap := model.DailySnapshot{
		Date:             t.day,
		CaloriesConsumed: tot.Calories,
		MacrosConsumed:   tot.Macros,
		FoodsConsumed:    t.Entries(),
	}

	h, err := LoadHistory(ctx, t.store, t.profile.Name)
	if err != nil {
		return snap, fmt.Errorf("%w: load history: %w", ErrPersist, err)
	}
	h = MergeSnapshot(h, snap, HistoryLimit)
	if err := SaveHistory(ctx, t.store, t.profile.Name, h); err != nil {
		t.log.Errorw("failed to save history", "user", t.profile.Name, "date", snap.Date, "error", err)
		return snap, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	t.log.Debugw("saved snapshot", "user", t.profile.Name, "date", snap.Date, "calories", snap.CaloriesConsumed, "history_len", len(h))
	return snap, nil
}

// Close writes the working list one last time.
func (t *Tracker) Close(ctx context.Context) error {
	return t.persist(ctx)
}

func (t *Tracker) persist(ctx context.Context) error {
	wd := model.WorkingDay{Date: t.day, Entries: t.Entries()}
	if err := store.PutRecord(ctx, t.store, store.WorkingDayKey(t.profile.Name), store.KindWorkingDay, wd); err != nil {
		t.log.Errorw("failed to persist working day", "user", t.profile.Name, "date", t.day, "error", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}
