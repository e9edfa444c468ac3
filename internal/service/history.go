package service

import (
	"context"

	"github.com/Jenn623/NutriBuddy/internal/model"
	"github.com/Jenn623/NutriBuddy/internal/store"
)

// HistoryLimit is the number of most recent daily snapshots retained.
const HistoryLimit = 5

func LoadHistory(ctx context.Context, st store.Store, user string) (model.History, error) {
	h, found, err := store.GetRecord[model.History](ctx, st, store.HistoryKey(user), store.KindHistory)
	if err != nil {
		return nil, err
	}
	if !found || h == nil {
		return model.History{}, nil
	}
	return h, nil
}

// SaveHistory writes h as given; callers truncate it first.
func SaveHistory(ctx context.Context, st store.Store, user string, h model.History) error {
	if h == nil {
		h = model.History{}
	}
	return store.PutRecord(ctx, st, store.HistoryKey(user), store.KindHistory, h)
}

func FindByDate(h model.History, date string) (model.DailySnapshot, bool) {
	for _, snap := range h {
		if snap.Date == date {
			return snap, true
		}
	}
	return model.DailySnapshot{}, false
}

// MergeSnapshot replaces the snapshot with the same date in place, or appends
// it, then keeps the last limit entries. h is not modified.
func MergeSnapshot(h model.History, snap model.DailySnapshot, limit int) model.History {
	out := make(model.History, len(h), len(h)+1)
	copy(out, h)

	replaced := false
	for i := range out {
		if out[i].Date == snap.Date {
			out[i] = snap
			replaced = true
			break
		}
	}
	if !replaced {
		out = append(out, snap)
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

// LatestDate is the most recently saved date, the default day to show.
func LatestDate(h model.History) (string, bool) {
	if len(h) == 0 {
		return "", false
	}
	return h[len(h)-1].Date, true
}

type TrendPoint struct {
	Date     string `json:"date"`
	Calories int    `json:"calories"`
	Goal     int    `json:"goal"`
	Band     Band   `json:"band"`
}

// CalorieTrend returns one point per snapshot in history order.
func CalorieTrend(h model.History, goals model.Goals, t Thresholds) []TrendPoint {
	points := make([]TrendPoint, 0, len(h))
	for _, snap := range h {
		points = append(points, TrendPoint{
			Date:     snap.Date,
			Calories: snap.CaloriesConsumed,
			Goal:     goals.CalorieTarget,
			Band:     t.Classify(snap.CaloriesConsumed, goals.CalorieTarget),
		})
	}
	return points
}

// HistoryMessage gives feedback on a past day using the history thresholds.
func HistoryMessage(f *Feedback, snap model.DailySnapshot, goals model.Goals) Message {
	return f.Evaluate(snap.CaloriesConsumed, goals.CalorieTarget)
}
