package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Jenn623/NutriBuddy/internal/model"
	"github.com/Jenn623/NutriBuddy/internal/service"
	"github.com/Jenn623/NutriBuddy/internal/store"
)

var errStoreDown = errors.New("store unavailable")

// flakyStore fails every Put while failPuts is set.
type flakyStore struct {
	*store.Memory
	failPuts bool
}

func (f *flakyStore) Put(ctx context.Context, key string, value []byte) error {
	if f.failPuts {
		return errStoreDown
	}
	return f.Memory.Put(ctx, key, value)
}

type fixedRand int

func (r fixedRand) IntN(n int) int { return int(r) % n }

// clock is a settable time source for trackers.
type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newClock(date string) *clock {
	t, err := time.ParseInLocation(model.DateLayout, date, time.Local)
	if err != nil {
		panic(err)
	}
	return &clock{t: t.Add(12 * time.Hour)}
}

func (c *clock) advanceDays(n int) { c.t = c.t.AddDate(0, 0, n) }

func sampleInput(name string) service.RegisterInput {
	return service.RegisterInput{
		Name:     name,
		Secret:   "s3cret",
		Age:      30,
		WeightKg: 70,
		HeightCm: 175,
		Sex:      "male",
		Activity: "moderate",
	}
}

func registerUser(t *testing.T, st store.Store, name string) model.Profile {
	t.Helper()
	sess, err := service.Register(context.Background(), st, sampleInput(name))
	if err != nil {
		t.Fatalf("register %q: %v", name, err)
	}
	return sess.Profile
}

func newTracker(t *testing.T, st store.Store, p model.Profile, c *clock) *service.Tracker {
	t.Helper()
	tr, err := service.NewTracker(context.Background(), st, p, service.WithClock(c.now), service.WithFeedback(service.NewLiveFeedback(service.LiveThresholds, fixedRand(0))))
	if err != nil {
		t.Fatalf("new tracker: %v", err)
	}
	return tr
}

func foodByID(t *testing.T, id string) model.FoodRecord {
	t.Helper()
	for _, f := range service.StaticFoods {
		if f.ID == id {
			return f
		}
	}
	t.Fatalf("no static food %q", id)
	return model.FoodRecord{}
}
