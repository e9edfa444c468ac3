package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/Jenn623/NutriBuddy/internal/logger"
	"github.com/Jenn623/NutriBuddy/internal/model"
	"github.com/Jenn623/NutriBuddy/internal/provider/usda"
	"github.com/Jenn623/NutriBuddy/internal/store"
)

var ErrFoodNotFound = errors.New("food not found")

const (
	localSearchLimit      = 10
	remoteSearchLimit     = 15
	remotePortionSizeG    = 100
	generatedCategory     = "AI generated"
	defaultLookupTimeout  = 15 * time.Second
	remoteFoodIDPrefix    = "usda:"
	generatedFoodIDPrefix = "ai:"
)

// StaticFoods is the built-in catalog.
var StaticFoods = []model.FoodRecord{
	{ID: "1", Name: "Apple", Category: "Fruits", PortionSizeG: 100, Calories: 52, Macros: model.FoodMacros{ProteinG: 0.3, CarbsG: 14, FatG: 0.2}},
	{ID: "2", Name: "Chicken breast", Category: "Proteins", PortionSizeG: 100, Calories: 165, Macros: model.FoodMacros{ProteinG: 31, CarbsG: 0, FatG: 3.6}},
	{ID: "3", Name: "White rice", Category: "Grains", PortionSizeG: 100, Calories: 130, Macros: model.FoodMacros{ProteinG: 2.7, CarbsG: 28.6, FatG: 0.3}},
	{ID: "4", Name: "Cola", Category: "Drinks", PortionSizeG: 350, Calories: 140, Macros: model.FoodMacros{ProteinG: 0, CarbsG: 39, FatG: 0}},
	{ID: "5", Name: "Boiled egg", Category: "Proteins", PortionSizeG: 50, Calories: 78, Macros: model.FoodMacros{ProteinG: 6.3, CarbsG: 0.6, FatG: 5.3}},
	{ID: "6", Name: "Salmon", Category: "Proteins", PortionSizeG: 100, Calories: 208, Macros: model.FoodMacros{ProteinG: 20, CarbsG: 0, FatG: 13}},
}

type RemoteSearcher interface {
	SearchFoods(ctx context.Context, query string, limit int) ([]usda.Food, error)
}

// Catalog serves food records from the static list and the persisted cache of
// remote and generated foods. Records are never changed once cached.
type Catalog struct {
	store     store.Store
	remote    RemoteSearcher
	generator Generator
	timeout   time.Duration
	group     singleflight.Group
	cacheMu   sync.Mutex
	log       *logger.Logger
}

type CatalogOption func(*Catalog)

func WithRemoteSearch(r RemoteSearcher) CatalogOption {
	return func(c *Catalog) { c.remote = r }
}

func WithGenerator(g Generator) CatalogOption {
	return func(c *Catalog) { c.generator = g }
}

func WithLookupTimeout(d time.Duration) CatalogOption {
	return func(c *Catalog) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithCatalogLogger(l *logger.Logger) CatalogOption {
	return func(c *Catalog) { c.log = l.Named("catalog") }
}

func NewCatalog(st store.Store, opts ...CatalogOption) *Catalog {
	c := &Catalog{
		store:   st,
		timeout: defaultLookupTimeout,
		log:     logger.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Catalog) cached(ctx context.Context) ([]model.FoodRecord, error) {
	foods, _, err := store.GetRecord[[]model.FoodRecord](ctx, c.store, store.FoodCacheKey, store.KindFoodCache)
	if err != nil {
		return nil, fmt.Errorf("load food cache: %w", err)
	}
	return foods, nil
}

// All returns the static foods followed by cached ones.
func (c *Catalog) All(ctx context.Context) ([]model.FoodRecord, error) {
	cached, err := c.cached(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.FoodRecord, 0, len(StaticFoods)+len(cached))
	out = append(out, StaticFoods...)
	out = append(out, cached...)
	return out, nil
}

func (c *Catalog) Get(ctx context.Context, id string) (model.FoodRecord, bool, error) {
	id = strings.TrimSpace(id)
	all, err := c.All(ctx)
	if err != nil {
		return model.FoodRecord{}, false, err
	}
	for _, f := range all {
		if f.ID == id {
			return f, true, nil
		}
	}
	return model.FoodRecord{}, false, nil
}

// SearchLocal matches name substrings case-insensitively.
func (c *Catalog) SearchLocal(ctx context.Context, query string) ([]model.FoodRecord, error) {
	q := normalizeName(query)
	if q == "" {
		return nil, nil
	}
	all, err := c.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.FoodRecord, 0, localSearchLimit)
	for _, f := range all {
		if strings.Contains(strings.ToLower(f.Name), q) {
			out = append(out, f)
			if len(out) == localSearchLimit {
				break
			}
		}
	}
	return out, nil
}

// HybridSearch returns local matches, or a single generated food when there
// are none.
func (c *Catalog) HybridSearch(ctx context.Context, query string) ([]model.FoodRecord, error) {
	local, err := c.SearchLocal(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(local) > 0 {
		return local, nil
	}
	q := normalizeName(query)
	if q == "" {
		return nil, nil
	}
	if c.generator == nil {
		return nil, fmt.Errorf("%w: no local match for %q and no generator configured", ErrFoodNotFound, query)
	}
	v, shared, err := c.shared(ctx, "generate:"+q, func(ctx context.Context) (any, error) {
		return c.generate(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.log.Debugw("shared in-flight generation", "query", q)
	}
	return []model.FoodRecord{v.(model.FoodRecord)}, nil
}

// shared runs fn once per key among concurrent callers. fn gets a context
// detached from any single caller and bounded by the lookup timeout; each
// caller stops waiting when its own ctx is done.
func (c *Catalog) shared(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, bool, error) {
	ch := c.group.DoChan(key, func() (any, error) {
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		return fn(lookupCtx)
	})
	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case res := <-ch:
		return res.Val, res.Shared, res.Err
	}
}

func (c *Catalog) generate(ctx context.Context, query string) (model.FoodRecord, error) {
	facts, err := c.generator.Generate(ctx, query)
	if err != nil {
		c.log.Warnw("food generation failed", "query", query, "error", err)
		return model.FoodRecord{}, fmt.Errorf("generate nutrition facts for %q: %w", query, err)
	}
	if !(facts.PortionSizeG > 0) || strings.TrimSpace(facts.Name) == "" {
		return model.FoodRecord{}, fmt.Errorf("generate nutrition facts for %q: incomplete answer %+v", query, facts)
	}
	food := model.FoodRecord{
		ID:           generatedFoodIDPrefix + uuid.NewString(),
		Name:         strings.TrimSpace(facts.Name),
		Category:     generatedCategory,
		PortionSizeG: facts.PortionSizeG,
		Calories:     float64(roundHalfUp(facts.Calories)),
		Macros: model.FoodMacros{
			ProteinG: float64(roundHalfUp(facts.ProteinG)),
			CarbsG:   float64(roundHalfUp(facts.CarbsG)),
			FatG:     float64(roundHalfUp(facts.FatG)),
		},
	}
	if err := c.Remember(ctx, food); err != nil {
		return model.FoodRecord{}, err
	}
	c.log.Infow("generated food", "query", query, "id", food.ID, "name", food.Name)
	return food, nil
}

// SearchRemote queries USDA FoodData Central. Results without energy or
// protein are dropped; kept results are cached so they can be logged by id.
func (c *Catalog) SearchRemote(ctx context.Context, query string) ([]model.FoodRecord, error) {
	if c.remote == nil {
		return nil, fmt.Errorf("remote food search is not configured")
	}
	q := normalizeName(query)
	if q == "" {
		return nil, nil
	}
	v, _, err := c.shared(ctx, "remote:"+q, func(ctx context.Context) (any, error) {
		foods, err := c.remote.SearchFoods(ctx, q, remoteSearchLimit)
		if err != nil {
			c.log.Warnw("remote food search failed", "query", q, "error", err)
			return nil, fmt.Errorf("search foods for %q: %w", q, err)
		}
		out := make([]model.FoodRecord, 0, len(foods))
		for _, f := range foods {
			if f.Calories == 0 || f.ProteinG == 0 {
				continue
			}
			out = append(out, remoteFoodRecord(f))
		}
		if err := c.Remember(ctx, out...); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.FoodRecord), nil
}

func remoteFoodRecord(f usda.Food) model.FoodRecord {
	return model.FoodRecord{
		ID:           remoteFoodIDPrefix + strconv.FormatInt(f.FDCID, 10),
		Name:         f.Description,
		Category:     f.Category,
		PortionSizeG: remotePortionSizeG,
		Calories:     float64(roundHalfUp(f.Calories)),
		Macros: model.FoodMacros{
			ProteinG: float64(roundHalfUp(f.ProteinG)),
			CarbsG:   float64(roundHalfUp(f.CarbsG)),
			FatG:     float64(roundHalfUp(f.FatG)),
		},
	}
}

// Remember appends foods to the cache, skipping ids already present.
func (c *Catalog) Remember(ctx context.Context, foods ...model.FoodRecord) error {
	if len(foods) == 0 {
		return nil
	}
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()
	cached, err := c.cached(ctx)
	if err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(cached)+len(StaticFoods))
	for _, f := range StaticFoods {
		seen[f.ID] = struct{}{}
	}
	for _, f := range cached {
		seen[f.ID] = struct{}{}
	}
	added := 0
	for _, f := range foods {
		if _, ok := seen[f.ID]; ok {
			continue
		}
		seen[f.ID] = struct{}{}
		cached = append(cached, f)
		added++
	}
	if added == 0 {
		return nil
	}
	if err := store.PutRecord(ctx, c.store, store.FoodCacheKey, store.KindFoodCache, cached); err != nil {
		return fmt.Errorf("save food cache: %w", err)
	}
	return nil
}
