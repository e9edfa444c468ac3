package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Jenn623/NutriBuddy/internal/model"
	"github.com/Jenn623/NutriBuddy/internal/store"
)

var (
	ErrUserExists   = errors.New("user name already registered")
	ErrUserNotFound = errors.New("user not found")
	ErrWrongSecret  = errors.New("wrong password")
	ErrNotLoggedIn  = errors.New("not logged in")
)

type RegisterInput struct {
	Name     string  `validate:"required"`
	Secret   string  `validate:"required"`
	Age      float64 `validate:"gt=0,lte=150"`
	WeightKg float64 `validate:"gt=0"`
	HeightCm float64 `validate:"gt=0"`
	Sex      string  `validate:"oneof=male female"`
	Activity string  `validate:"oneof=sedentary light moderate intense"`
}

// Session identifies the active user. It is created by Register or Login,
// restored from the active-user marker and ended by Logout.
type Session struct {
	User      string
	Profile   model.Profile
	StartedAt time.Time
}

// Register stores a new profile with its computed goals and logs it in.
func Register(ctx context.Context, st store.Store, in RegisterInput) (*Session, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Sex = normalizeName(in.Sex)
	in.Activity = normalizeName(in.Activity)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	if _, found, err := store.GetRecord[model.Profile](ctx, st, store.ProfileKey(in.Name), store.KindProfile); err != nil {
		return nil, fmt.Errorf("check user %q: %w", in.Name, err)
	} else if found {
		return nil, fmt.Errorf("%w: %q", ErrUserExists, in.Name)
	}

	profile := model.Profile{
		Name:      in.Name,
		Secret:    in.Secret,
		Age:       in.Age,
		WeightKg:  in.WeightKg,
		HeightCm:  in.HeightCm,
		Sex:       model.Sex(in.Sex),
		Activity:  model.ActivityLevel(in.Activity),
		CreatedAt: time.Now().UTC(),
	}
	goals, err := ComputeGoals(profile.Stats())
	if err != nil {
		return nil, err
	}
	profile.CalorieGoal = goals.CalorieTarget
	profile.MacroGoals = goals.Macros()

	if err := store.PutRecord(ctx, st, store.ProfileKey(profile.Name), store.KindProfile, profile); err != nil {
		return nil, fmt.Errorf("save user %q: %w", profile.Name, err)
	}
	return startSession(ctx, st, profile)
}

func Login(ctx context.Context, st store.Store, name, secret string) (*Session, error) {
	name = strings.TrimSpace(name)
	profile, found, err := store.GetRecord[model.Profile](ctx, st, store.ProfileKey(name), store.KindProfile)
	if err != nil {
		return nil, fmt.Errorf("load user %q: %w", name, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrUserNotFound, name)
	}
	if profile.Secret != secret {
		return nil, ErrWrongSecret
	}
	return startSession(ctx, st, profile)
}

func Logout(ctx context.Context, st store.Store) error {
	if err := st.Delete(ctx, store.ActiveUserKey); err != nil {
		return fmt.Errorf("clear active session: %w", err)
	}
	return nil
}

// RestoreSession resumes the session named by the active-user marker.
// A marker pointing at a missing profile is cleared.
func RestoreSession(ctx context.Context, st store.Store) (*Session, bool, error) {
	name, found, err := store.GetRecord[string](ctx, st, store.ActiveUserKey, store.KindSession)
	if err != nil || !found {
		return nil, false, err
	}
	profile, found, err := store.GetRecord[model.Profile](ctx, st, store.ProfileKey(name), store.KindProfile)
	if err != nil {
		return nil, false, fmt.Errorf("load user %q: %w", name, err)
	}
	if !found {
		return nil, false, Logout(ctx, st)
	}
	return &Session{User: profile.Name, Profile: profile, StartedAt: time.Now()}, true, nil
}

// RequireSession is RestoreSession that fails with ErrNotLoggedIn.
func RequireSession(ctx context.Context, st store.Store) (*Session, error) {
	sess, found, err := RestoreSession(ctx, st)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotLoggedIn
	}
	return sess, nil
}

func startSession(ctx context.Context, st store.Store, profile model.Profile) (*Session, error) {
	if err := store.PutRecord(ctx, st, store.ActiveUserKey, store.KindSession, profile.Name); err != nil {
		return nil, fmt.Errorf("save active session: %w", err)
	}
	return &Session{User: profile.Name, Profile: profile, StartedAt: time.Now()}, nil
}
