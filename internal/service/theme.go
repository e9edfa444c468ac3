package service

import (
	"context"
	"fmt"

	"github.com/Jenn623/NutriBuddy/internal/model"
	"github.com/Jenn623/NutriBuddy/internal/store"
)

func CurrentTheme(ctx context.Context, st store.Store) (model.Theme, error) {
	theme, found, err := store.GetRecord[model.Theme](ctx, st, store.ThemeKey, store.KindTheme)
	if err != nil {
		return "", err
	}
	if !found {
		return model.ThemeLight, nil
	}
	return theme, nil
}

func SetTheme(ctx context.Context, st store.Store, theme model.Theme) error {
	switch theme {
	case model.ThemeLight, model.ThemeDark:
	default:
		return fmt.Errorf("%w: theme must be light or dark, got %q", ErrValidation, theme)
	}
	return store.PutRecord(ctx, st, store.ThemeKey, store.KindTheme, theme)
}

func ToggleTheme(ctx context.Context, st store.Store) (model.Theme, error) {
	current, err := CurrentTheme(ctx, st)
	if err != nil {
		return "", err
	}
	next := model.ThemeDark
	if current == model.ThemeDark {
		next = model.ThemeLight
	}
	if err := SetTheme(ctx, st, next); err != nil {
		return "", err
	}
	return next, nil
}
