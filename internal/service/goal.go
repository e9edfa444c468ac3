package service

import (
	"errors"
	"fmt"
	"math"

	"github.com/Jenn623/NutriBuddy/internal/model"
)

var (
	ErrUnknownActivity = errors.New("unknown activity level")
	ErrUnknownSex      = errors.New("unknown sex")
)

var activityMultipliers = map[model.ActivityLevel]float64{
	model.ActivitySedentary: 1.2,
	model.ActivityLight:     1.375,
	model.ActivityModerate:  1.55,
	model.ActivityIntense:   1.725,
}

// Macro split of the calorie target and energy density per gram.
const (
	proteinShare = 0.25
	carbsShare   = 0.50
	fatShare     = 0.25

	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

func ActivityMultiplier(level model.ActivityLevel) (float64, error) {
	m, ok := activityMultipliers[level]
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrUnknownActivity, level)
	}
	return m, nil
}

// BasalRate is the Mifflin-St Jeor estimate, floored at 1 kcal.
func BasalRate(s model.BodyStats) (float64, error) {
	bmr := 10*s.WeightKg + 6.25*s.HeightCm - 5*s.Age
	switch s.Sex {
	case model.SexMale:
		bmr += 5
	case model.SexFemale:
		bmr -= 161
	default:
		return 0, fmt.Errorf("%w %q", ErrUnknownSex, s.Sex)
	}
	return math.Max(1, bmr), nil
}

func ComputeGoals(s model.BodyStats) (model.Goals, error) {
	bmr, err := BasalRate(s)
	if err != nil {
		return model.Goals{}, err
	}
	mult, err := ActivityMultiplier(s.Activity)
	if err != nil {
		return model.Goals{}, err
	}
	target := roundHalfUp(bmr * mult)
	kcal := float64(target)
	return model.Goals{
		CalorieTarget: target,
		ProteinG:      roundHalfUp(kcal * proteinShare / kcalPerGramProtein),
		CarbsG:        roundHalfUp(kcal * carbsShare / kcalPerGramCarbs),
		FatG:          roundHalfUp(kcal * fatShare / kcalPerGramFat),
	}, nil
}
