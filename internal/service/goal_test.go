package service_test

import (
	"errors"
	"math"
	"testing"

	"github.com/Jenn623/NutriBuddy/internal/model"
	"github.com/Jenn623/NutriBuddy/internal/service"
)

func TestComputeGoalsModerateMale(t *testing.T) {
	t.Parallel()
	goals, err := service.ComputeGoals(model.BodyStats{Age: 30, WeightKg: 70, HeightCm: 175, Sex: model.SexMale, Activity: model.ActivityModerate})
	if err != nil {
		t.Fatalf("compute goals: %v", err)
	}
	want := model.Goals{CalorieTarget: 2556, ProteinG: 160, CarbsG: 320, FatG: 71}
	if goals != want {
		t.Fatalf("expected %+v, got %+v", want, goals)
	}
}

func TestComputeGoalsFemaleSedentary(t *testing.T) {
	t.Parallel()
	// 10*60 + 6.25*165 - 5*25 - 161 = 1345.25; *1.2 = 1614.3
	goals, err := service.ComputeGoals(model.BodyStats{Age: 25, WeightKg: 60, HeightCm: 165, Sex: model.SexFemale, Activity: model.ActivitySedentary})
	if err != nil {
		t.Fatalf("compute goals: %v", err)
	}
	if goals.CalorieTarget != 1614 {
		t.Fatalf("expected 1614 kcal, got %d", goals.CalorieTarget)
	}
}

func TestComputeGoalsIsDeterministic(t *testing.T) {
	t.Parallel()
	stats := model.BodyStats{Age: 41, WeightKg: 82.5, HeightCm: 181, Sex: model.SexMale, Activity: model.ActivityIntense}
	first, err := service.ComputeGoals(stats)
	if err != nil {
		t.Fatalf("compute goals: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := service.ComputeGoals(stats)
		if err != nil {
			t.Fatalf("compute goals run %d: %v", i, err)
		}
		if again != first {
			t.Fatalf("run %d differs: %+v vs %+v", i, again, first)
		}
	}
}

func TestComputeGoalsFloorsTinyBodies(t *testing.T) {
	t.Parallel()
	goals, err := service.ComputeGoals(model.BodyStats{Age: 150, WeightKg: 1, HeightCm: 1, Sex: model.SexFemale, Activity: model.ActivitySedentary})
	if err != nil {
		t.Fatalf("compute goals: %v", err)
	}
	if goals.CalorieTarget < 1 {
		t.Fatalf("expected a positive calorie target, got %d", goals.CalorieTarget)
	}
}

func TestComputeGoalsMacrosApproximateTarget(t *testing.T) {
	t.Parallel()
	levels := []model.ActivityLevel{model.ActivitySedentary, model.ActivityLight, model.ActivityModerate, model.ActivityIntense}
	for _, level := range levels {
		for _, sex := range []model.Sex{model.SexMale, model.SexFemale} {
			goals, err := service.ComputeGoals(model.BodyStats{Age: 35, WeightKg: 77, HeightCm: 170, Sex: sex, Activity: level})
			if err != nil {
				t.Fatalf("compute goals %s/%s: %v", sex, level, err)
			}
			kcal := goals.ProteinG*4 + goals.CarbsG*4 + goals.FatG*9
			if math.Abs(float64(kcal-goals.CalorieTarget)) > 10 {
				t.Fatalf("%s/%s macros give %d kcal, target %d", sex, level, kcal, goals.CalorieTarget)
			}
		}
	}
}

func TestComputeGoalsRejectsUnknownEnums(t *testing.T) {
	t.Parallel()
	_, err := service.ComputeGoals(model.BodyStats{Age: 30, WeightKg: 70, HeightCm: 175, Sex: model.SexMale, Activity: "athlete"})
	if !errors.Is(err, service.ErrUnknownActivity) {
		t.Fatalf("expected ErrUnknownActivity, got %v", err)
	}
	_, err = service.ComputeGoals(model.BodyStats{Age: 30, WeightKg: 70, HeightCm: 175, Sex: "other", Activity: model.ActivityLight})
	if !errors.Is(err, service.ErrUnknownSex) {
		t.Fatalf("expected ErrUnknownSex, got %v", err)
	}
}

func TestActivityMultiplier(t *testing.T) {
	t.Parallel()
	m, err := service.ActivityMultiplier(model.ActivityLight)
	if err != nil || m != 1.375 {
		t.Fatalf("expected 1.375, got %v (err %v)", m, err)
	}
}
