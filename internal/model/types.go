package model

import "time"

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityLight     ActivityLevel = "light"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityIntense   ActivityLevel = "intense"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DateLayout is the calendar-day key used by working days and snapshots.
const DateLayout = "2006-01-02"

type MacroGrams struct {
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`
}

type Goals struct {
	CalorieTarget int `json:"calorie_target"`
	ProteinG      int `json:"protein_g"`
	CarbsG        int `json:"carbs_g"`
	FatG          int `json:"fat_g"`
}

func (g Goals) Macros() MacroGrams {
	return MacroGrams{ProteinG: g.ProteinG, CarbsG: g.CarbsG, FatG: g.FatG}
}

type BodyStats struct {
	Age      float64       `json:"age"`
	WeightKg float64       `json:"weight_kg"`
	HeightCm float64       `json:"height_cm"`
	Sex      Sex           `json:"sex"`
	Activity ActivityLevel `json:"activity_level"`
}

type Profile struct {
	Name        string        `json:"name"`
	Secret      string        `json:"secret"`
	Age         float64       `json:"age"`
	WeightKg    float64       `json:"weight_kg"`
	HeightCm    float64       `json:"height_cm"`
	Sex         Sex           `json:"sex"`
	Activity    ActivityLevel `json:"activity_level"`
	CalorieGoal int           `json:"calorie_goal"`
	MacroGoals  MacroGrams    `json:"macro_goals"`
	CreatedAt   time.Time     `json:"created_at"`
}

func (p Profile) Stats() BodyStats {
	return BodyStats{
		Age:      p.Age,
		WeightKg: p.WeightKg,
		HeightCm: p.HeightCm,
		Sex:      p.Sex,
		Activity: p.Activity,
	}
}

// FoodMacros are grams per reference portion.
type FoodMacros struct {
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

type FoodRecord struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	PortionSizeG float64    `json:"portion_size_g"`
	Calories     float64    `json:"calories"`
	Macros       FoodMacros `json:"macros"`
}

type ConsumedEntry struct {
	Food          FoodRecord `json:"food"`
	QuantityG     float64    `json:"quantity_g"`
	TotalCalories int        `json:"total_calories"`
}

// Factor scales the reference portion to the consumed quantity.
func (e ConsumedEntry) Factor() float64 {
	return e.QuantityG / e.Food.PortionSizeG
}

type DailySnapshot struct {
	Date             string          `json:"date"`
	CaloriesConsumed int             `json:"calories_consumed"`
	MacrosConsumed   MacroGrams      `json:"macros_consumed"`
	FoodsConsumed    []ConsumedEntry `json:"foods_consumed"`
}

// History is ordered by insertion, oldest first.
type History []DailySnapshot

type WorkingDay struct {
	Date    string          `json:"date"`
	Entries []ConsumedEntry `json:"entries"`
}
