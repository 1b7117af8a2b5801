// Package macros calculates daily calorie and macronutrient targets from a body profile.
package macros

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/2beens/gymstats/internal/gymstats/workout"
)

const op = "macro profile"

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

type ActivityLevel string

const (
	Sedentary ActivityLevel = "sedentary"
	Moderate  ActivityLevel = "moderate"
	Active    ActivityLevel = "active"
)

type Goal string

const (
	Lose     Goal = "lose"
	Maintain Goal = "maintain"
	Gain     Goal = "gain"
)

// goalCalorieDelta is added to the maintenance calories.
const goalCalorieDelta = 300

var activityMultiplier = map[ActivityLevel]float64{
	Sedentary: 1.2,
	Moderate:  1.5,
	Active:    1.8,
}

// split is the share of calories coming from protein, carbs and fat.
type split struct {
	protein, carbs, fat float64
}

var goalSplits = map[Goal]split{
	Maintain: {protein: 0.4, carbs: 0.4, fat: 0.2},
	Lose:     {protein: 0.45, carbs: 0.35, fat: 0.2},
	Gain:     {protein: 0.3, carbs: 0.4, fat: 0.3},
}

type Profile struct {
	UserID        string        `json:"userId"`
	WeightKg      float64       `json:"weight"`
	HeightCm      float64       `json:"height"`
	Age           int           `json:"age"`
	Gender        Gender        `json:"gender"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
	Goal          Goal          `json:"goal"`
}

// Targets are daily calories (kcal) and macros (grams), rounded to whole numbers.
type Targets struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

// Normalize lower-cases and trims the enum fields.
func (p *Profile) Normalize() {
	p.Gender = Gender(strings.ToLower(strings.TrimSpace(string(p.Gender))))
	p.ActivityLevel = ActivityLevel(strings.ToLower(strings.TrimSpace(string(p.ActivityLevel))))
	p.Goal = Goal(strings.ToLower(strings.TrimSpace(string(p.Goal))))
}

func (p Profile) validate() error {
	switch {
	case strings.TrimSpace(p.UserID) == "":
		return &workout.ValidationError{Op: op, Field: "userId", Msg: "required"}
	case p.WeightKg <= 0 || math.IsNaN(p.WeightKg) || math.IsInf(p.WeightKg, 0):
		return &workout.ValidationError{Op: op, Field: "weight", Msg: "must be a positive number"}
	case p.HeightCm <= 0 || math.IsNaN(p.HeightCm) || math.IsInf(p.HeightCm, 0):
		return &workout.ValidationError{Op: op, Field: "height", Msg: "must be a positive number"}
	case p.Age <= 0:
		return &workout.ValidationError{Op: op, Field: "age", Msg: "must be a positive integer"}
	case p.Gender != Male && p.Gender != Female:
		return &workout.ValidationError{Op: op, Field: "gender", Msg: "must be male or female"}
	}
	if _, ok := activityMultiplier[p.ActivityLevel]; !ok {
		return &workout.ValidationError{Op: op, Field: "activityLevel", Msg: "must be sedentary, moderate or active"}
	}
	if _, ok := goalSplits[p.Goal]; !ok {
		return &workout.ValidationError{Op: op, Field: "goal", Msg: "must be lose, maintain or gain"}
	}
	return nil
}

// BMR is the basal metabolic rate by the Mifflin-St Jeor equation.
func BMR(weightKg, heightCm float64, age int, gender Gender) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == Male {
		return bmr + 5
	}
	return bmr - 161
}

// Calculate returns the daily targets for the profile.
func Calculate(p Profile) (Targets, error) {
	p.Normalize()
	if err := p.validate(); err != nil {
		return Targets{}, err
	}

	calories := BMR(p.WeightKg, p.HeightCm, p.Age, p.Gender) * activityMultiplier[p.ActivityLevel]
	switch p.Goal {
	case Lose:
		calories -= goalCalorieDelta
	case Gain:
		calories += goalCalorieDelta
	}

	s := goalSplits[p.Goal]
	return Targets{
		Calories: round(calories),
		Protein:  round(s.protein * calories / 4),
		Carbs:    round(s.carbs * calories / 4),
		Fat:      round(s.fat * calories / 9),
	}, nil
}

func round(v float64) int {
	return int(math.Round(v))
}

var ErrProfileNotFound = errors.New("macro profile not found")

// Record is the saved profile of a user with the targets computed from it.
// A user has at most one record, saving again replaces it.
type Record struct {
	Profile   Profile   `json:"profile"`
	Targets   Targets   `json:"targets"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store keeps one Record per user. FindByUser returns ErrProfileNotFound
// for users without a saved profile.
type Store interface {
	Save(ctx context.Context, record *Record) error
	FindByUser(ctx context.Context, userID string) (*Record, error)
}

// NewRecord normalizes and validates the profile and computes its targets.
func NewRecord(p Profile, now time.Time) (*Record, error) {
	p.Normalize()
	targets, err := Calculate(p)
	if err != nil {
		return nil, err
	}
	return &Record{
		Profile:   p,
		Targets:   targets,
		UpdatedAt: now.UTC(),
	}, nil
}
