// Package profile validates onboarding input and derives the daily hydration goal.
package profile

import (
	"math"
	"strings"
)

// Goal formula constants.
const (
	lbsToKg     = 0.453592
	mlPerKg     = 35
	goalStepMl  = 50
	maxGoalMl   = math.MaxInt32
	moderateAdd = 500
	activeAdd   = 1000
)

// ActivityLevel describes how active the user usually is.
type ActivityLevel string

// Recognized activity levels.
const (
	ActivityLow      ActivityLevel = "low"
	ActivityModerate ActivityLevel = "moderate"
	ActivityActive   ActivityLevel = "active"
)

// activityOffsetMl maps each level to the milliliters added on top of the base goal.
var activityOffsetMl = map[ActivityLevel]float64{ //nolint:gochecknoglobals // read-only lookup table
	ActivityLow:      0,
	ActivityModerate: moderateAdd,
	ActivityActive:   activeAdd,
}

// Levels returns the recognized activity levels in onboarding order.
func Levels() []ActivityLevel {
	return []ActivityLevel{ActivityLow, ActivityModerate, ActivityActive}
}

// Valid reports whether l is one of the recognized levels.
func (l ActivityLevel) Valid() bool {
	_, ok := activityOffsetMl[l]
	return ok
}

// ParseActivityLevel normalizes case and whitespace before matching.
func ParseActivityLevel(s string) (ActivityLevel, error) {
	l := ActivityLevel(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", newValidationError("activity_level", "must be one of low, moderate, active")
	}
	return l, nil
}

// Profile is the onboarded user. GoalMl is derived by Build and never set by hand.
type Profile struct {
	Name          string        `json:"name"`
	WeightLbs     float64       `json:"weight_lbs"`
	ActivityLevel ActivityLevel `json:"activity_level"`
	GoalMl        int           `json:"goal_ml"`
}

// Build validates the onboarding answers and returns a Profile with its goal computed.
func Build(name string, weightLbs float64, level ActivityLevel) (Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Profile{}, newValidationError("name", "must not be empty")
	}
	goal, err := GoalMl(weightLbs, level)
	if err != nil {
		return Profile{}, err
	}
	return Profile{
		Name:          name,
		WeightLbs:     weightLbs,
		ActivityLevel: level,
		GoalMl:        goal,
	}, nil
}

// GoalMl computes kg*35 plus the activity offset, rounded up to the next 50 ml.
func GoalMl(weightLbs float64, level ActivityLevel) (int, error) {
	if math.IsNaN(weightLbs) || math.IsInf(weightLbs, 0) || weightLbs <= 0 {
		return 0, newValidationError("weight_lbs", "must be a finite positive number")
	}
	offset, ok := activityOffsetMl[level]
	if !ok {
		return 0, newValidationError("activity_level", "must be one of low, moderate, active")
	}

	goal := weightLbs*lbsToKg*mlPerKg + offset
	goal = math.Ceil(goal/goalStepMl) * goalStepMl
	if goal > maxGoalMl {
		return 0, newValidationError("weight_lbs", "out of range")
	}
	return int(goal), nil
}

// Validate checks a Profile restored from outside Build, e.g. from storage.
func (p Profile) Validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return newValidationError("name", "must not be empty")
	case math.IsNaN(p.WeightLbs) || math.IsInf(p.WeightLbs, 0) || p.WeightLbs <= 0:
		return newValidationError("weight_lbs", "must be a finite positive number")
	case !p.ActivityLevel.Valid():
		return newValidationError("activity_level", "must be one of low, moderate, active")
	case p.GoalMl <= 0 || p.GoalMl%goalStepMl != 0:
		return newValidationError("goal_ml", "must be a positive multiple of 50")
	}
	return nil
}
