package profile_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/swigup/internal/domain/profile"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBuild(t *testing.T) {
	Convey("Given valid onboarding answers", t, func() {
		Convey("When a 150 lbs user is moderately active", func() {
			p, err := profile.Build("Sam", 150, profile.ActivityModerate)

			Convey("Then the goal is rounded up to 2900 ml", func() {
				So(err, ShouldBeNil)
				So(p.GoalMl, ShouldEqual, 2900)
				So(p.Name, ShouldEqual, "Sam")
				So(p.ActivityLevel, ShouldEqual, profile.ActivityModerate)
			})
		})

		Convey("When a 200 lbs user is active", func() {
			p, err := profile.Build("Alex", 200, profile.ActivityActive)

			Convey("Then the goal is 4200 ml", func() {
				So(err, ShouldBeNil)
				So(p.GoalMl, ShouldEqual, 4200)
			})
		})

		Convey("When the user has low activity", func() {
			p, err := profile.Build("Lee", 150, profile.ActivityLow)

			Convey("Then no offset is added", func() {
				So(err, ShouldBeNil)
				// 2381.358 rounds up to 2400
				So(p.GoalMl, ShouldEqual, 2400)
			})
		})

		Convey("When the name has surrounding whitespace", func() {
			p, err := profile.Build("  Robin \t", 120, profile.ActivityLow)

			Convey("Then it is trimmed", func() {
				So(err, ShouldBeNil)
				So(p.Name, ShouldEqual, "Robin")
			})
		})

		Convey("When the weight is tiny", func() {
			p, err := profile.Build("Pip", 0.01, profile.ActivityLow)

			Convey("Then the goal is still one positive step", func() {
				So(err, ShouldBeNil)
				So(p.GoalMl, ShouldEqual, 50)
			})
		})
	})

	Convey("Given invalid onboarding answers", t, func() {
		cases := []struct {
			name   string
			weight float64
			level  profile.ActivityLevel
			field  string
		}{
			{"", 150, profile.ActivityLow, "name"},
			{"   ", 150, profile.ActivityLow, "name"},
			{"Sam", 0, profile.ActivityLow, "weight_lbs"},
			{"Sam", -10, profile.ActivityLow, "weight_lbs"},
			{"Sam", math.NaN(), profile.ActivityLow, "weight_lbs"},
			{"Sam", math.Inf(1), profile.ActivityLow, "weight_lbs"},
			{"Sam", 1e300, profile.ActivityLow, "weight_lbs"},
			{"Sam", 150, profile.ActivityLevel("extreme"), "activity_level"},
			{"Sam", 150, profile.ActivityLevel(""), "activity_level"},
		}

		for _, tc := range cases {
			_, err := profile.Build(tc.name, tc.weight, tc.level)
			So(err, ShouldNotBeNil)
			So(errors.Is(err, profile.ErrValidation), ShouldBeTrue)

			var verr *profile.ValidationError
			So(errors.As(err, &verr), ShouldBeTrue)
			So(verr.Field, ShouldEqual, tc.field)
		}
	})
}

func TestGoalMlProperties(t *testing.T) {
	Convey("Given a sweep of weights and levels", t, func() {
		for w := 1.0; w <= 400; w += 3.7 {
			for _, level := range profile.Levels() {
				goal, err := profile.GoalMl(w, level)
				So(err, ShouldBeNil)
				So(goal, ShouldBeGreaterThan, 0)
				So(goal%50, ShouldEqual, 0)
				So(float64(goal), ShouldBeGreaterThanOrEqualTo, w*0.453592*35)
			}
		}
	})
}

func TestParseActivityLevel(t *testing.T) {
	Convey("Given raw activity strings", t, func() {
		l, err := profile.ParseActivityLevel(" Moderate ")
		So(err, ShouldBeNil)
		So(l, ShouldEqual, profile.ActivityModerate)

		_, err = profile.ParseActivityLevel("couch")
		So(errors.Is(err, profile.ErrValidation), ShouldBeTrue)
	})
}

func TestProfileValidate(t *testing.T) {
	Convey("Given profiles restored from elsewhere", t, func() {
		good, err := profile.Build("Sam", 150, profile.ActivityModerate)
		So(err, ShouldBeNil)
		So(good.Validate(), ShouldBeNil)

		bad := good
		bad.GoalMl = 2925
		So(errors.Is(bad.Validate(), profile.ErrValidation), ShouldBeTrue)

		bad = good
		bad.GoalMl = 0
		So(bad.Validate(), ShouldNotBeNil)

		bad = good
		bad.Name = ""
		So(bad.Validate(), ShouldNotBeNil)
	})
}
