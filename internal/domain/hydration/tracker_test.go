package hydration_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/swigup/internal/domain/hydration"
	"github.com/okian/swigup/internal/domain/profile"
	. "github.com/smartystreets/goconvey/convey"
)

func goal(ml int) profile.Profile {
	return profile.Profile{Name: "Sam", WeightLbs: 150, ActivityLevel: profile.ActivityModerate, GoalMl: ml}
}

func TestTracker_AddIntake(t *testing.T) {
	Convey("Given a tracker with a 2000 ml goal", t, func() {
		tr := hydration.NewTracker(goal(2000))

		Convey("Then the period starts empty", func() {
			So(tr.Snapshot(), ShouldResemble, hydration.State{})
			So(tr.GoalMl(), ShouldEqual, 2000)
		})

		Convey("When 500 ml is added", func() {
			st, err := tr.AddIntake(500)

			Convey("Then current and percentage follow", func() {
				So(err, ShouldBeNil)
				So(st.CurrentMl, ShouldEqual, 500)
				So(st.Percentage, ShouldEqual, 25.0)
				So(tr.Snapshot(), ShouldResemble, st)
			})
		})

		Convey("When intake exceeds the goal", func() {
			_, err := tr.AddIntake(2000)
			So(err, ShouldBeNil)
			st, err := tr.AddIntake(1000)

			Convey("Then current is not clamped but percentage is", func() {
				So(err, ShouldBeNil)
				So(st.CurrentMl, ShouldEqual, 3000)
				So(st.Percentage, ShouldEqual, 100.0)
			})
		})

		Convey("When a non-positive amount is added", func() {
			_, _ = tr.AddIntake(300)
			for _, amount := range []int{0, -1, -250} {
				st, err := tr.AddIntake(amount)
				So(errors.Is(err, hydration.ErrInvalidAmount), ShouldBeTrue)
				So(st.CurrentMl, ShouldEqual, 300)
			}
		})

		Convey("When the total would overflow", func() {
			_, _ = tr.AddIntake(10)
			_, err := tr.AddIntake(math.MaxInt)

			Convey("Then the amount is rejected", func() {
				So(errors.Is(err, hydration.ErrInvalidAmount), ShouldBeTrue)
				So(tr.Snapshot().CurrentMl, ShouldEqual, 10)
			})
		})
	})

	Convey("Given two trackers fed the same total", t, func() {
		split := hydration.NewTracker(goal(2900))
		single := hydration.NewTracker(goal(2900))

		_, _ = split.AddIntake(250)
		_, _ = split.AddIntake(750)
		_, _ = single.AddIntake(1000)

		Convey("Then intake is cumulative", func() {
			So(split.Snapshot(), ShouldResemble, single.Snapshot())
		})
	})

	Convey("Given a sequence of intakes", t, func() {
		tr := hydration.NewTracker(goal(2500))
		prev := 0
		for _, amount := range []int{250, 500, 750, 1, 250, 4000} {
			st, err := tr.AddIntake(amount)
			So(err, ShouldBeNil)
			So(st.CurrentMl, ShouldBeGreaterThanOrEqualTo, prev)
			So(st.Percentage, ShouldBeBetweenOrEqual, 0, 100)
			prev = st.CurrentMl
		}
	})

	Convey("Given a tracker with a zero goal", t, func() {
		tr := hydration.NewTracker(goal(0))

		Convey("When intake is added", func() {
			_, err := tr.AddIntake(250)

			Convey("Then the invariant violation surfaces", func() {
				So(errors.Is(err, hydration.ErrInvariantViolation), ShouldBeTrue)
				So(tr.Snapshot().CurrentMl, ShouldEqual, 0)
			})
		})
	})
}

func TestTracker_StartNewPeriod(t *testing.T) {
	Convey("Given a tracker with intake logged", t, func() {
		var seen []hydration.State
		tr := hydration.NewTracker(goal(2000), hydration.WithObserver(func(s hydration.State) {
			seen = append(seen, s)
		}))
		_, _ = tr.AddIntake(1500)

		Convey("When a new period starts twice", func() {
			first := tr.StartNewPeriod()
			second := tr.StartNewPeriod()

			Convey("Then the state is zero both times", func() {
				So(first, ShouldResemble, hydration.State{})
				So(second, ShouldResemble, hydration.State{})
			})

			Convey("And every mutation reached the observer", func() {
				So(len(seen), ShouldEqual, 3)
				So(seen[0].CurrentMl, ShouldEqual, 1500)
				So(seen[2], ShouldResemble, hydration.State{})
			})
		})
	})
}

func TestPercentage(t *testing.T) {
	Convey("Given raw totals", t, func() {
		p, err := hydration.Percentage(1800, 2000)
		So(err, ShouldBeNil)
		So(p, ShouldEqual, 90.0)

		p, err = hydration.Percentage(3000, 2000)
		So(err, ShouldBeNil)
		So(p, ShouldEqual, 100.0)

		_, err = hydration.Percentage(10, 0)
		So(errors.Is(err, hydration.ErrInvariantViolation), ShouldBeTrue)
	})
}
