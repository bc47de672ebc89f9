package intake_test

import (
	"testing"

	"github.com/okian/swigup/internal/domain/intake"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAdapter_Normalize(t *testing.T) {
	Convey("Given a default adapter", t, func() {
		a := intake.NewAdapter()

		Convey("When a manual button is pressed", func() {
			for _, amount := range []int{250, 500, 750} {
				ev := a.Normalize(intake.Manual(amount))
				So(ev.AmountMl, ShouldEqual, amount)
				So(ev.Source, ShouldEqual, intake.SourceManual)
				So(ev.Fallback, ShouldEqual, intake.FallbackNone)
			}
		})

		Convey("When a scan carries an amount", func() {
			ev := a.Normalize(intake.Scan(`{"amount": 500}`))

			Convey("Then the amount is used", func() {
				So(ev.AmountMl, ShouldEqual, 500)
				So(ev.Source, ShouldEqual, intake.SourceScan)
				So(ev.Fallback, ShouldEqual, intake.FallbackNone)
			})
		})

		Convey("When a scan carries a fractional amount", func() {
			ev := a.Normalize(intake.Scan(`{"amount": 330.2}`))

			Convey("Then it is rounded up to whole milliliters", func() {
				So(ev.AmountMl, ShouldEqual, 331)
			})
		})

		Convey("When the scan text is not structured", func() {
			for _, text := range []string{"random text", "", "{broken", "null", " null\n", "  "} {
				ev := a.Normalize(intake.Scan(text))
				So(ev.AmountMl, ShouldEqual, 250)
				So(ev.Fallback, ShouldEqual, intake.FallbackUnstructured)
			}
		})

		Convey("When the scan is structured without a usable amount", func() {
			for _, text := range []string{
				`{"foo":1}`,
				`{"amount": 0}`,
				`{"amount": -20}`,
				`{"amount": "300"}`,
				`{"amount": null}`,
				`{"amount": 1e12}`,
				`[1,2,3]`,
				`42`,
				`"text"`,
				`{"foo":1e400}`,
				`{"amount":1e400}`,
				`[1e999]`,
			} {
				ev := a.Normalize(intake.Scan(text))
				So(ev.AmountMl, ShouldEqual, 500)
				So(ev.Fallback, ShouldEqual, intake.FallbackStructured)
			}
		})

		Convey("Then every payload resolves to a positive amount", func() {
			So(a.Normalize(nil).AmountMl, ShouldEqual, 250)
			So(a.Normalize(intake.Scan("???")).AmountMl, ShouldBeGreaterThan, 0)
		})
	})

	Convey("Given an adapter with custom defaults", t, func() {
		a := intake.NewAdapter(intake.WithScanDefault(200), intake.WithStructuredScanDefault(400))

		So(a.Normalize(intake.Scan("hello")).AmountMl, ShouldEqual, 200)
		So(a.Normalize(intake.Scan(`{}`)).AmountMl, ShouldEqual, 400)
	})

	Convey("Given non-positive overrides", t, func() {
		a := intake.NewAdapter(intake.WithScanDefault(0), intake.WithStructuredScanDefault(-1))

		Convey("Then the standard defaults remain", func() {
			So(a.Normalize(intake.Scan("hello")).AmountMl, ShouldEqual, intake.DefaultScanMl)
			So(a.Normalize(intake.Scan(`{}`)).AmountMl, ShouldEqual, intake.DefaultStructuredScanMl)
		})
	})
}

func TestAdapter_Presets(t *testing.T) {
	Convey("Given the default presets", t, func() {
		a := intake.NewAdapter()

		So(len(a.Presets()), ShouldEqual, 3)

		p, ok := a.Preset(" Bottle ")
		So(ok, ShouldBeTrue)
		So(p.AmountMl, ShouldEqual, 500)

		_, ok = a.Preset("bucket")
		So(ok, ShouldBeFalse)
	})

	Convey("Given replaced presets", t, func() {
		a := intake.NewAdapter(intake.WithPresets([]intake.Preset{{Key: "sip", Label: "Sip", AmountMl: 50}}))

		p, ok := a.Preset("sip")
		So(ok, ShouldBeTrue)
		So(p.AmountMl, ShouldEqual, 50)

		Convey("Then callers cannot mutate the adapter's list", func() {
			list := a.Presets()
			list[0].AmountMl = 9999
			p, _ := a.Preset("sip")
			So(p.AmountMl, ShouldEqual, 50)
		})
	})
}
