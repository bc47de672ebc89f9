package service_test

import (
	"context"
	"path/filepath"
	"testing"

	repository "github.com/okian/swigup/internal/adapters/repository"
	service "github.com/okian/swigup/internal/app"
	"github.com/okian/swigup/internal/domain/profile"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServiceIntegration(t *testing.T) {
	Convey("Given a session backed by sqlite", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "swigup.db")

		kv, err := repository.OpenSQLite(ctx, path)
		So(err, ShouldBeNil)

		svc := service.New(service.WithStore(repository.NewProfileStore(kv)))
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When the user onboards, drinks and restarts", func() {
			p, err := svc.Onboard(ctx, "Sam", 150, profile.ActivityModerate)
			So(err, ShouldBeNil)
			_, _ = svc.LogPreset(ctx, "", "bottle")
			svc.Stop()
			So(kv.Close(), ShouldBeNil)

			kv2, err := repository.OpenSQLite(ctx, path)
			So(err, ShouldBeNil)
			defer func() { _ = kv2.Close() }()

			restarted := service.New(service.WithStore(repository.NewProfileStore(kv2)))
			So(restarted.Start(ctx), ShouldBeNil)

			Convey("Then the profile survives and the period does not", func() {
				got, err := restarted.Profile(ctx)
				So(err, ShouldBeNil)
				So(got, ShouldResemble, p)

				st, _ := restarted.Hydration(ctx)
				So(st.CurrentMl, ShouldEqual, 0)
			})
		})

		Reset(func() {
			svc.Stop()
			_ = kv.Close()
		})
	})
}
