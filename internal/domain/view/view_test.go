package view_test

import (
	"errors"
	"testing"

	"github.com/okian/boardlens/internal/domain/aggregate"
	"github.com/okian/boardlens/internal/domain/filter"
	"github.com/okian/boardlens/internal/domain/projection"
	"github.com/okian/boardlens/internal/domain/view"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	s := filter.New([]int{8}, false, []string{"Fantasy"})
	cats := aggregate.Result{Summaries: []aggregate.Summary{{Name: "Fantasy", Count: 1}}, Matched: 1, Distinct: 1}

	Convey("Given a successful projection", t, func() {
		v := view.New(s, cats, projection.Result{Eligible: 2}, nil)

		Convey("Then the view is ready and carries both charts", func() {
			So(v.ProjectionState, ShouldEqual, view.ProjectionReady)
			So(v.Projection, ShouldNotBeNil)
			So(v.Projection.Eligible, ShouldEqual, 2)
			So(v.Categories.Matched, ShouldEqual, 1)
			So(v.ComputedAt.IsZero(), ShouldBeFalse)
		})
	})

	Convey("Given too little data to project", t, func() {
		v := view.New(s, cats, projection.Result{}, projection.ErrInsufficientData)

		Convey("Then the category chart is kept and the projection is marked", func() {
			So(v.ProjectionState, ShouldEqual, view.ProjectionInsufficientData)
			So(v.Projection, ShouldBeNil)
			So(v.Categories.Summaries, ShouldHaveLength, 1)
		})
	})

	Convey("Given a failing projection", t, func() {
		v := view.New(s, cats, projection.Result{}, errors.New("boom"))

		Convey("Then the failure is reported", func() {
			So(v.ProjectionState, ShouldEqual, view.ProjectionFailed)
			So(v.ProjectionError, ShouldEqual, "boom")
		})
	})
}
