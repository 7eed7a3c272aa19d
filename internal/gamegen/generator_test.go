package gamegen_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/okian/boardlens/internal/domain/model"
	"github.com/okian/boardlens/internal/gamegen"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerate(t *testing.T) {
	Convey("Given a seeded generator", t, func() {
		ctx := context.Background()
		games, err := gamegen.Generate(ctx, gamegen.WithCount(300), gamegen.WithSeed(42))
		So(err, ShouldBeNil)

		Convey("Then it produces the requested number of records", func() {
			So(games, ShouldHaveLength, 300)
		})

		Convey("And every record has a uuid and a known primary category", func() {
			known := map[string]bool{}
			for _, c := range gamegen.Categories() {
				known[c] = true
			}
			for i := range games {
				_, err := uuid.Parse(string(games[i].ID))
				So(err, ShouldBeNil)
				first, ok := games[i].FirstCategory()
				So(ok, ShouldBeTrue)
				So(known[first], ShouldBeTrue)
			}
		})

		Convey("And numeric fields are consistent", func() {
			for i := range games {
				g := &games[i]
				minP, _ := g.MinPlayers.Value()
				maxP, _ := g.MaxPlayers.Value()
				So(maxP, ShouldBeGreaterThan, minP)
				minT, _ := g.MinPlaytime.Value()
				maxT, _ := g.MaxPlaytime.Value()
				So(maxT, ShouldBeGreaterThanOrEqualTo, minT)
				rating, _ := g.RatingScore().Value()
				So(rating, ShouldBeBetweenOrEqual, 1.0, 10.0)
			}
		})

		Convey("And categories within a record are distinct", func() {
			for i := range games {
				seen := map[string]bool{}
				for _, c := range games[i].Categories() {
					So(seen[c], ShouldBeFalse)
					seen[c] = true
				}
			}
		})

		Convey("And the same seed gives the same dataset", func() {
			again, err := gamegen.Generate(ctx, gamegen.WithCount(300), gamegen.WithSeed(42))
			So(err, ShouldBeNil)
			So(again, ShouldResemble, games)
		})

		Convey("And another seed gives another dataset", func() {
			other, err := gamegen.Generate(ctx, gamegen.WithCount(300), gamegen.WithSeed(7))
			So(err, ShouldBeNil)
			So(other[0].ID, ShouldNotEqual, games[0].ID)
		})
	})

	Convey("Given placeholder and unknown age rates of one", t, func() {
		games, err := gamegen.Generate(context.Background(),
			gamegen.WithCount(50),
			gamegen.WithPlaceholderRate(1),
			gamegen.WithUnknownAgeRate(1),
		)
		So(err, ShouldBeNil)

		Convey("Then every record carries one placeholder and no age", func() {
			for i := range games {
				g := &games[i]
				So(g.MinAge.IsSet(), ShouldBeFalse)
				invalid := 0
				for _, n := range []model.Number{g.MinPlaytime, g.MaxPlaytime, g.ReviewCount()} {
					if n.Kind() == model.NumberInvalid {
						invalid++
						So(n.String(), ShouldEqual, gamegen.Placeholder)
					}
				}
				So(invalid, ShouldEqual, 1)
			}
		})
	})

	Convey("Given an invalid configuration", t, func() {
		_, err := gamegen.Generate(context.Background(), gamegen.WithPlaceholderRate(2))

		Convey("Then generation fails", func() {
			So(errors.Is(err, gamegen.ErrInvalidConfig), ShouldBeTrue)
		})
	})

	Convey("Given a cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := gamegen.Generate(ctx, gamegen.WithCount(10))

		Convey("Then generation stops", func() {
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}
