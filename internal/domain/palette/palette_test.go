package palette_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/okian/boardlens/internal/domain/palette"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAssigner(t *testing.T) {
	Convey("Given a pie assigner", t, func() {
		a := palette.NewPie()

		Convey("When colors are requested for new names", func() {
			first := a.Color("Fantasy")
			second := a.Color("Adventure")

			Convey("Then palette entries are handed out in order", func() {
				So(first, ShouldEqual, palette.Pie[0])
				So(second, ShouldEqual, palette.Pie[1])
				So(a.Len(), ShouldEqual, 2)
			})

			Convey("And asking again returns the same color", func() {
				So(a.Color("Fantasy"), ShouldEqual, first)
				So(a.Color("Adventure"), ShouldEqual, second)
				So(a.Len(), ShouldEqual, 2)
			})
		})

		Convey("When more names than palette entries are seen", func() {
			for i := 0; i < len(palette.Pie); i++ {
				a.Color(fmt.Sprintf("cat-%d", i))
			}

			Convey("Then assignment wraps around", func() {
				So(a.Color("overflow"), ShouldEqual, palette.Pie[0])
				So(a.Color("cat-0"), ShouldEqual, palette.Pie[0])
			})
		})

		Convey("When looking up an unknown name", func() {
			_, ok := a.Lookup("Economic")

			Convey("Then nothing is assigned", func() {
				So(ok, ShouldBeFalse)
				So(a.Len(), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a scatter assigner", t, func() {
		a := palette.NewScatter()

		Convey("Then the well-known categories keep their fixed colors", func() {
			So(a.Color("Fantasy"), ShouldEqual, "#1f77b4")
			So(a.Color("Fighting"), ShouldEqual, "#9467bd")
			So(a.Len(), ShouldEqual, 5)
		})

		Convey("And new names continue after the seeded ones", func() {
			So(a.Color("Horror"), ShouldEqual, palette.Scatter[5])
			So(a.Assignments()[5], ShouldResemble, palette.Assignment{Name: "Horror", Color: palette.Scatter[5]})
		})

		Convey("And seeding an assigned name changes nothing", func() {
			a.Seed("Fantasy", "#000000")
			So(a.Color("Fantasy"), ShouldEqual, "#1f77b4")
		})
	})

	Convey("Given an empty palette", t, func() {
		a := palette.New(nil)

		Convey("Then the pie palette is used", func() {
			So(a.Color("x"), ShouldEqual, palette.Pie[0])
		})
	})

	Convey("Given concurrent callers", t, func() {
		a := palette.NewPie()
		var wg sync.WaitGroup
		results := make([]string, 32)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = a.Color("shared")
			}(i)
		}
		wg.Wait()

		Convey("Then they all observe one color", func() {
			for _, c := range results {
				So(c, ShouldEqual, results[0])
			}
			So(a.Len(), ShouldEqual, 1)
		})
	})
}
