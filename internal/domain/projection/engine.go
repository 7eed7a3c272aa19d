package projection

import (
	"errors"

	"github.com/okian/boardlens/internal/domain/filter"
	"github.com/okian/boardlens/internal/domain/model"
	"github.com/okian/boardlens/internal/domain/palette"
)

// OutputDimensions is the number of coordinates of a projected point.
const OutputDimensions = 2

// minimum number of selected categories and of eligible games.
const minimumInput = 2

// ErrInsufficientData is returned when fewer than two categories are
// selected or fewer than two games are eligible.
var ErrInsufficientData = errors.New("insufficient data for projection")

// Option configures a projection.
type Option func(*options)

type options struct {
	colors *palette.Assigner
}

// WithColors colors every point by its label from a.
func WithColors(a *palette.Assigner) Option {
	return func(o *options) {
		o.colors = a
	}
}

// Point is one projected game.
type Point struct {
	Game       *model.Game `json:"game"`
	X          float64     `json:"x"`
	Y          float64     `json:"y"`
	Label      string      `json:"label"`
	LabelIndex int         `json:"label_index"`
	Color      string      `json:"color,omitempty"`
	// Matching lists every category of the game that is selected.
	Matching []string `json:"matching"`
}

// Exclusion records a game left out because a feature was not numeric.
type Exclusion struct {
	Title string `json:"title"`
	Field string `json:"field"`
	Raw   string `json:"raw"`
}

// Result is the output of Project. Points are in dataset order and only
// cover eligible games.
type Result struct {
	Points          []Point         `json:"points"`
	Labels          []string        `json:"labels"`
	Eligible        int             `json:"eligible"`
	Excluded        []Exclusion     `json:"excluded"`
	Standardization Standardization `json:"standardization"`
	Bounds          Bounds          `json:"bounds"`
}

// Project runs the discriminant projection over the games whose first
// category is selected in f. Games with a non-numeric feature are skipped
// and listed in Result.Excluded. Every eligible label is colored before the
// size check. When too little is left it returns ErrInsufficientData
// together with the counts gathered so far.
func Project(games []model.Game, f filter.State, opts ...Option) (Result, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	res := Result{Labels: f.Categories, Excluded: []Exclusion{}, Points: []Point{}}
	var (
		vectors []Vector
		labels  []int
		points  []Point
	)
	for i := range games {
		g := &games[i]
		first, ok := g.FirstCategory()
		if !ok {
			continue
		}
		label := f.LabelIndex(first)
		if label < 0 {
			continue
		}
		v, err := ExtractFeatureVector(g)
		if err != nil {
			var ee *ExtractionError
			if errors.As(err, &ee) {
				res.Excluded = append(res.Excluded, Exclusion{Title: g.Title, Field: ee.Field, Raw: ee.Raw})
			}
			continue
		}
		vectors = append(vectors, v)
		labels = append(labels, label)
		p := Point{
			Game:       g,
			Label:      first,
			LabelIndex: label,
			Matching:   matching(g, f),
		}
		if o.colors != nil {
			p.Color = o.colors.Color(first)
		}
		points = append(points, p)
	}
	res.Eligible = len(vectors)

	if len(f.Categories) < minimumInput || len(vectors) < minimumInput {
		return res, ErrInsufficientData
	}

	x, stdz := Standardize(Rows(vectors))
	coords, err := Discriminant(x, labels, OutputDimensions)
	if err != nil {
		return res, err
	}

	for i := range points {
		points[i].X = coords.At(i, 0)
		points[i].Y = coords.At(i, 1)
	}

	res.Points = points
	res.Standardization = stdz
	res.Bounds = ComputeBounds(points)
	return res, nil
}

func matching(g *model.Game, f filter.State) []string {
	out := []string{}
	for _, c := range g.Categories() {
		if f.Selected(c) {
			out = append(out, c)
		}
	}
	return out
}
