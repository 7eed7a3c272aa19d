// Package aggregate groups games by category for the category chart.
package aggregate

import (
	"sort"

	"github.com/okian/boardlens/internal/domain/filter"
	"github.com/okian/boardlens/internal/domain/model"
	"github.com/okian/boardlens/internal/domain/palette"
)

// DefaultLimit is the number of categories a chart shows.
const DefaultLimit = 10

// Option configures an aggregation.
type Option func(*options)

type options struct {
	limit  int
	colors *palette.Assigner
}

// WithLimit caps the number of emitted summaries. Non-positive values are ignored.
func WithLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.limit = n
		}
	}
}

// WithColors colors every emitted summary from a.
func WithColors(a *palette.Assigner) Option {
	return func(o *options) {
		o.colors = a
	}
}

// Summary is one category of the chart.
type Summary struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	// TopGame is the highest rated game of the category. The first game
	// seen wins ties.
	TopGame   *model.Game `json:"top_game"`
	TopRating float64     `json:"top_rating"`
	Color     string      `json:"color,omitempty"`
}

// Result is the output of Aggregate.
type Result struct {
	Summaries []Summary `json:"summaries"`
	// Matched is the number of games that passed the age filter.
	Matched int `json:"matched"`
	// Distinct is the number of categories seen before the limit was applied.
	Distinct int `json:"distinct"`
}

// Aggregate counts the categories of the games whose minimum age f
// accepts and returns the most frequent ones.
func Aggregate(games []model.Game, f filter.State, opts ...Option) Result {
	o := options{limit: DefaultLimit}
	for _, opt := range opts {
		opt(&o)
	}

	index := make(map[string]int)
	var groups []Summary
	matched := 0

	for i := range games {
		g := &games[i]
		if !f.AcceptsAge(g.MinAge) {
			continue
		}
		matched++
		rating := g.RatingScore().Or(0)
		for _, name := range g.Categories() {
			j, ok := index[name]
			if !ok {
				j = len(groups)
				index[name] = j
				groups = append(groups, Summary{Name: name, TopGame: g, TopRating: rating})
			} else if rating > groups[j].TopRating {
				groups[j].TopGame = g
				groups[j].TopRating = rating
			}
			groups[j].Count++
		}
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].Count > groups[b].Count
	})

	distinct := len(groups)
	if len(groups) > o.limit {
		groups = groups[:o.limit]
	}
	if o.colors != nil {
		for i := range groups {
			groups[i].Color = o.colors.Color(groups[i].Name)
		}
	}
	if groups == nil {
		groups = []Summary{}
	}

	return Result{Summaries: groups, Matched: matched, Distinct: distinct}
}

// Counts returns the per-category count of every summary.
func (r Result) Counts() map[string]int {
	out := make(map[string]int, len(r.Summaries))
	for _, s := range r.Summaries {
		out[s.Name] = s.Count
	}
	return out
}
