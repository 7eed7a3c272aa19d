// Package catalog summarizes what a dataset offers to select from.
package catalog

import (
	"slices"

	"github.com/okian/boardlens/internal/domain/model"
)

// CategoryFacet counts how often a category occurs.
type CategoryFacet struct {
	Name string `json:"name"`
	// Count is the number of records carrying the tag.
	Count int `json:"count"`
	// Primary is the number of records listing it first; only those can
	// take part in a projection.
	Primary int `json:"primary"`
}

// Facets lists the selectable values of a dataset.
type Facets struct {
	Records           int             `json:"records"`
	Ages              []int           `json:"ages"`
	UnknownAgeRecords int             `json:"unknown_age_records"`
	Categories        []CategoryFacet `json:"categories"`
}

// Compute walks games once. Ages come back sorted; categories in
// first-seen order.
func Compute(games []model.Game) Facets {
	f := Facets{Records: len(games), Ages: []int{}, Categories: []CategoryFacet{}}
	seenAge := make(map[int]struct{})
	index := make(map[string]int)

	for i := range games {
		g := &games[i]
		if !g.MinAge.IsSet() {
			f.UnknownAgeRecords++
		} else if age, ok := g.MinAge.Int(); ok {
			if _, dup := seenAge[age]; !dup {
				seenAge[age] = struct{}{}
				f.Ages = append(f.Ages, age)
			}
		}

		first, hasFirst := g.FirstCategory()
		for _, name := range g.Categories() {
			j, ok := index[name]
			if !ok {
				j = len(f.Categories)
				index[name] = j
				f.Categories = append(f.Categories, CategoryFacet{Name: name})
			}
			f.Categories[j].Count++
		}
		if hasFirst {
			f.Categories[index[first]].Primary++
		}
	}

	slices.Sort(f.Ages)
	return f
}

// CategoryNames returns the category names in facet order.
func (f Facets) CategoryNames() []string {
	out := make([]string, len(f.Categories))
	for i, c := range f.Categories {
		out[i] = c.Name
	}
	return out
}
