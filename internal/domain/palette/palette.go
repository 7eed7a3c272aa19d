// Package palette assigns stable colors to category names.
//
// An Assigner hands out palette entries round-robin the first time a name is
// seen and returns the same color for that name for the rest of its life.
// Each chart owns its own Assigner.
package palette

import (
	"sync"
)

// Pie is the palette of the category pie chart.
var Pie = []string{
	"#4e79a7",
	"#59a14f",
	"#9cce6b",
	"#f1e05a",
	"#f1c05a",
	"#f28e2b",
	"#e15759",
	"#d94f4f",
	"#c52e3a",
	"#b11226",
}

// Scatter is the fallback palette of the projection scatterplot.
var Scatter = []string{
	"#1f77b4",
	"#ff7f0e",
	"#2ca02c",
	"#d62728",
	"#9467bd",
	"#8c564b",
	"#e377c2",
	"#7f7f7f",
	"#bcbd22",
	"#17becf",
}

// ScatterSeed fixes the colors of the well-known projection categories.
var ScatterSeed = map[string]string{
	"Fantasy":         "#1f77b4",
	"Adventure":       "#ff7f0e",
	"Economic":        "#2ca02c",
	"Science Fiction": "#d62728",
	"Fighting":        "#9467bd",
}

// scatterSeedOrder keeps seeding deterministic; map iteration is not.
var scatterSeedOrder = []string{"Fantasy", "Adventure", "Economic", "Science Fiction", "Fighting"}

// Assignment is one name with its color.
type Assignment struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Assigner maps names to colors. It is safe for concurrent use.
type Assigner struct {
	mu      sync.Mutex
	palette []string
	colors  map[string]string
	order   []string
	next    int
}

// New returns an Assigner over palette. An empty palette falls back to Pie.
func New(palette []string) *Assigner {
	if len(palette) == 0 {
		palette = Pie
	}
	p := make([]string, len(palette))
	copy(p, palette)
	return &Assigner{
		palette: p,
		colors:  make(map[string]string),
	}
}

// NewPie returns the Assigner used by the category chart.
func NewPie() *Assigner {
	return New(Pie)
}

// NewScatter returns the Assigner used by the projection chart, pre-seeded
// with the fixed colors of the well-known categories.
func NewScatter() *Assigner {
	a := New(Scatter)
	for _, name := range scatterSeedOrder {
		a.Seed(name, ScatterSeed[name])
	}
	return a
}

// Seed pins name to color unless it already has one. Seeded names advance
// the round-robin counter like any other assignment.
func (a *Assigner) Seed(name, color string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.colors[name]; ok {
		return
	}
	a.colors[name] = color
	a.order = append(a.order, name)
	a.next++
}

// Color returns the color of name, assigning the next palette entry on first use.
func (a *Assigner) Color(name string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if c, ok := a.colors[name]; ok {
		return c
	}
	c := a.palette[a.next%len(a.palette)]
	a.next++
	a.colors[name] = c
	a.order = append(a.order, name)
	return c
}

// Lookup returns the color of name without assigning one.
func (a *Assigner) Lookup(name string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	c, ok := a.colors[name]
	return c, ok
}

// Len returns the number of names holding a color.
func (a *Assigner) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.colors)
}

// Assignments lists every assignment in the order it was made.
func (a *Assigner) Assignments() []Assignment {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Assignment, len(a.order))
	for i, name := range a.order {
		out[i] = Assignment{Name: name, Color: a.colors[name]}
	}
	return out
}
