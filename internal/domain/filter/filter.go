// Package filter holds the selection state both chart pipelines consume.
package filter

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/okian/boardlens/internal/domain/model"
)

// State is the current selection: accepted minimum ages and selected
// categories. Category order matters, it defines projection label indices.
type State struct {
	Ages              []int    `json:"ages"`
	IncludeUnknownAge bool     `json:"include_unknown_age"`
	Categories        []string `json:"categories"`
}

// New builds a normalized State: ages sorted and deduplicated, categories
// trimmed and deduplicated in the given order, blanks dropped.
func New(ages []int, includeUnknownAge bool, categories []string) State {
	return State{
		Ages:              normalizeAges(ages),
		IncludeUnknownAge: includeUnknownAge,
		Categories:        normalizeCategories(categories),
	}
}

// Default selects every given age and the given categories, like a page
// whose age checkboxes all start checked.
func Default(ages []int, categories []string) State {
	return New(ages, false, categories)
}

// Normalize returns s in the form New would have produced.
func (s State) Normalize() State {
	return New(s.Ages, s.IncludeUnknownAge, s.Categories)
}

// AcceptsAge reports whether a record with this minimum age passes.
func (s State) AcceptsAge(age model.Number) bool {
	if !age.IsSet() {
		return s.IncludeUnknownAge
	}
	v, ok := age.Int()
	if !ok {
		return false
	}
	return slices.Contains(s.Ages, v)
}

// Selected reports whether category is among the selected ones.
func (s State) Selected(category string) bool {
	return s.LabelIndex(category) >= 0
}

// LabelIndex returns the index of category in the selection, or -1.
func (s State) LabelIndex(category string) int {
	return slices.Index(s.Categories, category)
}

// WithAges returns a copy of s with a different age selection.
func (s State) WithAges(ages []int, includeUnknownAge bool) State {
	return New(ages, includeUnknownAge, s.Categories)
}

// WithCategories returns a copy of s with a different category selection.
func (s State) WithCategories(categories []string) State {
	return New(s.Ages, s.IncludeUnknownAge, categories)
}

// Key is a stable fingerprint of the selection.
func (s State) Key() string {
	var b strings.Builder
	b.WriteString("ages=")
	for i, a := range s.Ages {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(a))
	}
	b.WriteString(";unknown=")
	b.WriteString(strconv.FormatBool(s.IncludeUnknownAge))
	b.WriteString(";categories=")
	for i, c := range s.Categories {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(c)
	}
	return b.String()
}

func normalizeAges(ages []int) []int {
	out := slices.Clone(ages)
	slices.Sort(out)
	out = slices.Compact(out)
	if out == nil {
		out = []int{}
	}
	return out
}

func normalizeCategories(categories []string) []string {
	out := make([]string, 0, len(categories))
	seen := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Change is one submitted selection waiting to be applied.
type Change struct {
	ID          string    `json:"id"`
	State       State     `json:"state"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// NewChange stamps s with a fresh id and the current time.
func NewChange(s State) Change {
	return Change{
		ID:          uuid.New().String(),
		State:       s.Normalize(),
		SubmittedAt: time.Now().UTC(),
	}
}
