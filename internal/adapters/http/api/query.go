package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/boardlens/internal/domain/filter"
)

// filterFromQuery overlays query parameters on current. Parameters that
// are absent keep the current selection.
//
//	age=8&age=10 or age=8,10   accepted minimum ages
//	unknown_age=true           accept records without a minimum age
//	category=A&category=B      selected categories, in label order
func filterFromQuery(q url.Values, current filter.State) (filter.State, error) {
	ages := current.Ages
	if raw, ok := q["age"]; ok {
		parsed, err := parseAges(raw)
		if err != nil {
			return filter.State{}, err
		}
		ages = parsed
	}

	includeUnknown := current.IncludeUnknownAge
	if raw := q.Get("unknown_age"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return filter.State{}, fmt.Errorf("invalid unknown_age %q", raw)
		}
		includeUnknown = v
	}

	categories := current.Categories
	if raw, ok := q["category"]; ok {
		categories = raw
	}
	return filter.New(ages, includeUnknown, categories), nil
}

func parseAges(raw []string) ([]int, error) {
	ages := make([]int, 0, len(raw))
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			age, err := strconv.Atoi(part)
			if err != nil || age < 0 {
				return nil, fmt.Errorf("invalid age %q", part)
			}
			ages = append(ages, age)
		}
	}
	return ages, nil
}
