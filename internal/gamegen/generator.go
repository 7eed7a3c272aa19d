// Package gamegen produces synthetic, reproducible board game datasets.
package gamegen

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/okian/boardlens/internal/domain/model"
)

// Error constants.
var (
	ErrInvalidConfig = errors.New("invalid generator config")
)

// Default configuration constants.
const (
	defaultCount = 200
	defaultSeed  = 1

	minYear   = 1980
	yearRange = 45

	maxExtraCategories = 2
	maxReviews         = 5000
	minRating          = 1.0
	maxRating          = 10.0
	ratingSpread       = 0.6
	playtimeStep       = 5
)

// Placeholder is written into fields chosen to be non-numeric.
const Placeholder = "N/A"

// profile describes the typical game of a category; generated values
// scatter around it so categories are separable.
type profile struct {
	name     string
	ages     []int
	players  int
	playtime float64
	rating   float64
}

var profiles = []profile{ //nolint:gochecknoglobals // fixed generator table
	{name: "Fantasy", ages: []int{10, 12}, players: 2, playtime: 60, rating: 7.2},
	{name: "Adventure", ages: []int{10, 12, 14}, players: 1, playtime: 90, rating: 7.0},
	{name: "Economic", ages: []int{12, 14}, players: 2, playtime: 120, rating: 7.6},
	{name: "Science Fiction", ages: []int{12, 14}, players: 1, playtime: 150, rating: 7.4},
	{name: "Fighting", ages: []int{10, 12}, players: 2, playtime: 45, rating: 6.8},
	{name: "Wargame", ages: []int{14, 16}, players: 2, playtime: 240, rating: 7.8},
	{name: "Card Game", ages: []int{8, 10}, players: 2, playtime: 30, rating: 6.6},
	{name: "Party Game", ages: []int{8, 10}, players: 4, playtime: 20, rating: 6.3},
	{name: "Horror", ages: []int{14, 16}, players: 1, playtime: 100, rating: 7.1},
	{name: "Abstract Strategy", ages: []int{8, 10, 12}, players: 2, playtime: 25, rating: 6.9},
	{name: "Deduction", ages: []int{10, 12}, players: 3, playtime: 40, rating: 6.7},
	{name: "Dice", ages: []int{8}, players: 2, playtime: 15, rating: 6.2},
}

var (
	titleAdjectives = []string{"Lost", "Crimson", "Iron", "Silent", "Golden", "Hidden", "Broken", "Ancient", "Clockwork", "Wild"} //nolint:gochecknoglobals // fixed generator table
	titleNouns      = []string{"Kingdoms", "Harbor", "Citadel", "Expedition", "Orchard", "Frontier", "Dungeon", "Market", "Station", "Empire"} //nolint:gochecknoglobals // fixed generator table
)

// Categories lists every category the generator can emit, in table order.
func Categories() []string {
	out := make([]string, len(profiles))
	for i, p := range profiles {
		out[i] = p.name
	}
	return out
}

// Config controls a generation run.
type Config struct {
	// Count is the number of records.
	Count int
	// Seed makes runs reproducible; equal seeds give equal datasets.
	Seed uint64
	// PlaceholderRate is the share of records with one non-numeric field.
	PlaceholderRate float64
	// UnknownAgeRate is the share of records without a minimum age.
	UnknownAgeRate float64
}

// Option applies a configuration option to Config.
type Option func(*Config)

// WithCount sets the number of records.
func WithCount(n int) Option {
	return func(c *Config) { c.Count = n }
}

// WithSeed sets the random seed.
func WithSeed(seed uint64) Option {
	return func(c *Config) { c.Seed = seed }
}

// WithPlaceholderRate sets the share of records carrying a placeholder.
func WithPlaceholderRate(rate float64) Option {
	return func(c *Config) { c.PlaceholderRate = rate }
}

// WithUnknownAgeRate sets the share of records without a minimum age.
func WithUnknownAgeRate(rate float64) Option {
	return func(c *Config) { c.UnknownAgeRate = rate }
}

// NewConfig returns the defaults with opts applied.
func NewConfig(opts ...Option) Config {
	c := Config{Count: defaultCount, Seed: defaultSeed}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Validate reports an unusable configuration.
func (c Config) Validate() error {
	switch {
	case c.Count < 0:
		return fmt.Errorf("%w: count must not be negative, got %d", ErrInvalidConfig, c.Count)
	case c.PlaceholderRate < 0 || c.PlaceholderRate > 1:
		return fmt.Errorf("%w: placeholder rate must be within [0, 1], got %g", ErrInvalidConfig, c.PlaceholderRate)
	case c.UnknownAgeRate < 0 || c.UnknownAgeRate > 1:
		return fmt.Errorf("%w: unknown age rate must be within [0, 1], got %g", ErrInvalidConfig, c.UnknownAgeRate)
	}
	return nil
}

// Generate builds a dataset. The result depends only on the configuration.
func Generate(ctx context.Context, opts ...Option) ([]model.Game, error) {
	cfg := NewConfig(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)) //nolint:gosec // reproducible, not secret
	ids := randReader{rng: rng}

	games := make([]model.Game, cfg.Count)
	for i := range games {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled during game generation: %w", err)
		}
		id, err := uuid.NewRandomFromReader(ids)
		if err != nil {
			return nil, fmt.Errorf("failed to generate id for game %d: %w", i, err)
		}
		games[i] = generateSingleGame(rng, cfg, id.String())
	}
	return games, nil
}

// generateSingleGame creates one record around a randomly chosen profile.
func generateSingleGame(rng *rand.Rand, cfg Config, id string) model.Game {
	p := profiles[rng.IntN(len(profiles))]

	minPlayers := p.players + rng.IntN(2)
	maxPlayers := minPlayers + 1 + rng.IntN(4)
	minPlaytime := roundTo(p.playtime*(0.7+0.6*rng.Float64()), playtimeStep)
	maxPlaytime := minPlaytime + roundTo(p.playtime*0.5*rng.Float64(), playtimeStep)
	rating := math.Round(clamp(p.rating+rng.NormFloat64()*ratingSpread, minRating, maxRating)*100) / 100

	g := model.Game{
		ID:          model.GameID(id),
		Title:       title(rng),
		Year:        model.Num(float64(minYear + rng.IntN(yearRange))),
		MinAge:      model.Num(float64(p.ages[rng.IntN(len(p.ages))])),
		MinPlayers:  model.Num(float64(minPlayers)),
		MaxPlayers:  model.Num(float64(maxPlayers)),
		MinPlaytime: model.Num(minPlaytime),
		MaxPlaytime: model.Num(maxPlaytime),
		Rating: &model.Rating{
			Score:   model.Num(rating),
			Reviews: model.Num(float64(10 + rng.IntN(maxReviews))),
		},
	}.WithCategories(categoriesFor(rng, p.name)...)

	if rng.Float64() < cfg.UnknownAgeRate {
		g.MinAge = model.Number{}
	}
	if rng.Float64() < cfg.PlaceholderRate {
		switch rng.IntN(3) {
		case 0:
			g.MinPlaytime = model.Invalid(Placeholder)
		case 1:
			g.MaxPlaytime = model.Invalid(Placeholder)
		default:
			g.Rating.Reviews = model.Invalid(Placeholder)
		}
	}
	return g
}

// categoriesFor lists primary first, then up to two distinct extras.
func categoriesFor(rng *rand.Rand, primary string) []string {
	out := []string{primary}
	extra := rng.IntN(maxExtraCategories + 1)
	for len(out) < extra+1 {
		name := profiles[rng.IntN(len(profiles))].name
		dup := false
		for _, existing := range out {
			if existing == name {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, name)
		}
	}
	return out
}

func title(rng *rand.Rand) string {
	return titleAdjectives[rng.IntN(len(titleAdjectives))] + " " + titleNouns[rng.IntN(len(titleNouns))]
}

func roundTo(v float64, step int) float64 {
	s := float64(step)
	return math.Max(s, math.Round(v/s)*s)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// randReader feeds uuid generation from the seeded source.
type randReader struct {
	rng *rand.Rand
}

func (r randReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.rng.Uint32())
	}
	return len(p), nil
}
