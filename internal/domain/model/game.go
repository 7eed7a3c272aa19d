// Package model contains the board game records shared by every pipeline.
package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

// GameID accepts either a JSON string or a JSON number.
type GameID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *GameID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = GameID(s)
		return nil
	}
	*id = GameID(data)
	return nil
}

// Game is one record of the input dataset. Every numeric field is optional.
type Game struct {
	ID          GameID  `json:"id,omitempty"`
	Title       string  `json:"title"`
	Year        Number  `json:"year"`
	MinAge      Number  `json:"minage"`
	MinPlayers  Number  `json:"minplayers"`
	MaxPlayers  Number  `json:"maxplayers"`
	MinPlaytime Number  `json:"minplaytime"`
	MaxPlaytime Number  `json:"maxplaytime"`
	Rating      *Rating `json:"rating,omitempty"`
	Types       *Types  `json:"types,omitempty"`
}

// Rating is the optional review block of a game.
type Rating struct {
	Score   Number `json:"rating"`
	Reviews Number `json:"num_of_reviews"`
}

// Types holds the classification lists of a game.
type Types struct {
	Categories []Category `json:"categories"`
}

// Category is one category tag.
type Category struct {
	Name string `json:"name"`
}

// Categories returns the non-blank category names in listed order.
func (g *Game) Categories() []string {
	if g.Types == nil {
		return nil
	}
	out := make([]string, 0, len(g.Types.Categories))
	for _, c := range g.Types.Categories {
		if name := strings.TrimSpace(c.Name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// FirstCategory returns the first listed category name.
func (g *Game) FirstCategory() (string, bool) {
	if g.Types == nil || len(g.Types.Categories) == 0 {
		return "", false
	}
	name := strings.TrimSpace(g.Types.Categories[0].Name)
	return name, name != ""
}

// RatingScore returns the rating score, absent when there is no rating block.
func (g *Game) RatingScore() Number {
	if g.Rating == nil {
		return Number{}
	}
	return g.Rating.Score
}

// ReviewCount returns the number of reviews, absent when there is no rating block.
func (g *Game) ReviewCount() Number {
	if g.Rating == nil {
		return Number{}
	}
	return g.Rating.Reviews
}

// WithCategories is a convenience for building records in code.
func (g Game) WithCategories(names ...string) Game {
	cats := make([]Category, len(names))
	for i, n := range names {
		cats[i] = Category{Name: n}
	}
	g.Types = &Types{Categories: cats}
	return g
}
