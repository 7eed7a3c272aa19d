// Package projection places games on a plane with a linear discriminant
// analysis of their numeric features, supervised by category.
package projection

import (
	"errors"
	"fmt"

	"github.com/okian/boardlens/internal/domain/model"
)

// Dimensions is the length of a feature vector.
const Dimensions = 7

// FeatureNames lists the vector components in order.
var FeatureNames = [Dimensions]string{
	"minplayers",
	"maxplayers",
	"minplaytime",
	"maxplaytime",
	"minage",
	"rating",
	"num_of_reviews",
}

// ErrNonNumericFeature is wrapped by every ExtractionError.
var ErrNonNumericFeature = errors.New("non-numeric feature")

// ExtractionError names the field that could not be coerced.
type ExtractionError struct {
	Field string
	Raw   string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s: %q: %v", e.Field, e.Raw, ErrNonNumericFeature)
}

// Unwrap returns ErrNonNumericFeature.
func (e *ExtractionError) Unwrap() error { return ErrNonNumericFeature }

// Vector is the numeric description of one game.
type Vector [Dimensions]float64

// ExtractFeatureVector builds the feature vector of g. Missing fields
// count as 0. Booleans and numeric strings were already coerced on
// decode; any other value fails with an *ExtractionError.
func ExtractFeatureVector(g *model.Game) (Vector, error) {
	fields := [Dimensions]model.Number{
		g.MinPlayers,
		g.MaxPlayers,
		g.MinPlaytime,
		g.MaxPlaytime,
		g.MinAge,
		g.RatingScore(),
		g.ReviewCount(),
	}

	var v Vector
	for i, n := range fields {
		x, err := n.Value()
		if err != nil {
			return Vector{}, &ExtractionError{Field: FeatureNames[i], Raw: n.String()}
		}
		v[i] = x
	}
	return v, nil
}
