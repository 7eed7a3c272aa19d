package projection

import (
	"math"

	"github.com/aclements/go-moremath/scale"
)

// boundsPadding widens each axis by this fraction of its extent on both sides.
const boundsPadding = 0.1

// maxTicks bounds the tick count used to find nice axis limits.
const maxTicks = 10

// Axis is the domain of one plot axis.
type Axis struct {
	Min   float64   `json:"min"`
	Max   float64   `json:"max"`
	Ticks []float64 `json:"ticks"`
}

// Bounds is the plot domain of a projection.
type Bounds struct {
	X Axis `json:"x"`
	Y Axis `json:"y"`
}

// ComputeBounds pads the extents of points by 10% on each side and widens
// them to nice tick values.
func ComputeBounds(points []Point) Bounds {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}
	return Bounds{X: niceAxis(xs), Y: niceAxis(ys)}
}

func niceAxis(vs []float64) Axis {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if len(vs) == 0 {
		lo, hi = -1, 1
	}
	pad := (hi - lo) * boundsPadding
	if pad == 0 {
		pad = 1
	}

	ls := scale.Linear{Min: lo - pad, Max: hi + pad}
	o := scale.TickOptions{Max: maxTicks}
	ls.Nice(o)
	major, _ := ls.Ticks(o)
	return Axis{Min: ls.Min, Max: ls.Max, Ticks: major}
}
