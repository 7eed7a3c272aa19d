package projection

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Standardization holds the per-column statistics used to scale a matrix.
type Standardization struct {
	Mean []float64 `json:"mean"`
	// Std is the population standard deviation, 1 where it was 0.
	Std []float64 `json:"std"`
}

// Standardize centers every column of x on its mean and divides it by its
// population standard deviation. Constant columns become all zero. x must
// have at least one row.
func Standardize(x mat.Matrix) (*mat.Dense, Standardization) {
	r, c := x.Dims()
	out := mat.NewDense(r, c, nil)
	s := Standardization{Mean: make([]float64, c), Std: make([]float64, c)}

	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, x)
		mean, std := stat.PopMeanStdDev(col, nil)
		if constant(col) {
			mean, std = col[0], 1
		} else if std == 0 {
			std = 1
		}
		s.Mean[j], s.Std[j] = mean, std
		for i, v := range col {
			out.Set(i, j, (v-mean)/std)
		}
	}
	return out, s
}

func constant(col []float64) bool {
	for _, v := range col[1:] {
		if v != col[0] {
			return false
		}
	}
	return true
}

// Rows packs vectors into an n×Dimensions matrix. vs must not be empty.
func Rows(vs []Vector) *mat.Dense {
	data := make([]float64, 0, len(vs)*Dimensions)
	for _, v := range vs {
		data = append(data, v[:]...)
	}
	return mat.NewDense(len(vs), Dimensions, data)
}
