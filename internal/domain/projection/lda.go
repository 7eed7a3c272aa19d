package projection

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrDimensions is returned when more output dimensions are requested
	// than the input has columns.
	ErrDimensions = errors.New("too many output dimensions")
	// ErrLabels is returned when labels do not match the rows of x.
	ErrLabels = errors.New("labels do not match rows")
	// ErrDecomposition is returned when a factorization fails.
	ErrDecomposition = errors.New("decomposition failed")
)

// ridge is added to the diagonal of the within-class scatter, scaled by its
// mean diagonal entry, so that constant features keep it positive definite.
const ridge = 1e-6

// shrinkage blends the within-class scatter towards a scaled identity when
// there are fewer rows than classes plus columns. S_w is singular then and
// the plain solution maps every row of a class onto one point.
const shrinkage = 0.2

// Discriminant projects the rows of x onto the dims directions that
// maximize between-class scatter relative to within-class scatter. It
// solves S_b v = λ S_w v through a Cholesky whitening of S_w and a
// symmetric eigendecomposition. Each direction has unit length and its
// largest component positive, so equal input gives equal output.
func Discriminant(x mat.Matrix, labels []int, dims int) (*mat.Dense, error) {
	n, d := x.Dims()
	if len(labels) != n {
		return nil, ErrLabels
	}
	if dims < 1 || dims > d {
		return nil, ErrDimensions
	}

	w, err := discriminantAxes(x, labels, dims)
	if err != nil {
		return nil, err
	}

	var out mat.Dense
	out.Mul(x, w)
	return &out, nil
}

func discriminantAxes(x mat.Matrix, labels []int, dims int) (*mat.Dense, error) {
	n, d := x.Dims()

	// Class means in first-seen label order.
	classOf := make(map[int]int)
	var sums []*mat.VecDense
	var sizes []float64
	total := mat.NewVecDense(d, nil)
	for i := 0; i < n; i++ {
		row := mat.Row(nil, i, x)
		c, ok := classOf[labels[i]]
		if !ok {
			c = len(sums)
			classOf[labels[i]] = c
			sums = append(sums, mat.NewVecDense(d, nil))
			sizes = append(sizes, 0)
		}
		r := mat.NewVecDense(d, row)
		sums[c].AddVec(sums[c], r)
		sizes[c]++
		total.AddVec(total, r)
	}
	total.ScaleVec(1/float64(n), total)
	for c := range sums {
		sums[c].ScaleVec(1/sizes[c], sums[c])
	}
	means := sums

	sw := mat.NewSymDense(d, nil)
	diff := mat.NewVecDense(d, nil)
	for i := 0; i < n; i++ {
		diff.SubVec(mat.NewVecDense(d, mat.Row(nil, i, x)), means[classOf[labels[i]]])
		sw.SymRankOne(sw, 1, diff)
	}

	sb := mat.NewSymDense(d, nil)
	for c, m := range means {
		diff.SubVec(m, total)
		sb.SymRankOne(sb, sizes[c], diff)
	}

	trace := 0.0
	for i := 0; i < d; i++ {
		trace += sw.At(i, i)
	}
	shrinkWithin(sw, trace, n-len(means))

	var chol mat.Cholesky
	if ok := chol.Factorize(sw); !ok {
		return nil, ErrDecomposition
	}
	var l, linv mat.TriDense
	chol.LTo(&l)
	if err := linv.InverseTri(&l); err != nil {
		return nil, ErrDecomposition
	}

	// M = L⁻¹ S_b L⁻ᵀ shares its eigenvalues with S_w⁻¹ S_b.
	var tmp, m mat.Dense
	tmp.Mul(&linv, sb)
	m.Mul(&tmp, linv.T())
	msym := mat.NewSymDense(d, nil)
	for i := 0; i < d; i++ {
		for j := i; j < d; j++ {
			msym.SetSym(i, j, (m.At(i, j)+m.At(j, i))/2)
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(msym, true); !ok {
		return nil, ErrDecomposition
	}
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	// Eigenvalues come back ascending; take the largest.
	w := mat.NewDense(d, dims, nil)
	u := mat.NewVecDense(d, nil)
	v := mat.NewVecDense(d, nil)
	for k := 0; k < dims; k++ {
		u.CopyVec(vecs.ColView(d - 1 - k))
		v.MulVec(linv.T(), u)
		orient(v)
		w.SetCol(k, v.RawVector().Data)
	}
	return w, nil
}

// shrinkWithin regularizes sw in place given its trace and the degrees of
// freedom left after removing the class means.
func shrinkWithin(sw *mat.SymDense, trace float64, dof int) {
	d := sw.SymmetricDim()
	mu := math.Max(1, trace/float64(d))
	if dof >= d {
		for i := 0; i < d; i++ {
			sw.SetSym(i, i, sw.At(i, i)+ridge*mu)
		}
		return
	}
	sw.ScaleSym(1-shrinkage, sw)
	for i := 0; i < d; i++ {
		sw.SetSym(i, i, sw.At(i, i)+shrinkage*mu)
	}
}

// orient scales v to unit length with its largest component positive.
func orient(v *mat.VecDense) {
	norm := mat.Norm(v, 2)
	if norm == 0 {
		return
	}
	big := 0
	for i := 1; i < v.Len(); i++ {
		if math.Abs(v.AtVec(i)) > math.Abs(v.AtVec(big)) {
			big = i
		}
	}
	if v.AtVec(big) < 0 {
		norm = -norm
	}
	v.ScaleVec(1/norm, v)
}
