package utils

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Matrix helpers shared by the encoder, decoder and attention layers.
//
// Convention: activations are batch-major, (batch x features). Weight
// matrices are stored so that a forward step is a plain right-multiply.

func Dot(m, n mat.Matrix) mat.Matrix {
	r, _ := m.Dims()
	_, c := n.Dims()
	o := mat.NewDense(r, c, nil)
	o.Product(m, n)
	return o
}

func ToDense(m mat.Matrix) *mat.Dense {
	if d, ok := m.(*mat.Dense); ok {
		return d
	}
	return mat.DenseCopyOf(m)
}

// RandomArray draws size values uniformly from [-1/sqrt(v), 1/sqrt(v)].
func RandomArray(size int, v float64) []float64 {
	min := -1.0 / math.Sqrt(v+1e-12)
	max := 1.0 / math.Sqrt(v+1e-12)
	out := make([]float64, size)
	for i := 0; i < size; i++ {
		out[i] = min + (max-min)*rand.Float64()
	}
	return out
}

// AddRowVector adds the (1 x c) row b to every row of m.
func AddRowVector(m, b *mat.Dense) *mat.Dense {
	r, c := m.Dims()
	br, bc := b.Dims()
	if br != 1 || bc != c {
		panic("AddRowVector: bias must be (1 x c)")
	}
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		floats.AddTo(out.RawRowView(i), m.RawRowView(i), b.RawRowView(0))
	}
	return out
}

func SigmoidApply(_, _ int, x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

func TanhApply(_, _ int, x float64) float64 {
	return math.Tanh(x)
}

// ---------- Softmax variants ----------

// RowSoftmax applies softmax independently to each row across columns.
// Used by attention (weight rows must sum to 1 over source positions).
func RowSoftmax(m mat.Matrix) *mat.Dense {
	r, c := m.Dims()
	out := mat.NewDense(r, c, nil)
	d := ToDense(m)
	for i := 0; i < r; i++ {
		row := out.RawRowView(i)
		copy(row, d.RawRowView(i))
		mx := floats.Max(row)
		for j := range row {
			row[j] = math.Exp(row[j] - mx)
		}
		sum := floats.Sum(row)
		floats.Scale(1.0/sum, row)
	}
	return out
}

// RowLogSoftmax is the numerically stable log of RowSoftmax:
// x - max - log(sum(exp(x - max))).
func RowLogSoftmax(m mat.Matrix) *mat.Dense {
	r, c := m.Dims()
	out := mat.NewDense(r, c, nil)
	d := ToDense(m)
	for i := 0; i < r; i++ {
		row := out.RawRowView(i)
		copy(row, d.RawRowView(i))
		mx := floats.Max(row)
		sum := 0.0
		for j := range row {
			sum += math.Exp(row[j] - mx)
		}
		lse := mx + math.Log(sum)
		for j := range row {
			row[j] -= lse
		}
	}
	return out
}

// ArgmaxRows returns the column index of the maximum entry in each row.
func ArgmaxRows(m *mat.Dense) []int {
	r, _ := m.Dims()
	out := make([]int, r)
	for i := 0; i < r; i++ {
		out[i] = floats.MaxIdx(m.RawRowView(i))
	}
	return out
}

// RowSums returns per-row sums for a mat.Dense.
func RowSums(m *mat.Dense) []float64 {
	r, _ := m.Dims()
	out := make([]float64, r)
	for i := 0; i < r; i++ {
		out[i] = floats.Sum(m.RawRowView(i))
	}
	return out
}
