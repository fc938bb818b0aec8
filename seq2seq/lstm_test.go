package seq2seq

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestLSTMCellStepShapes(t *testing.T) {
	rand.Seed(123)
	cell := NewLSTMCell(3, 5)

	x := mat.NewDense(2, 3, nil)
	h := mat.NewDense(2, 5, nil)
	c := mat.NewDense(2, 5, nil)
	hNext, cNext := cell.Step(x, h, c)

	if r, cc := hNext.Dims(); r != 2 || cc != 5 {
		t.Fatalf("hidden is (%d x %d), want (2 x 5)", r, cc)
	}
	if r, cc := cNext.Dims(); r != 2 || cc != 5 {
		t.Fatalf("cell is (%d x %d), want (2 x 5)", r, cc)
	}
}

func TestLSTMCellStepDoesNotMutateInputs(t *testing.T) {
	rand.Seed(123)
	cell := NewLSTMCell(2, 3)

	x := mat.NewDense(1, 2, []float64{0.5, -0.25})
	h := mat.NewDense(1, 3, []float64{0.1, 0.2, 0.3})
	c := mat.NewDense(1, 3, []float64{-0.1, 0.0, 0.1})
	hCopy := mat.DenseCopyOf(h)
	cCopy := mat.DenseCopyOf(c)

	cell.Step(x, h, c)

	if !mat.Equal(h, hCopy) || !mat.Equal(c, cCopy) {
		t.Fatalf("Step wrote into its input state")
	}
}

func TestLSTMCellHiddenBounded(t *testing.T) {
	rand.Seed(7)
	cell := NewLSTMCell(4, 4)

	h := mat.NewDense(3, 4, nil)
	c := mat.NewDense(3, 4, nil)
	x := mat.NewDense(3, 4, randomSigns(12))
	for step := 0; step < 20; step++ {
		h, c = cell.Step(x, h, c)
	}
	// h = o * tanh(c) stays in (-1, 1) no matter how long we run
	r, cc := h.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < cc; j++ {
			if v := h.At(i, j); math.Abs(v) >= 1 {
				t.Fatalf("hidden value %v escaped (-1, 1)", v)
			}
		}
	}
}

func randomSigns(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		if rand.Intn(2) == 0 {
			out[i] = 1
		} else {
			out[i] = -1
		}
	}
	return out
}
