package utils

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestRowSoftmaxRowsSumToOne(t *testing.T) {
	m := mat.NewDense(3, 4, []float64{
		0.1, -2.0, 3.5, 0.0,
		100, 101, 102, 103, // large values must not overflow
		-5, -5, -5, -5,
	})
	sm := RowSoftmax(m)
	for i, s := range RowSums(sm) {
		if math.Abs(s-1.0) > 1e-9 {
			t.Fatalf("row %d sums to %.12f, want 1", i, s)
		}
	}
	// uniform row stays uniform
	for j := 0; j < 4; j++ {
		if math.Abs(sm.At(2, j)-0.25) > 1e-9 {
			t.Fatalf("uniform row entry %d = %.12f, want 0.25", j, sm.At(2, j))
		}
	}
}

func TestRowLogSoftmaxMatchesSoftmax(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{1.5, -0.5, 2.0, 0, 0, 0})
	sm := RowSoftmax(m)
	lsm := RowLogSoftmax(m)
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		sum := 0.0
		for j := 0; j < c; j++ {
			if diff := math.Abs(math.Log(sm.At(i, j)) - lsm.At(i, j)); diff > 1e-9 {
				t.Fatalf("log mismatch at (%d,%d): %.12f", i, j, diff)
			}
			sum += math.Exp(lsm.At(i, j))
		}
		if math.Abs(sum-1.0) > 1e-9 {
			t.Fatalf("exp of log-softmax row %d sums to %.12f, want 1", i, sum)
		}
	}
}

func TestArgmaxRows(t *testing.T) {
	m := mat.NewDense(3, 3, []float64{
		1, 2, 3,
		9, -1, 0,
		0, 5, 4,
	})
	want := []int{2, 0, 1}
	for i, got := range ArgmaxRows(m) {
		if got != want[i] {
			t.Fatalf("row %d argmax = %d, want %d", i, got, want[i])
		}
	}
}

func TestAddRowVector(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	b := mat.NewDense(1, 2, []float64{10, 20})
	out := AddRowVector(m, b)
	want := mat.NewDense(2, 2, []float64{11, 22, 13, 24})
	if !mat.EqualApprox(out, want, 1e-12) {
		t.Fatalf("got %v", mat.Formatted(out))
	}
	// input untouched
	if m.At(0, 0) != 1 {
		t.Fatalf("AddRowVector mutated its input")
	}
}
