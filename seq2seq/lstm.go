package seq2seq

import (
	"gonum.org/v1/gonum/mat"

	"github.com/StudyDeepLearningAI/supervised-translation/utils"
)

// LSTMCell is a single-layer LSTM advanced one time step at a time.
// Gates are packed column-wise in input, forget, cell, output order.
type LSTMCell struct {
	InputSize  int
	HiddenSize int

	Wx *mat.Dense // (in x 4H)
	Wh *mat.Dense // (H x 4H)
	B  *mat.Dense // (1 x 4H)
}

func NewLSTMCell(inputSize, hiddenSize int) *LSTMCell {
	return &LSTMCell{
		InputSize:  inputSize,
		HiddenSize: hiddenSize,
		Wx:         mat.NewDense(inputSize, 4*hiddenSize, utils.RandomArray(inputSize*4*hiddenSize, float64(hiddenSize))),
		Wh:         mat.NewDense(hiddenSize, 4*hiddenSize, utils.RandomArray(hiddenSize*4*hiddenSize, float64(hiddenSize))),
		B:          mat.NewDense(1, 4*hiddenSize, nil),
	}
}

// Step advances the cell by one time step. x is (B x in), h and c are
// (B x H); the returned states are freshly allocated, the inputs are not
// written to.
func (l *LSTMCell) Step(x, h, c *mat.Dense) (*mat.Dense, *mat.Dense) {
	B, _ := x.Dims()
	H := l.HiddenSize

	gates := utils.ToDense(utils.Dot(x, l.Wx))
	gates.Add(gates, utils.ToDense(utils.Dot(h, l.Wh)))
	gates = utils.AddRowVector(gates, l.B)

	gate := func(k int, fn func(i, j int, v float64) float64) *mat.Dense {
		out := mat.NewDense(B, H, nil)
		out.Apply(fn, gates.Slice(0, B, k*H, (k+1)*H))
		return out
	}
	in := gate(0, utils.SigmoidApply)
	forget := gate(1, utils.SigmoidApply)
	cand := gate(2, utils.TanhApply)
	out := gate(3, utils.SigmoidApply)

	cNext := mat.NewDense(B, H, nil)
	cNext.MulElem(forget, c)
	write := mat.NewDense(B, H, nil)
	write.MulElem(in, cand)
	cNext.Add(cNext, write)

	hNext := mat.NewDense(B, H, nil)
	hNext.Apply(utils.TanhApply, cNext)
	hNext.MulElem(out, hNext)

	return hNext, cNext
}
