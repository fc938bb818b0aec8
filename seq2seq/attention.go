package seq2seq

import (
	"gonum.org/v1/gonum/mat"

	"github.com/StudyDeepLearningAI/supervised-translation/utils"
)

// Attention is Luong style general attention from
// https://arxiv.org/pdf/1508.04025.pdf
type Attention struct {
	HiddenSize int

	Proj        *mat.Dense // (H x 2H), no bias
	Combine     *mat.Dense // (3H x H)
	CombineBias *mat.Dense // (1 x H)
}

func NewAttention(hiddenSize int) *Attention {
	return &Attention{
		HiddenSize:  hiddenSize,
		Proj:        mat.NewDense(hiddenSize, 2*hiddenSize, utils.RandomArray(hiddenSize*2*hiddenSize, float64(hiddenSize))),
		Combine:     mat.NewDense(3*hiddenSize, hiddenSize, utils.RandomArray(3*hiddenSize*hiddenSize, float64(3*hiddenSize))),
		CombineBias: mat.NewDense(1, hiddenSize, nil),
	}
}

// Forward mixes the encoder outputs into the current decoder step.
// decOut is the raw LSTM step output (B x H), st the state after that
// step, encOut one (srcLen x 2H) matrix per batch row. It returns the
// combined representation (B x H), bounded to [-1, 1] by tanh, and one
// (1 x srcLen) weight row per batch item.
//
// The scores are normalized over the source-position axis, so each weight
// row sums to 1. The reference this reimplements softmaxed each
// (1 x srcLen) score row over its singleton axis instead, pinning every
// weight at 1; that defeats the attention and is treated as a defect, not
// a behavior to reproduce.
func (a *Attention) Forward(decOut *mat.Dense, st *State, encOut []*mat.Dense) (*mat.Dense, []*mat.Dense) {
	B, H := decOut.Dims()

	// Project the last hidden state up to the bidirectional output width.
	proj := utils.ToDense(utils.Dot(st.Hidden, a.Proj)) // (B x 2H)

	merged := mat.NewDense(B, 3*H, nil)
	weights := make([]*mat.Dense, B)
	for b := 0; b < B; b++ {
		q := proj.Slice(b, b+1, 0, 2*H)
		scores := utils.ToDense(utils.Dot(q, encOut[b].T())) // (1 x srcLen)
		w := utils.RowSoftmax(scores)
		weights[b] = w

		context := utils.ToDense(utils.Dot(w, encOut[b])) // (1 x 2H)
		row := merged.RawRowView(b)
		copy(row[:H], decOut.RawRowView(b))
		copy(row[H:], context.RawRowView(0))
	}

	combined := utils.AddRowVector(utils.ToDense(utils.Dot(merged, a.Combine)), a.CombineBias)
	combined.Apply(utils.TanhApply, combined)
	return combined, weights
}
