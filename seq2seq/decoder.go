package seq2seq

import (
	"gonum.org/v1/gonum/mat"

	"github.com/StudyDeepLearningAI/supervised-translation/utils"
)

// Decoder embeds target-side tokens, advances a unidirectional LSTM one
// step at a time, applies attention per step and projects the combined
// representations to vocabulary logits.
type Decoder struct {
	Embedding *Embedding
	Cell      *LSTMCell
	Attn      *Attention

	Out     *mat.Dense // (H x vocab)
	OutBias *mat.Dense // (1 x vocab)
}

func NewDecoder(inputSize, hiddenSize, vocabSize int) *Decoder {
	return &Decoder{
		Embedding: NewEmbedding(vocabSize, inputSize),
		Cell:      NewLSTMCell(inputSize, hiddenSize),
		Attn:      NewAttention(hiddenSize),
		Out:       mat.NewDense(hiddenSize, vocabSize, utils.RandomArray(hiddenSize*vocabSize, float64(hiddenSize))),
		OutBias:   mat.NewDense(1, vocabSize, nil),
	}
}

// Forward decodes a (B x S) index batch against the encoder outputs.
// S is 1 during greedy decoding and the target length under teacher
// forcing; either way each step's recurrent update depends on the
// previous step's state. It returns one (S x vocab) logit matrix per
// batch row and the state after the last step, so the caller can keep
// generating from where the decoder left off.
func (d *Decoder) Forward(inputs [][]int, encOut []*mat.Dense, st *State) ([]*mat.Dense, *State, error) {
	steps, err := d.Embedding.LookupSteps(inputs)
	if err != nil {
		return nil, nil, err
	}
	B := len(inputs)
	S := len(steps)
	H := d.Cell.HiddenSize

	h, c := st.Hidden, st.Cell
	combined := make([]*mat.Dense, S) // each (B x H)
	for t := 0; t < S; t++ {
		h, c = d.Cell.Step(steps[t], h, c)
		combined[t], _ = d.Attn.Forward(h, &State{Hidden: h, Cell: c}, encOut)
	}

	logits := make([]*mat.Dense, B)
	for b := 0; b < B; b++ {
		seq := mat.NewDense(S, H, nil)
		for t := 0; t < S; t++ {
			seq.SetRow(t, combined[t].RawRowView(b))
		}
		logits[b] = utils.AddRowVector(utils.ToDense(utils.Dot(seq, d.Out)), d.OutBias)
	}

	return logits, &State{Hidden: h, Cell: c}, nil
}
