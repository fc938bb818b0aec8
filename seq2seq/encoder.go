package seq2seq

import (
	"gonum.org/v1/gonum/mat"
)

// Encoder embeds source tokens and runs them through a bidirectional
// single-layer LSTM.
type Encoder struct {
	Embedding *Embedding
	Fwd       *LSTMCell
	Bwd       *LSTMCell
}

func NewEncoder(inputSize, hiddenSize, vocabSize int) *Encoder {
	return &Encoder{
		Embedding: NewEmbedding(vocabSize, inputSize),
		Fwd:       NewLSTMCell(inputSize, hiddenSize),
		Bwd:       NewLSTMCell(inputSize, hiddenSize),
	}
}

// Forward encodes a (B x srcLen) index batch. It returns one
// (srcLen x 2H) output matrix per batch row, each position holding the
// forward and backward hidden vectors side by side, and the final state
// with the two directions summed into a single (B x H) pair, ready to
// seed the unidirectional decoder.
func (e *Encoder) Forward(inputs [][]int) ([]*mat.Dense, *State, error) {
	steps, err := e.Embedding.LookupSteps(inputs)
	if err != nil {
		return nil, nil, err
	}
	B := len(inputs)
	T := len(steps)
	H := e.Fwd.HiddenSize

	hf := mat.NewDense(B, H, nil)
	cf := mat.NewDense(B, H, nil)
	fwdOut := make([]*mat.Dense, T)
	for t := 0; t < T; t++ {
		hf, cf = e.Fwd.Step(steps[t], hf, cf)
		fwdOut[t] = hf
	}

	hb := mat.NewDense(B, H, nil)
	cb := mat.NewDense(B, H, nil)
	bwdOut := make([]*mat.Dense, T)
	for t := T - 1; t >= 0; t-- {
		hb, cb = e.Bwd.Step(steps[t], hb, cb)
		bwdOut[t] = hb
	}

	outputs := make([]*mat.Dense, B)
	for b := 0; b < B; b++ {
		out := mat.NewDense(T, 2*H, nil)
		for t := 0; t < T; t++ {
			row := out.RawRowView(t)
			copy(row[:H], fwdOut[t].RawRowView(b))
			copy(row[H:], bwdOut[t].RawRowView(b))
		}
		outputs[b] = out
	}

	hidden := mat.NewDense(B, H, nil)
	hidden.Add(hf, hb)
	cell := mat.NewDense(B, H, nil)
	cell.Add(cf, cb)

	return outputs, &State{Hidden: hidden, Cell: cell}, nil
}
