package seq2seq

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/StudyDeepLearningAI/supervised-translation/utils"
)

// Embedding is a learned token-index to vector map.
type Embedding struct {
	VocabSize int
	Dim       int

	Table *mat.Dense // (vocab x dim)
}

func NewEmbedding(vocabSize, dim int) *Embedding {
	return &Embedding{
		VocabSize: vocabSize,
		Dim:       dim,
		Table:     mat.NewDense(vocabSize, dim, utils.RandomArray(vocabSize*dim, float64(dim))),
	}
}

// LookupSteps gathers one (B x dim) matrix per time step from a
// rectangular (B x T) index batch. Negative or out-of-vocabulary indices
// are not clamped; they fail with ErrIndexOutOfRange.
func (e *Embedding) LookupSteps(seqs [][]int) ([]*mat.Dense, error) {
	if len(seqs) == 0 {
		return nil, fmt.Errorf("embedding: empty batch: %w", ErrShapeMismatch)
	}
	T := len(seqs[0])
	if T == 0 {
		return nil, fmt.Errorf("embedding: empty sequence: %w", ErrShapeMismatch)
	}
	for b, s := range seqs {
		if len(s) != T {
			return nil, fmt.Errorf("embedding: ragged batch, row %d has %d tokens, row 0 has %d: %w",
				b, len(s), T, ErrShapeMismatch)
		}
	}

	steps := make([]*mat.Dense, T)
	for t := 0; t < T; t++ {
		x := mat.NewDense(len(seqs), e.Dim, nil)
		for b := range seqs {
			id := seqs[b][t]
			if id < 0 || id >= e.VocabSize {
				return nil, fmt.Errorf("embedding: index %d outside vocab of %d: %w",
					id, e.VocabSize, ErrIndexOutOfRange)
			}
			x.SetRow(b, e.Table.RawRowView(id))
		}
		steps[t] = x
	}
	return steps, nil
}
