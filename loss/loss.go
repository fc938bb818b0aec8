// Package loss implements the training criterion the model's scores feed
// into: a padding-aware cross entropy summed, not averaged, over tokens.
// The model never calls this itself; it only promises output shapes that
// satisfy it.
package loss

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/StudyDeepLearningAI/supervised-translation/seq2seq"
)

// Sum computes the negative log-likelihood of targets under scores, one
// (steps x vocab) log-probability matrix per batch row, skipping every
// position whose target equals padIndex and summing the rest across the
// whole batch.
func Sum(scores []*mat.Dense, targets [][]int, padIndex int) (float64, error) {
	if len(scores) != len(targets) {
		return 0, fmt.Errorf("loss: %d score rows, %d target rows: %w",
			len(scores), len(targets), seq2seq.ErrShapeMismatch)
	}

	total := 0.0
	for b := range scores {
		steps, vocab := scores[b].Dims()
		if len(targets[b]) != steps {
			return 0, fmt.Errorf("loss: batch row %d has %d steps, %d targets: %w",
				b, steps, len(targets[b]), seq2seq.ErrShapeMismatch)
		}
		for t, id := range targets[b] {
			if id == padIndex {
				continue
			}
			if id < 0 || id >= vocab {
				return 0, fmt.Errorf("loss: target %d outside vocab of %d: %w",
					id, vocab, seq2seq.ErrIndexOutOfRange)
			}
			total -= scores[b].At(t, id)
		}
	}
	return total, nil
}
