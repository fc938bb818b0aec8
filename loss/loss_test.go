package loss

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/StudyDeepLearningAI/supervised-translation/seq2seq"
)

// uniformLogScores builds (steps x vocab) rows of log(1/vocab).
func uniformLogScores(steps, vocab int) *mat.Dense {
	v := math.Log(1.0 / float64(vocab))
	data := make([]float64, steps*vocab)
	for i := range data {
		data[i] = v
	}
	return mat.NewDense(steps, vocab, data)
}

func TestSumOverBatchSkipsPadding(t *testing.T) {
	const (
		vocab = 4
		pad   = 0
	)
	scores := []*mat.Dense{
		uniformLogScores(3, vocab),
		uniformLogScores(3, vocab),
	}
	targets := [][]int{
		{1, 2, 3},
		{1, pad, pad}, // only one real token
	}

	got, err := Sum(scores, targets, pad)
	if err != nil {
		t.Fatal(err)
	}
	// four unpadded tokens, each -log(1/4)
	want := 4 * math.Log(float64(vocab))
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("loss = %.12f, want %.12f", got, want)
	}
}

func TestSumIsASumNotAMean(t *testing.T) {
	scores := []*mat.Dense{uniformLogScores(2, 5)}
	targets := [][]int{{1, 2}}

	one, err := Sum(scores, targets, -1)
	if err != nil {
		t.Fatal(err)
	}
	both, err := Sum([]*mat.Dense{scores[0], scores[0]}, [][]int{{1, 2}, {1, 2}}, -1)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(both-2*one) > 1e-9 {
		t.Fatalf("doubling the batch gave %.12f, want %.12f", both, 2*one)
	}
}

func TestSumShapeErrors(t *testing.T) {
	scores := []*mat.Dense{uniformLogScores(2, 5)}

	if _, err := Sum(scores, [][]int{{1, 2}, {3, 4}}, 0); !errors.Is(err, seq2seq.ErrShapeMismatch) {
		t.Fatalf("batch mismatch: got %v, want ErrShapeMismatch", err)
	}
	if _, err := Sum(scores, [][]int{{1}}, 0); !errors.Is(err, seq2seq.ErrShapeMismatch) {
		t.Fatalf("step mismatch: got %v, want ErrShapeMismatch", err)
	}
	if _, err := Sum(scores, [][]int{{1, 7}}, 0); !errors.Is(err, seq2seq.ErrIndexOutOfRange) {
		t.Fatalf("target outside vocab: got %v, want ErrIndexOutOfRange", err)
	}
}
