// Package seq2seq implements an attention-augmented encoder-decoder
// translation model over gonum matrices. Token batches come in as
// (batch x length) index slices; scores go out as per-row log-probability
// matrices shaped for an external cross-entropy criterion.
package seq2seq

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/StudyDeepLearningAI/supervised-translation/params"
	"github.com/StudyDeepLearningAI/supervised-translation/utils"
)

// DefaultMaxLen bounds greedy decoding when the caller does not ask for a
// specific limit.
const DefaultMaxLen = 50

var (
	ErrIndexOutOfRange = errors.New("token index out of range")
	ErrShapeMismatch   = errors.New("shape mismatch")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Mode selects the greedy-decode termination policy. Training keeps the
// loop running for the full maxLen even after every row has finished;
// Evaluation stops as soon as each batch row has emitted the end token.
// The asymmetry is deliberate and mirrors the reference behavior.
type Mode int

const (
	Training Mode = iota
	Evaluation
)

// State is the recurrent hidden/cell pair, each (batch x hidden).
// Encoder.Forward creates it and the decoder threads it step by step;
// callers treat it as opaque.
type State struct {
	Hidden *mat.Dense
	Cell   *mat.Dense
}

// Seq2Seq owns the encoder and decoder and implements the two decoding
// strategies.
type Seq2Seq struct {
	Encoder *Encoder
	Decoder *Decoder

	StartIndex int
	EndIndex   int
}

// New builds the model from cfg, failing fast on invalid configuration so
// no shape problem survives to the first forward call.
func New(cfg params.Config) (*Seq2Seq, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}
	m := &Seq2Seq{
		Encoder:    NewEncoder(cfg.EmbeddingSize, cfg.HiddenSize, cfg.SourceVocabSize),
		Decoder:    NewDecoder(cfg.EmbeddingSize, cfg.HiddenSize, cfg.TargetVocabSize),
		StartIndex: cfg.StartIndex,
		EndIndex:   cfg.EndIndex,
	}
	if err := m.CheckShapes(); err != nil {
		return nil, err
	}
	return m, nil
}

func validate(cfg params.Config) error {
	if cfg.EmbeddingSize <= 0 || cfg.HiddenSize <= 0 {
		return fmt.Errorf("embedding size %d, hidden size %d: %w",
			cfg.EmbeddingSize, cfg.HiddenSize, ErrInvalidArgument)
	}
	if cfg.SourceVocabSize <= 0 || cfg.TargetVocabSize <= 0 {
		return fmt.Errorf("source vocab %d, target vocab %d: %w",
			cfg.SourceVocabSize, cfg.TargetVocabSize, ErrInvalidArgument)
	}
	if cfg.StartIndex < 0 || cfg.StartIndex >= cfg.TargetVocabSize {
		return fmt.Errorf("start index %d outside target vocab of %d: %w",
			cfg.StartIndex, cfg.TargetVocabSize, ErrInvalidArgument)
	}
	if cfg.EndIndex < 0 || cfg.EndIndex >= cfg.TargetVocabSize {
		return fmt.Errorf("end index %d outside target vocab of %d: %w",
			cfg.EndIndex, cfg.TargetVocabSize, ErrInvalidArgument)
	}
	if cfg.Dropout < 0 || cfg.Dropout >= 1 {
		return fmt.Errorf("dropout %v: %w", cfg.Dropout, ErrInvalidArgument)
	}
	return nil
}

// CheckShapes verifies that the assembled components agree on their
// widths: encoder and decoder hidden sizes must match, the attention
// projection must target the doubled encoder output width, and the
// combine layer must take exactly three hidden widths. New always
// produces a consistent model; this guards hand-assembled ones.
func (m *Seq2Seq) CheckShapes() error {
	encH := m.Encoder.Fwd.HiddenSize
	decH := m.Decoder.Cell.HiddenSize
	if encH != decH {
		return fmt.Errorf("encoder hidden %d, decoder hidden %d: %w", encH, decH, ErrShapeMismatch)
	}
	if bwdH := m.Encoder.Bwd.HiddenSize; bwdH != encH {
		return fmt.Errorf("encoder directions disagree, fwd %d, bwd %d: %w", encH, bwdH, ErrShapeMismatch)
	}
	if pr, pc := m.Decoder.Attn.Proj.Dims(); pr != decH || pc != 2*encH {
		return fmt.Errorf("attention projection (%d x %d), want (%d x %d): %w",
			pr, pc, decH, 2*encH, ErrShapeMismatch)
	}
	if cr, cc := m.Decoder.Attn.Combine.Dims(); cr != 3*decH || cc != decH {
		return fmt.Errorf("attention combine (%d x %d), want (%d x %d): %w",
			cr, cc, 3*decH, decH, ErrShapeMismatch)
	}
	if or, _ := m.Decoder.Out.Dims(); or != decH {
		return fmt.Errorf("output projection rows %d, want %d: %w", or, decH, ErrShapeMismatch)
	}
	return nil
}

// Forward runs the encoder once and dispatches to one of the two decode
// strategies. A nil targets selects greedy decoding bounded by maxLen
// (0 means DefaultMaxLen, negative fails with ErrInvalidArgument); with
// targets present the full sequence is teacher forced and maxLen is
// ignored. Scores come back as one (steps x vocab) log-probability matrix
// per batch row, preds as the matching (batch x steps) argmax indices.
func (m *Seq2Seq) Forward(inputs, targets [][]int, maxLen int, mode Mode) ([]*mat.Dense, [][]int, error) {
	encOut, st, err := m.Encoder.Forward(inputs)
	if err != nil {
		return nil, nil, err
	}

	if targets == nil {
		if maxLen == 0 {
			maxLen = DefaultMaxLen
		}
		if maxLen < 0 {
			return nil, nil, fmt.Errorf("max length %d: %w", maxLen, ErrInvalidArgument)
		}
		return m.decodeGreedy(encOut, st, maxLen, mode)
	}
	return m.decodeForced(targets, encOut, st)
}

// decodeForced applies teacher forcing with the provided targets. Every
// decoder input is a known ground-truth token, so a single decoder call
// covers the whole sequence.
func (m *Seq2Seq) decodeForced(targets [][]int, encOut []*mat.Dense, st *State) ([]*mat.Dense, [][]int, error) {
	logits, _, err := m.Decoder.Forward(targets, encOut, st)
	if err != nil {
		return nil, nil, err
	}
	scores := make([]*mat.Dense, len(logits))
	preds := make([][]int, len(logits))
	for b, lg := range logits {
		scores[b] = utils.RowLogSoftmax(lg)
		preds[b] = utils.ArgmaxRows(lg)
	}
	return scores, preds, nil
}

// decodeGreedy generates autoregressively: each step feeds the previous
// step's argmax back in as input, seeded with the start token. The loop
// never exceeds maxLen steps; in Evaluation mode it also stops as soon as
// every batch row has emitted the end token. The seed token is dropped so
// predictions line up one-to-one with scores.
func (m *Seq2Seq) decodeGreedy(encOut []*mat.Dense, st *State, maxLen int, mode Mode) ([]*mat.Dense, [][]int, error) {
	B := len(encOut)

	last := make([]int, B)
	for b := range last {
		last[b] = m.StartIndex
	}
	preds := make([][]int, B)
	scoreRows := make([][]*mat.Dense, B) // each entry a (1 x vocab) log-prob row
	finished := make([]bool, B)

	for t := 0; t < maxLen; t++ {
		step := make([][]int, B)
		for b := range step {
			step[b] = []int{last[b]}
		}
		logits, next, err := m.Decoder.Forward(step, encOut, st)
		if err != nil {
			return nil, nil, err
		}
		st = next

		done := 0
		for b := range logits {
			logp := utils.RowLogSoftmax(logits[b]) // (1 x vocab)
			pred := utils.ArgmaxRows(logp)[0]

			scoreRows[b] = append(scoreRows[b], logp)
			preds[b] = append(preds[b], pred)
			last[b] = pred

			if pred == m.EndIndex {
				finished[b] = true
			}
			if finished[b] {
				done++
			}
		}
		if mode == Evaluation && done == B {
			break
		}
	}

	scores := make([]*mat.Dense, B)
	for b := range scoreRows {
		_, vocab := scoreRows[b][0].Dims()
		s := mat.NewDense(len(scoreRows[b]), vocab, nil)
		for t, row := range scoreRows[b] {
			s.SetRow(t, row.RawRowView(0))
		}
		scores[b] = s
	}
	return scores, preds, nil
}
