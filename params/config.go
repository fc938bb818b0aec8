package params

// Config holds the model hyperparameters and the special token indices
// the decoding loop needs. Padding/unknown indices are consumed by the
// loss only, never inside the model.
type Config struct {
	EmbeddingSize int // token embedding width
	HiddenSize    int // LSTM width (encoder and decoder must match)

	SourceVocabSize int
	TargetVocabSize int

	StartIndex int // sequence-start token, seeds greedy decoding
	EndIndex   int // sequence-end token, stops greedy decoding in eval

	Dropout float64 // declared for parity with the reference; not applied in the forward pass
}

// Reasonable defaults for small experiments
var Default = Config{
	EmbeddingSize: 128,
	HiddenSize:    128,
	Dropout:       0.0,
}
