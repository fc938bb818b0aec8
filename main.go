package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/StudyDeepLearningAI/supervised-translation/loss"
	"github.com/StudyDeepLearningAI/supervised-translation/params"
	"github.com/StudyDeepLearningAI/supervised-translation/seq2seq"
)

// Toy end-to-end run on random token ids: one teacher-forced pass scored
// against the criterion, then a greedy generation from the same sources.
// Real vocabularies, batching and the training loop live outside this
// repository.
func main() {
	rand.Seed(42)

	cfg := params.Default
	cfg.SourceVocabSize = 32
	cfg.TargetVocabSize = 32
	cfg.EmbeddingSize = 16
	cfg.HiddenSize = 32
	cfg.StartIndex = 1
	cfg.EndIndex = 2

	model, err := seq2seq.New(cfg)
	if err != nil {
		fmt.Println("building model:", err)
		os.Exit(1)
	}

	const padIndex = 0
	inputs := [][]int{
		{5, 9, 14, 3},
		{7, 21, 11, 4},
	}
	targets := [][]int{
		{1, 6, 18, 2},
		{1, 25, 2, padIndex},
	}

	scores, preds, err := model.Forward(inputs, targets, 0, seq2seq.Training)
	if err != nil {
		fmt.Println("teacher-forced pass:", err)
		os.Exit(1)
	}
	sum, err := loss.Sum(scores, targets, padIndex)
	if err != nil {
		fmt.Println("criterion:", err)
		os.Exit(1)
	}
	fmt.Printf("teacher forcing: %d steps, loss %.4f, preds %v\n",
		len(preds[0]), sum, preds)

	_, preds, err = model.Forward(inputs, nil, 10, seq2seq.Evaluation)
	if err != nil {
		fmt.Println("greedy decode:", err)
		os.Exit(1)
	}
	for b, p := range preds {
		fmt.Printf("greedy row %d: %v\n", b, p)
	}
}
