package relex

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	relexlib "github.com/soundprediction/relex"
	"github.com/soundprediction/relex/pkg/config"
	"github.com/soundprediction/relex/pkg/types"
)

var trainCmd = &cobra.Command{
	Use:   "train [document.json ...]",
	Short: "Emit labeled training examples from gold-annotated documents",
	Long: `Generate candidate argument pairs from each document's sentences, label them
against the configured gold annotation view and write the resulting training
examples as JSON lines.

Negative candidates (pairs with no gold relation) are downsampled at the
configured rate with a fixed seed, so repeated runs over the same documents
produce identical training sets.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTrain,
}

var (
	trainOutput         string
	trainGoldView       string
	trainBothDirections bool
	trainNegativeRate   float64
)

func init() {
	rootCmd.AddCommand(trainCmd)

	trainCmd.Flags().StringVarP(&trainOutput, "output", "o", "training.jsonl", "Training data output file")
	trainCmd.Flags().StringVar(&trainGoldView, "gold-view", "", "Annotation view holding gold relations")
	trainCmd.Flags().BoolVar(&trainBothDirections, "both-directions", false, "Classify each pair in both argument orders")
	trainCmd.Flags().Float64Var(&trainNegativeRate, "negative-rate", 1.0, "Probability of keeping a negative example")
}

func runTrain(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	overrideTrainFlags(cmd, cfg)

	if err := cfg.ValidateForTraining(); err != nil {
		return err
	}

	log := buildLogger(cfg)

	out, err := os.Create(trainOutput)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	writer := relexlib.DataWriterFunc(func(example types.TrainingExample) error {
		return enc.Encode(example)
	})

	s, err := buildSchema(cfg)
	if err != nil {
		return err
	}

	pipeline, err := relexlib.NewPipeline(nil, writer, nil, buildSampler(cfg), nil, buildOptions(cfg, s), log)
	if err != nil {
		return err
	}

	total := 0
	for _, path := range args {
		doc, err := readDocument(path)
		if err != nil {
			return err
		}
		written, err := pipeline.Train(cmd.Context(), doc)
		if err != nil {
			return fmt.Errorf("training on %s: %w", path, err)
		}
		total += written
	}

	log.Info("training data written", "examples", total, "documents", len(args), "output", trainOutput)
	return nil
}

func overrideTrainFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("gold-view") {
		cfg.Extraction.GoldView = trainGoldView
	}
	if cmd.Flags().Changed("both-directions") {
		cfg.Extraction.BothDirections = trainBothDirections
	}
	if cmd.Flags().Changed("negative-rate") {
		cfg.Extraction.NegativeRate = trainNegativeRate
	}
}
