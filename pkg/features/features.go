// Package features runs feature extractors over candidate argument pairs.
//
// The heavyweight NLP extractors (part of speech, dependency paths, phrase
// chunks) live outside this module; anything implementing Extractor can be
// registered on a Chain. The package ships a few self-contained extractors so
// the pipeline is exercisable without external annotators.
package features

import (
	"fmt"
	"strings"

	"github.com/soundprediction/relex/pkg/types"
)

// Extractor produces features for one candidate argument pair.
type Extractor interface {
	// Extract is called once per candidate pair. Returned features must not
	// carry nil values; the pipeline validates and aborts the document if one
	// does.
	Extract(doc *types.Document, arg1, arg2 types.ArgumentMention) ([]types.Feature, error)
}

// Chain applies a fixed, ordered list of extractors and concatenates their
// output. Extractor order is part of the training-data contract: models are
// only valid against the extractor configuration they were trained with.
type Chain struct {
	extractors []Extractor
}

// NewChain builds a chain over the given extractors, applied in order.
func NewChain(extractors ...Extractor) *Chain {
	return &Chain{extractors: extractors}
}

// Extract runs every extractor on the pair and concatenates the results.
func (c *Chain) Extract(doc *types.Document, arg1, arg2 types.ArgumentMention) ([]types.Feature, error) {
	var features []types.Feature
	for _, e := range c.extractors {
		fs, err := e.Extract(doc, arg1, arg2)
		if err != nil {
			return nil, fmt.Errorf("feature extraction failed: %w", err)
		}
		features = append(features, fs...)
	}
	return features, nil
}

// Len returns the number of registered extractors.
func (c *Chain) Len() int {
	return len(c.extractors)
}

// ArgumentOrder emits positional features: character distance between the
// arguments and whether the first queried argument precedes the second in
// the text.
type ArgumentOrder struct{}

func (ArgumentOrder) Extract(_ *types.Document, arg1, arg2 types.ArgumentMention) ([]types.Feature, error) {
	distance := arg2.Begin - arg1.End
	if arg2.Begin < arg1.Begin {
		distance = arg1.Begin - arg2.End
	}
	return []types.Feature{
		{Name: "arg_distance", Value: distance},
		{Name: "arg1_precedes_arg2", Value: arg1.Begin < arg2.Begin},
		{Name: "args_overlap", Value: arg1.Begin < arg2.End && arg2.Begin < arg1.End},
	}, nil
}

// ArgumentText emits the lowercased covered text of each argument.
type ArgumentText struct{}

func (ArgumentText) Extract(doc *types.Document, arg1, arg2 types.ArgumentMention) ([]types.Feature, error) {
	return []types.Feature{
		{Name: "arg1_text", Value: strings.ToLower(doc.CoveredText(arg1.Span))},
		{Name: "arg2_text", Value: strings.ToLower(doc.CoveredText(arg2.Span))},
	}, nil
}

// WordsBetween emits a bag-of-words feature per whitespace token occurring
// strictly between the two arguments.
type WordsBetween struct{}

func (WordsBetween) Extract(doc *types.Document, arg1, arg2 types.ArgumentMention) ([]types.Feature, error) {
	between := types.Span{Begin: arg1.End, End: arg2.Begin}
	if arg2.Begin < arg1.Begin {
		between = types.Span{Begin: arg2.End, End: arg1.Begin}
	}
	var features []types.Feature
	for _, word := range strings.Fields(doc.CoveredText(between)) {
		features = append(features, types.Feature{
			Name:  "word_between",
			Value: strings.ToLower(word),
		})
	}
	return features, nil
}

// Default returns the chain used when no extractors are configured.
func Default() *Chain {
	return NewChain(ArgumentOrder{}, ArgumentText{}, WordsBetween{})
}
