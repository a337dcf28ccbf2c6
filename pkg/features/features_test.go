package features

import (
	"errors"
	"testing"

	"github.com/soundprediction/relex/pkg/types"
)

var testDoc = &types.Document{
	ID:   "doc-1",
	Text: "aspirin rapidly treats a mild headache",
}

var (
	argAspirin  = types.ArgumentMention{Span: types.Span{Begin: 0, End: 7}}
	argHeadache = types.ArgumentMention{Span: types.Span{Begin: 30, End: 38}}
)

func TestChainConcatenatesInOrder(t *testing.T) {
	chain := NewChain(ArgumentOrder{}, ArgumentText{})

	features, err := chain.Extract(testDoc, argAspirin, argHeadache)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	wantNames := []string{
		"arg_distance", "arg1_precedes_arg2", "args_overlap",
		"arg1_text", "arg2_text",
	}
	if len(features) != len(wantNames) {
		t.Fatalf("got %d features, want %d", len(features), len(wantNames))
	}
	for i, name := range wantNames {
		if features[i].Name != name {
			t.Errorf("feature %d = %q, want %q", i, features[i].Name, name)
		}
	}
}

func TestArgumentOrder(t *testing.T) {
	fs, err := ArgumentOrder{}.Extract(testDoc, argAspirin, argHeadache)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	byName := map[string]any{}
	for _, f := range fs {
		byName[f.Name] = f.Value
	}
	if byName["arg_distance"] != 23 {
		t.Errorf("arg_distance = %v, want 23", byName["arg_distance"])
	}
	if byName["arg1_precedes_arg2"] != true {
		t.Errorf("arg1_precedes_arg2 = %v, want true", byName["arg1_precedes_arg2"])
	}

	// Reversed query order flips the precedence feature but not the distance.
	fs, _ = ArgumentOrder{}.Extract(testDoc, argHeadache, argAspirin)
	byName = map[string]any{}
	for _, f := range fs {
		byName[f.Name] = f.Value
	}
	if byName["arg_distance"] != 23 {
		t.Errorf("reversed arg_distance = %v, want 23", byName["arg_distance"])
	}
	if byName["arg1_precedes_arg2"] != false {
		t.Errorf("reversed arg1_precedes_arg2 = %v, want false", byName["arg1_precedes_arg2"])
	}
}

func TestWordsBetween(t *testing.T) {
	fs, err := WordsBetween{}.Extract(testDoc, argAspirin, argHeadache)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	want := []string{"rapidly", "treats", "a", "mild"}
	if len(fs) != len(want) {
		t.Fatalf("got %d features, want %d", len(fs), len(want))
	}
	for i, w := range want {
		if fs[i].Name != "word_between" || fs[i].Value != w {
			t.Errorf("feature %d = %+v, want word_between=%q", i, fs[i], w)
		}
	}
}

type failingExtractor struct{}

var errExtractor = errors.New("annotator unavailable")

func (failingExtractor) Extract(*types.Document, types.ArgumentMention, types.ArgumentMention) ([]types.Feature, error) {
	return nil, errExtractor
}

func TestChainPropagatesExtractorError(t *testing.T) {
	chain := NewChain(ArgumentOrder{}, failingExtractor{})

	_, err := chain.Extract(testDoc, argAspirin, argHeadache)
	if !errors.Is(err, errExtractor) {
		t.Errorf("Extract() error = %v, want wrapped extractor error", err)
	}
}

func TestDefaultChainProducesValidFeatures(t *testing.T) {
	features, err := Default().Extract(testDoc, argAspirin, argHeadache)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if err := types.ValidateFeatures(features); err != nil {
		t.Errorf("default chain produced invalid feature: %v", err)
	}
}
