// Package classifier provides implementations of the relation classifier
// contract. The core treats classifiers as opaque: features in, encoded
// category out. Determinism is not guaranteed; remote models may be
// stochastic.
package classifier

import (
	"context"

	"github.com/soundprediction/relex/pkg/types"
)

// Classifier assigns an encoded relation category to a feature vector.
// The returned string may carry the inverted suffix; callers decode it with
// types.ParseLabel.
type Classifier interface {
	Classify(ctx context.Context, features []types.Feature) (string, error)
}

// Func adapts a plain function to the Classifier interface.
type Func func(ctx context.Context, features []types.Feature) (string, error)

// Classify implements Classifier.
func (f Func) Classify(ctx context.Context, features []types.Feature) (string, error) {
	return f(ctx, features)
}

// Static always returns the same category. Useful in tests and as a
// placeholder while a model is being trained.
type Static struct {
	Category string
}

// Classify implements Classifier.
func (s Static) Classify(context.Context, []types.Feature) (string, error) {
	return s.Category, nil
}
