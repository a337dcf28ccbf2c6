package relex

import (
	"context"

	"github.com/soundprediction/relex/pkg/types"
)

// This file defines the collaborator contracts the pipeline consumes and the
// focused interfaces it exposes. Consumers should depend on the smallest
// interface that meets their needs.

// DataWriter is the classifier-training sink. It receives labeled examples in
// candidate-generation order; a write failure is fatal to the run.
type DataWriter interface {
	Write(example types.TrainingExample) error
}

// DataWriterFunc adapts a plain function to the DataWriter interface.
type DataWriterFunc func(example types.TrainingExample) error

// Write implements DataWriter.
func (f DataWriterFunc) Write(example types.TrainingExample) error {
	return f(example)
}

// Trainer emits training examples for a document's candidate pairs.
type Trainer interface {
	// Train processes one document and returns the number of examples
	// written to the training sink.
	Train(ctx context.Context, doc *types.Document) (int, error)
}

// Extractor classifies a document's candidate pairs and materializes
// relation records.
type Extractor interface {
	// Extract processes one document, appends predicted relations to the
	// document's relation store and returns the appended records.
	Extract(ctx context.Context, doc *types.Document) ([]types.RelationRecord, error)
}

// Ensure Pipeline satisfies the focused interfaces.
var _ interface {
	Trainer
	Extractor
} = (*Pipeline)(nil)
