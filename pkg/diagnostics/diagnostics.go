// Package diagnostics emits per-pair error-analysis records during
// classification. The channel is strictly observational: nothing here may
// alter labeling or prediction outcomes, and sink failures never propagate
// to the caller.
package diagnostics

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"

	"github.com/soundprediction/relex/pkg/types"
)

// Record is one classified pair with its predicted and gold categories,
// stored in Parquet when a mirror directory is configured.
type Record struct {
	ID         string    `parquet:"id"`
	InstanceID int64     `parquet:"instance_id"`
	Timestamp  time.Time `parquet:"timestamp"`
	DocumentID string    `parquet:"document_id"`
	Predicted  string    `parquet:"predicted"`
	Gold       string    `parquet:"gold"`
	Arg1Text   string    `parquet:"arg1_text"`
	Arg2Text   string    `parquet:"arg2_text"`
	Sentence   string    `parquet:"sentence"`
	Features   string    `parquet:"features"` // JSON string
}

// Options configures the recorder.
type Options struct {
	// Enabled gates all output; a disabled recorder is a no-op.
	Enabled bool
	// Category restricts output to pairs whose gold category matches.
	// Empty means every misclassified pair is recorded.
	Category string
	// Out receives the human-readable records. Defaults to stdout. The text
	// format is for people, not machines, and may change.
	Out io.Writer
	// ParquetDir, when set, mirrors records to Parquet files for offline
	// analysis.
	ParquetDir string
}

// Recorder writes diagnostic records for misclassified pairs. The instance id
// counter increments in emission order; the pipeline is single-threaded, so
// the recorder does no locking.
type Recorder struct {
	opts       Options
	logger     *slog.Logger
	instanceID int64
	buffer     []Record
}

// New creates a recorder. A nil logger falls back to slog.Default().
func New(opts Options, logger *slog.Logger) (*Recorder, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.ParquetDir != "" {
		if err := os.MkdirAll(opts.ParquetDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create diagnostics directory: %w", err)
		}
	}
	return &Recorder{opts: opts, logger: logger}, nil
}

// Record emits one diagnostic record if the recorder is enabled, the
// prediction disagrees with gold, and the gold category matches the
// configured category of interest. Sink failures are logged and swallowed.
func (r *Recorder) Record(doc *types.Document, sentence types.Span, arg1, arg2 types.ArgumentMention, features []types.Feature, predicted, gold string) {
	if !r.opts.Enabled {
		return
	}
	if predicted == gold {
		return
	}
	if r.opts.Category != "" && gold != r.opts.Category {
		return
	}

	id := r.instanceID
	r.instanceID++

	featuresJSON, err := json.Marshal(features)
	if err != nil {
		r.logger.Warn("failed to encode diagnostic features", "error", err)
		featuresJSON = []byte("[]")
	}

	if err := r.writeText(id, doc, sentence, arg1, arg2, featuresJSON, predicted, gold); err != nil {
		r.logger.Warn("failed to write diagnostic record", "error", err, "instance_id", id)
	}

	if r.opts.ParquetDir != "" {
		r.buffer = append(r.buffer, Record{
			ID:         uuid.NewString(),
			InstanceID: id,
			Timestamp:  time.Now().UTC(),
			DocumentID: doc.ID,
			Predicted:  predicted,
			Gold:       gold,
			Arg1Text:   doc.CoveredText(arg1.Span),
			Arg2Text:   doc.CoveredText(arg2.Span),
			Sentence:   doc.CoveredText(sentence),
			Features:   string(featuresJSON),
		})
	}
}

func (r *Recorder) writeText(id int64, doc *types.Document, sentence types.Span, arg1, arg2 types.ArgumentMention, featuresJSON []byte, predicted, gold string) error {
	_, err := fmt.Fprintf(r.opts.Out,
		"%-15s%d\n%-15s%s\n%-15s%s\n%-15s%s\n%-15s%s\n%-15s%s\n\n%s\n\n",
		"instance id:", id,
		"prediction:", predicted,
		"gold label:", gold,
		"arg1:", doc.CoveredText(arg1.Span),
		"arg2:", doc.CoveredText(arg2.Span),
		"sentence:", doc.CoveredText(sentence),
		featuresJSON,
	)
	return err
}

// InstanceID returns the next instance id to be assigned.
func (r *Recorder) InstanceID() int64 {
	return r.instanceID
}

// Close flushes any buffered Parquet records. Safe to call on a recorder
// without a Parquet mirror.
func (r *Recorder) Close() error {
	if r.opts.ParquetDir == "" || len(r.buffer) == 0 {
		return nil
	}

	filename := fmt.Sprintf("relation_errors_%s_%d.parquet",
		time.Now().Format("20060102_150405"), time.Now().UnixNano())
	path := filepath.Join(r.opts.ParquetDir, filename)

	if err := parquet.WriteFile(path, r.buffer); err != nil {
		return fmt.Errorf("failed to write diagnostics parquet file: %w", err)
	}
	r.buffer = r.buffer[:0]
	return nil
}
