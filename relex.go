package relex

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/soundprediction/relex/pkg/classifier"
	"github.com/soundprediction/relex/pkg/diagnostics"
	"github.com/soundprediction/relex/pkg/features"
	"github.com/soundprediction/relex/pkg/pairs"
	"github.com/soundprediction/relex/pkg/relindex"
	"github.com/soundprediction/relex/pkg/sampling"
	"github.com/soundprediction/relex/pkg/schema"
	"github.com/soundprediction/relex/pkg/types"
)

var (
	// ErrGoldViewRequired is returned when Train is called without a
	// configured gold view.
	ErrGoldViewRequired = errors.New("gold view must be configured for training")
	// ErrNoDataWriter is returned when Train is called without a training sink.
	ErrNoDataWriter = errors.New("data writer must be configured for training")
	// ErrNoClassifier is returned when Extract is called without a classifier.
	ErrNoClassifier = errors.New("classifier must be configured for extraction")
)

// Options holds the per-run policy for candidate generation and labeling.
type Options struct {
	// GoldView names the annotation view holding manual relations. Required
	// for training; optional for extraction, where it enables gold-versus-
	// predicted diagnostics.
	GoldView string

	// BothDirections classifies each pair {X,Y} twice, once per argument
	// order. When off (the default), each pair is seen once in sentence
	// order and a relation holding in the reverse order is encoded with the
	// inverted label suffix.
	BothDirections bool

	// NegativeRate is the probability of keeping a candidate pair that
	// resolves to no relation. Zero drops every negative.
	NegativeRate float64

	// Schema optionally restricts predicted categories; predictions outside
	// it are dropped with a warning.
	Schema *schema.Schema
}

// DefaultOptions returns the options for a run that keeps every negative
// example and classifies a single direction.
func DefaultOptions() Options {
	return Options{NegativeRate: 1.0}
}

// Pipeline drives relation extraction over documents. It is single-threaded:
// sentences and candidate pairs are processed strictly in enumeration order,
// because the negative sampler is one shared order-sensitive stream and the
// diagnostics counter increments in emission order.
type Pipeline struct {
	chain      *features.Chain
	writer     DataWriter
	classifier classifier.Classifier
	sampler    *sampling.Sampler
	diag       *diagnostics.Recorder
	opts       Options
	logger     *slog.Logger
}

// NewPipeline assembles a pipeline. The writer is required for Train, the
// classifier for Extract; either may be nil when only the other mode is used.
// A nil chain uses features.Default(), a nil sampler a sampler with the fixed
// default seed, and a nil recorder disables diagnostics.
func NewPipeline(chain *features.Chain, writer DataWriter, cls classifier.Classifier, sampler *sampling.Sampler, diag *diagnostics.Recorder, opts Options, logger *slog.Logger) (*Pipeline, error) {
	if chain == nil {
		chain = features.Default()
	}
	if sampler == nil {
		sampler = sampling.New(sampling.DefaultSeed)
	}
	if diag == nil {
		var err error
		diag, err = diagnostics.New(diagnostics.Options{}, logger)
		if err != nil {
			return nil, err
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if opts.NegativeRate < 0 || opts.NegativeRate > 1 {
		return nil, fmt.Errorf("negative rate %f out of range [0,1]", opts.NegativeRate)
	}

	return &Pipeline{
		chain:      chain,
		writer:     writer,
		classifier: cls,
		sampler:    sampler,
		diag:       diag,
		opts:       opts,
		logger:     logger,
	}, nil
}

// Train walks the document's sentences, labels every candidate pair against
// the gold view and writes the retained examples to the training sink. The
// count of written examples is returned.
//
// Both mentions and relations are read from the gold view: training operates
// entirely on the manual annotations.
func (p *Pipeline) Train(ctx context.Context, doc *types.Document) (int, error) {
	if p.opts.GoldView == "" {
		return 0, ErrGoldViewRequired
	}
	if p.writer == nil {
		return 0, ErrNoDataWriter
	}

	gold, err := doc.View(p.opts.GoldView)
	if err != nil {
		return 0, fmt.Errorf("resolving gold view %q: %w", p.opts.GoldView, err)
	}

	// The index assumes at most one relation per ordered pair; see
	// relindex.Build for the overwrite behavior on violating inputs.
	ix := relindex.Build(gold.Relations)

	written := 0
	for _, sentence := range doc.Sentences {
		args := gold.MentionsWithin(sentence)
		for _, pair := range pairs.Generate(args, p.opts.BothDirections) {
			fs, err := p.extractFeatures(doc, pair)
			if err != nil {
				return written, err
			}

			label, keep := p.resolveLabel(ix, pair)
			if !keep {
				continue
			}

			example := types.TrainingExample{Features: fs, Label: label.Encode()}
			if err := p.writer.Write(example); err != nil {
				return written, fmt.Errorf("writing training example: %w", err)
			}
			written++
		}
	}

	p.logger.Info("trained on document",
		"document_id", doc.ID,
		"examples", written,
		"both_directions", p.opts.BothDirections,
	)
	return written, nil
}

// resolveLabel matches a candidate pair against the gold index.
//
// In both-directions mode only the queried order is consulted; the reverse
// order arrives later as its own candidate. In single-direction mode the
// reverse order is consulted too and yields an inverted label. A pair that
// resolves to no relation consumes exactly one sampler draw, in candidate
// order; positive pairs consume none.
func (p *Pipeline) resolveLabel(ix *relindex.Index, pair pairs.Pair) (types.Label, bool) {
	if r, ok := ix.Lookup(pair.Arg1, pair.Arg2); ok {
		return types.Forward(r.Category), true
	}
	if !p.opts.BothDirections {
		if r, ok := ix.Lookup(pair.Arg2, pair.Arg1); ok {
			return types.Inverted(r.Category), true
		}
	}
	if p.sampler.Keep(p.opts.NegativeRate) {
		return types.NoRelationLabel(), true
	}
	return types.Label{}, false
}

// Extract classifies every candidate pair in the document, appends a relation
// record for each positive prediction and returns the appended records.
//
// A predicted category carrying the inverted marker is stripped and its
// arguments swapped before the record is materialized, so stored relations
// always read in their true direction.
func (p *Pipeline) Extract(ctx context.Context, doc *types.Document) ([]types.RelationRecord, error) {
	if p.classifier == nil {
		return nil, ErrNoClassifier
	}

	goldCategories, err := p.goldCategories(doc)
	if err != nil {
		return nil, err
	}

	var appended []types.RelationRecord
	for _, sentence := range doc.Sentences {
		args := doc.MentionsWithin(sentence)
		for _, pair := range pairs.Generate(args, p.opts.BothDirections) {
			fs, err := p.extractFeatures(doc, pair)
			if err != nil {
				return appended, err
			}

			predicted, err := p.classifier.Classify(ctx, fs)
			if err != nil {
				return appended, fmt.Errorf("classifying pair (%d,%d)-(%d,%d): %w",
					pair.Arg1.Begin, pair.Arg1.End, pair.Arg2.Begin, pair.Arg2.End, err)
			}

			gold := types.NoRelation
			if g, ok := goldCategories[relindex.Key(pair.Arg1, pair.Arg2)]; ok {
				gold = g
			}
			p.diag.Record(doc, sentence, pair.Arg1, pair.Arg2, fs, predicted, gold)

			label := types.ParseLabel(predicted)
			if label.IsNoRelation() {
				continue
			}
			if p.opts.Schema != nil && !p.opts.Schema.Has(predicted) {
				p.logger.Warn("dropping prediction outside schema",
					"category", predicted, "document_id", doc.ID)
				continue
			}

			first, second := pair.Arg1, pair.Arg2
			if label.Inverted {
				first, second = second, first
			}
			record := types.NewRelation(first, second, label.Category)
			doc.AppendRelation(record)
			appended = append(appended, record)
		}
	}

	p.logger.Info("extracted relations", "document_id", doc.ID, "count", len(appended))
	return appended, nil
}

// goldCategories resolves the held-out gold view for error analysis. Gold is
// optional during extraction: without a configured view, or with diagnostics
// disabled, every pair compares against the negative sentinel.
func (p *Pipeline) goldCategories(doc *types.Document) (map[relindex.SpanKey]string, error) {
	if p.opts.GoldView == "" {
		return nil, nil
	}
	gold, err := doc.View(p.opts.GoldView)
	if err != nil {
		return nil, fmt.Errorf("resolving gold view %q: %w", p.opts.GoldView, err)
	}
	return relindex.Categories(gold.Relations), nil
}

// extractFeatures runs the chain and validates the result. A feature with a
// nil value aborts the document rather than training or classifying on
// silently corrupted input.
func (p *Pipeline) extractFeatures(doc *types.Document, pair pairs.Pair) ([]types.Feature, error) {
	fs, err := p.chain.Extract(doc, pair.Arg1, pair.Arg2)
	if err != nil {
		return nil, err
	}
	if err := types.ValidateFeatures(fs); err != nil {
		return nil, fmt.Errorf("document %s: %w", doc.ID, err)
	}
	return fs, nil
}

// Diagnostics exposes the recorder, mainly so callers can flush it.
func (p *Pipeline) Diagnostics() *diagnostics.Recorder {
	return p.diag
}
