package relex

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	relexlib "github.com/soundprediction/relex"
	"github.com/soundprediction/relex/pkg/classifier"
	"github.com/soundprediction/relex/pkg/config"
	"github.com/soundprediction/relex/pkg/diagnostics"
	"github.com/soundprediction/relex/pkg/logger"
	"github.com/soundprediction/relex/pkg/sampling"
	"github.com/soundprediction/relex/pkg/schema"
	"github.com/soundprediction/relex/pkg/types"
)

// buildLogger creates the process logger from config.
func buildLogger(cfg *config.Config) *slog.Logger {
	return logger.New(os.Stderr, logger.ParseLevel(cfg.Log.Level), cfg.Log.Format)
}

// buildSchema loads the relation schema when one is configured.
func buildSchema(cfg *config.Config) (*schema.Schema, error) {
	if cfg.Extraction.SchemaPath == "" {
		return nil, nil
	}
	s, err := schema.Load(cfg.Extraction.SchemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}
	return s, nil
}

// buildOptions maps the extraction config onto pipeline options.
func buildOptions(cfg *config.Config, s *schema.Schema) relexlib.Options {
	return relexlib.Options{
		GoldView:       cfg.Extraction.GoldView,
		BothDirections: cfg.Extraction.BothDirections,
		NegativeRate:   cfg.Extraction.NegativeRate,
		Schema:         s,
	}
}

// buildSampler creates the negative sampler from the configured seed.
func buildSampler(cfg *config.Config) *sampling.Sampler {
	return sampling.New(cfg.Extraction.Seed)
}

// buildClassifier creates the inference classifier. The OpenAI provider needs
// a schema to enumerate the valid categories in its prompt.
func buildClassifier(cfg *config.Config, s *schema.Schema, log *slog.Logger) (classifier.Classifier, error) {
	var cls classifier.Classifier

	switch cfg.Classifier.Provider {
	case "openai":
		if s == nil {
			return nil, fmt.Errorf("openai classifier requires extraction.schema_path")
		}
		openaiCls, err := classifier.NewOpenAI(classifier.OpenAIConfig{
			APIKey:      cfg.Classifier.APIKey,
			BaseURL:     cfg.Classifier.BaseURL,
			Model:       cfg.Classifier.Model,
			Categories:  s.Names(),
			Temperature: cfg.Classifier.Temperature,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create classifier: %w", err)
		}
		cls = openaiCls
	case "static":
		cls = classifier.Static{Category: types.NoRelation}
	default:
		return nil, fmt.Errorf("unsupported classifier provider: %s", cfg.Classifier.Provider)
	}

	if cfg.CircuitBreaker.Enabled {
		cls = classifier.WithBreaker(cls, classifier.BreakerConfig{
			Name:             "classifier",
			MaxRequests:      cfg.CircuitBreaker.MaxRequests,
			Interval:         time.Duration(cfg.CircuitBreaker.Interval) * time.Second,
			Timeout:          time.Duration(cfg.CircuitBreaker.Timeout) * time.Second,
			ReadyToTripRatio: cfg.CircuitBreaker.ReadyToTripRatio,
		})
	}
	return cls, nil
}

// buildDiagnostics creates the error-analysis recorder. The returned closer
// owns the output file when one is configured; Close it after the recorder.
func buildDiagnostics(cfg *config.Config, log *slog.Logger) (*diagnostics.Recorder, *os.File, error) {
	opts := diagnostics.Options{
		Enabled:    cfg.Diagnostics.Enabled,
		Category:   cfg.Diagnostics.Category,
		ParquetDir: cfg.Diagnostics.ParquetDir,
	}

	var out *os.File
	if cfg.Diagnostics.Enabled && cfg.Diagnostics.Output != "" {
		f, err := os.Create(cfg.Diagnostics.Output)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open diagnostics output: %w", err)
		}
		opts.Out = f
		out = f
	}

	rec, err := diagnostics.New(opts, log)
	if err != nil {
		if out != nil {
			out.Close()
		}
		return nil, nil, err
	}
	return rec, out, nil
}

// readDocument loads one JSON document from disk.
func readDocument(path string) (*types.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document %s: %w", path, err)
	}
	defer f.Close()

	var doc types.Document
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", path, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid document %s: %w", path, err)
	}
	return &doc, nil
}
