package relex

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	relexlib "github.com/soundprediction/relex"
	"github.com/soundprediction/relex/pkg/config"
	"github.com/soundprediction/relex/pkg/export"
	"github.com/soundprediction/relex/pkg/store"
	"github.com/soundprediction/relex/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract [document.json ...]",
	Short: "Extract relations from annotated documents",
	Long: `Classify every candidate argument pair in each document and record the
predicted relations. Documents with their extracted relations are written back
as JSON; relations can additionally be persisted to the local store and
exported to Neo4j.

When a gold view is configured, predictions are compared against it and
misclassified pairs are written to the diagnostics output.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

var (
	extractOutDir  string
	extractPersist bool
	extractExport  bool
)

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&extractOutDir, "out-dir", "o", ".", "Directory for documents with extracted relations")
	extractCmd.Flags().BoolVar(&extractPersist, "persist", false, "Persist extracted relations to the local store")
	extractCmd.Flags().BoolVar(&extractExport, "export", false, "Export extracted relations to Neo4j")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := buildLogger(cfg)

	s, err := buildSchema(cfg)
	if err != nil {
		return err
	}

	cls, err := buildClassifier(cfg, s, log)
	if err != nil {
		return err
	}

	diag, diagOut, err := buildDiagnostics(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := diag.Close(); err != nil {
			log.Warn("failed to flush diagnostics", "error", err)
		}
		if diagOut != nil {
			diagOut.Close()
		}
	}()

	pipeline, err := relexlib.NewPipeline(nil, nil, cls, buildSampler(cfg), diag, buildOptions(cfg, s), log)
	if err != nil {
		return err
	}

	var st *store.Store
	if extractPersist {
		st, err = store.Open(cfg.Store.Path, log)
		if err != nil {
			return err
		}
		defer st.Close()
	}

	var exporter *export.Exporter
	if extractExport {
		exporter, err = export.NewExporter(cfg.Export.URI, cfg.Export.Username, cfg.Export.Password, cfg.Export.Database, log)
		if err != nil {
			return err
		}
		defer exporter.Close(cmd.Context())
	}

	if err := os.MkdirAll(extractOutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	total := 0
	for _, path := range args {
		doc, err := readDocument(path)
		if err != nil {
			return err
		}

		records, err := pipeline.Extract(cmd.Context(), doc)
		if err != nil {
			return fmt.Errorf("extraction on %s: %w", path, err)
		}
		total += len(records)

		if st != nil {
			if err := st.SaveRelations(doc.ID, records); err != nil {
				return fmt.Errorf("persisting relations for %s: %w", doc.ID, err)
			}
		}
		if exporter != nil {
			if err := exporter.ExportDocument(cmd.Context(), doc); err != nil {
				return fmt.Errorf("exporting relations for %s: %w", doc.ID, err)
			}
		}

		if err := writeDocument(extractOutDir, doc); err != nil {
			return err
		}
	}

	log.Info("extraction finished", "documents", len(args), "relations", total)
	return nil
}

func writeDocument(dir string, doc *types.Document) error {
	path := fmt.Sprintf("%s/%s.json", dir, doc.ID)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
