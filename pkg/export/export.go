// Package export writes extracted relations to a Neo4j graph: one node per
// argument mention, one edge per relation record. Export is a downstream
// convenience and never feeds back into extraction.
package export

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/soundprediction/relex/pkg/types"
)

// Exporter exports documents' relation records to Neo4j.
type Exporter struct {
	driver   neo4j.DriverWithContext
	database string
	logger   *slog.Logger
}

// NewExporter connects to a Neo4j instance.
func NewExporter(uri, username, password, database string, logger *slog.Logger) (*Exporter, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}
	if database == "" {
		database = "neo4j"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{driver: driver, database: database, logger: logger}, nil
}

// Mention nodes are keyed by document id and span so re-exporting a document
// is idempotent. The relation edge carries the record's uuid and category.
const mergeRelationQuery = `
MERGE (a:Mention {document_id: $document_id, begin: $arg1_begin, end: $arg1_end})
SET a.text = $arg1_text
MERGE (b:Mention {document_id: $document_id, begin: $arg2_begin, end: $arg2_end})
SET b.text = $arg2_text
MERGE (a)-[r:RELATION {uuid: $uuid}]->(b)
SET r.category = $category
`

func relationParams(docID string, r types.RelationRecord) map[string]any {
	first, second := r.Arguments()
	return map[string]any{
		"document_id": docID,
		"arg1_begin":  first.Begin,
		"arg1_end":    first.End,
		"arg1_text":   first.Text,
		"arg2_begin":  second.Begin,
		"arg2_end":    second.End,
		"arg2_text":   second.Text,
		"uuid":        r.UUID,
		"category":    r.Category,
	}
}

// ExportDocument writes every relation record of the document in a single
// write transaction.
func (e *Exporter) ExportDocument(ctx context.Context, doc *types.Document) error {
	if len(doc.Relations) == 0 {
		return nil
	}

	session := e.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: e.database})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, r := range doc.Relations {
			if _, err := tx.Run(ctx, mergeRelationQuery, relationParams(doc.ID, r)); err != nil {
				return nil, fmt.Errorf("failed to export relation %s: %w", r.UUID, err)
			}
		}
		return nil, nil
	})
	if err != nil {
		return err
	}

	e.logger.Info("exported relations", "document_id", doc.ID, "count", len(doc.Relations))
	return nil
}

// Close releases the driver's connection pool.
func (e *Exporter) Close(ctx context.Context) error {
	return e.driver.Close(ctx)
}
