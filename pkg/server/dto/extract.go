package dto

import (
	"errors"
	"strings"

	"github.com/soundprediction/relex/pkg/types"
)

// MaxTextLength bounds the document text accepted over the API.
const MaxTextLength = 1 << 20

// ErrTextTooLong is returned when the document text exceeds MaxTextLength.
var ErrTextTooLong = errors.New("document text exceeds maximum length")

// ExtractRequest carries one document to run relation extraction over.
type ExtractRequest struct {
	Document types.Document `json:"document" binding:"required"`

	// Persist stores the extracted relations under the document id.
	Persist bool `json:"persist,omitempty"`
}

// Validate performs validation on ExtractRequest
func (r *ExtractRequest) Validate() error {
	if strings.TrimSpace(r.Document.ID) == "" {
		return types.ErrEmptyDocumentID
	}
	if len(r.Document.Text) > MaxTextLength {
		return ErrTextTooLong
	}
	if len(r.Document.Sentences) == 0 {
		return errors.New("document has no sentences")
	}
	for _, s := range r.Document.Sentences {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	for _, m := range r.Document.Mentions {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// RelationResult is one extracted relation in API form.
type RelationResult struct {
	UUID     string `json:"uuid"`
	Category string `json:"category"`
	Arg1Text string `json:"arg1_text"`
	Arg2Text string `json:"arg2_text"`
	Arg1     types.Span `json:"arg1"`
	Arg2     types.Span `json:"arg2"`
}

// NewRelationResult converts a relation record, resolving argument order by
// role and argument text against the document.
func NewRelationResult(doc *types.Document, r types.RelationRecord) RelationResult {
	first, second := r.Arguments()
	return RelationResult{
		UUID:     r.UUID,
		Category: r.Category,
		Arg1Text: doc.CoveredText(first.Span),
		Arg2Text: doc.CoveredText(second.Span),
		Arg1:     first.Span,
		Arg2:     second.Span,
	}
}

// ExtractResponse lists the relations extracted from one document.
type ExtractResponse struct {
	DocumentID string           `json:"document_id"`
	Relations  []RelationResult `json:"relations"`
	Persisted  bool             `json:"persisted"`
}
