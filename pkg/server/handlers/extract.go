package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soundprediction/relex"
	"github.com/soundprediction/relex/pkg/server/dto"
	"github.com/soundprediction/relex/pkg/store"
)

// ExtractHandler handles relation extraction requests
type ExtractHandler struct {
	extractor relex.Extractor
	store     *store.Store
	logger    *slog.Logger
}

// NewExtractHandler creates a new extract handler. The store may be nil when
// persistence is not configured.
func NewExtractHandler(extractor relex.Extractor, st *store.Store, logger *slog.Logger) *ExtractHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractHandler{
		extractor: extractor,
		store:     st,
		logger:    logger,
	}
}

// Extract handles POST /api/v1/extract
func (h *ExtractHandler) Extract(c *gin.Context) {
	var req dto.ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	doc := req.Document
	records, err := h.extractor.Extract(c.Request.Context(), &doc)
	if err != nil {
		h.logger.Error("extraction failed", "document_id", doc.ID, "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "extraction_failed",
			Message: err.Error(),
		})
		return
	}

	persisted := false
	if req.Persist && h.store != nil {
		if err := h.store.SaveRelations(doc.ID, records); err != nil {
			h.logger.Error("failed to persist relations", "document_id", doc.ID, "error", err)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error:   "persistence_failed",
				Message: err.Error(),
			})
			return
		}
		persisted = true
	}

	results := make([]dto.RelationResult, 0, len(records))
	for _, r := range records {
		results = append(results, dto.NewRelationResult(&doc, r))
	}

	c.JSON(http.StatusOK, dto.ExtractResponse{
		DocumentID: doc.ID,
		Relations:  results,
		Persisted:  persisted,
	})
}

// GetRelations handles GET /api/v1/documents/:id/relations
func (h *ExtractHandler) GetRelations(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error:   "store_unavailable",
			Message: "relation store is not configured",
		})
		return
	}

	docID := c.Param("id")
	records, err := h.store.RelationsByDocument(docID)
	if err != nil {
		h.logger.Error("failed to read relations", "document_id", docID, "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "read_failed",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"document_id": docID,
		"relations":   records,
	})
}
