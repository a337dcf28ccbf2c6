package dto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundprediction/relex/pkg/types"
)

func validRequest() ExtractRequest {
	return ExtractRequest{
		Document: types.Document{
			ID:        "doc-1",
			Text:      "aspirin treats headache",
			Sentences: []types.Span{{Begin: 0, End: 23}},
			Mentions: []types.ArgumentMention{
				{Span: types.Span{Begin: 0, End: 7}},
				{Span: types.Span{Begin: 15, End: 23}},
			},
		},
	}
}

func TestExtractRequestValidate(t *testing.T) {
	req := validRequest()
	require.NoError(t, req.Validate())

	t.Run("empty document id", func(t *testing.T) {
		req := validRequest()
		req.Document.ID = "  "
		assert.ErrorIs(t, req.Validate(), types.ErrEmptyDocumentID)
	})

	t.Run("oversized text", func(t *testing.T) {
		req := validRequest()
		req.Document.Text = strings.Repeat("a", MaxTextLength+1)
		assert.ErrorIs(t, req.Validate(), ErrTextTooLong)
	})

	t.Run("no sentences", func(t *testing.T) {
		req := validRequest()
		req.Document.Sentences = nil
		assert.Error(t, req.Validate())
	})

	t.Run("inverted sentence span", func(t *testing.T) {
		req := validRequest()
		req.Document.Sentences = []types.Span{{Begin: 10, End: 3}}
		assert.ErrorIs(t, req.Validate(), types.ErrInvalidSpan)
	})

	t.Run("inverted mention span", func(t *testing.T) {
		req := validRequest()
		req.Document.Mentions[0] = types.ArgumentMention{Span: types.Span{Begin: 7, End: 0}}
		assert.ErrorIs(t, req.Validate(), types.ErrInvalidSpan)
	})
}

func TestNewRelationResultNormalizesByRole(t *testing.T) {
	doc := &types.Document{
		ID:   "doc-1",
		Text: "aspirin treats headache",
	}
	first := types.ArgumentMention{Span: types.Span{Begin: 0, End: 7}}
	second := types.ArgumentMention{Span: types.Span{Begin: 15, End: 23}}

	// Arguments stored in swapped slots; roles still identify the first one.
	record := types.RelationRecord{
		UUID:     "u-1",
		Arg1:     types.RelationArgument{Mention: second, Role: types.RoleRelatedTo},
		Arg2:     types.RelationArgument{Mention: first, Role: types.RoleArgument},
		Category: "treats",
	}

	result := NewRelationResult(doc, record)
	assert.Equal(t, "aspirin", result.Arg1Text)
	assert.Equal(t, "headache", result.Arg2Text)
	assert.Equal(t, first.Span, result.Arg1)
	assert.Equal(t, "treats", result.Category)
}
