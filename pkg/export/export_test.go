package export

import (
	"testing"

	"github.com/soundprediction/relex/pkg/types"
)

func TestRelationParamsNormalizeByRole(t *testing.T) {
	a := types.ArgumentMention{Span: types.Span{Begin: 0, End: 7}, Text: "aspirin"}
	b := types.ArgumentMention{Span: types.Span{Begin: 15, End: 23}, Text: "headache"}

	// Slot order reversed; role metadata still marks a as first.
	r := types.RelationRecord{
		UUID:     "rel-1",
		Arg1:     types.RelationArgument{Mention: b, Role: types.RoleRelatedTo},
		Arg2:     types.RelationArgument{Mention: a, Role: types.RoleArgument},
		Category: "treats",
	}

	params := relationParams("doc-1", r)

	if params["arg1_begin"] != 0 || params["arg1_text"] != "aspirin" {
		t.Errorf("arg1 params = %v/%v, want aspirin first", params["arg1_begin"], params["arg1_text"])
	}
	if params["arg2_begin"] != 15 || params["arg2_text"] != "headache" {
		t.Errorf("arg2 params = %v/%v, want headache second", params["arg2_begin"], params["arg2_text"])
	}
	if params["category"] != "treats" || params["uuid"] != "rel-1" {
		t.Errorf("relation params = %v/%v", params["category"], params["uuid"])
	}
	if params["document_id"] != "doc-1" {
		t.Errorf("document_id = %v", params["document_id"])
	}
}
