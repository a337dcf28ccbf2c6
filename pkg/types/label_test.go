package types

import "testing"

func TestLabelEncode(t *testing.T) {
	tests := []struct {
		name  string
		label Label
		want  string
	}{
		{"forward", Forward("treats"), "treats"},
		{"inverted", Inverted("treats"), "treats-1"},
		{"no relation", NoRelationLabel(), "-NONE-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.label.Encode(); got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseLabel(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
		want    Label
	}{
		{"forward", "treats", Forward("treats")},
		{"inverted", "treats-1", Inverted("treats")},
		{"no relation", "-NONE-", Label{Category: NoRelation}},
		{"underscored category", "location_of-1", Inverted("location_of")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLabel(tt.encoded); got != tt.want {
				t.Errorf("ParseLabel(%q) = %+v, want %+v", tt.encoded, got, tt.want)
			}
		})
	}
}

func TestLabelRoundtrip(t *testing.T) {
	labels := []Label{
		Forward("treats"),
		Inverted("treats"),
		Forward("location_of"),
		Inverted("location_of"),
		NoRelationLabel(),
	}

	for _, l := range labels {
		if got := ParseLabel(l.Encode()); got != l {
			t.Errorf("ParseLabel(Encode(%+v)) = %+v", l, got)
		}
	}
}

func TestIsNoRelation(t *testing.T) {
	if !NoRelationLabel().IsNoRelation() {
		t.Error("NoRelationLabel should report IsNoRelation")
	}
	if Forward("treats").IsNoRelation() {
		t.Error("forward label should not report IsNoRelation")
	}
	if !ParseLabel("-NONE-").IsNoRelation() {
		t.Error("parsed sentinel should report IsNoRelation")
	}
}
