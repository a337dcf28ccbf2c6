package classifier

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sony/gobreaker"

	"github.com/soundprediction/relex/pkg/types"
)

func TestStatic(t *testing.T) {
	c := Static{Category: "-NONE-"}
	got, err := c.Classify(context.Background(), nil)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if got != "-NONE-" {
		t.Errorf("Classify() = %q", got)
	}
}

func TestFunc(t *testing.T) {
	var seen []types.Feature
	c := Func(func(_ context.Context, features []types.Feature) (string, error) {
		seen = features
		return "treats", nil
	})

	features := []types.Feature{{Name: "arg_distance", Value: 3}}
	got, err := c.Classify(context.Background(), features)
	if err != nil || got != "treats" {
		t.Fatalf("Classify() = %q, %v", got, err)
	}
	if len(seen) != 1 {
		t.Error("features not forwarded")
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{"clean json", `{"category": "treats"}`, "treats", false},
		{"inverted label", `{"category": "treats-1"}`, "treats-1", false},
		{"trailing prose", `{"category": "location_of"} Hope that helps!`, "location_of", false},
		{"unquoted key", `{category: "treats"}`, "treats", false},
		{"missing category", `{"label": "treats"}`, "", true},
		{"not json at all", `the relation is treats`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCategory(tt.content)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseCategory(%q) error = %v, wantErr %v", tt.content, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseCategory(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

func TestBuildSystemPrompt(t *testing.T) {
	prompt := buildSystemPrompt([]string{"treats", "location_of"})

	for _, want := range []string{"treats", "treats-1", "location_of-1", types.NoRelation} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestNewOpenAIValidation(t *testing.T) {
	if _, err := NewOpenAI(OpenAIConfig{Categories: []string{"treats"}}, nil); err == nil {
		t.Error("expected error for missing model")
	}
	if _, err := NewOpenAI(OpenAIConfig{Model: "gpt-4o-mini"}, nil); err == nil {
		t.Error("expected error for empty category set")
	}
	if _, err := NewOpenAI(OpenAIConfig{Model: "gpt-4o-mini", Categories: []string{"treats"}}, nil); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestBreakerOpensAfterFailures(t *testing.T) {
	failing := Func(func(context.Context, []types.Feature) (string, error) {
		return "", errors.New("model unavailable")
	})
	b := WithBreaker(failing, BreakerConfig{Name: "test", ReadyToTripRatio: 0.5})

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		b.Classify(ctx, nil)
	}

	_, err := b.Classify(ctx, nil)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected open breaker, got %v", err)
	}
}

func TestBreakerPassesThroughSuccess(t *testing.T) {
	b := WithBreaker(Static{Category: "treats"}, BreakerConfig{})

	got, err := b.Classify(context.Background(), nil)
	if err != nil || got != "treats" {
		t.Errorf("Classify() = %q, %v", got, err)
	}
}
