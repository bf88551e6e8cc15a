package matching

import (
	"context"
	"errors"
	"strings"
	"testing"

	"marketplace/internal/app/ds"
)

type cannedGenerator struct {
	answer string
	err    error
	prompt string
}

func (c *cannedGenerator) Generate(_ context.Context, _, prompt string) (string, error) {
	c.prompt = prompt
	return c.answer, c.err
}

var catalog = []ds.Service{
	{ID: 1, Name: "Tax return", Description: "Personal income tax filing"},
	{ID: 2, Name: "Contract review", Description: "Legal review of a contract"},
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		name    string
		answer  string
		wantID  uint
		wantErr error
	}{
		{"plain", `{"service_id": 2, "skills": ["Law", "law", " contracts "], "reason": "contract"}`, 2, nil},
		{"fenced", "```json\n{\"service_id\": 1, \"skills\": [\"tax\"]}\n```", 1, nil},
		{"nothing fits", `{"service_id": 0}`, 0, ErrNoMatch},
		{"unknown id", `{"service_id": 42}`, 0, ErrUnknownService},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &cannedGenerator{answer: tt.answer}
			got, err := NewMatcher(gen).Suggest(context.Background(), "I need my lease checked", catalog)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Suggest: %v", err)
			}
			if got.ServiceID != tt.wantID {
				t.Errorf("service = %d, want %d", got.ServiceID, tt.wantID)
			}
			if !strings.Contains(gen.prompt, `name="Contract review"`) {
				t.Errorf("prompt missing catalog: %s", gen.prompt)
			}
		})
	}
}

func TestSuggestNormalizesSkills(t *testing.T) {
	gen := &cannedGenerator{answer: `{"service_id": 2, "skills": ["Law", "law", " Contracts ", ""]}`}
	got, err := NewMatcher(gen).Suggest(context.Background(), "lease", catalog)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if strings.Join(got.Skills, ",") != "law,contracts" {
		t.Errorf("skills = %v, want [law contracts]", got.Skills)
	}
}

func TestSuggestRejectsGarbage(t *testing.T) {
	_, err := NewMatcher(&cannedGenerator{answer: "sure! try service 2"}).Suggest(context.Background(), "lease", catalog)
	if err == nil {
		t.Fatal("want error for non-JSON answer")
	}
	if _, err := NewMatcher(&cannedGenerator{}).Suggest(context.Background(), "  ", catalog); err == nil {
		t.Fatal("want error for empty description")
	}
}
