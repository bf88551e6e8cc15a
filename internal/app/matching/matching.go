// Package matching suggests a catalog service and skill tags for a free-text
// problem description, so a client can check out without browsing the catalog.
package matching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/app/ds"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

var (
	ErrNoMatch        = errors.New("no matching service")
	ErrUnknownService = errors.New("matcher picked a service outside the catalog")
)

// Suggestion is the matcher's pick.
type Suggestion struct {
	ServiceID uint     `json:"service_id"`
	Skills    []string `json:"skills"`
	Reason    string   `json:"reason"`
}

// generator produces one JSON answer for a prompt.
type generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

type Matcher struct {
	gen generator
}

// Gemini talks to the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Close() error {
	return g.client.Close()
}

func (g *Gemini) Generate(ctx context.Context, system, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.model)
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}

	res, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if res.UsageMetadata != nil {
		logrus.WithField("tokens", res.UsageMetadata.TotalTokenCount).Debug("gemini match")
	}
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil || len(res.Candidates[0].Content.Parts) == 0 {
		return "", ErrNoMatch
	}

	var out strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out.WriteString(string(text))
		}
	}
	return out.String(), nil
}

func NewMatcher(gen generator) *Matcher {
	return &Matcher{gen: gen}
}

const systemPrompt = `You route customer problems to a service catalog.
Answer with one JSON object: {"service_id": <id from the catalog>, "skills": [<short lowercase skill tags>], "reason": "<one sentence>"}.
Use service_id 0 when nothing in the catalog fits.`

// Suggest picks one of services for the description. Only ids present in
// services are accepted from the model.
func (m *Matcher) Suggest(ctx context.Context, description string, services []ds.Service) (*Suggestion, error) {
	if strings.TrimSpace(description) == "" {
		return nil, errors.New("empty description")
	}
	if len(services) == 0 {
		return nil, ErrNoMatch
	}

	var catalog strings.Builder
	known := make(map[uint]bool, len(services))
	for _, s := range services {
		known[s.ID] = true
		fmt.Fprintf(&catalog, "- id=%d name=%q description=%q\n", s.ID, s.Name, s.Description)
	}
	prompt := fmt.Sprintf("Catalog:\n%s\nProblem:\n%s", catalog.String(), description)

	raw, err := m.gen.Generate(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var s Suggestion
	if err := json.Unmarshal([]byte(stripFence(raw)), &s); err != nil {
		return nil, fmt.Errorf("unreadable match %q: %w", raw, err)
	}
	if s.ServiceID == 0 {
		return nil, ErrNoMatch
	}
	if !known[s.ServiceID] {
		return nil, fmt.Errorf("service %d: %w", s.ServiceID, ErrUnknownService)
	}
	s.Skills = normalizeSkills(s.Skills)
	return &s, nil
}

// stripFence removes a ```json fence some model versions still emit.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}

func normalizeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
