package assistant

import (
	"context"
	"strings"
	"time"

	"google.golang.org/genai"

	applog "storefront/internal/log"
	"storefront/internal/metrics"
)

// Gemini is a Generator backed by the Gemini API.
type Gemini struct {
	client *genai.Client
}

// NewGemini returns a nil Generator and no error when apiKey is empty so the
// caller can run the assistant offline.
func NewGemini(ctx context.Context, apiKey string) (Generator, error) {
	if apiKey == "" {
		return nil, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &Gemini{client: client}, nil
}

func (g *Gemini) Generate(ctx context.Context, req Request) (string, error) {
	var cfg *genai.GenerateContentConfig
	if req.SystemInstruction != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(req.SystemInstruction, genai.RoleUser),
		}
	}
	resp, err := g.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return "", err
	}
	return responseText(resp), nil
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil && !p.Thought {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}

// Open connects to Gemini when apiKey is set. A failed connection or a
// missing key leaves the assistant offline; the shop keeps working.
func Open(ctx context.Context, apiKey, model string, timeout time.Duration, m *metrics.Metrics) *Assistant {
	gen, err := NewGemini(ctx, apiKey)
	return New(connected(gen, err, apiKey), model, timeout, m)
}

func connected(gen Generator, err error, apiKey string) Generator {
	switch {
	case err != nil:
		applog.Warn("assistant.init.fail", err, nil)
		return nil
	case apiKey == "":
		applog.Warn("assistant.offline", nil, map[string]any{"reason": "GEMINI_API_KEY not set"})
	}
	return gen
}
