package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/valpere/honyaku/internal"
	"github.com/valpere/honyaku/internal/settings"
)

const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	DefaultGeminiModel   = "gemini-2.5-flash"
)

type geminiPart struct {
	Text    string `json:"text"`
	Thought bool   `json:"thought,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiThinkingConfig struct {
	ThinkingBudget int `json:"thinkingBudget"`
}

type geminiGenerationConfig struct {
	ThinkingConfig *geminiThinkingConfig `json:"thinkingConfig,omitempty"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Gemini calls the Google generative language API.
type Gemini struct {
	client  *resty.Client
	baseURL string
	model   string
}

func NewGemini(client *resty.Client, baseURL, model string) *Gemini {
	if baseURL == "" {
		baseURL = DefaultGeminiBaseURL
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	return &Gemini{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
	}
}

func (g *Gemini) Name() string {
	return string(settings.EngineGemini)
}

func (g *Gemini) Translate(ctx context.Context, req internal.TranslationRequest, s settings.Settings) (string, error) {
	if s.GeminiAPIKey == "" {
		return "", ErrGeminiKeyMissing
	}
	generate := func(ctx context.Context, system string, turns []string) (string, error) {
		return g.generate(ctx, s.GeminiAPIKey, system, turns)
	}
	return twoPass(ctx, generate, req, s)
}

func (g *Gemini) generate(ctx context.Context, apiKey, system string, turns []string) (string, error) {
	parts := make([]geminiPart, len(turns))
	for i, t := range turns {
		parts[i] = geminiPart{Text: t}
	}

	body := geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: system}}},
		Contents:          []geminiContent{{Role: "user", Parts: parts}},
		// A zero budget turns thinking off.
		GenerationConfig: geminiGenerationConfig{ThinkingConfig: &geminiThinkingConfig{ThinkingBudget: 0}},
	}

	var out geminiResponse
	var apiErr errorBody
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("x-goog-api-key", apiKey).
		SetBody(body).
		SetResult(&out).
		SetError(&apiErr).
		Post(fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, g.model))
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", newAPIError(resp, &apiErr)
	}

	text := out.text()
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// text concatenates the answer parts of the first candidate, skipping thought
// summaries.
func (r geminiResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		if p.Thought {
			continue
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}
