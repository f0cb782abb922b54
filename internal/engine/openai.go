package engine

import (
	"context"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/valpere/honyaku/internal"
	"github.com/valpere/honyaku/internal/settings"
)

const (
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultOpenAIModel   = "gpt-4.1-mini"
)

// OpenAI calls the OpenAI chat completions API.
type OpenAI struct {
	client  *resty.Client
	baseURL string
	model   string
}

func NewOpenAI(client *resty.Client, baseURL, model string) *OpenAI {
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAI{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
	}
}

func (o *OpenAI) Name() string {
	return string(settings.EngineChatGPT)
}

func (o *OpenAI) Translate(ctx context.Context, req internal.TranslationRequest, s settings.Settings) (string, error) {
	if s.ChatGPTAPIKey == "" {
		return "", ErrChatGPTKeyMissing
	}

	ep := chatEndpoint{
		url:     o.baseURL + "/chat/completions",
		model:   o.model,
		headers: map[string]string{"Authorization": "Bearer " + s.ChatGPTAPIKey},
	}
	generate := func(ctx context.Context, system string, turns []string) (string, error) {
		return chatComplete(ctx, o.client, ep, system, turns)
	}
	return twoPass(ctx, generate, req, s)
}
