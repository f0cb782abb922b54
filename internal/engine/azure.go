package engine

import (
	"context"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/valpere/honyaku/internal"
	"github.com/valpere/honyaku/internal/settings"
)

// AzureOpenAI calls a chat completions deployment on Azure OpenAI. Endpoint,
// deployment and API version all come from the user's settings.
type AzureOpenAI struct {
	client *resty.Client
}

func NewAzureOpenAI(client *resty.Client) *AzureOpenAI {
	return &AzureOpenAI{client: client}
}

func (a *AzureOpenAI) Name() string {
	return string(settings.EngineChatGPTAzure)
}

func (a *AzureOpenAI) Translate(ctx context.Context, req internal.TranslationRequest, s settings.Settings) (string, error) {
	if s.AzureAPIKey == "" || s.AzureEndpoint == "" || s.AzureDeploymentName == "" {
		return "", ErrAzureConfigIncomplete
	}

	ep := chatEndpoint{
		url:     azureChatURL(s.AzureEndpoint, s.AzureDeploymentName),
		model:   s.AzureDeploymentName,
		headers: map[string]string{"api-key": s.AzureAPIKey},
		query:   map[string]string{"api-version": s.AzureAPIVersion},
	}
	generate := func(ctx context.Context, system string, turns []string) (string, error) {
		return chatComplete(ctx, a.client, ep, system, turns)
	}
	return twoPass(ctx, generate, req, s)
}

// azureChatURL accepts the endpoint with or without a trailing slash.
func azureChatURL(endpoint, deployment string) string {
	return strings.TrimRight(endpoint, "/") + "/openai/deployments/" + url.PathEscape(deployment) + "/chat/completions"
}
