// Package settings resolves the user's translation settings from key-value
// storage and fills in defaults for anything missing.
package settings

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/valpere/honyaku/internal/prompt"
)

// Engine identifies a translation engine.
type Engine string

const (
	EngineGemini       Engine = "gemini"
	EngineChatGPT      Engine = "chatgpt"
	EngineChatGPTAzure Engine = "chatgpt_azure"
)

// DefaultAzureAPIVersion is used when no Azure API version is stored.
const DefaultAzureAPIVersion = "2023-07-01-preview"

// Storage keys.
const (
	KeyGeminiAPIKey              = "geminiApiKey"
	KeyTranslationEngine         = "translationEngine"
	KeyChatGPTAPIKey             = "chatgptApiKey"
	KeyAzureAPIKey               = "chatgptAzureApiKey"
	KeyAzureEndpoint             = "chatgptAzureEndpoint"
	KeyAzureDeploymentName       = "chatgptAzureDeploymentName"
	KeyAzureAPIVersion           = "chatgptAzureApiVersion"
	KeySystemPrompt              = "systemPrompt"
	KeyDoNotTranslateProperNouns = "doNotTranslateProperNouns"
	KeyIncludePageContent        = "includePageContent"
)

// Keys lists every storage key in a stable order.
var Keys = []string{
	KeyGeminiAPIKey,
	KeyTranslationEngine,
	KeyChatGPTAPIKey,
	KeyAzureAPIKey,
	KeyAzureEndpoint,
	KeyAzureDeploymentName,
	KeyAzureAPIVersion,
	KeySystemPrompt,
	KeyDoNotTranslateProperNouns,
	KeyIncludePageContent,
}

// secretKeys are masked whenever settings are shown.
var secretKeys = map[string]bool{
	KeyGeminiAPIKey:  true,
	KeyChatGPTAPIKey: true,
	KeyAzureAPIKey:   true,
}

// Settings is a fully-defaulted view of the user's configuration. Fields that
// belong to inactive engines may be empty.
type Settings struct {
	Engine                    Engine `json:"translationEngine"`
	GeminiAPIKey              string `json:"geminiApiKey,omitempty"`
	ChatGPTAPIKey             string `json:"chatgptApiKey,omitempty"`
	AzureAPIKey               string `json:"chatgptAzureApiKey,omitempty"`
	AzureEndpoint             string `json:"chatgptAzureEndpoint,omitempty"`
	AzureDeploymentName       string `json:"chatgptAzureDeploymentName,omitempty"`
	AzureAPIVersion           string `json:"chatgptAzureApiVersion"`
	SystemPrompt              string `json:"systemPrompt"`
	DoNotTranslateProperNouns bool   `json:"doNotTranslateProperNouns"`
	IncludePageContent        bool   `json:"includePageContent"`
}

// Source is a key-value store holding raw setting values. Missing keys are
// simply absent from the returned map.
type Source interface {
	Lookup(ctx context.Context, keys []string) (map[string]any, error)
}

// Resolver produces fully-populated settings.
type Resolver interface {
	Resolve(ctx context.Context) (Settings, error)
}

// Provider resolves settings from a Source.
type Provider struct {
	source Source
}

// NewProvider returns a Provider reading from source.
func NewProvider(source Source) *Provider {
	return &Provider{source: source}
}

// Resolve reads every key and applies defaults. Absent values never cause an
// error; only a failing Source does.
func (p *Provider) Resolve(ctx context.Context) (Settings, error) {
	values, err := p.source.Lookup(ctx, Keys)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}
	return FromValues(values), nil
}

// FromValues converts raw values into Settings, substituting defaults.
func FromValues(values map[string]any) Settings {
	str := func(key, def string) string {
		if s := cast.ToString(values[key]); s != "" {
			return s
		}
		return def
	}

	return Settings{
		Engine:                    Engine(str(KeyTranslationEngine, string(EngineGemini))),
		GeminiAPIKey:              str(KeyGeminiAPIKey, ""),
		ChatGPTAPIKey:             str(KeyChatGPTAPIKey, ""),
		AzureAPIKey:               str(KeyAzureAPIKey, ""),
		AzureEndpoint:             str(KeyAzureEndpoint, ""),
		AzureDeploymentName:       str(KeyAzureDeploymentName, ""),
		AzureAPIVersion:           str(KeyAzureAPIVersion, DefaultAzureAPIVersion),
		SystemPrompt:              str(KeySystemPrompt, prompt.DefaultSystem),
		DoNotTranslateProperNouns: cast.ToBool(values[KeyDoNotTranslateProperNouns]),
		IncludePageContent:        cast.ToBool(values[KeyIncludePageContent]),
	}
}

// IsKnownKey reports whether key is one of the storage keys.
func IsKnownKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// IsBoolKey reports whether key holds a feature flag.
func IsBoolKey(key string) bool {
	return key == KeyDoNotTranslateProperNouns || key == KeyIncludePageContent
}

// Masked returns a copy with API keys obscured, for display.
func (s Settings) Masked() Settings {
	s.GeminiAPIKey = Mask(s.GeminiAPIKey)
	s.ChatGPTAPIKey = Mask(s.ChatGPTAPIKey)
	s.AzureAPIKey = Mask(s.AzureAPIKey)
	return s
}

// MaskValue obscures value when key names a secret.
func MaskValue(key string, value any) any {
	if !secretKeys[key] {
		return value
	}
	return Mask(cast.ToString(value))
}

// Mask keeps the last four characters of a secret.
func Mask(secret string) string {
	if secret == "" {
		return ""
	}
	runes := []rune(secret)
	if len(runes) <= 4 {
		return strings.Repeat("*", len(runes))
	}
	return strings.Repeat("*", len(runes)-4) + string(runes[len(runes)-4:])
}
