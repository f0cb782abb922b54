package engine

import (
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/valpere/honyaku/internal/settings"
)

// Options configures the engines built by NewRegistry.
type Options struct {
	GeminiBaseURL string
	GeminiModel   string
	OpenAIBaseURL string
	OpenAIModel   string
	Timeout       time.Duration
	// Client overrides the HTTP client; Timeout is ignored when it is set.
	Client *resty.Client
	Logger zerolog.Logger
}

// Registry maps engine identifiers to engines.
type Registry struct {
	engines map[settings.Engine]Engine
}

// NewRegistry builds the three engines around one HTTP client.
func NewRegistry(opts Options) *Registry {
	client := opts.Client
	if client == nil {
		client = NewHTTPClient(opts.Timeout, opts.Logger)
	}
	return NewRegistryOf(
		NewGemini(client, opts.GeminiBaseURL, opts.GeminiModel),
		NewOpenAI(client, opts.OpenAIBaseURL, opts.OpenAIModel),
		NewAzureOpenAI(client),
	)
}

// NewRegistryOf builds a registry from explicit engines keyed by their names.
func NewRegistryOf(engines ...Engine) *Registry {
	r := &Registry{engines: make(map[settings.Engine]Engine, len(engines))}
	for _, e := range engines {
		r.engines[settings.Engine(e.Name())] = e
	}
	return r
}

// Get returns the engine for id or ErrUnsupportedEngine.
func (r *Registry) Get(id settings.Engine) (Engine, error) {
	e, ok := r.engines[id]
	if !ok {
		return nil, ErrUnsupportedEngine
	}
	return e, nil
}
