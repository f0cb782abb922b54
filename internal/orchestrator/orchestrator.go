// Package orchestrator handles one translation request end to end: resolve
// settings, pick the engine, translate, and fold the outcome into a response
// envelope.
package orchestrator

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/valpere/honyaku/internal"
	"github.com/valpere/honyaku/internal/engine"
	"github.com/valpere/honyaku/internal/settings"
)

// unknownError is reported when an error carries no message at all.
const unknownError = "不明なエラー"

// EngineSelector maps an engine identifier to an engine.
type EngineSelector interface {
	Get(id settings.Engine) (engine.Engine, error)
}

// SettingsOverride adjusts resolved settings for a single call, e.g. from CLI
// flags. It runs after defaults are applied.
type SettingsOverride func(*settings.Settings)

type Orchestrator struct {
	settings  settings.Resolver
	engines   EngineSelector
	logger    zerolog.Logger
	overrides []SettingsOverride
}

func New(resolver settings.Resolver, engines EngineSelector, logger zerolog.Logger, overrides ...SettingsOverride) *Orchestrator {
	return &Orchestrator{
		settings:  resolver,
		engines:   engines,
		logger:    logger,
		overrides: overrides,
	}
}

// Execute never fails: every error becomes a failure envelope carrying only
// the error's message.
func (o *Orchestrator) Execute(ctx context.Context, req internal.TranslationRequest) internal.TranslationResponse {
	reqID := uuid.New().String()
	start := time.Now()
	log := o.logger.With().Str("request_id", reqID).Logger()

	translation, engineName, err := o.translate(ctx, req)

	resp := internal.Succeeded(translation)
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = unknownError
		}
		resp = internal.Failed(msg)
		log.Error().
			Err(err).
			Str("engine", engineName).
			Dur("latency", time.Since(start)).
			Msg("translation failed")
	} else {
		log.Info().
			Str("engine", engineName).
			Int("source_chars", len([]rune(req.Text))).
			Bool("page_content", req.PageContent != "").
			Dur("latency", time.Since(start)).
			Msg("translation succeeded")
	}

	resp.ID = req.ID
	return resp
}

func (o *Orchestrator) translate(ctx context.Context, req internal.TranslationRequest) (string, string, error) {
	s, err := o.settings.Resolve(ctx)
	if err != nil {
		return "", "", err
	}
	for _, override := range o.overrides {
		override(&s)
	}

	eng, err := o.engines.Get(s.Engine)
	if err != nil {
		return "", string(s.Engine), err
	}

	translation, err := eng.Translate(ctx, req, s)
	if err != nil {
		return "", eng.Name(), err
	}
	if translation == "" {
		return "", eng.Name(), engine.ErrEmptyResponse
	}
	return translation, eng.Name(), nil
}
