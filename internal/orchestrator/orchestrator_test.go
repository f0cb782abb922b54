package orchestrator

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/valpere/honyaku/internal"
	"github.com/valpere/honyaku/internal/engine"
	"github.com/valpere/honyaku/internal/settings"
)

type mockEngine struct {
	nameVal       string
	translateFunc func(ctx context.Context, req internal.TranslationRequest, s settings.Settings) (string, error)
	callCount     atomic.Int32
	lastSettings  settings.Settings
}

func (m *mockEngine) Name() string { return m.nameVal }

func (m *mockEngine) Translate(ctx context.Context, req internal.TranslationRequest, s settings.Settings) (string, error) {
	m.callCount.Add(1)
	m.lastSettings = s
	if m.translateFunc != nil {
		return m.translateFunc(ctx, req, s)
	}
	return "mock result", nil
}

type resolverFunc func(ctx context.Context) (settings.Settings, error)

func (f resolverFunc) Resolve(ctx context.Context) (settings.Settings, error) { return f(ctx) }

func newOrchestrator(values settings.MapSource, engines ...engine.Engine) *Orchestrator {
	return New(settings.NewProvider(values), engine.NewRegistryOf(engines...), zerolog.Nop())
}

var helloRequest = internal.TranslationRequest{
	Type:        internal.MessageTypeRequestTranslation,
	Text:        "Hello",
	PageContent: "This is page content.",
}

func TestOrchestrator_Execute_Success(t *testing.T) {
	gemini := &mockEngine{nameVal: "gemini"}
	o := newOrchestrator(settings.MapSource{settings.KeyGeminiAPIKey: "key"}, gemini)

	resp := o.Execute(context.Background(), helloRequest)

	if !resp.Success || resp.Translation != "mock result" || resp.Error != "" {
		t.Errorf("unexpected response %+v", resp)
	}
	if gemini.callCount.Load() != 1 {
		t.Errorf("expected 1 engine call, got %d", gemini.callCount.Load())
	}
}

func TestOrchestrator_Execute_SelectsConfiguredEngine(t *testing.T) {
	gemini := &mockEngine{nameVal: "gemini"}
	chatgpt := &mockEngine{nameVal: "chatgpt", translateFunc: func(context.Context, internal.TranslationRequest, settings.Settings) (string, error) {
		return "mocked chatgpt translation", nil
	}}
	o := newOrchestrator(settings.MapSource{
		settings.KeyTranslationEngine:  "chatgpt",
		settings.KeyChatGPTAPIKey:      "key",
		settings.KeyIncludePageContent: true,
	}, gemini, chatgpt)

	resp := o.Execute(context.Background(), helloRequest)

	if resp != internal.Succeeded("mocked chatgpt translation") {
		t.Errorf("unexpected response %+v", resp)
	}
	if gemini.callCount.Load() != 0 || chatgpt.callCount.Load() != 1 {
		t.Errorf("expected only chatgpt to be called, got gemini=%d chatgpt=%d", gemini.callCount.Load(), chatgpt.callCount.Load())
	}
	if !chatgpt.lastSettings.IncludePageContent {
		t.Error("expected resolved settings to reach the engine")
	}
}

func TestOrchestrator_Execute_EngineError(t *testing.T) {
	gemini := &mockEngine{nameVal: "gemini", translateFunc: func(context.Context, internal.TranslationRequest, settings.Settings) (string, error) {
		return "", errors.New("API Error")
	}}
	o := newOrchestrator(settings.MapSource{settings.KeyGeminiAPIKey: "key"}, gemini)

	resp := o.Execute(context.Background(), helloRequest)

	if resp != internal.Failed("API Error") {
		t.Errorf("expected {success:false, error:API Error}, got %+v", resp)
	}
}

func TestOrchestrator_Execute_UnsupportedEngine(t *testing.T) {
	gemini := &mockEngine{nameVal: "gemini"}
	o := newOrchestrator(settings.MapSource{settings.KeyTranslationEngine: "deepl"}, gemini)

	resp := o.Execute(context.Background(), helloRequest)

	if resp != internal.Failed("サポートされていない翻訳エンジンです。") {
		t.Errorf("unexpected response %+v", resp)
	}
	if gemini.callCount.Load() != 0 {
		t.Error("expected no engine call")
	}
}

func TestOrchestrator_Execute_MissingKeyWithRealEngine(t *testing.T) {
	o := New(
		settings.NewProvider(settings.MapSource{settings.KeyTranslationEngine: "gemini"}),
		engine.NewRegistry(engine.Options{GeminiBaseURL: "http://127.0.0.1:1", Logger: zerolog.Nop()}),
		zerolog.Nop(),
	)

	resp := o.Execute(context.Background(), helloRequest)

	if resp != internal.Failed("Gemini APIキーが設定されていません。") {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestOrchestrator_Execute_SettingsError(t *testing.T) {
	resolver := resolverFunc(func(context.Context) (settings.Settings, error) {
		return settings.Settings{}, errors.New("storage unavailable")
	})
	gemini := &mockEngine{nameVal: "gemini"}
	o := New(resolver, engine.NewRegistryOf(gemini), zerolog.Nop())

	resp := o.Execute(context.Background(), helloRequest)

	if resp.Success || resp.Error != "storage unavailable" {
		t.Errorf("unexpected response %+v", resp)
	}
	if gemini.callCount.Load() != 0 {
		t.Error("expected no engine call")
	}
}

func TestOrchestrator_Execute_EmptyTranslation(t *testing.T) {
	gemini := &mockEngine{nameVal: "gemini", translateFunc: func(context.Context, internal.TranslationRequest, settings.Settings) (string, error) {
		return "", nil
	}}
	o := newOrchestrator(settings.MapSource{}, gemini)

	resp := o.Execute(context.Background(), helloRequest)

	if resp != internal.Failed(engine.ErrEmptyResponse.Error()) {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestOrchestrator_Execute_EmptyErrorMessage(t *testing.T) {
	gemini := &mockEngine{nameVal: "gemini", translateFunc: func(context.Context, internal.TranslationRequest, settings.Settings) (string, error) {
		return "", errors.New("")
	}}
	o := newOrchestrator(settings.MapSource{}, gemini)

	resp := o.Execute(context.Background(), helloRequest)

	if resp.Success || resp.Error != unknownError {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestOrchestrator_Execute_EchoesID(t *testing.T) {
	o := newOrchestrator(settings.MapSource{}, &mockEngine{nameVal: "gemini"})

	req := helloRequest
	req.ID = "tab-7"
	resp := o.Execute(context.Background(), req)

	if resp.ID != "tab-7" {
		t.Errorf("expected id to be echoed, got %q", resp.ID)
	}
}

func TestOrchestrator_Execute_Overrides(t *testing.T) {
	chatgpt := &mockEngine{nameVal: "chatgpt"}
	override := func(s *settings.Settings) {
		s.Engine = settings.EngineChatGPT
		s.DoNotTranslateProperNouns = true
	}
	o := New(settings.NewProvider(settings.MapSource{}), engine.NewRegistryOf(&mockEngine{nameVal: "gemini"}, chatgpt), zerolog.Nop(), override)

	resp := o.Execute(context.Background(), helloRequest)

	if !resp.Success {
		t.Fatalf("unexpected failure %+v", resp)
	}
	if chatgpt.callCount.Load() != 1 {
		t.Error("expected override to select chatgpt")
	}
	if !chatgpt.lastSettings.DoNotTranslateProperNouns {
		t.Error("expected override flag to reach the engine")
	}
}
