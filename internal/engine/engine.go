// Package engine implements the translation engines. Each engine turns a
// request and the user's settings into a single translated string by calling
// its provider once, and a second time when proper nouns must be restored.
package engine

import (
	"context"
	"errors"

	"github.com/valpere/honyaku/internal"
	"github.com/valpere/honyaku/internal/prompt"
	"github.com/valpere/honyaku/internal/settings"
)

// User-facing error messages. They are returned unwrapped so the requester
// sees exactly this text.
var (
	ErrGeminiKeyMissing      = errors.New("Gemini APIキーが設定されていません。")
	ErrChatGPTKeyMissing     = errors.New("ChatGPT APIキーが設定されていません。")
	ErrAzureConfigIncomplete = errors.New("Azure OpenAI APIの設定が不完全です。")
	ErrEmptyResponse         = errors.New("APIレスポンスからテキストを取得できませんでした。")
	ErrUnsupportedEngine     = errors.New("サポートされていない翻訳エンジンです。")
)

// Engine translates one request.
type Engine interface {
	Name() string
	Translate(ctx context.Context, req internal.TranslationRequest, s settings.Settings) (string, error)
}

// generateFunc issues exactly one remote call: a system instruction followed by
// user turns in order. It returns ErrEmptyResponse when the provider answered
// without usable text.
type generateFunc func(ctx context.Context, system string, turns []string) (string, error)

// userTurns orders the user content of the first pass: page context (when
// enabled and supplied) then the source text.
func userTurns(req internal.TranslationRequest, s settings.Settings) []string {
	turns := make([]string, 0, 2)
	if s.IncludePageContent && req.PageContent != "" {
		turns = append(turns, prompt.FormatPageContent(req.PageContent))
	}
	return append(turns, req.Text)
}

// twoPass runs the first pass and, when configured, the proper-noun
// restoration pass. Any failure on either pass fails the whole translation.
func twoPass(ctx context.Context, generate generateFunc, req internal.TranslationRequest, s settings.Settings) (string, error) {
	translation, err := generate(ctx, s.SystemPrompt, userTurns(req, s))
	if err != nil {
		return "", err
	}
	if translation == "" {
		return "", ErrEmptyResponse
	}

	if !s.DoNotTranslateProperNouns {
		return translation, nil
	}

	restored, err := generate(ctx, prompt.RestoreProperNouns, []string{prompt.RestoreInput(req.Text, translation)})
	if err != nil {
		return "", err
	}
	if restored == "" {
		return "", ErrEmptyResponse
	}
	return restored, nil
}
