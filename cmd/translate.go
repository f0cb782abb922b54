/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/go-resty/resty/v2"
	lingua "github.com/pemistahl/lingua-go"
	"github.com/spf13/cobra"

	"github.com/valpere/honyaku/internal"
	"github.com/valpere/honyaku/internal/detector"
	"github.com/valpere/honyaku/internal/markdown"
	"github.com/valpere/honyaku/internal/orchestrator"
	"github.com/valpere/honyaku/internal/pagecontent"
	"github.com/valpere/honyaku/internal/settings"
)

var (
	inputFile   string
	outputFile  string
	pageSource  string
	engineName  string
	properNouns bool
	includePage bool
	outFormat   string
	detectLang  bool
)

var translateCmd = &cobra.Command{
	Use:   "translate [text]",
	Short: "Translate text into Japanese",
	Long: `Translate text into Japanese with the configured engine.

Text is taken from the arguments, from --input, or from stdin.

Page context:
  --page          HTML file, text file or URL whose readable text is sent as context
  --include-page  Send page context even when includePageContent is off

One-off overrides of stored settings:
  --engine        gemini, chatgpt or chatgpt_azure
  --proper-nouns  Keep proper nouns in their original spelling (second pass)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := markdown.ParseFormat(outFormat)
		if err != nil {
			return err
		}
		if inputFile != "" && inputFile == outputFile {
			return fmt.Errorf("input file and output file cannot be the same")
		}

		text, err := readSourceText(cmd, args)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if detectLang {
			det := detector.New(lingua.English, lingua.Japanese, lingua.Chinese, lingua.Korean,
				lingua.French, lingua.German, lingua.Spanish, lingua.Russian, lingua.Ukrainian)
			if code, ok := det.DetectISO(text); ok {
				logger.Info().Str("language", code).Msg("detected source language")
			}
			if det.IsJapanese(text) {
				logger.Warn().Msg("source text already looks like Japanese")
			}
		}

		req := internal.TranslationRequest{
			Type: internal.MessageTypeRequestTranslation,
			Text: text,
		}
		if pageSource != "" {
			loader := pagecontent.NewLoader(resty.New().SetTimeout(pagecontent.DefaultFetchTimeout))
			page, err := loader.Load(ctx, pageSource)
			if err != nil {
				return fmt.Errorf("failed to load page content: %w", err)
			}
			req.PageContent = page
		}

		a, err := newApp(flagOverrides(cmd)...)
		if err != nil {
			return err
		}
		defer a.Close()

		resp := a.orch.Execute(ctx, req)
		if !resp.Success {
			return fmt.Errorf("translation failed: %s", resp.Error)
		}

		out := markdown.Render(resp.Translation, format)
		if !strings.HasSuffix(out, "\n") {
			out += "\n"
		}

		if outputFile == "" {
			_, err := io.WriteString(cmd.OutOrStdout(), out)
			return err
		}
		if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(outputFile, []byte(out), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Translation written to %s\n", outputFile)
		return nil
	},
}

func readSourceText(cmd *cobra.Command, args []string) (string, error) {
	var raw string
	switch {
	case len(args) > 0:
		raw = strings.Join(args, " ")
	case inputFile != "":
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		raw = string(data)
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		raw = string(data)
	}

	text := strings.TrimSpace(raw)
	if text == "" {
		return "", fmt.Errorf("no text to translate")
	}
	return text, nil
}

// flagOverrides turns explicitly set flags into per-run settings overrides.
func flagOverrides(cmd *cobra.Command) []orchestrator.SettingsOverride {
	var overrides []orchestrator.SettingsOverride
	if cmd.Flags().Changed("engine") {
		id := settings.Engine(engineName)
		overrides = append(overrides, func(s *settings.Settings) { s.Engine = id })
	}
	if cmd.Flags().Changed("proper-nouns") {
		keep := properNouns
		overrides = append(overrides, func(s *settings.Settings) { s.DoNotTranslateProperNouns = keep })
	}
	if cmd.Flags().Changed("include-page") {
		include := includePage
		overrides = append(overrides, func(s *settings.Settings) { s.IncludePageContent = include })
	} else if pageSource != "" {
		overrides = append(overrides, func(s *settings.Settings) { s.IncludePageContent = true })
	}
	return overrides
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file to translate")
	translateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default stdout)")
	translateCmd.Flags().StringVarP(&pageSource, "page", "p", "", "Page file or URL used as translation context")
	translateCmd.Flags().StringVarP(&engineName, "engine", "e", "", "Engine for this run (gemini, chatgpt, chatgpt_azure)")
	translateCmd.Flags().BoolVar(&properNouns, "proper-nouns", false, "Keep proper nouns untranslated for this run")
	translateCmd.Flags().BoolVar(&includePage, "include-page", false, "Send page context for this run")
	translateCmd.Flags().StringVarP(&outFormat, "format", "f", "markdown", "Output format (markdown, html, text)")
	translateCmd.Flags().BoolVar(&detectLang, "detect", false, "Log the detected source language")
}
