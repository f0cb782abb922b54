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
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/valpere/honyaku/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage stored translation settings",
	Long: `Manage the settings store shared by every honyaku mode.

Keys:
  ` + strings.Join(settings.Keys, "\n  "),
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored settings (API keys masked)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		entries, err := db.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list settings: %w", err)
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No settings stored")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tVALUE\tUPDATED")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%v\t%s\n", e.Key, settings.MaskValue(e.Key, e.Value), e.UpdatedAt.Format(time.DateTime))
		}
		return w.Flush()
	},
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a stored setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		if !settings.IsKnownKey(key) {
			return fmt.Errorf("unknown setting %q", key)
		}

		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		value, found, err := db.Get(cmd.Context(), key)
		if err != nil {
			return fmt.Errorf("failed to read setting: %w", err)
		}
		if !found {
			return fmt.Errorf("setting %q is not stored", key)
		}
		fmt.Fprintln(cmd.OutOrStdout(), cast.ToString(value))
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, raw := args[0], args[1]
		value, err := parseSettingValue(key, raw)
		if err != nil {
			return err
		}

		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Set(cmd.Context(), key, value); err != nil {
			return fmt.Errorf("failed to store setting: %w", err)
		}
		logger.Info().Str("key", key).Msg("setting stored")
		return nil
	},
}

var settingsUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a stored setting so its default applies",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		if !settings.IsKnownKey(key) {
			return fmt.Errorf("unknown setting %q", key)
		}

		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Delete(cmd.Context(), key); err != nil {
			return fmt.Errorf("failed to remove setting: %w", err)
		}
		logger.Info().Str("key", key).Msg("setting removed")
		return nil
	},
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings after defaults (API keys masked)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		resolved, err := a.settings.Resolve(cmd.Context())
		if err != nil {
			return err
		}
		return printSettings(cmd, resolved.Masked())
	},
}

func printSettings(cmd *cobra.Command, s settings.Settings) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{settings.KeyTranslationEngine, string(s.Engine)},
		{settings.KeyGeminiAPIKey, s.GeminiAPIKey},
		{settings.KeyChatGPTAPIKey, s.ChatGPTAPIKey},
		{settings.KeyAzureAPIKey, s.AzureAPIKey},
		{settings.KeyAzureEndpoint, s.AzureEndpoint},
		{settings.KeyAzureDeploymentName, s.AzureDeploymentName},
		{settings.KeyAzureAPIVersion, s.AzureAPIVersion},
		{settings.KeyDoNotTranslateProperNouns, cast.ToString(s.DoNotTranslateProperNouns)},
		{settings.KeyIncludePageContent, cast.ToString(s.IncludePageContent)},
		{settings.KeySystemPrompt, strings.ReplaceAll(s.SystemPrompt, "\n", " ")},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\n", r[0], r[1])
	}
	return w.Flush()
}

// parseSettingValue validates key and converts raw to the stored type.
func parseSettingValue(key, raw string) (any, error) {
	if !settings.IsKnownKey(key) {
		return nil, fmt.Errorf("unknown setting %q", key)
	}
	if settings.IsBoolKey(key) {
		b, err := cast.ToBoolE(raw)
		if err != nil {
			return nil, fmt.Errorf("setting %q must be true or false", key)
		}
		return b, nil
	}
	if key == settings.KeyTranslationEngine {
		switch settings.Engine(raw) {
		case settings.EngineGemini, settings.EngineChatGPT, settings.EngineChatGPTAzure:
		default:
			return nil, fmt.Errorf("unknown engine %q (want gemini, chatgpt or chatgpt_azure)", raw)
		}
	}
	return raw, nil
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsListCmd, settingsGetCmd, settingsSetCmd, settingsUnsetCmd, settingsShowCmd)
}
