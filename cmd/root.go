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
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/valpere/honyaku/internal/config"
	"github.com/valpere/honyaku/internal/logging"
)

var version = "0.1.0"

var (
	cfgFile string
	envFile string

	v      = config.New()
	cfg    config.Config
	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "honyaku",
	Short: "Translate text into Japanese with Gemini or ChatGPT",
	Long: `honyaku translates selected text into natural Japanese using Gemini,
OpenAI ChatGPT or Azure OpenAI, optionally with the surrounding page as context
and with proper nouns kept in their original spelling.

It runs as a one-shot CLI, as a browser native-messaging host, or as a local
HTTP service. Engine choice and API keys live in the settings store.

Use "honyaku settings --help" to configure engines.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.LoadEnv(envFile); err != nil {
			return err
		}

		loaded, err := config.Load(v, cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded

		logger, err = logging.New(cfg.Log.Format, cfg.Log.Level, os.Stderr)
		return err
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default $HOME/.config/honyaku/config.yaml)")
	flags.StringVar(&envFile, "env", config.DefaultEnvFile, "Path to the .env file")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-format", "json", "Log format (json, console)")
	flags.String("db", "", "Settings database path")

	v.BindPFlag("log.level", flags.Lookup("log-level"))
	v.BindPFlag("log.format", flags.Lookup("log-format"))
	v.BindPFlag("db.path", flags.Lookup("db"))
}
