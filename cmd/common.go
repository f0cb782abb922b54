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

	"github.com/valpere/honyaku/internal/engine"
	"github.com/valpere/honyaku/internal/orchestrator"
	"github.com/valpere/honyaku/internal/settings"
	"github.com/valpere/honyaku/internal/store"
)

// app holds what every serving command needs.
type app struct {
	store    *store.Store
	settings *settings.Provider
	orch     *orchestrator.Orchestrator
}

// openStore opens the settings database named by db.path.
func openStore() (*store.Store, error) {
	db, err := store.New(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// newApp wires settings, engines and the orchestrator. Values in the settings
// store win over the settings section of the config file.
func newApp(overrides ...orchestrator.SettingsOverride) (*app, error) {
	db, err := openStore()
	if err != nil {
		return nil, err
	}

	provider := settings.NewProvider(settings.Chain(db, settings.NewViperSource(v)))
	registry := engine.NewRegistry(engine.Options{
		GeminiBaseURL: cfg.Gemini.BaseURL,
		GeminiModel:   cfg.Gemini.Model,
		OpenAIBaseURL: cfg.OpenAI.BaseURL,
		OpenAIModel:   cfg.OpenAI.Model,
		Timeout:       cfg.HTTP.Timeout,
		Logger:        logger,
	})

	return &app{
		store:    db,
		settings: provider,
		orch:     orchestrator.New(provider, registry, logger, overrides...),
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}
