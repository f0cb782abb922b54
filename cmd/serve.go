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
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/valpere/honyaku/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve translations over local HTTP",
	Long: `Start a local HTTP server exposing the translation message endpoint
and the settings store.

Endpoints:
  POST /api/v1/messages   translation request, answered with the response envelope
  GET  /api/v1/health     liveness
  GET  /api/v1/settings   resolved settings, API keys masked
  PUT  /api/v1/settings   update stored settings (null removes a key)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		server := httpapi.NewServer(a.orch, a.settings, a.store, logger, httpapi.Options{
			Host: cfg.HTTP.Host,
			Port: cfg.HTTP.Port,
		})
		return server.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "", "Listen address (default 127.0.0.1)")
	serveCmd.Flags().Int("port", 0, "Listen port (default 8787)")
	v.BindPFlag("http.host", serveCmd.Flags().Lookup("host"))
	v.BindPFlag("http.port", serveCmd.Flags().Lookup("port"))
}
