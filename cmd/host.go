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

	"github.com/valpere/honyaku/internal/nativemsg"
)

var hostCmd = &cobra.Command{
	Use:   "host [origin]",
	Short: "Run as a browser native-messaging host",
	Long: `Run as a native-messaging host. The browser starts this command and
exchanges length-prefixed JSON messages on stdin and stdout.

The browser passes the calling extension's origin as an argument; it is only
logged. The host exits when the browser closes stdin.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		origin := ""
		if len(args) > 0 {
			origin = args[0]
		}
		logger.Info().Str("origin", origin).Msg("native messaging host started")

		return nativemsg.NewHost(a.orch, logger).Serve(ctx, os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(hostCmd)
}
