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

	"github.com/spf13/cobra"

	"github.com/valpere/pandulipi/internal/detector"
	"github.com/valpere/pandulipi/internal/orchestrator"
	"github.com/valpere/pandulipi/internal/server"
	"github.com/valpere/pandulipi/internal/validator"
)

var (
	serveAddr       string
	serveChunkChars int
	serveNoValidate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API for the web frontend",
	Long: `Start the HTTP server exposing the pipeline to the web frontend:

  POST /process-document/   upload a draft, download the formatted .docx
  POST /interactive-edit/   targeted snippet edits
  POST /analyze-document/   glossary and consistency report only
  POST /detect-language/    language detection
  GET  /healthz             liveness check`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := buildService()
		if err != nil {
			return err
		}

		var val *validator.Validator
		if !serveNoValidate {
			val = validator.New()
		}

		db, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "History disabled: %v\n", err)
		}
		if db != nil {
			defer db.Close()
		}

		orch := orchestrator.New(svc, serveChunkChars, val)
		srv := server.New(svc, orch, detector.New(), db)

		fmt.Fprintf(os.Stderr, "Listening on %s (service: %s)\n", serveAddr, svc.Name())
		return srv.Router().Run(serveAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8000", "Listen address")
	serveCmd.Flags().IntVar(&serveChunkChars, "max-chunk-chars", 0, "Max characters per editing request (0 = default)")
	serveCmd.Flags().BoolVar(&serveNoValidate, "no-validate", false, "Skip the language-preservation check on edited output")
}
