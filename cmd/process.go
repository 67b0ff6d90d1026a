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
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/valpere/pandulipi/internal"
	"github.com/valpere/pandulipi/internal/docx"
	"github.com/valpere/pandulipi/internal/orchestrator"
	"github.com/valpere/pandulipi/internal/validator"
)

var (
	processInput  string
	processOutput string

	authorPersona string
	bookSummary   string
	languageRules string

	withGlossary    bool
	withConsistency bool
	noValidate      bool

	shlokaLineBreaks  bool
	shlokaNumbering   bool
	shlokaCenter      bool
	shlokaTransStyle  string
	processChunkChars int
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Proofread and format a voice-typed manuscript",
	Long: `Run the full pipeline over a .docx draft: extract the text, send it
through the AI editor pass, parse the structural markers, and write a
styled .docx. Optionally append a glossary and a consistency report.

The persona, summary, and language rules shape the editor-pass prompt:

  pandulipi process -i draft.docx -o edited.docx \
    --persona "A Vedanta scholar writing for lay readers" \
    --summary "A commentary on the Bhagavad Gita" \
    --glossary`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if processInput == processOutput {
			return fmt.Errorf("input file and output file cannot be the same")
		}
		if !strings.HasSuffix(strings.ToLower(processInput), ".docx") {
			return fmt.Errorf("input must be a .docx file")
		}

		data, err := os.ReadFile(processInput)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}

		rawText, err := docx.ReadText(data)
		if err != nil {
			return err
		}

		svc, err := buildService()
		if err != nil {
			return err
		}

		style := styleFromConfig()
		if shlokaLineBreaks || shlokaNumbering || shlokaCenter || shlokaTransStyle != "" {
			style.Shloka = &internal.ShlokaOptions{
				LineBreaks:       shlokaLineBreaks,
				AddNumbering:     shlokaNumbering,
				CenterAlign:      shlokaCenter,
				TranslationStyle: shlokaTransStyle,
			}
		}

		req := internal.ProofreadRequest{
			AuthorPersona:     authorPersona,
			BookSummary:       bookSummary,
			LanguageRules:     languageRules,
			GenerateGlossary:  withGlossary,
			ConsistencyReport: withConsistency,
			Style:             style,
		}

		var val *validator.Validator
		if !noValidate {
			val = validator.New()
		}

		ctx := context.Background()
		orch := orchestrator.New(svc, processChunkChars, val)

		fmt.Fprintf(os.Stderr, "Running editor pass (%s)...\n", svc.Name())
		res, err := orch.Run(ctx, rawText, req)

		db, dbErr := openStore()
		if dbErr != nil {
			fmt.Fprintf(os.Stderr, "History disabled: %v\n", dbErr)
		}
		if db != nil {
			defer db.Close()
		}

		if err != nil {
			if db != nil {
				saveJob(ctx, db, processInput, req, svc.Name(), rawText, "", "failed", err.Error(), nil)
			}
			return err
		}

		for _, w := range res.Warnings {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
		}

		model := orchestrator.Assemble(res, style)
		out, err := docx.Write(model, style)
		if err != nil {
			return fmt.Errorf("failed to build output document: %w", err)
		}

		if dir := filepath.Dir(processOutput); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		if err := os.WriteFile(processOutput, out, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}

		if db != nil {
			saveJob(ctx, db, processInput, req, svc.Name(), rawText, res.EditedManuscript, "completed", "", res.Glossary)
		}

		fmt.Printf("Wrote %s\n", processOutput)
		if withGlossary {
			fmt.Printf("Glossary: %d terms\n", len(res.Glossary))
		}
		if withConsistency {
			fmt.Printf("Consistency notes: %d\n", len(res.Consistency))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVarP(&processInput, "input", "i", "", "Input .docx draft (required)")
	processCmd.Flags().StringVarP(&processOutput, "output", "o", "", "Output .docx file (required)")

	processCmd.Flags().StringVar(&authorPersona, "persona", "", "Author's persona for the editor prompt")
	processCmd.Flags().StringVar(&bookSummary, "summary", "", "Book's core message for the editor prompt")
	processCmd.Flags().StringVar(&languageRules, "language-rules", "", "Language-specific rules for the editor prompt")

	processCmd.Flags().BoolVar(&withGlossary, "glossary", false, "Generate a glossary and append it to the document")
	processCmd.Flags().BoolVar(&withConsistency, "consistency", false, "Generate a consistency report and append it to the document")
	processCmd.Flags().BoolVar(&noValidate, "no-validate", false, "Skip the language-preservation check on edited output")

	processCmd.Flags().BoolVar(&shlokaLineBreaks, "shloka-line-breaks", false, "Preserve verse line breaks in shloka blocks")
	processCmd.Flags().BoolVar(&shlokaNumbering, "shloka-numbering", false, "Ask the editor to number the verses")
	processCmd.Flags().BoolVar(&shlokaCenter, "shloka-center", false, "Center-align shloka blocks")
	processCmd.Flags().StringVar(&shlokaTransStyle, "shloka-translation-style", "", "Style hint for verse translations (e.g. prose, literal)")

	processCmd.Flags().IntVar(&processChunkChars, "max-chunk-chars", 0, "Max characters per editing request (0 = default)")

	processCmd.MarkFlagRequired("input")
	processCmd.MarkFlagRequired("output")
}
