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
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/valpere/pandulipi/internal/analyst"
	"github.com/valpere/pandulipi/internal/docx"
)

var (
	analyzeInput string
	analyzeJSON  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Generate a glossary and consistency report without editing",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !strings.HasSuffix(strings.ToLower(analyzeInput), ".docx") {
			return fmt.Errorf("input must be a .docx file")
		}

		data, err := os.ReadFile(analyzeInput)
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

		ctx := context.Background()
		a := analyst.New(svc)

		glossary, gerr := a.Glossary(ctx, rawText)
		if gerr != nil {
			fmt.Fprintf(os.Stderr, "Warning: glossary degraded: %v\n", gerr)
		}
		report, rerr := a.ConsistencyReport(ctx, rawText)
		if rerr != nil {
			fmt.Fprintf(os.Stderr, "Warning: consistency report degraded: %v\n", rerr)
		}

		if analyzeJSON {
			out := map[string]any{
				"glossary":           glossary,
				"consistency_report": report,
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		fmt.Printf("Glossary (%d terms):\n", len(glossary))
		for _, e := range glossary {
			line := fmt.Sprintf("  %s", e.Term)
			if e.Transliteration != "" {
				line += fmt.Sprintf(" (%s)", e.Transliteration)
			}
			line += fmt.Sprintf(" — %s", e.Translation)
			if e.Context != "" {
				line += fmt.Sprintf(" [%s]", e.Context)
			}
			fmt.Println(line)
		}

		fmt.Printf("\nConsistency report (%d notes):\n", len(report))
		for _, note := range report {
			fmt.Printf("  - %s\n", note)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeInput, "input", "i", "", "Input .docx file (required)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print raw JSON instead of formatted text")

	analyzeCmd.MarkFlagRequired("input")
}
