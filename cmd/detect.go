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
	"strings"

	"github.com/spf13/cobra"

	"github.com/valpere/pandulipi/internal/detector"
	"github.com/valpere/pandulipi/internal/docx"
)

var (
	detectInput string
	detectLocal bool
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect the languages in a manuscript",
	Long: `Detect which languages appear in a .docx manuscript or plain text file.

By default the AI service is asked, which can name every language in a
mixed draft. --local uses only the offline statistical detector and
reports the single most likely language.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(detectInput)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}

		var text string
		if strings.HasSuffix(strings.ToLower(detectInput), ".docx") {
			text, err = docx.ReadText(data)
			if err != nil {
				return err
			}
		} else {
			text = string(data)
		}

		det := detector.New()

		if detectLocal {
			lang, ok := det.Detect(text)
			if !ok {
				return fmt.Errorf("could not determine language")
			}
			fmt.Println(lang.String())
			return nil
		}

		svc, err := buildService()
		if err != nil {
			return err
		}

		langs, err := det.DetectLanguages(context.Background(), svc, text)
		if err != nil {
			fmt.Fprintf(os.Stderr, "AI detection failed (%v), using statistical fallback\n", err)
		}
		if len(langs) == 0 {
			return fmt.Errorf("could not determine language")
		}
		for _, l := range langs {
			fmt.Println(l)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().StringVarP(&detectInput, "input", "i", "", "Input file, .docx or plain text (required)")
	detectCmd.Flags().BoolVar(&detectLocal, "local", false, "Use only the offline statistical detector")

	detectCmd.MarkFlagRequired("input")
}
