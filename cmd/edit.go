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

	"github.com/spf13/cobra"

	"github.com/valpere/pandulipi/internal/editor"
)

var (
	editCommand string
	editSnippet string
	editNoCache bool
	editFuzzy   float64
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Apply a targeted AI edit to a text snippet",
	Long: `Apply a single editing command to a snippet and print the result.
The snippet comes from --text or, when omitted, from stdin.

Results are cached: repeating the same command on the same snippet is
served from the local database. Use --fuzzy to also accept near-identical
snippets (similarity 0-1):

  pandulipi edit --command "fix the grammar" --text "he walk slow"
  echo "he walk slow" | pandulipi edit --command "fix the grammar" --fuzzy 0.9`,
	RunE: func(cmd *cobra.Command, args []string) error {
		snippet := editSnippet
		if snippet == "" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			snippet = string(data)
		}
		if snippet == "" {
			return fmt.Errorf("no snippet given (use --text or pipe to stdin)")
		}

		ctx := context.Background()

		db, err := openStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cache disabled: %v\n", err)
		}
		if db != nil {
			defer db.Close()
		}

		if db != nil && !editNoCache {
			if cached, found, err := db.GetSnippetEdit(ctx, snippet, editCommand); err == nil && found {
				fmt.Fprintln(os.Stderr, "Using cached edit")
				fmt.Println(cached)
				return nil
			}
			if editFuzzy > 0 {
				if cached, found, err := db.FuzzyGetSnippetEdit(ctx, snippet, editCommand, editFuzzy); err == nil && found {
					fmt.Fprintln(os.Stderr, "Using fuzzy-matched cached edit")
					fmt.Println(cached)
					return nil
				}
			}
		}

		svc, err := buildService()
		if err != nil {
			return err
		}

		edited, err := editor.EditSnippet(ctx, svc, snippet, editCommand)
		if err != nil {
			return err
		}

		if db != nil && !editNoCache {
			if err := db.SaveSnippetEdit(ctx, snippet, editCommand, edited, svc.Name()); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to cache edit: %v\n", err)
			}
		}

		fmt.Println(edited)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringVarP(&editCommand, "command", "c", "", "Editing command to apply (required)")
	editCmd.Flags().StringVarP(&editSnippet, "text", "t", "", "Text snippet to edit (stdin if empty)")
	editCmd.Flags().BoolVar(&editNoCache, "no-cache", false, "Bypass the snippet edit cache")
	editCmd.Flags().Float64Var(&editFuzzy, "fuzzy", 0, "Fuzzy cache match threshold, 0-1 (0 = exact only)")

	editCmd.MarkFlagRequired("command")
}
