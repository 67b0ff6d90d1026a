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
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/valpere/pandulipi/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the proofreading job history",
	Long:  `List, inspect, and clear the SQLite job history.`,
}

func openHistoryStore() (*store.Store, error) {
	db, err := store.New(viper.GetString("db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all recorded jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openHistoryStore()
		if err != nil {
			return err
		}
		defer db.Close()

		jobs, err := db.ListJobs(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list jobs: %w", err)
		}

		if len(jobs) == 0 {
			fmt.Println("No jobs in history.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tFILE\tSERVICE\tSTATUS\tRAW\tEDITED\tCREATED")
		for _, j := range jobs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
				j.ID, j.Filename, j.ServiceUsed, j.Status,
				j.RawChars, j.EditedChars,
				j.CreatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a job with its stored glossary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openHistoryStore()
		if err != nil {
			return err
		}
		defer db.Close()

		job, glossary, err := db.GetJob(context.Background(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("ID:        %s\n", job.ID)
		fmt.Printf("File:      %s\n", job.Filename)
		fmt.Printf("Service:   %s\n", job.ServiceUsed)
		fmt.Printf("Status:    %s\n", job.Status)
		if job.Error != "" {
			fmt.Printf("Error:     %s\n", job.Error)
		}
		fmt.Printf("Persona:   %s\n", job.AuthorPersona)
		fmt.Printf("Summary:   %s\n", job.BookSummary)
		fmt.Printf("Chars:     %d raw, %d edited\n", job.RawChars, job.EditedChars)
		fmt.Printf("Created:   %s\n", job.CreatedAt.Format("2006-01-02 15:04:05"))

		if len(glossary) > 0 {
			fmt.Printf("\nGlossary (%d terms):\n", len(glossary))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TERM\tTRANSLITERATION\tTRANSLATION\tCONTEXT")
			for _, e := range glossary {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Term, e.Transliteration, e.Translation, e.Context)
			}
			return w.Flush()
		}
		return nil
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show job history statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openHistoryStore()
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.Stats(context.Background())
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}

		fmt.Printf("Total jobs:     %d\n", stats.TotalJobs)
		fmt.Printf("Completed:      %d\n", stats.CompletedJobs)
		fmt.Printf("Failed:         %d\n", stats.FailedJobs)
		fmt.Printf("Glossary terms: %d\n", stats.GlossaryTerms)
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all jobs from history",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openHistoryStore()
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := db.ClearJobs(context.Background())
		if err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		fmt.Printf("Cleared %d jobs from history.\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyClearCmd)
}
