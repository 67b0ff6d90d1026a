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

	"github.com/spf13/viper"

	"github.com/valpere/pandulipi/internal"
	"github.com/valpere/pandulipi/internal/ai"
	"github.com/valpere/pandulipi/internal/store"
)

// buildService constructs the configured AI service, wrapped in a circuit
// breaker so a dead backend fails fast instead of timing out per chunk.
func buildService() (ai.Service, error) {
	name := viper.GetString("service")
	model := viper.GetString("model")
	apiKey := viper.GetString("api_key")

	var svc ai.Service
	switch name {
	case "gemini":
		svc = ai.NewGeminiService(apiKey, model)
	case "openai":
		svc = ai.NewOpenAIService(apiKey, model)
	case "openrouter":
		svc = ai.NewOpenRouterService(apiKey, "", model)
	case "ollama":
		svc = ai.NewOllamaService(viper.GetString("ollama_url"), model)
	default:
		return nil, fmt.Errorf("unknown service: %s", name)
	}

	return ai.WithBreaker(svc), nil
}

// openStore opens the job history database unless disabled. A nil store is
// a valid result and means history is off.
func openStore() (*store.Store, error) {
	if viper.GetBool("no_store") {
		return nil, nil
	}
	dbPath := viper.GetString("db")
	if dbPath == "" {
		return nil, nil
	}
	return store.New(dbPath)
}

// saveJob records a pipeline run in history; failures only warn.
func saveJob(ctx context.Context, db *store.Store, inputPath string, req internal.ProofreadRequest, serviceName, rawText, edited, status, errMsg string, glossary []internal.GlossaryEntry) {
	job := internal.ProofreadJob{
		Filename:      filepath.Base(inputPath),
		AuthorPersona: req.AuthorPersona,
		BookSummary:   req.BookSummary,
		LanguageRules: req.LanguageRules,
		RawChars:      len([]rune(rawText)),
		EditedChars:   len([]rune(edited)),
		ServiceUsed:   serviceName,
		Status:        status,
		Error:         errMsg,
	}
	if _, err := db.SaveJob(ctx, job, glossary); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to record job: %v\n", err)
	}
}

// styleFromConfig merges a "style" config section over the defaults.
func styleFromConfig() internal.StyleConfig {
	style := internal.DefaultStyle()
	if viper.IsSet("style") {
		if err := viper.UnmarshalKey("style", &style); err != nil {
			fmt.Fprintf(os.Stderr, "Ignoring invalid style config: %v\n", err)
			return internal.DefaultStyle()
		}
	}
	return style
}
