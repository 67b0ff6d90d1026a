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
	"github.com/spf13/viper"
)

var version = "0.1.0"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "pandulipi",
	Short: "AI publishing assistant for voice-typed manuscripts",
	Long: `Pandulipi proofreads and formats raw, voice-typed book drafts.

An AI editor pass corrects the text and marks its structure (chapters,
sections, Sanskrit verses and their translations); the result is rendered
into a styled .docx, optionally with a generated glossary and a
consistency report.

Supported AI services: Gemini, OpenAI, OpenRouter, Ollama (self-hosted)

Use "pandulipi process --help" for processing options.`,
	Version: version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.pandulipi.yaml)")
	rootCmd.PersistentFlags().String("service", "gemini", "AI service: gemini, openai, openrouter, ollama")
	rootCmd.PersistentFlags().String("model", "", "model name (service default used if empty)")
	rootCmd.PersistentFlags().String("api-key", "", "API key for the selected service")
	rootCmd.PersistentFlags().String("ollama-url", "http://localhost:11434", "Ollama base URL")
	rootCmd.PersistentFlags().String("db", "./data/pandulipi.db", "database path for job history")
	rootCmd.PersistentFlags().Bool("no-store", false, "disable job history storage")

	viper.BindPFlag("service", rootCmd.PersistentFlags().Lookup("service"))
	viper.BindPFlag("model", rootCmd.PersistentFlags().Lookup("model"))
	viper.BindPFlag("api_key", rootCmd.PersistentFlags().Lookup("api-key"))
	viper.BindPFlag("ollama_url", rootCmd.PersistentFlags().Lookup("ollama-url"))
	viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("no_store", rootCmd.PersistentFlags().Lookup("no-store"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".pandulipi")
	}

	viper.SetEnvPrefix("PANDULIPI")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}
