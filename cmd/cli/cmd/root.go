package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	apiKey  string
)

var rootCmd = &cobra.Command{
	Use:   "opdf",
	Short: "openpdfa CLI - Convert PDFs to PDF/A from the command line",
	Long: `openpdfa CLI (opdf) talks to a running openpdfa service.

It submits PDF documents for archival (PDF/A) conversion, checks service
health and inspects the recent conversion history.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "url", getEnvOrDefault("OPENPDFA_API_URL", "http://localhost:8080"), "openpdfa API base URL")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", os.Getenv("OPENPDFA_API_KEY"), "openpdfa API key")
}

func getEnvOrDefault(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}
