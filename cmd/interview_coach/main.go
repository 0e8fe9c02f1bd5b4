// Package main provides the entry point for the Interview Coach HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "interview_coach",
	Short: "System Design Interview Coach HTTP API Server",
	Long:  "Interview Coach poses system-design interview questions and returns LLM-generated critiques, scored evaluations, and architecture diagrams via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
