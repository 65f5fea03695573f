// Package main is the entry point for the ladeplan CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the ladeplan CLI.
var rootCmd = &cobra.Command{
	Use:   "ladeplan",
	Short: "Web-based Verladeplan PDF analyzer",
	Long: `ladeplan serves a single-page web form for logistics loading plans:
upload a Verladeplan PDF, review the extracted component/truck/weight table
with filters, and download the result as an Excel workbook.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
