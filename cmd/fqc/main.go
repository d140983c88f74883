// fqc builds yield reports from manufacturing inspection workbooks.
//
// Usage:
//
//	fqc report <workbook.xlsx> [--label=<name>] [--catalog=<standard|reduced|file>] [--format=xlsx|txt] [--open]
//	fqc serve [--port=<port>]
//	fqc catalog [standard|reduced|file]
//
// Defaults come from FQC_* environment variables and an optional .env file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "fqc",
	Short: "Inspection yield reports with fuzzy rejection-reason classification",
	Long: "fqc reads an inspection workbook (one row per unit), computes output, accepted,\n" +
		"rejected and rework counts and the yield, and buckets rejection reasons into\n" +
		"defect categories by approximate keyword matching.",
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
