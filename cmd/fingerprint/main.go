package main

import (
	"os"

	"provenance/cmd/fingerprint/commands"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fingerprint",
	Short: "Offline helpers for product fingerprints.",
	Long:  `fingerprint derives serial fingerprints, renders scannable labels and issues caller tokens for the authenticity API.`,
}

func init() {
	rootCmd.AddCommand(commands.DeriveCommand())
	rootCmd.AddCommand(commands.TokenCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
