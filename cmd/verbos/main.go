// Package main implements the verbos command-line tool, which conjugates
// Spanish verbs and manages the same verb collection the API server uses.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "verbos",
		Short: "Spanish present-tense conjugation trainer",
		Long: `Verbos conjugates Spanish verbs in the present indicative and keeps a
collection of verbs with a mastery score for each.

Configuration is read from config.yaml in the working directory (or the file
given with --config) and from VERBOS_* environment variables. The --engine
and --db flags override the configured storage.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to a config file")
	rootCmd.PersistentFlags().String("engine", "", "Storage engine override (sqlite, postgres, json, memory)")
	rootCmd.PersistentFlags().String("db", "", "Database file override for the sqlite and json engines")

	rootCmd.AddCommand(conjugateCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(removeCmd())
	rootCmd.AddCommand(progressCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(migrateCmd())

	return rootCmd
}
