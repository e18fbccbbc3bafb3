package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/phrazzld/verbos-api/internal/domain"
	"github.com/phrazzld/verbos-api/internal/domain/conjugation"
	"github.com/phrazzld/verbos-api/internal/domain/progress"
	"github.com/phrazzld/verbos-api/internal/platform/migrations"
	"github.com/phrazzld/verbos-api/internal/platform/storage"
	"github.com/phrazzld/verbos-api/internal/seed"
	"github.com/phrazzld/verbos-api/internal/service"
	"github.com/phrazzld/verbos-api/internal/store"
	"github.com/spf13/cobra"
)

func conjugateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conjugate <infinitive>",
		Short: "Print the present-tense table of a verb",
		Long: `Print the present-indicative table of a verb.

The verb is described by the flags and is not stored. With --stored the
verb is read from the collection instead.

Example:
  verbos conjugate hablar
  verbos conjugate tener --type irregular --form yo=tengo --form tú=tienes
  verbos conjugate ir --type irregular --form yo=voy --form tú=vas
  verbos conjugate pensar --type stem-changing --stem-from e --stem-to ie`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stored, _ := cmd.Flags().GetBool("stored")
			asJSON, _ := cmd.Flags().GetBool("json")

			var verb *domain.Verb
			if stored {
				sess, err := openSession(cmd)
				if err != nil {
					return err
				}
				defer sess.Close()

				verb, err = sess.verbs.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
			} else {
				params, err := verbParams(cmd, args[0])
				if err != nil {
					return err
				}
				verb, err = domain.NewConjugableVerb(params.Infinitive, params.Category,
					params.IrregularOverrides, params.StemChange)
				if err != nil {
					return err
				}
			}

			forms := conjugation.Table(verb)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), forms)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, f := range forms {
				fmt.Fprintf(tw, "%s\t%s\n", f.Person, f.Form)
			}
			return tw.Flush()
		},
	}

	addVerbFlags(cmd)
	cmd.Flags().Bool("stored", false, "Conjugate the verb stored in the collection")
	cmd.Flags().Bool("json", false, "Print the table as JSON")
	return cmd
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the verb collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			sess, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			verbs, err := sess.verbs.List(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]any{store.CollectionKey: verbs})
			}
			if len(verbs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No verbs in the collection. Run: verbos seed")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "INFINITIVE\tMEANING\tTYPE\tMASTERY\tMODES")
			for _, v := range verbs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
					v.Infinitive, v.Meaning, v.Category, v.Mastery, modesString(v.CompletedModes))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().Bool("json", false, "Print the collection as JSON")
	return cmd
}

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <infinitive>",
		Short: "Add a verb to the collection",
		Long: `Add a verb to the collection with zero mastery.

Example:
  verbos add bailar --meaning "to dance"
  verbos add ser --meaning "to be" --type irregular --form yo=soy --form tú=eres
  verbos add dormir --type stem-changing --stem-from o --stem-to ue`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meaning, _ := cmd.Flags().GetString("meaning")

			params, err := verbParams(cmd, args[0])
			if err != nil {
				return err
			}
			params.Meaning = meaning

			sess, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			verb, err := sess.verbs.Add(cmd.Context(), params)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", verb.Infinitive, verb.Category)
			return nil
		},
	}

	addVerbFlags(cmd)
	cmd.Flags().StringP("meaning", "m", "", "English meaning")
	return cmd
}

func removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <infinitive>",
		Aliases: []string{"rm"},
		Short:   "Remove a verb from the collection",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			infinitive := service.NormalizeInfinitive(args[0])
			if err := sess.verbs.Remove(cmd.Context(), infinitive); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", infinitive)
			return nil
		},
	}
}

func progressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Summarize mastery across the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			sess, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			verbs, err := sess.verbs.List(cmd.Context())
			if err != nil {
				return err
			}

			summary := progress.Summarize(verbs)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), summary)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Verbs:           %d\n", summary.TotalVerbs)
			fmt.Fprintf(out, "Mastered:        %d\n", summary.MasteredVerbs)
			fmt.Fprintf(out, "Average mastery: %.1f\n", summary.AverageMastery)
			fmt.Fprintln(out, "\nBy level:")
			for _, level := range progress.Levels() {
				fmt.Fprintf(out, "  %-13s %d\n", level, summary.ByLevel[level])
			}
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "Print the summary as JSON")
	return cmd
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate an empty collection with starter verbs",
		Long: `Populate an empty collection with the built-in starter verbs, or with the
verbs of a YAML file. A collection that already has verbs is left alone
unless --force is given, which replaces it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			force, _ := cmd.Flags().GetBool("force")

			sess, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			if file == "" {
				file = sess.config.Seed.File
			}
			verbs, err := seed.Verbs(file)
			if err != nil {
				return err
			}

			if force {
				if err := sess.verbs.Replace(cmd.Context(), verbs); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Replaced collection with %d verbs\n", len(verbs))
				return nil
			}

			seeded, err := sess.verbs.EnsureSeeded(cmd.Context(), verbs)
			if err != nil {
				return err
			}
			if !seeded {
				fmt.Fprintln(cmd.OutOrStdout(), "Collection already has verbs; nothing seeded")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d verbs\n", len(verbs))
			return nil
		},
	}

	cmd.Flags().StringP("file", "f", "", "YAML verb list (defaults to the built-in list)")
	cmd.Flags().Bool("force", false, "Replace a non-empty collection")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate [" + strings.Join(migrations.Commands(), "|") + "]",
		Short: "Run database schema migrations",
		Long: `Run goose schema migrations against the configured SQL engine.
The command defaults to up. The json and memory engines have no schema.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: migrations.Commands(),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := migrations.CommandUp
			if len(args) > 0 {
				command = args[0]
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log, err := newLogger(cmd, cfg)
			if err != nil {
				return err
			}

			db, dialect, err := storage.OpenDB(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			result, err := migrations.Run(cmd.Context(), db, dialect, command, log)
			if err != nil {
				return err
			}

			printMigrationResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

func printMigrationResult(out io.Writer, result *migrations.Result) {
	switch result.Command {
	case migrations.CommandStatus:
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "VERSION\tSTATE\tAPPLIED AT\tFILE")
		for _, s := range result.Statuses {
			state, at := "pending", "-"
			if s.Applied {
				state, at = "applied", s.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.Version, state, at, s.Path)
		}
		_ = tw.Flush()
	case migrations.CommandUp, migrations.CommandDown, migrations.CommandReset:
		if len(result.Changed) == 0 {
			fmt.Fprintln(out, "No migrations to run")
		}
		for _, v := range result.Changed {
			fmt.Fprintf(out, "%s: %d\n", result.Command, v)
		}
	}
	fmt.Fprintf(out, "Schema version: %d\n", result.Version)
}

func modesString(m domain.CompletedModes) string {
	var done []string
	for _, mode := range []domain.PracticeMode{
		domain.PracticeModeQuiz, domain.PracticeModeTable, domain.PracticeModeSpeech,
	} {
		if m.Has(mode) {
			done = append(done, string(mode))
		}
	}
	if len(done) == 0 {
		return "-"
	}
	return strings.Join(done, ",")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
