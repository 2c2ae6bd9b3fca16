package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"reel/internal/history"
	"reel/internal/script"
	"reel/internal/store"
)

func newApplyCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var note string

	cmd := &cobra.Command{
		Use:   "apply <project> <script.yaml>",
		Short: "Replay an edit script and save the result as a new revision",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			sc, err := script.Load(args[1])
			if err != nil {
				return err
			}
			logger := ctx.loggerFor(cmd)

			return ctx.withStore(cmd, func(s *store.Store) error {
				p, _, err := s.Load(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				stack := history.NewStack(history.WithLimit(cfg.History.UndoLimit), history.WithLogger(logger))
				res, runErr := script.NewRunner(p, stack, logger).Run(cmd.Context(), sc)

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Applied %d of %d steps (%d undone, %d redone, %d skipped)\n", res.Steps(), len(sc.Steps), res.Undone, res.Redone, res.Skipped)
				if runErr != nil {
					return runErr
				}
				if dryRun {
					for _, desc := range stack.UndoHistory() {
						fmt.Fprintf(out, "  %s\n", desc)
					}
					fmt.Fprintln(out, "Dry run: project not saved")
					return nil
				}
				if res.Steps() == 0 {
					fmt.Fprintln(out, "Nothing to save")
					return nil
				}
				saveNote := strings.TrimSpace(note)
				if saveNote == "" {
					saveNote = scriptNote(sc, args[1])
				}
				rev, err := s.Save(cmd.Context(), p, saveNote)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Saved %s revision %d\n", p.Name, rev.Number)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run the script without saving")
	cmd.Flags().StringVar(&note, "note", "", "Revision note (defaults to the script name)")
	return cmd
}

func scriptNote(sc *script.Script, path string) string {
	if name := strings.TrimSpace(sc.Name); name != "" {
		return name
	}
	return "apply " + filepath.Base(path)
}
