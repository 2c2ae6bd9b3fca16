package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"reel/internal/edit"
	"reel/internal/history"
	"reel/internal/logging"
	"reel/internal/media"
	"reel/internal/media/ffprobe"
	"reel/internal/project"
	"reel/internal/store"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var binName string
	var note string

	cmd := &cobra.Command{
		Use:   "import <project> <file>...",
		Short: "Probe source files with ffprobe and add them to the media library",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
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

				var bin *media.Bin
				if name := strings.TrimSpace(binName); name != "" {
					if bin, err = ensureBin(p, stack, name); err != nil {
						return err
					}
				}

				out := cmd.OutOrStdout()
				rows := make([][]string, 0, len(args)-1)
				for _, file := range args[1:] {
					path, err := filepath.Abs(file)
					if err != nil {
						return fmt.Errorf("resolve %s: %w", file, err)
					}
					item, err := ffprobe.Describe(cmd.Context(), cfg.Media.FFprobeBinary, path, p.Timeline.FrameRate())
					if err != nil {
						return err
					}
					imp, err := edit.ImportItem(p.Library, item)
					if err != nil {
						return err
					}
					stack.Execute(imp)
					if bin != nil {
						move, err := edit.MoveItemToBin(p.Library, imp.Item().ID, bin.ID())
						if err != nil {
							return err
						}
						stack.Execute(move)
					}
					imported := imp.Item()
					logger.Info("media imported",
						logging.MediaItem(imported.ID, imported.Path, string(imported.Kind), imported.DurationFrames),
					)
					rows = append(rows, []string{
						imported.Name,
						string(imported.Kind),
						fmt.Sprintf("%.3f", imported.FrameRate),
						fmt.Sprintf("%d", imported.DurationFrames),
					})
				}

				saveNote := strings.TrimSpace(note)
				if saveNote == "" {
					saveNote = fmt.Sprintf("import %d file(s)", len(rows))
				}
				rev, err := s.Save(cmd.Context(), p, saveNote)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, renderTable(out, []string{"Name", "Kind", "FPS", "Frames"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight, alignRight}))
				fmt.Fprintf(out, "Saved %s revision %d\n", p.Name, rev.Number)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&binName, "bin", "", "File imported items into this bin, creating it when missing")
	cmd.Flags().StringVar(&note, "note", "", "Revision note")
	return cmd
}

func ensureBin(p *project.Project, stack *history.Stack, name string) (*media.Bin, error) {
	if bin := p.Library.BinByName(name); bin != nil {
		return bin, nil
	}
	create, err := edit.CreateBin(p.Library, name)
	if err != nil {
		return nil, err
	}
	stack.Execute(create)
	return create.Bin(), nil
}
