package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"reel/internal/fileutil"
	"reel/internal/project"
	"reel/internal/store"
	"reel/internal/timeline"
)

func newProjectCommand(ctx *commandContext) *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Create, inspect and delete stored projects",
	}

	projectCmd.AddCommand(newProjectNewCommand(ctx))
	projectCmd.AddCommand(newProjectListCommand(ctx))
	projectCmd.AddCommand(newProjectShowCommand(ctx))
	projectCmd.AddCommand(newProjectHistoryCommand(ctx))
	projectCmd.AddCommand(newProjectDeleteCommand(ctx))
	projectCmd.AddCommand(newProjectExportCommand(ctx))

	return projectCmd
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func newProjectNewCommand(ctx *commandContext) *cobra.Command {
	var frameRate float64
	var width, height int
	var note string

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create an empty project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			settings := project.Settings{
				FrameRate: cfg.Project.FrameRate,
				Width:     cfg.Project.Width,
				Height:    cfg.Project.Height,
			}
			if frameRate > 0 {
				settings.FrameRate = frameRate
			}
			if width > 0 {
				settings.Width = width
			}
			if height > 0 {
				settings.Height = height
			}
			name := strings.TrimSpace(args[0])
			if name == "" {
				return errors.New("project name must not be empty")
			}
			p := project.New(name, settings)
			return ctx.withStore(cmd, func(s *store.Store) error {
				if _, err := s.Create(cmd.Context(), p, note); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created project %s (%s)\n", p.Name, p.ID)
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&frameRate, "frame-rate", 0, "Frames per second (defaults to the configured rate)")
	cmd.Flags().IntVar(&width, "width", 0, "Canvas width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "Canvas height in pixels")
	cmd.Flags().StringVar(&note, "note", "created", "Note stored with the first revision")
	return cmd
}

func newProjectListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(s *store.Store) error {
				records, err := s.List(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, records)
				}
				out := cmd.OutOrStdout()
				if len(records) == 0 {
					fmt.Fprintln(out, "No projects")
					return nil
				}
				rows := make([][]string, 0, len(records))
				for _, rec := range records {
					rows = append(rows, []string{rec.ID, rec.Name, strconv.Itoa(rec.HeadRevision), formatTime(rec.UpdatedAt)})
				}
				fmt.Fprintln(out, renderTable(out, []string{"ID", "Name", "Revision", "Updated"}, rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft}))
				return nil
			})
		},
	}

	addJSONFlag(cmd, &asJSON, "")
	return cmd
}

func newProjectShowCommand(ctx *commandContext) *cobra.Command {
	var revision int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <project>",
		Short: "Show the tracks and settings of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(s *store.Store) error {
				p, rev, err := s.LoadRevision(cmd.Context(), args[0], revision)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, project.Encode(p))
				}
				renderProject(cmd, p, rev)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&revision, "revision", 0, "Revision to show (defaults to the latest)")
	addJSONFlag(cmd, &asJSON, "Output the project document as JSON")
	return cmd
}

func renderProject(cmd *cobra.Command, p *project.Project, rev *store.Revision) {
	out := cmd.OutOrStdout()
	sum := p.Summarize()
	fmt.Fprintf(out, "Project:   %s (%s)\n", p.Name, p.ID)
	fmt.Fprintf(out, "Revision:  %d\n", rev.Number)
	fmt.Fprintf(out, "Canvas:    %dx%d @ %s fps\n", p.Width, p.Height, strconv.FormatFloat(sum.FrameRate, 'f', -1, 64))
	fmt.Fprintf(out, "Duration:  %s (%d frames)\n", sum.DurationTC, sum.Duration)
	fmt.Fprintf(out, "Media:     %d items in %d bins\n", sum.Items, sum.Bins)
	fmt.Fprintf(out, "Markers:   %d, overlays: %d, transitions: %d\n", sum.Markers, sum.Overlays, sum.Transitions)

	if sum.Tracks == 0 {
		fmt.Fprintln(out, "No tracks")
		return
	}
	rows := make([][]string, 0, sum.Tracks)
	for _, track := range p.Timeline.Tracks() {
		rows = append(rows, []string{
			track.Name(),
			track.Kind().String(),
			strconv.Itoa(track.ClipCount()),
			timeline.FormatTimecode(track.EndFrame(), sum.FrameRate),
			yesNo(track.Muted()),
			yesNo(track.Locked()),
		})
	}
	fmt.Fprintln(out, renderTable(out, []string{"Track", "Kind", "Clips", "End", "Muted", "Locked"}, rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft}))
}

func newProjectHistoryCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history <project>",
		Short: "List saved revisions of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(s *store.Store) error {
				revs, err := s.Revisions(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, revs)
				}
				out := cmd.OutOrStdout()
				rows := make([][]string, 0, len(revs))
				for _, rev := range revs {
					rows = append(rows, []string{
						strconv.Itoa(rev.Number),
						formatTime(rev.CreatedAt),
						strconv.Itoa(rev.Tracks),
						strconv.Itoa(rev.Clips),
						strconv.FormatInt(rev.DurationFrames, 10),
						rev.Note,
					})
				}
				fmt.Fprintln(out, renderTable(out, []string{"Rev", "Saved", "Tracks", "Clips", "Frames", "Note"}, rows,
					[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight, alignLeft}))
				return nil
			})
		},
	}

	addJSONFlag(cmd, &asJSON, "")
	return cmd
}

func newProjectDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <project>",
		Short: "Delete a project and all of its revisions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(s *store.Store) error {
				if err := s.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", args[0])
				return nil
			})
		},
	}
}

func newProjectExportCommand(ctx *commandContext) *cobra.Command {
	var revision int
	var output string

	cmd := &cobra.Command{
		Use:   "export <project>",
		Short: "Write the project document to a file or stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd, func(s *store.Store) error {
				p, _, err := s.LoadRevision(cmd.Context(), args[0], revision)
				if err != nil {
					return err
				}
				data, err := project.Marshal(p)
				if err != nil {
					return err
				}
				if output == "" || output == "-" {
					_, err := cmd.OutOrStdout().Write(append(data, '\n'))
					return err
				}
				if err := fileutil.WriteFileAtomic(output, append(data, '\n'), 0o644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", p.Name, output)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&revision, "revision", 0, "Revision to export (defaults to the latest)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file (stdout when empty)")
	return cmd
}
