package main

import (
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"reel/internal/preflight"
	"reel/internal/store"
)

const statusLabelWidth = 16

type statusKind int

const (
	statusOK statusKind = iota
	statusWarn
	statusError
)

var errChecksFailed = errors.New("one or more required checks failed")

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check directories, the project store and external tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			var results []preflight.Result
			s, openErr := store.Open(cfg, store.WithLogger(ctx.loggerFor(cmd)))
			if openErr != nil {
				results = preflight.RunAll(cmd.Context(), cfg, nil)
				results = append(results, preflight.Result{Name: "Project store", Detail: openErr.Error()})
			} else {
				results = preflight.RunAll(cmd.Context(), cfg, s)
				_ = s.Close()
			}

			if jsonOutput {
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				colorize := isTerminal(out)
				for _, r := range results {
					fmt.Fprintln(out, renderStatusLine(r.Name, resultKind(r), r.Detail, colorize))
				}
			}
			if preflight.AnyFailed(results) {
				return errChecksFailed
			}
			return nil
		},
	}

	addJSONFlag(cmd, &jsonOutput, "")
	return cmd
}

func resultKind(r preflight.Result) statusKind {
	switch {
	case r.Passed:
		return statusOK
	case r.Optional:
		return statusWarn
	default:
		return statusError
	}
}

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := fmt.Sprintf("[%s]", statusKindLabel(kind))
	if message != "" {
		statusText += " " + message
	}
	line := fmt.Sprintf("%-*s %s", statusLabelWidth, label+":", statusText)
	if colorize {
		return statusKindColor(kind).Sprint(line)
	}
	return line
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

func statusKindColor(kind statusKind) text.Colors {
	switch kind {
	case statusOK:
		return text.Colors{text.FgGreen}
	case statusWarn:
		return text.Colors{text.FgYellow}
	default:
		return text.Colors{text.FgRed}
	}
}
