package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"reel/internal/store"
	"reel/internal/timeline"
)

func newEvalCommand(ctx *commandContext) *cobra.Command {
	var clipRef, effectRef, param string
	var frame int64
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "eval <project>",
		Short: "Print the effective value of one parameter at a timeline frame",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if clipRef == "" || param == "" {
				return errors.New("--clip and --param are required")
			}
			return ctx.withStore(cmd, func(s *store.Store) error {
				p, _, err := s.Load(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				clip := p.Timeline.ClipByID(clipRef)
				if clip == nil {
					clip = p.Timeline.ClipByName(clipRef)
				}
				if clip == nil {
					return fmt.Errorf("no clip %q", clipRef)
				}
				index, err := effectIndex(clip, effectRef)
				if err != nil {
					return err
				}
				value, ok := clip.ParameterAt(index, param, frame)
				if !ok {
					return fmt.Errorf("effect %s has no parameter %q", clip.Effect(index).Name(), param)
				}
				if asJSON {
					return writeJSON(cmd, map[string]any{
						"clip":      clip.ID(),
						"effect":    clip.Effect(index).ID(),
						"parameter": param,
						"frame":     frame,
						"value":     value,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), value.String())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&clipRef, "clip", "", "Clip id or name")
	cmd.Flags().StringVar(&effectRef, "effect", "0", "Effect id, name or chain index")
	cmd.Flags().StringVar(&param, "param", "", "Parameter name")
	cmd.Flags().Int64Var(&frame, "frame", 0, "Timeline frame")
	addJSONFlag(cmd, &asJSON, "")
	return cmd
}

func effectIndex(clip *timeline.Clip, ref string) (int, error) {
	if e, i := clip.EffectByID(ref); e != nil {
		return i, nil
	}
	for i, e := range clip.Effects() {
		if e.Name() == ref {
			return i, nil
		}
	}
	if i, err := strconv.Atoi(ref); err == nil && clip.Effect(i) != nil {
		return i, nil
	}
	return -1, fmt.Errorf("clip %s has no effect %q", clip.Name(), ref)
}
