package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// addJSONFlag registers the --json switch shared by listing commands.
func addJSONFlag(cmd *cobra.Command, target *bool, usage string) {
	if usage == "" {
		usage = "Output as JSON"
	}
	cmd.Flags().BoolVar(target, "json", false, usage)
}

// writeJSON encodes v as indented JSON to the command's stdout. Project and
// clip names are written as-is, without HTML escaping.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
