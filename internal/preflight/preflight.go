package preflight

import (
	"context"

	"reel/internal/config"
	"reel/internal/deps"
	"reel/internal/store"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string `json:"name"`
	Passed   bool   `json:"passed"`
	Optional bool   `json:"optional,omitempty"`
	Detail   string `json:"detail"`
}

// Failed reports whether r is a required check that did not pass.
func (r Result) Failed() bool { return !r.Passed && !r.Optional }

// RunAll executes every check for cfg. A nil store skips the store checks.
func RunAll(ctx context.Context, cfg *config.Config, s *store.Store) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}

	for _, status := range deps.CheckBinaries(deps.Requirements(cfg)) {
		results = append(results, FromDependency(status))
	}

	if s != nil {
		results = append(results, CheckStore(ctx, s))
		results = append(results, CheckOfflineMedia(ctx, s))
	}
	return results
}

// AnyFailed reports whether a required check in results failed.
func AnyFailed(results []Result) bool {
	for _, r := range results {
		if r.Failed() {
			return true
		}
	}
	return false
}
