package testsupport

import (
	"testing"

	"reel/internal/config"
	"reel/internal/store"
)

// MustOpenStore opens the project store for cfg and closes it when the test
// ends.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	s, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}
