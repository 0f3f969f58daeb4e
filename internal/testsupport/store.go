package testsupport

import (
	"testing"

	"authorlink/internal/config"
	"authorlink/internal/contributors"
)

// NewStore opens a contributor store rooted in the test config's data
// directory and closes it when the test finishes.
func NewStore(t testing.TB, cfg *config.Config) *contributors.Store {
	t.Helper()

	store, err := contributors.Open(cfg)
	if err != nil {
		t.Fatalf("open contributor store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close contributor store: %v", err)
		}
	})
	return store
}
