package store

import (
	"path/filepath"
	"testing"

	"github.com/iris-hep/qastle/internal/testutil"
)

// createTestStore opens a catalog in a temporary directory with
// deterministic request ids.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	ids := testutil.NewSequentialIDs("req")
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), WithRequestIDs(ids.Next))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}
