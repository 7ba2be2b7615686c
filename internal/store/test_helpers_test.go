package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/leapscale/internal/scale"
	"github.com/roach88/leapscale/internal/testutil"
)

// createTestStore creates a new store in a temp dir with sequential ids.
func createTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	opts = append([]Option{WithIDGenerator(testutil.NewSequentialIDs("rec"))}, opts...)
	s, err := Open(path, opts...)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// mustInstant builds a system-rules instant or fails the test.
func mustInstant(t *testing.T, mjd, nod int64) scale.UTCInstant {
	t.Helper()
	u, err := scale.NewUTCInstant(mjd, nod)
	if err != nil {
		t.Fatalf("NewUTCInstant(%d, %d) failed: %v", mjd, nod, err)
	}
	return u
}
