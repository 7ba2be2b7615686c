package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/roach88/leapscale/internal/leapsec"
	"github.com/roach88/leapscale/internal/testutil"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("final Open() failed: %v", err)
	}
	defer s.Close()

	var name string
	err = s.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='index' AND name=?",
		"idx_instants_time",
	).Scan(&name)
	if err != nil {
		t.Errorf("time index not found after idempotent opens: %v", err)
	}

	if err := s.verifyPragma("user_version", "1"); err != nil {
		t.Error(err)
	}
}

func TestOpen_InvalidPath(t *testing.T) {
	_, err := Open("/nonexistent/dir/test.db")
	if err == nil {
		t.Error("expected error for invalid path, got nil")
	}
}

func TestOpen_DefaultRules(t *testing.T) {
	s := createTestStore(t)
	if s.Rules() != leapsec.Rules(leapsec.System()) {
		t.Errorf("Rules() = %v, want system rules", s.Rules().Name())
	}

	custom := testutil.LeapOn(1000)
	s = createTestStore(t, WithRules(custom))
	if s.Rules() != leapsec.Rules(custom) {
		t.Errorf("Rules() = %v, want %v", s.Rules().Name(), custom.Name())
	}
}

func TestClose_NilDB(t *testing.T) {
	s := &Store{db: nil}
	if err := s.Close(); err != nil {
		t.Errorf("Close() on nil db should not error: %v", err)
	}
}

// Pragma tests

func TestPragmas(t *testing.T) {
	s := createTestStore(t)

	tests := []struct {
		name, want string
	}{
		{"journal_mode", "wal"},
		{"synchronous", "1"}, // NORMAL
		{"busy_timeout", "5000"},
		{"foreign_keys", "1"},
	}
	for _, tt := range tests {
		if err := s.verifyPragma(tt.name, tt.want); err != nil {
			t.Error(err)
		}
	}
}

func TestUUIDv7Generator(t *testing.T) {
	var g UUIDv7Generator
	a, b := g.Generate(), g.Generate()
	if len(a) != 36 {
		t.Errorf("Generate() = %q, want 36 characters", a)
	}
	if a == b {
		t.Errorf("Generate() returned %q twice", a)
	}
	if a[14] != '7' {
		t.Errorf("Generate() = %q, want version 7", a)
	}
}
