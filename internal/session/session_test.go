package session

import (
	"errors"
	"path/filepath"
	"testing"
)

func newStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "tracker", "session.json"))
}

func TestLoadWithoutSession(t *testing.T) {
	fs := newStore(t)
	if _, err := fs.Load(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("Load on empty store: got %v, want ErrNoSession", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	fs := newStore(t)
	in := Session{Sub: "user-1", Email: "user@example.com", Name: "Dana"}

	if err := fs.Save(in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := fs.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out != in {
		t.Errorf("loaded %+v, want %+v", out, in)
	}

	owner := out.Owner()
	if owner.ID != "user-1" || owner.Email != "user@example.com" {
		t.Errorf("owner = %+v", owner)
	}
}

func TestSaveRejectsIncompleteIdentity(t *testing.T) {
	fs := newStore(t)
	for _, s := range []Session{
		{},
		{Sub: "user-1"},
		{Email: "user@example.com"},
		{Sub: "  ", Email: "user@example.com"},
	} {
		if err := fs.Save(s); err == nil {
			t.Errorf("Save(%+v) should fail", s)
		}
	}
}

func TestClear(t *testing.T) {
	fs := newStore(t)
	if err := fs.Save(Session{Sub: "user-1", Email: "user@example.com"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := fs.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := fs.Load(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("Load after Clear: got %v, want ErrNoSession", err)
	}

	// Clearing twice is fine.
	if err := fs.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}
