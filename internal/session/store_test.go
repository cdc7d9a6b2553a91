package session

import (
	"os"
	"path/filepath"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStoreAt(filepath.Join(t.TempDir(), "session.json"))
}

func TestGetWithoutLogin(t *testing.T) {
	s := testStore(t)

	_, err := s.Get()
	if err != ErrNoSession {
		t.Errorf("Get on empty store = %v, want ErrNoSession", err)
	}
}

func TestSetAndGet(t *testing.T) {
	s := testStore(t)

	want := State{
		Token:    "tok-abc",
		UserID:   7,
		Name:     "Ravi Kumar",
		Email:    "ravi@example.com",
		UserType: "farmer",
	}
	if err := s.Set(want); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := s.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Token != want.Token {
		t.Errorf("Token = %q, want %q", got.Token, want.Token)
	}
	if got.UserID != want.UserID {
		t.Errorf("UserID = %d, want %d", got.UserID, want.UserID)
	}
	if got.Email != want.Email {
		t.Errorf("Email = %q, want %q", got.Email, want.Email)
	}
	if got.SavedAt.IsZero() {
		t.Error("SavedAt not stamped on Set")
	}
}

func TestSessionFilePermissions(t *testing.T) {
	s := testStore(t)

	if err := s.Set(State{Token: "tok"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	info, err := os.Stat(s.path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("session file mode = %o, want 600", perm)
	}
}

func TestClear(t *testing.T) {
	s := testStore(t)

	if err := s.Set(State{Token: "tok"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := s.Get(); err != ErrNoSession {
		t.Errorf("Get after Clear = %v, want ErrNoSession", err)
	}

	// Clearing again is a no-op.
	if err := s.Clear(); err != nil {
		t.Errorf("second Clear = %v, want nil", err)
	}
}

func TestGetRejectsEmptyToken(t *testing.T) {
	s := testStore(t)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(s.path, []byte(`{"token":""}`), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Get(); err != ErrNoSession {
		t.Errorf("Get with empty token = %v, want ErrNoSession", err)
	}
}
