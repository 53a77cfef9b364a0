package session

import (
	"os"
	"path/filepath"
	"testing"

	"dormshare-cli/internal/model"
)

func TestLoadMissingFileIsZeroSession(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	sess, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sess.Token != "" || sess.User != nil {
		t.Fatalf("expected zero session, got %+v", sess)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := Store{Dir: filepath.Join(t.TempDir(), "nested")}

	want := Session{
		Token: "tok-1",
		User:  &model.User{ID: "u1", Name: "Asha", Email: "asha@hostel.edu", HostelRoom: "B-204"},
	}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Token != want.Token || got.User == nil || got.User.ID != want.User.ID || got.User.HostelRoom != "B-204" {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	info, err := os.Stat(filepath.Join(s.Dir, "session.json"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("session file should be owner-only, got %o", perm)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	if err := s.Save(Session{Token: "tok"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}

	sess, err := s.Load()
	if err != nil {
		t.Fatalf("Load after Clear: %v", err)
	}
	if sess.Token != "" {
		t.Fatal("token survived Clear")
	}
}
