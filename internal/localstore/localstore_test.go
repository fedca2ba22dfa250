package localstore

import (
	"os"
	"path/filepath"
	"testing"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "local.json"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func TestSetGetRoundTrip(t *testing.T) {
	s := openTemp(t)
	if err := s.Set("xp_0xabc", int64(150)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	var xp int64
	ok, err := s.Get("xp_0xabc", &xp)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if xp != 150 {
		t.Fatalf("xp = %d, want 150", xp)
	}
}

func TestGetMissingKey(t *testing.T) {
	s := openTemp(t)
	var v string
	ok, err := s.Get("nope", &v)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatalf("missing key reported present")
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Set("collection_0xabc", []string{"shiba", "wolf"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	var dogs []string
	if ok, err := s2.Get("collection_0xabc", &dogs); err != nil || !ok {
		t.Fatalf("Get after reopen: ok=%v err=%v", ok, err)
	}
	if len(dogs) != 2 || dogs[1] != "wolf" {
		t.Fatalf("dogs = %v", dogs)
	}
}

func TestOpenToleratesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open on corrupt file: %v", err)
	}
	if err := s.Set("k", 1); err != nil {
		t.Fatalf("Set after corrupt open: %v", err)
	}
}

func TestDeletePrefix(t *testing.T) {
	s := openTemp(t)
	for _, k := range []string{"challenge_completed_a_0x1", "challenge_completed_b_0x1", "xp_0x1"} {
		if err := s.Set(k, "2025-06-01"); err != nil {
			t.Fatalf("Set %s: %v", k, err)
		}
	}
	if err := s.DeletePrefix("challenge_completed_"); err != nil {
		t.Fatalf("DeletePrefix: %v", err)
	}
	var v string
	if ok, _ := s.Get("challenge_completed_a_0x1", &v); ok {
		t.Fatalf("prefix key survived")
	}
	if ok, _ := s.Get("xp_0x1", &v); !ok {
		t.Fatalf("unrelated key swept")
	}
}

func TestMarkerDayKeying(t *testing.T) {
	s := openTemp(t)
	m := NewMarker(s, "0xabc")

	if err := m.MarkCompleted("pet_master", "2025-06-01"); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}
	done, err := m.Completed("pet_master", "2025-06-01")
	if err != nil || !done {
		t.Fatalf("same day: done=%v err=%v", done, err)
	}
	// A new day reads as not completed without any reset pass.
	done, err = m.Completed("pet_master", "2025-06-02")
	if err != nil || done {
		t.Fatalf("next day: done=%v err=%v, want false", done, err)
	}
}

func TestMarkerOneTime(t *testing.T) {
	s := openTemp(t)
	m := NewMarker(s, "0xabc")
	if err := m.MarkCompleted("x_follower", ""); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}
	done, err := m.Completed("x_follower", "")
	if err != nil || !done {
		t.Fatalf("one-time marker: done=%v err=%v", done, err)
	}
}

func TestMarkerClear(t *testing.T) {
	s := openTemp(t)
	m := NewMarker(s, "0xabc")
	if err := m.MarkCompleted("pet_master", "2025-06-01"); err != nil {
		t.Fatalf("MarkCompleted daily: %v", err)
	}
	if err := m.MarkCompleted("x_follower", ""); err != nil {
		t.Fatalf("MarkCompleted one-time: %v", err)
	}
	if err := m.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if done, _ := m.Completed("pet_master", "2025-06-01"); done {
		t.Fatalf("daily marker survived clear")
	}
	// One-time completions are permanent.
	if done, _ := m.Completed("x_follower", ""); !done {
		t.Fatalf("one-time marker lost in clear")
	}
}
