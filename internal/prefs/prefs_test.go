package prefs

import (
	"path/filepath"
	"sync"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "prefs.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestFavorites_EmptyByDefault(t *testing.T) {
	s := newTestStore(t)

	favs := s.Favorites()
	if len(favs) != 0 {
		t.Errorf("Expected empty favorites, got %v", favs)
	}
}

func TestFavorites_SaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.SaveFavorites([]string{"90", "80"}); err != nil {
		t.Fatalf("SaveFavorites failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Reopen and verify persistence.
	s2, err := Open(path)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer s2.Close()

	favs := s2.Favorites()
	if len(favs) != 2 || favs[0] != "90" || favs[1] != "80" {
		t.Errorf("Expected [90 80], got %v", favs)
	}
}

func TestAddFavorite_DuplicateIsNoOp(t *testing.T) {
	s := newTestStore(t)

	if err := s.AddFavorite("90"); err != nil {
		t.Fatalf("AddFavorite failed: %v", err)
	}
	if err := s.AddFavorite("90"); err != nil {
		t.Fatalf("Duplicate AddFavorite failed: %v", err)
	}

	favs := s.Favorites()
	if len(favs) != 1 {
		t.Errorf("Expected 1 favorite after duplicate add, got %v", favs)
	}
}

func TestRemoveFavorite_AbsentIsNoOp(t *testing.T) {
	s := newTestStore(t)

	if err := s.AddFavorite("90"); err != nil {
		t.Fatalf("AddFavorite failed: %v", err)
	}
	if err := s.RemoveFavorite("not-there"); err != nil {
		t.Fatalf("RemoveFavorite of absent id failed: %v", err)
	}

	favs := s.Favorites()
	if len(favs) != 1 || favs[0] != "90" {
		t.Errorf("Expected set unchanged [90], got %v", favs)
	}
}

func TestFavorites_CorruptEntryReadsAsEmpty(t *testing.T) {
	s := newTestStore(t)

	if err := s.set(keyFavorites, "{not json"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	favs := s.Favorites()
	if len(favs) != 0 {
		t.Errorf("Expected empty favorites for corrupt entry, got %v", favs)
	}
}

func TestFavorites_ConcurrentToggles(t *testing.T) {
	s := newTestStore(t)

	// Interleaved add/remove of distinct ids must not drop writes.
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := string(rune('a' + n))
			if err := s.AddFavorite(id); err != nil {
				t.Errorf("AddFavorite(%s) failed: %v", id, err)
			}
		}(i)
	}
	wg.Wait()

	favs := s.Favorites()
	if len(favs) != 10 {
		t.Errorf("Expected 10 favorites after concurrent adds, got %d", len(favs))
	}
}

func TestLanguage_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	if got := s.Language(); got != "" {
		t.Errorf("Expected empty language by default, got %s", got)
	}

	if err := s.SaveLanguage("es"); err != nil {
		t.Fatalf("SaveLanguage failed: %v", err)
	}
	if got := s.Language(); got != "es" {
		t.Errorf("Expected es, got %s", got)
	}
}

func TestTheme_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	if got := s.Theme(); got != "" {
		t.Errorf("Expected empty theme by default, got %s", got)
	}

	if err := s.SaveTheme("dark"); err != nil {
		t.Fatalf("SaveTheme failed: %v", err)
	}
	if got := s.Theme(); got != "dark" {
		t.Errorf("Expected dark, got %s", got)
	}
}
