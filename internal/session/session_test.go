package session

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/coinlens/coinlens/internal/i18n"
	"github.com/coinlens/coinlens/internal/prefs"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newTestStore(t *testing.T) *prefs.Store {
	t.Helper()
	s, err := prefs.Open(filepath.Join(t.TempDir(), "prefs.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newTestTranslator(t *testing.T) *i18n.Translator {
	t.Helper()
	tr, err := i18n.NewTranslator()
	if err != nil {
		t.Fatalf("NewTranslator failed: %v", err)
	}
	return tr
}

func TestFavorites_ToggleTwiceRestoresOriginalState(t *testing.T) {
	store := newTestStore(t)
	favs := NewFavorites(store, testLogger())
	favs.Load()

	if err := favs.Toggle("90"); err != nil {
		t.Fatalf("First toggle failed: %v", err)
	}
	if !favs.IsFavorite("90") {
		t.Error("Expected 90 to be a favorite after first toggle")
	}

	if err := favs.Toggle("90"); err != nil {
		t.Fatalf("Second toggle failed: %v", err)
	}
	if favs.IsFavorite("90") {
		t.Error("Expected 90 to be removed after second toggle")
	}
	if len(favs.IDs()) != 0 {
		t.Errorf("Expected empty persisted set, got %v", favs.IDs())
	}
}

func TestFavorites_MirrorHydratesFromStore(t *testing.T) {
	store := newTestStore(t)
	if err := store.SaveFavorites([]string{"90", "80"}); err != nil {
		t.Fatalf("SaveFavorites failed: %v", err)
	}

	favs := NewFavorites(store, testLogger())
	favs.Load()

	if !favs.IsFavorite("90") || !favs.IsFavorite("80") {
		t.Error("Expected mirror to contain persisted favorites")
	}
	if favs.IsFavorite("70") {
		t.Error("Expected 70 to be absent")
	}
}

func TestFavorites_RemoveAbsentIsNoOp(t *testing.T) {
	store := newTestStore(t)
	favs := NewFavorites(store, testLogger())
	favs.Load()

	if err := favs.Add("90"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := favs.Remove("not-there"); err != nil {
		t.Fatalf("Remove of absent id failed: %v", err)
	}
	if !favs.IsFavorite("90") {
		t.Error("Expected set unchanged")
	}
}

func TestLanguage_DefaultsToEnglish(t *testing.T) {
	store := newTestStore(t)
	lang := NewLanguage(store, newTestTranslator(t), testLogger())

	if lang.Active() != "en" {
		t.Errorf("Expected en, got %s", lang.Active())
	}
	if got := lang.T("home.title", nil); got != "Cryptocurrencies" {
		t.Errorf("Expected English translation, got %s", got)
	}
}

func TestLanguage_UnsupportedPersistedValueIsDiscarded(t *testing.T) {
	store := newTestStore(t)
	if err := store.SaveLanguage("xx"); err != nil {
		t.Fatalf("SaveLanguage failed: %v", err)
	}

	lang := NewLanguage(store, newTestTranslator(t), testLogger())
	if lang.Active() != "en" {
		t.Errorf("Expected fallback to en, got %s", lang.Active())
	}
}

func TestLanguage_SetPersistsAndActivates(t *testing.T) {
	store := newTestStore(t)
	lang := NewLanguage(store, newTestTranslator(t), testLogger())

	if err := lang.Set("es"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if lang.Active() != "es" {
		t.Errorf("Expected es, got %s", lang.Active())
	}
	if store.Language() != "es" {
		t.Errorf("Expected persisted es, got %s", store.Language())
	}
	if got := lang.T("home.title", nil); got != "Criptomonedas" {
		t.Errorf("Expected Spanish translation, got %s", got)
	}
}

func TestLanguage_SetUnsupportedIsIgnored(t *testing.T) {
	store := newTestStore(t)
	lang := NewLanguage(store, newTestTranslator(t), testLogger())

	if err := lang.Set("fr"); err != nil {
		t.Fatalf("Set of unsupported code should not error: %v", err)
	}
	if lang.Active() != "en" {
		t.Errorf("Expected en unchanged, got %s", lang.Active())
	}
	if store.Language() != "" {
		t.Errorf("Expected nothing persisted, got %s", store.Language())
	}
}

func TestTheme_SystemFallback(t *testing.T) {
	store := newTestStore(t)

	dark := NewTheme(store, "dark")
	if !dark.IsDark() {
		t.Error("Expected system dark fallback")
	}

	light := NewTheme(store, "light")
	if light.IsDark() {
		t.Error("Expected system light fallback")
	}

	unknown := NewTheme(store, "")
	if unknown.IsDark() {
		t.Error("Expected light for unknown system scheme")
	}
}

func TestTheme_PersistedValueWinsOverSystem(t *testing.T) {
	store := newTestStore(t)
	if err := store.SaveTheme("dark"); err != nil {
		t.Fatalf("SaveTheme failed: %v", err)
	}

	theme := NewTheme(store, "light")
	if !theme.IsDark() {
		t.Error("Expected persisted dark to win over system light")
	}
}

func TestTheme_Toggle(t *testing.T) {
	store := newTestStore(t)
	theme := NewTheme(store, "light")

	if err := theme.Toggle(); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if !theme.IsDark() {
		t.Error("Expected dark after toggle")
	}
	if store.Theme() != ThemeDark {
		t.Errorf("Expected persisted dark, got %s", store.Theme())
	}

	if err := theme.Toggle(); err != nil {
		t.Fatalf("Second toggle failed: %v", err)
	}
	if theme.IsDark() {
		t.Error("Expected light after second toggle")
	}
}
