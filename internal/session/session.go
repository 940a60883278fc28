// Package session holds the cross-screen application state: the favorites
// set, the active language, and the active theme. Each is an explicit,
// injectable service constructed once at startup and handed to whichever
// component needs it — there are no package-level singletons.
//
// Every service keeps an in-memory mirror for synchronous reads and writes
// through the preference store for persistence.
package session

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/coinlens/coinlens/internal/i18n"
	"github.com/coinlens/coinlens/internal/prefs"
)

// Favorites is the in-memory mirror of the persisted favorites set.
type Favorites struct {
	store *prefs.Store
	log   *logrus.Logger

	mu  sync.RWMutex
	ids map[string]struct{}
}

// NewFavorites creates an empty favorites service; call Load to hydrate it
// from the store.
func NewFavorites(store *prefs.Store, log *logrus.Logger) *Favorites {
	return &Favorites{
		store: store,
		log:   log,
		ids:   make(map[string]struct{}),
	}
}

// Load hydrates the mirror from the store. A missing or corrupt entry reads
// as an empty set, so Load never fails.
func (f *Favorites) Load() {
	ids := f.store.Favorites()

	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		f.ids[id] = struct{}{}
	}
}

// IsFavorite reports membership from the in-memory mirror.
func (f *Favorites) IsFavorite(id string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.ids[id]
	return ok
}

// IDs returns the favorite IDs in persisted order.
func (f *Favorites) IDs() []string {
	return f.store.Favorites()
}

// Add persists then mirrors id. Adding an existing member is a no-op.
func (f *Favorites) Add(id string) error {
	if err := f.store.AddFavorite(id); err != nil {
		return err
	}

	f.mu.Lock()
	f.ids[id] = struct{}{}
	f.mu.Unlock()
	return nil
}

// Remove persists then mirrors the removal. Removing a non-member is a no-op.
func (f *Favorites) Remove(id string) error {
	if err := f.store.RemoveFavorite(id); err != nil {
		return err
	}

	f.mu.Lock()
	delete(f.ids, id)
	f.mu.Unlock()
	return nil
}

// Toggle adds id when absent and removes it when present. Two consecutive
// toggles return the set to its original state.
func (f *Favorites) Toggle(id string) error {
	if f.IsFavorite(id) {
		return f.Remove(id)
	}
	return f.Add(id)
}

// Language tracks the active UI language and exposes translation with it.
type Language struct {
	store      *prefs.Store
	translator *i18n.Translator
	log        *logrus.Logger

	mu     sync.RWMutex
	active string
}

// NewLanguage constructs the language service, hydrating the active code from
// the store. An unsupported persisted value is kept out of the active state
// (the default applies) but is not treated as an error — fallback also happens
// again at translate time, so a stale persisted code can never surface as a
// failure.
func NewLanguage(store *prefs.Store, translator *i18n.Translator, log *logrus.Logger) *Language {
	active := i18n.DefaultLanguage
	if saved := store.Language(); saved != "" && translator.IsSupported(saved) {
		active = saved
	}

	return &Language{
		store:      store,
		translator: translator,
		log:        log,
		active:     active,
	}
}

// Active returns the current language code.
func (l *Language) Active() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// Set persists and activates code. Unsupported codes are ignored.
func (l *Language) Set(code string) error {
	if !l.translator.IsSupported(code) {
		l.log.WithField("language", code).Warn("ignoring unsupported language")
		return nil
	}

	if err := l.store.SaveLanguage(code); err != nil {
		return err
	}

	l.mu.Lock()
	l.active = code
	l.mu.Unlock()
	return nil
}

// T translates key with the active language.
func (l *Language) T(key string, params map[string]any) string {
	return l.translator.Translate(key, l.Active(), params)
}

// Theme codes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Theme tracks the active color theme.
type Theme struct {
	store *prefs.Store

	mu     sync.RWMutex
	active string
}

// NewTheme constructs the theme service. When no valid theme is persisted,
// systemScheme (the host platform's reported scheme) applies; anything other
// than "dark" falls back to light.
func NewTheme(store *prefs.Store, systemScheme string) *Theme {
	active := ThemeLight
	if systemScheme == ThemeDark {
		active = ThemeDark
	}
	if saved := store.Theme(); saved == ThemeLight || saved == ThemeDark {
		active = saved
	}

	return &Theme{store: store, active: active}
}

// Active returns the current theme code.
func (t *Theme) Active() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active
}

// IsDark reports whether the dark theme is active.
func (t *Theme) IsDark() bool {
	return t.Active() == ThemeDark
}

// Set persists and activates theme. Codes other than light/dark are ignored.
func (t *Theme) Set(theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return nil
	}

	if err := t.store.SaveTheme(theme); err != nil {
		return err
	}

	t.mu.Lock()
	t.active = theme
	t.mu.Unlock()
	return nil
}

// Toggle switches between light and dark.
func (t *Theme) Toggle() error {
	if t.IsDark() {
		return t.Set(ThemeLight)
	}
	return t.Set(ThemeDark)
}
