// Package i18n provides key→string translation with language fallback and
// parameter interpolation.
//
// Translation tables are YAML files embedded at build time, one per supported
// language. At construction each nested table is flattened into a map keyed
// by the dot-joined path ("home.title"), so lookups are plain map reads with
// no tree walking. The set of languages is closed: it is exactly the set of
// embedded tables.
//
// Lookup never fails. An unsupported language silently falls back to English,
// and a missing key echoes back verbatim — which doubles as a visible signal
// of an untranslated string.
package i18n

import (
	"embed"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed translations/*.yaml
var tableFS embed.FS

// DefaultLanguage is the fallback for unsupported language codes.
const DefaultLanguage = "en"

var placeholderRe = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Translator resolves dot-path keys against the embedded language tables.
// It is immutable after construction and safe for concurrent use.
type Translator struct {
	tables map[string]map[string]string // lang → dot-path → string
}

// NewTranslator parses and flattens the embedded tables. It errors only when
// an embedded table is malformed, which is a build problem, not user input.
func NewTranslator() (*Translator, error) {
	entries, err := tableFS.ReadDir("translations")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded translations: %w", err)
	}

	tables := make(map[string]map[string]string, len(entries))
	for _, entry := range entries {
		lang := strings.TrimSuffix(entry.Name(), ".yaml")

		raw, err := tableFS.ReadFile("translations/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read table %s: %w", entry.Name(), err)
		}

		var tree map[string]any
		if err := yaml.Unmarshal(raw, &tree); err != nil {
			return nil, fmt.Errorf("failed to parse table %s: %w", entry.Name(), err)
		}

		flat := make(map[string]string)
		flatten("", tree, flat)
		tables[lang] = flat
	}

	if _, ok := tables[DefaultLanguage]; !ok {
		return nil, fmt.Errorf("default language %q table is missing", DefaultLanguage)
	}

	return &Translator{tables: tables}, nil
}

// flatten walks a nested table depth-first, joining path segments with dots.
// Scalar leaves are stringified; non-map, non-scalar nodes are skipped.
func flatten(prefix string, tree map[string]any, out map[string]string) {
	for key, value := range tree {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]any:
			flatten(path, v, out)
		case string:
			out[path] = v
		case nil:
			// Empty leaf, nothing to register.
		default:
			out[path] = fmt.Sprint(v)
		}
	}
}

// Translate resolves key in the given language. Unsupported languages fall
// back to the default language before lookup; a key with no entry is returned
// verbatim. When params is non-nil, every {{name}} placeholder whose name is
// present in params is replaced by its stringified value; placeholders with
// no matching param are left untouched.
func (t *Translator) Translate(key, language string, params map[string]any) string {
	if !t.IsSupported(language) {
		language = DefaultLanguage
	}

	value, ok := t.tables[language][key]
	if !ok {
		return key
	}

	if len(params) == 0 {
		return value
	}

	return placeholderRe.ReplaceAllStringFunc(value, func(match string) string {
		name := placeholderRe.FindStringSubmatch(match)[1]
		if v, ok := params[name]; ok {
			return fmt.Sprint(v)
		}
		return match
	})
}

// IsSupported reports whether code is one of the loaded language tables.
func (t *Translator) IsSupported(code string) bool {
	_, ok := t.tables[code]
	return ok
}

// Supported returns the loaded language codes in sorted order.
func (t *Translator) Supported() []string {
	codes := make([]string, 0, len(t.tables))
	for code := range t.tables {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
