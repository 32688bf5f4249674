// Package i18n holds the game's user-facing text in every supported
// locale and picks a locale for a caller.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// BaseLocale supplies any key another locale leaves out.
const BaseLocale = "en-US"

// LangParam is the query parameter that selects a language.
const LangParam = "lang"

//go:embed locales/*/*.yaml
var embedded embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle maps locale → key → message.
type Bundle struct {
	locales map[string]map[string]string
	tags    []language.Tag
	matcher language.Matcher
}

var defaultBundle = mustLoad()

// Default returns the embedded bundle, already registered with x/text.
func Default() *Bundle { return defaultBundle }

func mustLoad() *Bundle {
	b, err := Load(embedded)
	if err != nil {
		panic(err)
	}
	b.Register()
	return b
}

// Load reads locales/<locale>/*.yaml from fsys.
func Load(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	b := &Bundle{locales: map[string]map[string]string{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var f catalogFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		dir := path.Base(path.Dir(p))
		if strings.TrimSpace(f.Locale) != dir {
			return nil, fmt.Errorf("catalog %s: locale %q must match path locale %q", p, f.Locale, dir)
		}
		msgs, ok := b.locales[dir]
		if !ok {
			msgs = map[string]string{}
			b.locales[dir] = msgs
		}
		for k, v := range f.Messages {
			if _, dup := msgs[k]; dup {
				return nil, fmt.Errorf("catalog %s: duplicate key %q", p, k)
			}
			msgs[k] = v
		}
	}
	if _, ok := b.locales[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}

	// base locale first so the matcher falls back to it
	b.tags = []language.Tag{language.MustParse(BaseLocale)}
	for _, l := range b.Locales() {
		if l == BaseLocale {
			continue
		}
		tag, err := language.Parse(l)
		if err != nil {
			return nil, fmt.Errorf("parse locale tag %q: %w", l, err)
		}
		b.tags = append(b.tags, tag)
	}
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

// Register installs every message into the x/text/message catalog, with
// base-locale text filling keys a locale leaves out.
func (b *Bundle) Register() {
	base := b.locales[BaseLocale]
	for _, tag := range b.tags {
		msgs := b.locales[tag.String()]
		for k, v := range base {
			if local, ok := msgs[k]; ok {
				v = local
			}
			_ = message.SetString(tag, k, v)
		}
	}
}

// Locales returns the sorted locale identifiers.
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.locales))
	for l := range b.locales {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Tags returns supported tags, base locale first.
func (b *Bundle) Tags() []language.Tag { return append([]language.Tag(nil), b.tags...) }

// Match returns the supported tag closest to the first preference that
// matches at all; earlier preferences win. No match yields BaseLocale.
func (b *Bundle) Match(prefs ...string) language.Tag {
	for _, p := range prefs {
		want, _, err := language.ParseAcceptLanguage(p)
		if err != nil || len(want) == 0 {
			continue
		}
		_, idx, conf := b.matcher.Match(want...)
		if conf != language.No {
			return b.tags[idx]
		}
	}
	return b.tags[0]
}

// Next cycles to the following supported tag, for a language toggle.
func (b *Bundle) Next(cur language.Tag) language.Tag {
	for i, t := range b.tags {
		if t == cur {
			return b.tags[(i+1)%len(b.tags)]
		}
	}
	return b.tags[0]
}

// FromRequest resolves the lang query parameter, then Accept-Language,
// then fallback.
func (b *Bundle) FromRequest(r *http.Request, fallback string) language.Tag {
	var prefs []string
	if v := strings.TrimSpace(r.URL.Query().Get(LangParam)); v != "" {
		prefs = append(prefs, v)
	}
	if v := strings.TrimSpace(r.Header.Get("Accept-Language")); v != "" {
		prefs = append(prefs, v)
	}
	prefs = append(prefs, fallback)
	return b.Match(prefs...)
}

// Printer returns a message printer for tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}
