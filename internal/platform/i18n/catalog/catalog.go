// Package catalog loads the localized message catalogs embedded in the binary
// and exposes them as x/text printers.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	xcatalog "golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

const (
	// BaseLocale is the canonical source locale for catalogs.
	BaseLocale = "en-US"
)

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

type localeCatalog struct {
	tag        language.Tag
	namespaces map[string]map[string]string
	messages   map[string]string
}

// Bundle holds every locale catalog and the x/text builder they populate.
type Bundle struct {
	locales map[string]*localeCatalog
	// names is ordered with BaseLocale first so matcher index 0 is the base.
	names   []string
	matcher language.Matcher
	builder *xcatalog.Builder
}

//go:embed locales/*/*.yaml
var embeddedCatalogFS embed.FS

var defaultBundle = mustLoadEmbedded()

// Default returns the process-wide embedded catalog bundle.
func Default() *Bundle {
	return defaultBundle
}

// NewPrinter returns a printer for locale from the default bundle.
func NewPrinter(locale string) *message.Printer {
	return Default().Printer(locale)
}

// LoadEmbedded loads the catalog files embedded in this package.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedCatalogFS)
}

// LoadFromFS loads catalog files laid out as locales/<locale>/<namespace>.yaml.
func LoadFromFS(catalogFS fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(catalogFS, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	bundle := &Bundle{locales: map[string]*localeCatalog{}}
	for _, p := range paths {
		data, err := fs.ReadFile(catalogFS, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := bundle.addFile(p, file); err != nil {
			return nil, err
		}
	}

	if _, ok := bundle.locales[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	if err := bundle.build(); err != nil {
		return nil, err
	}
	return bundle, nil
}

func (b *Bundle) addFile(p string, file catalogFile) error {
	localeFromPath := path.Base(path.Dir(p))
	namespaceFromPath := strings.TrimSuffix(path.Base(p), path.Ext(p))

	locale := strings.TrimSpace(file.Locale)
	if locale == "" {
		return fmt.Errorf("catalog %s: locale is required", p)
	}
	if locale != localeFromPath {
		return fmt.Errorf("catalog %s: locale %q must match path locale %q", p, locale, localeFromPath)
	}
	namespace := strings.TrimSpace(file.Namespace)
	if namespace != namespaceFromPath {
		return fmt.Errorf("catalog %s: namespace %q must match filename namespace %q", p, namespace, namespaceFromPath)
	}
	if len(file.Messages) == 0 {
		return fmt.Errorf("catalog %s: messages are required", p)
	}

	lc, ok := b.locales[locale]
	if !ok {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("catalog %s: parse locale tag %q: %w", p, locale, err)
		}
		lc = &localeCatalog{
			tag:        tag,
			namespaces: map[string]map[string]string{},
			messages:   map[string]string{},
		}
		b.locales[locale] = lc
	}
	if _, exists := lc.namespaces[namespace]; exists {
		return fmt.Errorf("catalog %s: namespace %q already defined for locale %q", p, namespace, locale)
	}

	nsMessages := make(map[string]string, len(file.Messages))
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("catalog %s: message key cannot be blank", p)
		}
		if _, exists := lc.messages[key]; exists {
			return fmt.Errorf("catalog %s: duplicate key %q in locale %q", p, key, locale)
		}
		lc.messages[key] = value
		nsMessages[key] = value
	}
	lc.namespaces[namespace] = nsMessages
	return nil
}

func (b *Bundle) build() error {
	b.names = []string{BaseLocale}
	for locale := range b.locales {
		if locale != BaseLocale {
			b.names = append(b.names, locale)
		}
	}
	sort.Strings(b.names[1:])

	base := b.locales[BaseLocale].tag
	b.builder = xcatalog.NewBuilder(xcatalog.Fallback(base))
	tags := make([]language.Tag, 0, len(b.names))
	for _, locale := range b.names {
		lc := b.locales[locale]
		tags = append(tags, lc.tag)
		for key, msg := range lc.messages {
			if err := b.builder.SetString(lc.tag, key, msg); err != nil {
				return fmt.Errorf("register %s message %q: %w", locale, key, err)
			}
		}
	}
	b.matcher = language.NewMatcher(tags)
	return nil
}

// Locales returns the available locale identifiers, base locale first.
func (b *Bundle) Locales() []string {
	out := make([]string, len(b.names))
	copy(out, b.names)
	return out
}

// Resolve maps a requested locale onto the closest available one. The
// boolean is false when nothing matched and the base locale was chosen;
// an empty request resolves to the base locale and reports true.
func (b *Bundle) Resolve(locale string) (string, bool) {
	requested := strings.TrimSpace(locale)
	if requested == "" {
		return BaseLocale, true
	}
	if _, ok := b.locales[requested]; ok {
		return requested, true
	}
	tag, err := language.Parse(requested)
	if err != nil {
		return BaseLocale, false
	}
	_, index, confidence := b.matcher.Match(tag)
	if confidence == language.No {
		return BaseLocale, false
	}
	return b.names[index], true
}

// Printer returns a message printer for the closest available locale.
func (b *Bundle) Printer(locale string) *message.Printer {
	resolved, _ := b.Resolve(locale)
	return message.NewPrinter(b.locales[resolved].tag, message.Catalog(b.builder))
}

// Message returns one raw message with base-locale fallback.
func (b *Bundle) Message(locale string, key string) (string, bool) {
	resolved, _ := b.Resolve(locale)
	if value, ok := b.locales[resolved].messages[key]; ok {
		return value, true
	}
	value, ok := b.locales[BaseLocale].messages[key]
	return value, ok
}

// Keys returns the sorted message keys of a locale, nil when it is unknown.
func (b *Bundle) Keys(locale string) []string {
	lc, ok := b.locales[strings.TrimSpace(locale)]
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(lc.messages))
	for key := range lc.messages {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// NamespaceMessages returns a copy of one namespace for the closest locale,
// falling back to the base locale when that locale lacks the namespace. The
// locale that satisfied the lookup is returned alongside.
func (b *Bundle) NamespaceMessages(locale string, namespace string) (string, map[string]string) {
	resolved, _ := b.Resolve(locale)
	namespace = strings.TrimSpace(namespace)
	if messages, ok := b.locales[resolved].namespaces[namespace]; ok {
		return resolved, copyMap(messages)
	}
	return BaseLocale, copyMap(b.locales[BaseLocale].namespaces[namespace])
}

func copyMap(source map[string]string) map[string]string {
	out := make(map[string]string, len(source))
	for key, value := range source {
		out[key] = value
	}
	return out
}

func mustLoadEmbedded() *Bundle {
	bundle, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	return bundle
}
