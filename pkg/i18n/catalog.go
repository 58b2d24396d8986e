package i18n

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var placeholder = regexp.MustCompile(`\{(\d+)\}`)

// Catalog holds per-language messages and picks the best language for a
// requested locale. Missing keys fall back to English, then to the key.
type Catalog struct {
	mu       sync.RWMutex
	builder  *catalog.Builder
	messages map[language.Tag]map[string]string
	tags     []language.Tag
	matcher  language.Matcher
}

// New returns a catalog seeded with the English messages.
func New() *Catalog {
	c := &Catalog{
		builder:  catalog.NewBuilder(catalog.Fallback(language.English)),
		messages: map[language.Tag]map[string]string{},
	}
	if err := c.Register(language.English.String(), English()); err != nil {
		panic(fmt.Sprintf("i18n: register english: %v", err))
	}
	return c
}

// Register adds or replaces messages for lang. Messages use {0}-style
// placeholders; existing keys for lang not present in messages are kept.
func (c *Catalog) Register(lang string, messages map[string]string) error {
	tag, err := language.Parse(strings.TrimSpace(lang))
	if err != nil {
		return fmt.Errorf("i18n: language %q: %w", lang, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	existing, ok := c.messages[tag]
	if !ok {
		existing = map[string]string{}
		c.messages[tag] = existing
		c.tags = append(c.tags, tag)
		c.matcher = language.NewMatcher(c.tags)
	}
	for key, text := range messages {
		format := convert(text)
		if err := c.builder.SetString(tag, key, format); err != nil {
			return fmt.Errorf("i18n: %s/%s: %w", tag, key, err)
		}
		existing[key] = format
	}
	return nil
}

// Languages returns the registered language tags, sorted.
func (c *Catalog) Languages() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.tags))
	for _, tag := range c.tags {
		out = append(out, tag.String())
	}
	sort.Strings(out)
	return out
}

// Message formats key for locale with args.
func (c *Catalog) Message(key, locale string, args ...any) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tag := c.match(locale)
	if _, ok := c.messages[tag][key]; !ok {
		tag = language.English
	}
	if _, ok := c.messages[tag][key]; !ok {
		return key
	}
	return message.NewPrinter(tag, message.Catalog(c.builder)).Sprintf(key, args...)
}

func (c *Catalog) match(locale string) language.Tag {
	locale = strings.TrimSpace(locale)
	if locale == "" || c.matcher == nil {
		return language.English
	}
	requested, err := language.Parse(locale)
	if err != nil {
		return language.English
	}
	_, index, confidence := c.matcher.Match(requested)
	if confidence == language.No {
		return language.English
	}
	return c.tags[index]
}

// convert turns {0} placeholders into positional fmt verbs.
func convert(text string) string {
	text = strings.ReplaceAll(text, "%", "%%")
	return placeholder.ReplaceAllStringFunc(text, func(m string) string {
		n, err := strconv.Atoi(m[1 : len(m)-1])
		if err != nil {
			return m
		}
		return "%[" + strconv.Itoa(n+1) + "]v"
	})
}
