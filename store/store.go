// Package store resolves translation keys to patterns.
//
// Nested translation documents are flattened into dot-joined keys
// ("greeting.hello"). A missing key is an ordinary Lookup result rather than
// an error, so a Chain can move on to its next resolver.
package store

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Separator joins nested keys and scopes.
const Separator = "."

// Lookup is the outcome of a resolution: a found value or an explicit miss.
type Lookup struct {
	Value interface{}
	Found bool
}

// Found wraps a resolved value.
func Found(value interface{}) Lookup {
	return Lookup{Value: value, Found: true}
}

// Missing is the miss outcome.
func Missing() Lookup {
	return Lookup{}
}

// Pattern returns the value as a pattern string. ok is false on a miss or
// when the stored value is not a string.
func (l Lookup) Pattern() (string, bool) {
	if !l.Found {
		return "", false
	}
	pattern, ok := l.Value.(string)
	return pattern, ok
}

// Resolver looks up key, optionally prefixed by scope segments, in locale.
type Resolver interface {
	Resolve(locale string, key string, scope ...string) Lookup
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(locale string, key string, scope ...string) Lookup

func (f ResolverFunc) Resolve(locale string, key string, scope ...string) Lookup {
	return f(locale, key, scope...)
}

// Chain tries each resolver in order and returns the first hit.
type Chain []Resolver

func (c Chain) Resolve(locale string, key string, scope ...string) Lookup {
	for _, r := range c {
		if r == nil {
			continue
		}
		if result := r.Resolve(locale, key, scope...); result.Found {
			return result
		}
	}
	return Missing()
}

// JoinKey prefixes key with the scope segments.
func JoinKey(key string, scope ...string) string {
	parts := make([]string, 0, len(scope)+1)
	for _, s := range scope {
		if s = strings.Trim(s, Separator); s != "" {
			parts = append(parts, s)
		}
	}
	if key = strings.Trim(key, Separator); key != "" {
		parts = append(parts, key)
	}
	return strings.Join(parts, Separator)
}

// NormalizeLocale lower-cases a locale and uses '-' as the region separator.
func NormalizeLocale(locale string) string {
	locale = strings.TrimSpace(strings.ToLower(locale))
	return strings.ReplaceAll(locale, "_", "-")
}

// Memory is an in-memory translation table, safe for concurrent use.
type Memory struct {
	mu           sync.RWMutex
	translations map[string]map[string]interface{}
}

// NewMemory returns an empty table.
func NewMemory() *Memory {
	return &Memory{translations: map[string]map[string]interface{}{}}
}

// Store flattens data and merges it into locale, overwriting existing keys.
func (m *Memory) Store(locale string, data map[string]interface{}) {
	flat := Flatten(data)
	m.mu.Lock()
	defer m.mu.Unlock()
	normalized := NormalizeLocale(locale)
	target, ok := m.translations[normalized]
	if !ok {
		target = map[string]interface{}{}
		m.translations[normalized] = target
	}
	for k, v := range flat {
		target[k] = v
	}
}

// Replace swaps the whole table. all maps locale to already flattened keys.
func (m *Memory) Replace(all map[string]map[string]interface{}) {
	next := make(map[string]map[string]interface{}, len(all))
	for locale, keys := range all {
		copied := make(map[string]interface{}, len(keys))
		for k, v := range keys {
			copied[k] = v
		}
		next[NormalizeLocale(locale)] = copied
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.translations = next
}

func (m *Memory) Resolve(locale string, key string, scope ...string) Lookup {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys, ok := m.translations[NormalizeLocale(locale)]
	if !ok {
		return Missing()
	}
	value, ok := keys[JoinKey(key, scope...)]
	if !ok {
		return Missing()
	}
	return Found(value)
}

// Locales lists the locales holding at least one key, sorted.
func (m *Memory) Locales() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.translations))
	for locale := range m.translations {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Keys lists the flattened keys of locale, sorted.
func (m *Memory) Keys(locale string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := m.translations[NormalizeLocale(locale)]
	out := make([]string, 0, len(keys))
	for k := range keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Flatten turns nested maps into dot-joined keys. Both map[string]interface{}
// and the map[interface{}]interface{} produced by yaml.v2 are walked.
func Flatten(data map[string]interface{}) map[string]interface{} {
	out := map[string]interface{}{}
	flattenInto(out, "", data)
	return out
}

func flattenInto(out map[string]interface{}, prefix string, value interface{}) {
	switch typed := value.(type) {
	case map[string]interface{}:
		for k, v := range typed {
			flattenInto(out, JoinKey(k, prefix), v)
		}
	case map[interface{}]interface{}:
		for k, v := range typed {
			flattenInto(out, JoinKey(fmt.Sprintf("%v", k), prefix), v)
		}
	default:
		if prefix != "" {
			out[prefix] = value
		}
	}
}

var (
	_ Resolver = (*Memory)(nil)
	_ Resolver = Chain(nil)
)
