package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"gopkg.in/yaml.v2"
)

// FilesConfig configures a Files store.
type FilesConfig struct {
	// Globs locate the YAML bundles, e.g. "config/locales/*.yaml".
	Globs []string
	// Retries is how many extra attempts Reload makes after a failed read.
	Retries int
	// RetryDelay separates reload attempts. Default 50ms.
	RetryDelay time.Duration
	Logger     *slog.Logger
	NowFn      func() time.Time
}

// Files is a translation table loaded from YAML bundles. Each document maps
// locale codes at its top level to nested translations:
//
//	en:
//	  greeting: "Hello, {name}!"
//	  cart:
//	    items: "{count, plural, one {# item} other {# items}}"
type Files struct {
	*Memory
	cfg FilesConfig

	// loadMu serializes loads; lastLoadedAt is guarded by it.
	loadMu       sync.Mutex
	lastLoadedAt time.Time
}

// NewFiles builds a Files store and performs the initial load.
func NewFiles(cfg FilesConfig) (*Files, error) {
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 50 * time.Millisecond
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.NowFn == nil {
		cfg.NowFn = time.Now
	}
	f := &Files{Memory: NewMemory(), cfg: cfg}
	if err := f.Load(); err != nil {
		return f, err
	}
	return f, nil
}

// Paths expands the configured globs into sorted, de-duplicated file paths.
func (f *Files) Paths() ([]string, error) {
	return ExpandGlobs(f.cfg.Globs)
}

// ExpandGlobs returns the files matched by globs, sorted and de-duplicated.
func ExpandGlobs(globs []string) ([]string, error) {
	seen := map[string]struct{}{}
	var out []string
	for _, pattern := range globs {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid bundle glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Load reads every bundle and swaps the table in one step. On error the
// previous contents are kept.
func (f *Files) Load() error {
	f.loadMu.Lock()
	defer f.loadMu.Unlock()
	paths, err := f.Paths()
	if err != nil {
		return err
	}
	all := map[string]map[string]interface{}{}
	for _, path := range paths {
		bundle, err := ReadBundle(path)
		if err != nil {
			return err
		}
		for locale, keys := range bundle {
			target, ok := all[locale]
			if !ok {
				target = map[string]interface{}{}
				all[locale] = target
			}
			for k, v := range keys {
				target[k] = v
			}
		}
		f.cfg.Logger.Debug("loaded translation bundle", "path", path, "locales", len(bundle))
	}
	f.Replace(all)
	f.lastLoadedAt = f.cfg.NowFn()
	f.cfg.Logger.Info("translations loaded", "files", len(paths), "locales", len(all))
	return nil
}

// Reload is Load with the configured retries.
func (f *Files) Reload() error {
	var lastErr error
	for attempt := 0; attempt <= f.cfg.Retries; attempt++ {
		err := f.Load()
		if err == nil {
			return nil
		}
		lastErr = err
		f.cfg.Logger.Warn("translation reload failed", "attempt", attempt+1, "error", err)
		if attempt < f.cfg.Retries {
			time.Sleep(f.cfg.RetryDelay)
		}
	}
	return lastErr
}

// LastLoadedAt is the time of the last successful load.
func (f *Files) LastLoadedAt() time.Time {
	f.loadMu.Lock()
	defer f.loadMu.Unlock()
	return f.lastLoadedAt
}

// ReadBundle parses one YAML bundle into locale -> flattened keys.
func ReadBundle(path string) (map[string]map[string]interface{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle %s: %w", path, err)
	}
	return ParseBundle(path, content)
}

// ParseBundle parses YAML bundle content; name is used in error messages.
func ParseBundle(name string, content []byte) (map[string]map[string]interface{}, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bundle %s: %w", name, err)
	}
	out := make(map[string]map[string]interface{}, len(doc))
	for locale, body := range doc {
		normalized := NormalizeLocale(locale)
		if normalized == "" {
			return nil, fmt.Errorf("invalid bundle %s: empty locale", name)
		}
		nested, ok := asStringMap(body)
		if !ok {
			return nil, fmt.Errorf("invalid bundle %s: locale %s must map to translations", name, locale)
		}
		out[normalized] = Flatten(nested)
	}
	return out, nil
}

func asStringMap(value interface{}) (map[string]interface{}, bool) {
	switch typed := value.(type) {
	case map[string]interface{}:
		return typed, true
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(typed))
		for k, v := range typed {
			out[fmt.Sprintf("%v", k)] = v
		}
		return out, true
	case nil:
		return map[string]interface{}{}, true
	default:
		return nil, false
	}
}
