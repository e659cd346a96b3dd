package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/loopcontext/msgformat/store"
)

// mergeConfig holds flags for the merge command.
type mergeConfig struct {
	source          string
	sourceLocale    string
	targetLangs     string
	targetDir       string
	outdir          string
	translatePrefix string
}

func usageMerge(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), `usage: msgformat merge [options]

Merge produces per-language translate files from a source bundle. For each target
language, writes translate.<lang>.yaml rooted at <lang> with every key from the source;
keys missing or empty in the target keep the source pattern as placeholder. Keys the
source no longer defines are dropped.

Flags:
`)
	fs.PrintDefaults()
}

// newMergeFlagSet registers the merge flags on a fresh FlagSet bound to cfg.
func newMergeFlagSet(cfg *mergeConfig) *flag.FlagSet {
	fs := flag.NewFlagSet("merge", flag.ExitOnError)
	fs.Usage = func() { usageMerge(fs) }
	fs.StringVar(&cfg.source, "source", "", "Source bundle (e.g. resources/messages/en.yaml). Required.")
	fs.StringVar(&cfg.sourceLocale, "sourceLocale", "", "Locale to read from the source bundle (default: its only locale).")
	fs.StringVar(&cfg.targetLangs, "targetLangs", "", "Comma-separated target language tags (e.g. es,fr).")
	fs.StringVar(&cfg.targetDir, "targetDir", "", "Directory containing target YAMLs; language inferred from filenames (e.g. es.yaml -> es).")
	fs.StringVar(&cfg.outdir, "outdir", "", "Where to write translate.<lang>.yaml (default: same dir as source).")
	fs.StringVar(&cfg.translatePrefix, "translatePrefix", "translate.", "Filename prefix for output files.")
	return fs
}

func parseMergeFlags(args []string) (*mergeConfig, error) {
	var cfg mergeConfig
	fs := newMergeFlagSet(&cfg)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func runMerge(logger *slog.Logger, cfg *mergeConfig) error {
	if cfg.source == "" {
		return fmt.Errorf("merge: -source is required")
	}
	bundle, err := store.ReadBundle(cfg.source)
	if err != nil {
		return err
	}
	source, err := sourceTranslations(bundle, cfg.sourceLocale)
	if err != nil {
		return err
	}

	targets := cfg.targetLangsList()
	if len(targets) == 0 && cfg.targetDir != "" {
		targets, err = readTargetLangsFromDir(cfg.targetDir, cfg.source)
		if err != nil {
			return err
		}
	}
	if len(targets) == 0 {
		return fmt.Errorf("merge: specify -targetLangs or -targetDir")
	}

	outdir := cfg.outdir
	if outdir == "" {
		outdir = filepath.Dir(cfg.source)
	}
	prefix := cfg.translatePrefix
	if prefix == "" {
		prefix = "translate."
	}

	for _, lang := range targets {
		targetPath := filepath.Join(filepath.Dir(cfg.source), lang+".yaml")
		if cfg.targetDir != "" {
			targetPath = filepath.Join(cfg.targetDir, lang+".yaml")
		}
		existing := map[string]interface{}{}
		if _, statErr := os.Stat(targetPath); statErr == nil {
			target, err := store.ReadBundle(targetPath)
			if err != nil {
				return err
			}
			if translations, ok := target[store.NormalizeLocale(lang)]; ok {
				existing = translations
			}
		}

		merged := make(map[string]interface{}, len(source))
		pending := 0
		for key, srcValue := range source {
			if value, ok := existing[key]; ok && !isEmptyValue(value) {
				merged[key] = value
				continue
			}
			merged[key] = srcValue
			pending++
		}

		out, err := yaml.Marshal(map[string]interface{}{lang: unflatten(merged)})
		if err != nil {
			return fmt.Errorf("marshal %s: %w", lang, err)
		}
		outPath := filepath.Join(outdir, prefix+lang+".yaml")
		if err := os.WriteFile(outPath, out, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
		logger.Info("merge wrote translate file", "path", outPath, "keys", len(merged), "untranslated", pending)
	}
	return nil
}

func sourceTranslations(bundle map[string]map[string]interface{}, locale string) (map[string]interface{}, error) {
	if locale != "" {
		translations, ok := bundle[store.NormalizeLocale(locale)]
		if !ok {
			return nil, fmt.Errorf("merge: source has no locale %q", locale)
		}
		return translations, nil
	}
	if len(bundle) != 1 {
		return nil, fmt.Errorf("merge: source defines %d locales, set -sourceLocale", len(bundle))
	}
	for _, translations := range bundle {
		return translations, nil
	}
	return nil, nil
}

func isEmptyValue(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	}
	return false
}

// unflatten turns dotted keys back into nested maps. A key that collides
// with an existing leaf stays flat at that level.
func unflatten(flat map[string]interface{}) map[string]interface{} {
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	root := map[string]interface{}{}
	for _, key := range keys {
		node := root
		parts := strings.Split(key, store.Separator)
		for i, part := range parts[:len(parts)-1] {
			child, ok := node[part].(map[string]interface{})
			if !ok {
				if _, leaf := node[part]; leaf {
					part = strings.Join(parts[i:], store.Separator)
					node[part] = flat[key]
					node = nil
					break
				}
				child = map[string]interface{}{}
				node[part] = child
			}
			node = child
		}
		if node != nil {
			node[parts[len(parts)-1]] = flat[key]
		}
	}
	return root
}

func (c *mergeConfig) targetLangsList() []string {
	if c.targetLangs == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(c.targetLangs, ",") {
		s = strings.TrimSpace(strings.ToLower(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func readTargetLangsFromDir(dir, sourcePath string) ([]string, error) {
	sourceBase := filepath.Base(sourcePath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var langs []string
	seen := make(map[string]struct{})
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".yaml") {
			continue
		}
		if name == sourceBase || strings.HasPrefix(name, "translate.") {
			continue
		}
		lang := strings.TrimSpace(strings.ToLower(strings.TrimSuffix(name, ".yaml")))
		if lang == "" {
			continue
		}
		if _, ok := seen[lang]; ok {
			continue
		}
		seen[lang] = struct{}{}
		langs = append(langs, lang)
	}
	return langs, nil
}
