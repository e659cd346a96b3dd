package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"github.com/loopcontext/msgformat/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMerge_keepsExistingTranslations(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "en.yaml"), `en:
  greeting: "Hello, {name}!"
  cart:
    items: "{count, plural, one {# item} other {# items}}"
    total: "Total: {amount, number}"
`)
	writeFile(t, filepath.Join(dir, "es.yaml"), `es:
  greeting: "¡Hola, {name}!"
  cart:
    items: "{count, plural, one {# artículo} other {# artículos}}"
    total: ""
  stale: "no longer in source"
`)

	cfg := &mergeConfig{source: filepath.Join(dir, "en.yaml"), targetLangs: "es"}
	if err := runMerge(discardLogger(), cfg); err != nil {
		t.Fatal(err)
	}

	bundle, err := store.ReadBundle(filepath.Join(dir, "translate.es.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]interface{}{
		"greeting":   "¡Hola, {name}!",
		"cart.items": "{count, plural, one {# artículo} other {# artículos}}",
		"cart.total": "Total: {amount, number}",
	}
	if got := bundle["es"]; !reflect.DeepEqual(got, want) {
		t.Errorf("merged = %v, want %v", got, want)
	}
}

func TestMerge_targetDirAndMissingTarget(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "en.yaml"), "en:\n  hi: Hi\n")
	writeFile(t, filepath.Join(dir, "fr.yaml"), "fr:\n  hi: Salut\n")
	writeFile(t, filepath.Join(dir, "de.yaml"), "de: {}\n")
	out := t.TempDir()

	cfg := &mergeConfig{source: filepath.Join(dir, "en.yaml"), targetDir: dir, outdir: out}
	if err := runMerge(discardLogger(), cfg); err != nil {
		t.Fatal(err)
	}

	fr, err := store.ReadBundle(filepath.Join(out, "translate.fr.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if fr["fr"]["hi"] != "Salut" {
		t.Errorf("fr hi = %v", fr["fr"]["hi"])
	}
	de, err := store.ReadBundle(filepath.Join(out, "translate.de.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if de["de"]["hi"] != "Hi" {
		t.Errorf("de hi = %v, want source placeholder", de["de"]["hi"])
	}
}

func TestMerge_errors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "all.yaml"), "en:\n  a: A\nes:\n  a: A\n")

	if err := runMerge(discardLogger(), &mergeConfig{}); err == nil {
		t.Error("expected error without -source")
	}
	if err := runMerge(discardLogger(), &mergeConfig{source: filepath.Join(dir, "all.yaml"), targetLangs: "fr"}); err == nil {
		t.Error("expected error for multi-locale source without -sourceLocale")
	}
	if err := runMerge(discardLogger(), &mergeConfig{source: filepath.Join(dir, "all.yaml"), sourceLocale: "en"}); err == nil {
		t.Error("expected error without targets")
	}
	cfg := &mergeConfig{source: filepath.Join(dir, "all.yaml"), sourceLocale: "en", targetLangs: "fr"}
	if err := runMerge(discardLogger(), cfg); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "translate.fr.yaml")); err != nil {
		t.Error(err)
	}
}

func TestUnflatten(t *testing.T) {
	got := unflatten(map[string]interface{}{
		"a.b":   "1",
		"a.c":   "2",
		"d":     "3",
		"d.e.f": "4",
	})
	want := map[string]interface{}{
		"a":     map[string]interface{}{"b": "1", "c": "2"},
		"d":     "3",
		"d.e.f": "4",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unflatten = %v, want %v", got, want)
	}
}

func TestMergeTargetLangsList(t *testing.T) {
	cfg := &mergeConfig{targetLangs: "es, FR , de"}
	got := cfg.targetLangsList()
	sort.Strings(got)
	want := []string{"de", "es", "fr"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
