package msgformat_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/loopcontext/msgformat"
	"github.com/loopcontext/msgformat/store"
)

func TestTranslate_BundledPluralRules(t *testing.T) {
	dir := t.TempDir()
	bundle := []byte(`en:
  person:
    cats: "{name} has {count, plural, one {# cat} other {# cats}}."
  place: "You finished {pos, selectordinal, one {#st} two {#nd} few {#rd} other {#th}}!"
fr:
  articles: "{n, plural, one {# article} other {# articles}}"
ru:
  files: "{n, plural, one {# файл} few {# файла} many {# файлов} other {# файла}}"
`)
	if err := os.WriteFile(filepath.Join(dir, "messages.yaml"), bundle, 0o644); err != nil {
		t.Fatal(err)
	}
	files, err := store.NewFiles(store.FilesConfig{Globs: []string{filepath.Join(dir, "*.yaml")}})
	if err != nil {
		t.Fatal(err)
	}

	rules := msgformat.NewRuleSet()
	rules.InstallAll()
	engine := msgformat.New(msgformat.Config{Rules: rules})
	defer engine.Close()
	translator := msgformat.NewTranslator(engine, files)

	ctx := context.WithValue(context.Background(), "locale", "en")
	got, err := translator.Translate(ctx, "cats", msgformat.Params{"name": "Nick", "count": 1}, "person")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Nick has 1 cat." {
		t.Errorf("count=1: got %q", got)
	}
	got, _ = translator.Translate(ctx, "person.cats", msgformat.Params{"name": "Nick", "count": 2})
	if got != "Nick has 2 cats." {
		t.Errorf("count=2: got %q", got)
	}

	for pos, want := range map[int]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 12: "12th", 23: "23rd"} {
		got, err := translator.TranslateLocale("en-US", "place", msgformat.Params{"pos": pos})
		if err != nil {
			t.Fatal(err)
		}
		if got != "You finished "+want+"!" {
			t.Errorf("pos=%d: got %q", pos, got)
		}
	}

	for n, want := range map[int]string{0: "0 article", 1: "1 article", 5: "5 articles"} {
		got, _ := translator.TranslateLocale("fr-CA", "articles", msgformat.Params{"n": n})
		if got != want {
			t.Errorf("fr n=%d: got %q want %q", n, got, want)
		}
	}

	for n, want := range map[int]string{1: "1 файл", 2: "2 файла", 11: "11 файлов", 22: "22 файла"} {
		got, _ := translator.TranslateLocale("ru", "files", msgformat.Params{"n": n})
		if got != want {
			t.Errorf("ru n=%d: got %q want %q", n, got, want)
		}
	}
}

func TestTranslate_OtherOnlyBranch(t *testing.T) {
	mem := store.NewMemory()
	mem.Store("en", map[string]interface{}{"items": "{count, plural, other {# items}}"})
	engine := msgformat.New(msgformat.Config{})
	defer engine.Close()

	got, err := msgformat.NewTranslator(engine, mem).TranslateLocale("en", "items", msgformat.Params{"count": 1})
	if err != nil {
		t.Fatal(err)
	}
	// only "other" is defined; category one falls back to it
	if got != "1 items" {
		t.Errorf("got %q", got)
	}
}
