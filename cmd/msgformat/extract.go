package main

import (
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/loopcontext/msgformat/store"
)

// extractConfig holds flags for the extract command.
type extractConfig struct {
	paths        []string
	out          string
	bundles      string
	locale       string
	includeTests bool
	pkg          string
	excludeDirs  string
}

func usageExtract(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), `usage: msgformat extract [options] [paths]

Extract discovers translation keys referenced in Go code (Translate, TranslateLocale,
WrapError). Literal scope arguments are joined onto the key.

If no paths are provided, scans the current directory.

Modes:
  - Keys only: writes unique keys (one per line) to -out or stdout.
  - Audit: set -bundle (default MSGFORMAT_BUNDLES); prints the keys missing from -locale
    and exits non-zero when any are missing.

Flags:
`)
	fs.PrintDefaults()
}

// newExtractFlagSet registers the extract flags on a fresh FlagSet bound to cfg.
func newExtractFlagSet(cfg *extractConfig, env *envConfig) *flag.FlagSet {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	fs.Usage = func() { usageExtract(fs) }
	fs.StringVar(&cfg.out, "out", "", "Output file for the key list. Default stdout.")
	fs.StringVar(&cfg.bundles, "bundle", strings.Join(env.Bundles, ","), "Comma-separated bundle globs to audit against (enables audit mode).")
	fs.StringVar(&cfg.locale, "locale", env.Locale, "Locale audited in the bundles.")
	fs.BoolVar(&cfg.includeTests, "include-tests", false, "Include _test.go files.")
	fs.StringVar(&cfg.pkg, "pkg", "github.com/loopcontext/msgformat", "Import path of the translator package (detect calls in files importing it).")
	fs.StringVar(&cfg.excludeDirs, "exclude", "vendor", "Comma-separated dir names to skip (e.g. vendor).")
	return fs
}

func parseExtractFlags(args []string, env *envConfig) (*extractConfig, error) {
	var cfg extractConfig
	fs := newExtractFlagSet(&cfg, env)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.paths = fs.Args()
	if len(cfg.paths) == 0 {
		cfg.paths = []string{"."}
	}
	return &cfg, nil
}

// keyExtractor collects translation keys from Go files via AST.
type keyExtractor struct {
	importPath string
	keys       map[string]struct{}
	// keyArgIdx is the position of the key argument; scope arguments start
	// two positions later, after params.
	keyArgIdx map[string]int
}

func newKeyExtractor(importPath string) *keyExtractor {
	return &keyExtractor{
		importPath: importPath,
		keys:       make(map[string]struct{}),
		keyArgIdx: map[string]int{
			"Translate":       1,
			"TranslateLocale": 1,
			"WrapError":       2,
		},
	}
}

func (e *keyExtractor) extractFromFile(path string, src []byte) error {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, src, parser.SkipObjectResolution)
	if err != nil {
		return err
	}
	if !e.importsPackage(f) {
		return nil
	}
	ast.Walk(e, f)
	return nil
}

func (e *keyExtractor) importsPackage(file *ast.File) bool {
	for _, imp := range file.Imports {
		if imp.Path == nil {
			continue
		}
		if path, err := strconv.Unquote(imp.Path.Value); err == nil && path == e.importPath {
			return true
		}
	}
	return false
}

func (e *keyExtractor) Visit(node ast.Node) ast.Visitor {
	call, ok := node.(*ast.CallExpr)
	if !ok {
		return e
	}
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return e
	}
	idx, ok := e.keyArgIdx[sel.Sel.Name]
	if !ok || idx >= len(call.Args) {
		return e
	}
	key, ok := stringLiteral(call.Args[idx])
	if !ok || key == "" {
		return e
	}
	var scope []string
	for _, arg := range call.Args[min(idx+2, len(call.Args)):] {
		segment, ok := stringLiteral(arg)
		if !ok {
			// A computed scope makes the full key unknowable.
			return e
		}
		scope = append(scope, segment)
	}
	e.keys[store.JoinKey(key, scope...)] = struct{}{}
	return e
}

// stringLiteral evaluates string literals and concatenations of them.
func stringLiteral(expr ast.Expr) (string, bool) {
	switch t := expr.(type) {
	case *ast.BasicLit:
		if t.Kind != token.STRING {
			return "", false
		}
		s, err := strconv.Unquote(t.Value)
		return s, err == nil
	case *ast.BinaryExpr:
		if t.Op != token.ADD {
			return "", false
		}
		x, ok := stringLiteral(t.X)
		if !ok {
			return "", false
		}
		y, ok := stringLiteral(t.Y)
		return x + y, ok
	case *ast.ParenExpr:
		return stringLiteral(t.X)
	}
	return "", false
}

func (e *keyExtractor) sortedKeys() []string {
	out := make([]string, 0, len(e.keys))
	for k := range e.keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (e *keyExtractor) walk(cfg *extractConfig) error {
	excludeSet := make(map[string]struct{})
	for _, d := range strings.Split(cfg.excludeDirs, ",") {
		if d = strings.TrimSpace(d); d != "" {
			excludeSet[d] = struct{}{}
		}
	}
	visit := func(p string) error {
		if filepath.Ext(p) != ".go" {
			return nil
		}
		if !cfg.includeTests && strings.HasSuffix(p, "_test.go") {
			return nil
		}
		src, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		return e.extractFromFile(p, src)
	}

	for _, path := range cfg.paths {
		path = filepath.Clean(path)
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			if err := visit(path); err != nil {
				return err
			}
			continue
		}
		err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if _, skip := excludeSet[d.Name()]; skip && p != path {
					return filepath.SkipDir
				}
				return nil
			}
			return visit(p)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func runExtract(w io.Writer, cfg *extractConfig) error {
	ext := newKeyExtractor(cfg.pkg)
	if err := ext.walk(cfg); err != nil {
		return err
	}
	keys := ext.sortedKeys()

	if cfg.bundles != "" {
		return auditKeys(w, cfg, keys)
	}

	out := strings.Join(keys, "\n")
	if out != "" {
		out += "\n"
	}
	if cfg.out != "" {
		return os.WriteFile(cfg.out, []byte(out), 0o644)
	}
	_, err := io.WriteString(w, out)
	return err
}

// auditKeys reports the keys that the audited locale does not define.
func auditKeys(w io.Writer, cfg *extractConfig, keys []string) error {
	files, err := store.NewFiles(store.FilesConfig{Globs: strings.Split(cfg.bundles, ",")})
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	locale := store.NormalizeLocale(cfg.locale)
	var missing []string
	for _, key := range keys {
		if !files.Resolve(locale, key).Found {
			missing = append(missing, key)
		}
	}
	for _, key := range missing {
		fmt.Fprintf(w, "%s %s: missing\n", locale, key)
	}
	if len(missing) > 0 {
		return fmt.Errorf("extract: %d key(s) missing from %s", len(missing), locale)
	}
	return nil
}
