package msgformat_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/loopcontext/msgformat"
	"github.com/loopcontext/msgformat/store"
	"github.com/loopcontext/msgformat/test"
	mock_msgformat "github.com/loopcontext/msgformat/test/mock"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func loadBundles(globs ...string) *store.Files {
	files, err := store.NewFiles(store.FilesConfig{Globs: globs, Logger: quietLogger})
	Expect(err).NotTo(HaveOccurred())
	return files
}

var _ = Describe("Translator", func() {
	var (
		engine     *msgformat.Engine
		translator *msgformat.Translator
		ctx        *test.MockContext
		date       time.Time
	)

	BeforeEach(func() {
		ctx = test.NewMockContext("en")
		date = time.Date(2026, time.January, 3, 10, 0, 0, 0, time.UTC)
		engine = msgformat.New(msgformat.Config{Logger: quietLogger})
		translator = msgformat.NewTranslator(engine, loadBundles("./resources/messages/*.yaml"))
	})

	AfterEach(func() {
		engine.Close()
	})

	It("should render a simple argument", func() {
		out, err := translator.Translate(ctx, "greeting", msgformat.Params{"name": "world"})
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("Hello, world!"))
	})

	It("should render in the locale carried by the context", func() {
		ctx.SetLocale("es")
		out, err := translator.Translate(ctx, "greeting", msgformat.Params{"name": "mundo"})
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("¡Hola, mundo!"))
	})

	It("should read the locale with a plain string context key", func() {
		ctx = test.NewMockContext("")
		ctx.SetValue("locale", "es")
		out, err := translator.Translate(ctx, "greeting", msgformat.Params{"name": "mundo"})
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("¡Hola, mundo!"))
	})

	It("should fall back from a regional locale to its base language", func() {
		ctx.SetLocale("es-AR")
		out, err := translator.Translate(ctx, "greeting", msgformat.Params{"name": "che"})
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("¡Hola, che!"))
	})

	It("should select exact and category plural branches", func() {
		for count, want := range map[int]string{
			0:  "Your cart is empty",
			1:  "You have 1 item",
			12: "You have 12 items",
		} {
			out, err := translator.Translate(ctx, "items", msgformat.Params{"count": count}, "cart")
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal(want))
		}
	})

	It("should apply the plural offset", func() {
		params := msgformat.Params{"host": "Ann", "guest": "Bob"}
		for guests, want := range map[int]string{
			0: "Ann invited nobody",
			1: "Ann invited Bob",
			2: "Ann invited Bob and 1 other",
			5: "Ann invited Bob and 4 others",
		} {
			params["guests"] = guests
			out, err := translator.Translate(ctx, "party", params)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal(want))
		}
	})

	It("should localize numbers and dates", func() {
		params := msgformat.Params{"amount": 12345.5, "when": date}
		out, err := translator.Translate(ctx, "cart.total", params)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("Total: 12,345.5 updated Jan 3, 2026"))

		ctx.SetLocale("es")
		out, err = translator.Translate(ctx, "cart.total", params)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("Total: 12.345,5 actualizado 03/01/2026"))
	})

	It("should report missing translations", func() {
		_, err := translator.Translate(ctx, "nope", nil)
		Expect(errors.Is(err, msgformat.ErrMissingTranslation)).To(BeTrue())

		stats := engine.SnapshotStats()
		Expect(stats.MissingTranslations).To(HaveKeyWithValue("en:nope", 1))
	})

	It("should surface parse errors with their position", func() {
		_, err := translator.Translate(ctx, "broken", nil)
		var perr *msgformat.ParseError
		Expect(errors.As(err, &perr)).To(BeTrue())
		Expect(perr.Position).To(Equal(0))
	})

	It("should wrap errors with a translated message", func() {
		cause := errors.New("sql: no rows")
		ctx.SetLocale("es")
		err := translator.WrapError(ctx, cause, "not_found", msgformat.Params{"what": "el pedido"}, "errors")
		Expect(err.Error()).To(Equal("No se encontró el pedido"))
		Expect(errors.Is(err, cause)).To(BeTrue())
		Expect(errors.Unwrap(err)).To(Equal(cause))
	})

	It("should reload bundles and keep serving the previous ones on failure", func() {
		tmpDir, err := os.MkdirTemp("", "msgformat-reload-*")
		Expect(err).NotTo(HaveOccurred())
		defer os.RemoveAll(tmpDir)

		path := filepath.Join(tmpDir, "en.yaml")
		Expect(os.WriteFile(path, []byte("en:\n  greeting: \"Hello before reload\"\n"), 0o600)).To(Succeed())

		files, err := store.NewFiles(store.FilesConfig{
			Globs:      []string{filepath.Join(tmpDir, "*.yaml")},
			Retries:    1,
			RetryDelay: time.Millisecond,
			Logger:     quietLogger,
		})
		Expect(err).NotTo(HaveOccurred())
		reloading := msgformat.NewTranslator(engine, files)

		Expect(os.WriteFile(path, []byte("en:\n  greeting: \"Hello after reload\"\n"), 0o600)).To(Succeed())
		Expect(files.Reload()).To(Succeed())
		out, err := reloading.Translate(ctx, "greeting", nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("Hello after reload"))

		Expect(os.WriteFile(path, []byte("en: [broken"), 0o600)).To(Succeed())
		Expect(files.Reload()).NotTo(Succeed())
		out, err = reloading.Translate(ctx, "greeting", nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("Hello after reload"))
	})

	It("should be safe under concurrent translations", func() {
		const (
			workers = 12
			iters   = 200
		)
		errCh := make(chan error, workers)
		var wg sync.WaitGroup

		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				locale := "en"
				if i%2 == 1 {
					locale = "es"
				}
				for j := 0; j < iters; j++ {
					out, err := translator.TranslateLocale(locale, "items", msgformat.Params{"count": j}, "cart")
					if err != nil {
						errCh <- err
						return
					}
					if out == "" {
						errCh <- fmt.Errorf("received empty message")
						return
					}
				}
			}(i)
		}

		wg.Wait()
		close(errCh)
		for err := range errCh {
			Expect(err).NotTo(HaveOccurred())
		}
	})
})

var _ = Describe("Engine collaborators", func() {
	var ctrl *gomock.Controller

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	It("should pass locale and style to the localizer", func() {
		localizer := mock_msgformat.NewMockLocalizer(ctrl)
		localizer.EXPECT().
			Localize(12345.5, "fr", msgformat.KindNumber, "integer").
			Return("12 346", nil)

		engine := msgformat.New(msgformat.Config{Localizer: localizer, Logger: quietLogger})
		defer engine.Close()

		out, err := engine.Format("{n, number, integer}", msgformat.Params{"n": 12345.5}, "fr")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("12 346"))
	})

	It("should fall back to the plain number when the localizer has no data", func() {
		localizer := mock_msgformat.NewMockLocalizer(ctrl)
		localizer.EXPECT().
			Localize(gomock.Any(), "tlh", msgformat.KindNumber, "").
			Return("", msgformat.ErrNoFormatData)

		engine := msgformat.New(msgformat.Config{Localizer: localizer, Logger: quietLogger})
		defer engine.Close()

		out, err := engine.Format("{n, number}", msgformat.Params{"n": 1500}, "tlh")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("1500"))
	})

	It("should propagate date localization failures", func() {
		boom := errors.New("no calendar")
		localizer := mock_msgformat.NewMockLocalizer(ctrl)
		localizer.EXPECT().
			Localize(gomock.Any(), "en", msgformat.KindDate, "long").
			Return("", boom)

		engine := msgformat.New(msgformat.Config{Localizer: localizer, Logger: quietLogger})
		defer engine.Close()

		_, err := engine.Format("{d, date, long}", msgformat.Params{"d": time.Now()}, "en")
		Expect(errors.Is(err, boom)).To(BeTrue())
	})

	It("should categorize plurals with the registered rule", func() {
		rules := mock_msgformat.NewMockRules(ctrl)
		rules.EXPECT().
			CardinalRule("xx").
			Return(msgformat.PluralRule(func(n float64) string { return msgformat.CategoryFew }), true)
		rules.EXPECT().OrdinalRule("xx").Return(nil, false)

		engine := msgformat.New(msgformat.Config{Rules: rules, Logger: quietLogger})
		defer engine.Close()

		out, err := engine.Format("{n, plural, few {# few} other {# other}}", msgformat.Params{"n": 3}, "xx")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("3 few"))

		out, err = engine.Format("{n, selectordinal, few {#rd} other {#th}}", msgformat.Params{"n": 3}, "xx")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("3th"))
	})

	It("should never consult rules for exact matches", func() {
		rules := mock_msgformat.NewMockRules(ctrl)

		engine := msgformat.New(msgformat.Config{Rules: rules, Logger: quietLogger})
		defer engine.Close()

		out, err := engine.Format("{n, plural, =2 {pair} other {#}}", msgformat.Params{"n": 2}, "en")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("pair"))
	})

	It("should notify the observer of fallbacks, misses and errors", func() {
		observer := mock_msgformat.NewMockObserver(ctrl)
		observer.EXPECT().OnLanguageFallback("es-mx", "es").Times(1)
		observer.EXPECT().OnTranslationMissing("en", "missing.key").Times(1)
		observer.EXPECT().OnParseError("{name", 0).Times(1)
		observer.EXPECT().OnRenderError("en", gomock.Any()).Times(1)

		engine := msgformat.New(msgformat.Config{Observer: observer, Logger: quietLogger})
		translator := msgformat.NewTranslator(engine, loadBundles("./resources/messages/*.yaml"))

		_, err := translator.TranslateLocale("es-MX", "greeting", msgformat.Params{"name": "Ana"})
		Expect(err).NotTo(HaveOccurred())
		_, err = translator.TranslateLocale("en", "key", nil, "missing")
		Expect(err).To(HaveOccurred())
		_, err = translator.TranslateLocale("en", "broken", nil)
		Expect(err).To(HaveOccurred())
		_, err = translator.TranslateLocale("en", "greeting", nil)
		Expect(err).To(HaveOccurred())

		// Close drains the queue so every expectation has been met before Finish.
		engine.Close()
	})

	It("should use the default locale when the context carries none", func() {
		engine := msgformat.New(msgformat.Config{DefaultLocale: "es", Logger: quietLogger})
		defer engine.Close()

		Expect(engine.LocaleFromCtx(context.Background())).To(Equal("es"))
		out, err := engine.FormatWithCtx(context.Background(), "{n, number}", msgformat.Params{"n": 12345.5})
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("12.345,5"))
	})
})
