package msgformat

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

//go:generate mockgen -source=$GOFILE -package mock_msgformat -destination=test/mock/$GOFILE

// ErrNoFormatData signals that a Localizer has no formatting data for a
// locale, kind and style combination.
var ErrNoFormatData = errors.New("msgformat: no formatting data")

// Kind is the family of a localized value.
type Kind int

const (
	KindNumber Kind = iota
	KindDate
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Localizer renders a value for a locale. An empty style means the kind's default.
// Implementations return an error wrapping ErrNoFormatData when they have no
// data for the request.
type Localizer interface {
	Localize(value interface{}, locale string, kind Kind, style string) (string, error)
}

// LocalizerFunc adapts a function to the Localizer interface.
type LocalizerFunc func(value interface{}, locale string, kind Kind, style string) (string, error)

func (f LocalizerFunc) Localize(value interface{}, locale string, kind Kind, style string) (string, error) {
	return f(value, locale, kind, style)
}

// Date and time styles understood by DefaultLocalizer.
const (
	StyleShort  = "short"
	StyleMedium = "medium"
	StyleLong   = "long"
	StyleFull   = "full"
)

// Number styles understood by DefaultLocalizer.
const (
	StyleInteger = "integer"
	StylePercent = "percent"
)

type layoutKey struct {
	locale string
	kind   Kind
	style  string
}

// LocalizerOption configures a DefaultLocalizer.
type LocalizerOption func(*DefaultLocalizer)

// WithLayout registers a Go time layout for locale, kind (KindDate or
// KindTime) and style. A base language ("es") applies to all its regions.
func WithLayout(locale string, kind Kind, style string, layout string) LocalizerOption {
	return func(l *DefaultLocalizer) {
		l.layouts[layoutKey{locale: normalizeLocale(locale), kind: kind, style: style}] = layout
	}
}

// DefaultLocalizer formats numbers through golang.org/x/text and dates and
// times through Go layouts registered per language and style.
type DefaultLocalizer struct {
	layouts  map[layoutKey]string
	printers sync.Map // normalized locale -> *message.Printer
}

// NewLocalizer returns a DefaultLocalizer preloaded with English and
// day-first European layouts.
func NewLocalizer(opts ...LocalizerOption) *DefaultLocalizer {
	l := &DefaultLocalizer{layouts: map[layoutKey]string{}}
	for key, layout := range bundledLayouts() {
		l.layouts[key] = layout
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func bundledLayouts() map[layoutKey]string {
	layouts := map[layoutKey]string{
		{"en", KindDate, StyleShort}:  "1/2/06",
		{"en", KindDate, StyleMedium}: "Jan 2, 2006",
		{"en", KindDate, StyleLong}:   "January 2, 2006",
		{"en", KindDate, StyleFull}:   "Monday, January 2, 2006",
		{"en", KindTime, StyleShort}:  "3:04 PM",
		{"en", KindTime, StyleMedium}: "3:04:05 PM",
		{"en", KindTime, StyleLong}:   "3:04:05 PM MST",
		{"en", KindTime, StyleFull}:   "3:04:05 PM MST",
	}
	for _, lang := range []string{"es", "pt", "fr", "it"} {
		layouts[layoutKey{lang, KindDate, StyleShort}] = "02/01/06"
		layouts[layoutKey{lang, KindDate, StyleMedium}] = "02/01/2006"
	}
	for _, lang := range []string{"de", "ru", "pl"} {
		layouts[layoutKey{lang, KindDate, StyleShort}] = "02.01.06"
		layouts[layoutKey{lang, KindDate, StyleMedium}] = "02.01.2006"
	}
	for _, lang := range []string{"es", "pt", "fr", "it", "de", "ru", "pl", "nl"} {
		layouts[layoutKey{lang, KindTime, StyleShort}] = "15:04"
		layouts[layoutKey{lang, KindTime, StyleMedium}] = "15:04:05"
		layouts[layoutKey{lang, KindTime, StyleLong}] = "15:04:05 MST"
	}
	layouts[layoutKey{"nl", KindDate, StyleShort}] = "02-01-06"
	layouts[layoutKey{"nl", KindDate, StyleMedium}] = "02-01-2006"
	return layouts
}

func (l *DefaultLocalizer) Localize(value interface{}, locale string, kind Kind, style string) (string, error) {
	switch kind {
	case KindNumber:
		return l.localizeNumber(value, locale, style)
	case KindDate, KindTime:
		return l.localizeTime(value, locale, kind, style)
	default:
		return "", fmt.Errorf("%w: unsupported kind %s", ErrNoFormatData, kind)
	}
}

func (l *DefaultLocalizer) localizeNumber(value interface{}, locale string, style string) (string, error) {
	if _, ok := toFloat(value); !ok {
		return "", fmt.Errorf("%w: %T is not a number", ErrNoFormatData, value)
	}
	printer, ok := l.printer(locale)
	if !ok {
		return "", fmt.Errorf("%w: unknown locale %q", ErrNoFormatData, locale)
	}
	switch style {
	case "":
		return printer.Sprint(number.Decimal(value)), nil
	case StyleInteger:
		return printer.Sprint(number.Decimal(value, number.MaxFractionDigits(0))), nil
	case StylePercent:
		return printer.Sprint(number.Percent(value)), nil
	default:
		return "", fmt.Errorf("%w: number style %q", ErrNoFormatData, style)
	}
}

func (l *DefaultLocalizer) printer(locale string) (*message.Printer, bool) {
	normalized := normalizeLocale(locale)
	if cached, ok := l.printers.Load(normalized); ok {
		return cached.(*message.Printer), true
	}
	tag, ok := parseTag(normalized)
	if !ok {
		return nil, false
	}
	printer := message.NewPrinter(tag)
	l.printers.Store(normalized, printer)
	return printer, true
}

func (l *DefaultLocalizer) localizeTime(value interface{}, locale string, kind Kind, style string) (string, error) {
	var t time.Time
	switch typed := value.(type) {
	case time.Time:
		t = typed
	case *time.Time:
		if typed == nil {
			return "", fmt.Errorf("%w: nil %s", ErrNoFormatData, kind)
		}
		t = *typed
	default:
		return "", fmt.Errorf("%w: %T is not a %s", ErrNoFormatData, value, kind)
	}
	if style == "" {
		style = StyleMedium
	}
	normalized := normalizeLocale(locale)
	layout, ok := l.layouts[layoutKey{locale: normalized, kind: kind, style: style}]
	if !ok {
		layout, ok = l.layouts[layoutKey{locale: baseLocale(normalized), kind: kind, style: style}]
	}
	if !ok {
		return "", fmt.Errorf("%w: %s style %q for locale %q", ErrNoFormatData, kind, style, locale)
	}
	return t.Format(layout), nil
}

var _ Localizer = (*DefaultLocalizer)(nil)
