package msgformat

//go:generate mockgen -source=$GOFILE -package mock_msgformat -destination=test/mock/$GOFILE

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

const overflowStatKey = "__overflow__"

// Observer receives engine and translator events. Calls happen on a single
// background goroutine; a panicking observer does not affect rendering.
type Observer interface {
	OnLanguageFallback(requestedLocale string, resolvedLocale string)
	OnTranslationMissing(locale string, key string)
	OnParseError(pattern string, position int)
	OnRenderError(locale string, err error)
}

type observerEventType int

const (
	observerEventLanguageFallback observerEventType = iota
	observerEventTranslationMissing
	observerEventParseError
	observerEventRenderError
)

type observerEvent struct {
	kind      observerEventType
	requested string
	resolved  string
	locale    string
	key       string
	pattern   string
	position  int
	err       error
}

type engineStats struct {
	mu                  sync.Mutex
	languageFallbacks   map[string]int
	missingTranslations map[string]int
	parseErrors         map[string]int
	renderErrors        map[string]int
	droppedEvents       map[string]int
	maxKeys             int
	lastClearAt         time.Time
}

func newEngineStats(maxKeys int) *engineStats {
	s := &engineStats{maxKeys: maxKeys}
	s.reset()
	return s
}

func sanitizeStatKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "unknown"
	}
	if len(key) > 120 {
		return key[:120]
	}
	return key
}

func (s *engineStats) increment(target map[string]int, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if target == nil {
		return
	}
	key = sanitizeStatKey(key)
	if s.maxKeys > 0 {
		if _, exists := target[key]; !exists {
			if _, hasOverflow := target[overflowStatKey]; hasOverflow {
				if len(target) >= s.maxKeys {
					key = overflowStatKey
				}
			} else if len(target) >= s.maxKeys-1 {
				key = overflowStatKey
			}
		}
	}
	target[key]++
}

func (s *engineStats) incrementLanguageFallback(requested string, resolved string) {
	s.increment(s.languageFallbacks, fmt.Sprintf("%s->%s", requested, resolved))
}

func (s *engineStats) incrementMissingTranslation(locale string, key string) {
	s.increment(s.missingTranslations, fmt.Sprintf("%s:%s", locale, key))
}

func (s *engineStats) incrementParseError(pattern string) {
	s.increment(s.parseErrors, pattern)
}

func (s *engineStats) incrementRenderError(locale string, kind string) {
	s.increment(s.renderErrors, fmt.Sprintf("%s:%s", locale, kind))
}

func (s *engineStats) incrementDroppedEvent(reason string) {
	s.increment(s.droppedEvents, reason)
}

func (s *engineStats) setLastClearAt(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastClearAt = t
}

func (s *engineStats) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.languageFallbacks = map[string]int{}
	s.missingTranslations = map[string]int{}
	s.parseErrors = map[string]int{}
	s.renderErrors = map[string]int{}
	s.droppedEvents = map[string]int{}
	s.lastClearAt = time.Time{}
}

func (s *engineStats) snapshot() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	copyMap := func(input map[string]int) map[string]int {
		output := make(map[string]int, len(input))
		for k, v := range input {
			output[k] = v
		}
		return output
	}

	return Stats{
		LanguageFallbacks:   copyMap(s.languageFallbacks),
		MissingTranslations: copyMap(s.missingTranslations),
		ParseErrors:         copyMap(s.parseErrors),
		RenderErrors:        copyMap(s.renderErrors),
		DroppedEvents:       copyMap(s.droppedEvents),
		LastClearAt:         s.lastClearAt,
	}
}

// monitor fans events out to the stats maps and, asynchronously, to the Observer.
type monitor struct {
	observer Observer
	stats    *engineStats

	mu     sync.RWMutex
	events chan observerEvent
	done   chan struct{}
}

func newMonitor(observer Observer, buffer int, maxKeys int) *monitor {
	m := &monitor{observer: observer, stats: newEngineStats(maxKeys)}
	if observer != nil {
		m.events = make(chan observerEvent, buffer)
		m.done = make(chan struct{})
		go m.run()
	}
	return m
}

func safeObserverCall(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}

func (m *monitor) run() {
	defer close(m.done)
	for evt := range m.events {
		switch evt.kind {
		case observerEventLanguageFallback:
			safeObserverCall(func() {
				m.observer.OnLanguageFallback(evt.requested, evt.resolved)
			})
		case observerEventTranslationMissing:
			safeObserverCall(func() {
				m.observer.OnTranslationMissing(evt.locale, evt.key)
			})
		case observerEventParseError:
			safeObserverCall(func() {
				m.observer.OnParseError(evt.pattern, evt.position)
			})
		case observerEventRenderError:
			safeObserverCall(func() {
				m.observer.OnRenderError(evt.locale, evt.err)
			})
		}
	}
}

func (m *monitor) publish(evt observerEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.events == nil {
		return
	}
	select {
	case m.events <- evt:
	default:
		m.stats.incrementDroppedEvent("observer_queue_full")
	}
}

func (m *monitor) close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.events == nil {
		return
	}
	close(m.events)
	<-m.done
	m.events = nil
}

func (m *monitor) onLanguageFallback(requested string, resolved string) {
	m.stats.incrementLanguageFallback(requested, resolved)
	m.publish(observerEvent{kind: observerEventLanguageFallback, requested: requested, resolved: resolved})
}

func (m *monitor) onTranslationMissing(locale string, key string) {
	m.stats.incrementMissingTranslation(locale, key)
	m.publish(observerEvent{kind: observerEventTranslationMissing, locale: locale, key: key})
}

func (m *monitor) onParseError(pattern string, perr *ParseError) {
	m.stats.incrementParseError(pattern)
	m.publish(observerEvent{kind: observerEventParseError, pattern: pattern, position: perr.Position})
}

func (m *monitor) onRenderError(locale string, err error) {
	m.stats.incrementRenderError(locale, renderErrorKind(err))
	m.publish(observerEvent{kind: observerEventRenderError, locale: locale, err: err})
}

func renderErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrMissingArgument):
		return "missing_argument"
	case errors.Is(err, ErrBranch):
		return "missing_branch"
	case errors.Is(err, ErrArgumentType):
		return "argument_type"
	default:
		return "localize"
	}
}
