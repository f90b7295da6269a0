package handler

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/ffaiyaz23/boltgo/request"
	"go.uber.org/zap"
)

type patternEntry struct {
	pattern *regexp.Regexp
	handler Handler
}

// Registry stores handlers keyed by RequestKind + pattern (ordered,
// first-match-wins) for pattern-matched kinds, and by exact string key
// for Events API and outgoing-webhook kinds. It is safe for concurrent
// registration and lookup.
type Registry struct {
	mu       sync.RWMutex
	patterns map[request.Kind][]*patternEntry
	events   map[string]Handler
	webhooks map[string]Handler
}

// NewRegistry builds an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		patterns: make(map[request.Kind][]*patternEntry),
		events:   make(map[string]Handler),
		webhooks: make(map[string]Handler),
	}
}

// RegisterPattern compiles pattern as an anchored exact match
// ("^<pattern>$") and registers it for kind, preserving insertion order.
// Re-registering the same literal pattern string for the same kind logs a
// warning and replaces the handler in place.
func (r *Registry) RegisterPattern(kind request.Kind, pattern string, h Handler) error {
	re, err := regexp.Compile("^" + pattern + "$")
	if err != nil {
		return fmt.Errorf("handler: invalid pattern %q: %w", pattern, err)
	}
	return r.RegisterPatternRegexp(kind, re, h)
}

// RegisterPatternRegexp registers a pre-compiled pattern verbatim (no
// implicit anchoring).
func (r *Registry) RegisterPatternRegexp(kind request.Kind, re *regexp.Regexp, h Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := r.patterns[kind]
	for _, e := range entries {
		if e.pattern.String() == re.String() {
			zap.L().Warn("replaced handler for already-registered pattern",
				zap.String("kind", kind.String()), zap.String("pattern", re.String()))
			e.handler = h
			return nil
		}
	}
	r.patterns[kind] = append(entries, &patternEntry{pattern: re, handler: h})
	return nil
}

// MatchPattern scans the entries registered for kind in insertion order
// and returns the first whose pattern fully matches key.
func (r *Registry) MatchPattern(kind request.Kind, key string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.patterns[kind] {
		if e.pattern.MatchString(key) {
			return e.handler, true
		}
	}
	return nil, false
}

func eventKey(eventType, subtype string) string {
	if subtype == "" {
		subtype = "null"
	}
	return eventType + ":" + subtype
}

// RegisterEvent binds a handler to the exact "{type}:{subtype}" key.
// Re-registration logs a warning and replaces.
func (r *Registry) RegisterEvent(eventType, subtype string, h Handler) {
	key := eventKey(eventType, subtype)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.events[key]; exists {
		zap.L().Warn("replaced handler for already-registered event", zap.String("key", key))
	}
	r.events[key] = h
}

// MatchEvent looks up the exact key "{type}:{subtype}".
func (r *Registry) MatchEvent(key string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.events[key]
	return h, ok
}

// RegisterWebhook binds a handler to an outgoing-webhook trigger word.
// Re-registration logs a warning and replaces.
func (r *Registry) RegisterWebhook(triggerWord string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.webhooks[triggerWord]; exists {
		zap.L().Warn("replaced handler for already-registered trigger word", zap.String("trigger_word", triggerWord))
	}
	r.webhooks[triggerWord] = h
}

// MatchWebhook looks up the exact trigger word.
func (r *Registry) MatchWebhook(triggerWord string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.webhooks[triggerWord]
	return h, ok
}
