// File: resolver.go
// Title: Runtime Resolver
// Description: Owns the current language, resolves keys through the
//              current -> fallback -> placeholder chain and notifies
//              subscribers when the language is switched.

package i18n

import (
	"context"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	mdwerror "github.com/msto63/mdwloc/foundation/core/error"
	mdwlog "github.com/msto63/mdwloc/foundation/core/log"
)

// DefaultPreferenceKey is the preference under which the chosen language
// code is persisted.
const DefaultPreferenceKey = "language"

// PreferenceStore persists the selected language across sessions.
type PreferenceStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// ResolverOptions configures a Resolver.
type ResolverOptions struct {
	// Preferences is optional. Without it nothing is persisted.
	Preferences   PreferenceStore
	PreferenceKey string

	// Getenv reads the locale variables. Defaults to os.Getenv.
	Getenv func(string) string

	Logger *mdwlog.Logger
}

// Resolver is the process-wide language state. Construct one per process
// and hand it to consumers; tests construct isolated instances.
type Resolver struct {
	store  *Store
	opts   ResolverOptions
	logger *mdwlog.Logger

	initOnce sync.Once

	// switchMu serialises language switches. Reads go through current.
	switchMu sync.Mutex
	current  atomic.Pointer[LanguageRecord]

	notifier Notifier
}

var _ Accessor = (*Resolver)(nil)

// NewResolver creates a resolver on top of store. The store is loaded on
// first use.
func NewResolver(store *Store, opts ResolverOptions) *Resolver {
	if opts.PreferenceKey == "" {
		opts.PreferenceKey = DefaultPreferenceKey
	}
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}

	logger := mdwlog.OrDefault(opts.Logger).WithName("i18n.resolver")
	r := &Resolver{
		store:  store,
		opts:   opts,
		logger: logger,
	}
	r.notifier.Logger = logger
	return r
}

// Init loads the store and selects the initial language: the persisted
// preference, then the environment locale, then the default code. It runs
// once; Get and SetLanguage call it implicitly with a background context.
func (r *Resolver) Init(ctx context.Context) {
	r.initOnce.Do(func() {
		if err := r.store.LoadAll(ctx); err != nil {
			r.logger.LogError(err)
		}

		record, source := r.initialLanguage(ctx)
		if record == nil {
			r.logger.Warn("no initial language available")
			return
		}

		r.current.Store(record)
		r.logger.Info("initial language selected", mdwlog.Fields{
			"language": record.Code,
			"source":   source,
		})
	})
}

func (r *Resolver) initialLanguage(ctx context.Context) (*LanguageRecord, string) {
	if r.opts.Preferences != nil {
		code, ok, err := r.opts.Preferences.Get(ctx, r.opts.PreferenceKey)
		switch {
		case err != nil:
			r.logger.LogError(err)
		case ok:
			if record, found := r.store.Record(code); found {
				return record, "preference"
			}
			r.logger.Warn("persisted language not loaded", mdwlog.Fields{"language": code})
		}
	}

	if locale := EnvironmentLocale(r.opts.Getenv); locale != "" {
		if code, ok := MatchLanguage(locale, r.store.Codes()); ok {
			record, _ := r.store.Record(code)
			return record, "environment"
		}
	}

	if fallback := r.store.Fallback(); fallback != nil {
		return fallback, "default"
	}

	// Without the default language the first loaded one is the best guess.
	if codes := r.store.Codes(); len(codes) > 0 {
		record, _ := r.store.Record(codes[0])
		return record, "first"
	}
	return nil, ""
}

func (r *Resolver) ensureInit() {
	r.Init(context.Background())
}

// Get resolves key against the current language, then the fallback
// language. An unresolved key yields Placeholder(key) and a warning.
func (r *Resolver) Get(key string) string {
	r.ensureInit()

	if value, ok := r.current.Load().Lookup(key); ok {
		return value
	}
	if value, ok := r.store.Fallback().Lookup(key); ok {
		return value
	}

	r.logger.Warn("missing translation", mdwlog.Fields{
		"key":        key,
		"language":   r.CurrentLanguage(),
		"error_code": mdwerror.CodeMissingTranslation,
	})
	return Placeholder(key)
}

// SetLanguage switches to code. Switching to the current language does
// nothing. An unknown code is logged and replaced by the default code; if
// that is not loaded either, an error is returned and nothing changes.
// Subscribers are notified exactly once per effective switch.
func (r *Resolver) SetLanguage(code string) error {
	r.ensureInit()

	r.switchMu.Lock()
	previous := r.current.Load()
	if previous != nil && strings.EqualFold(previous.Code, code) {
		r.switchMu.Unlock()
		return nil
	}

	target, ok := r.store.Record(code)
	if !ok {
		r.logger.Error("unknown language requested, using default", mdwlog.Fields{
			"language": code,
			"default":  r.store.DefaultCode(),
		})

		target, ok = r.store.Record(r.store.DefaultCode())
		if !ok {
			r.switchMu.Unlock()
			return mdwerror.Newf("language %q is not loaded and neither is the default %q", code, r.store.DefaultCode()).
				WithCode(mdwerror.CodeUnknownLanguage).
				WithOperation("i18n.SetLanguage").
				WithDetail("language", code)
		}
		if target == previous {
			r.switchMu.Unlock()
			return nil
		}
	}

	r.current.Store(target)
	r.switchMu.Unlock()

	r.logger.Info("language switched", mdwlog.Fields{
		"language": target.Code,
		"previous": codeOf(previous),
	})
	r.persist(target.Code)
	r.notifier.Notify(target.Code)
	return nil
}

// SetCurrentLanguage is SetLanguage for callers that do not handle the
// error. An unknown code still falls back to the default; when the default
// is not loaded either, the request is dropped and only the error log
// records it.
func (r *Resolver) SetCurrentLanguage(code string) {
	_ = r.SetLanguage(code)
}

// SetLanguageByIndex switches to the language at index in load order. An
// out of range index does nothing.
func (r *Resolver) SetLanguageByIndex(index int) error {
	r.ensureInit()

	codes := r.store.Codes()
	if index < 0 || index >= len(codes) {
		return nil
	}
	return r.SetLanguage(codes[index])
}

// CurrentIndex returns the load-order index of the current language, or 0.
func (r *Resolver) CurrentIndex() int {
	r.ensureInit()

	if i := r.store.IndexOf(r.CurrentLanguage()); i >= 0 {
		return i
	}
	return 0
}

// CurrentLanguage returns the current language code.
func (r *Resolver) CurrentLanguage() string {
	r.ensureInit()
	return codeOf(r.current.Load())
}

// CurrentLanguageName returns the display name of the current language.
func (r *Resolver) CurrentLanguageName() string {
	r.ensureInit()
	if record := r.current.Load(); record != nil {
		return record.DisplayName
	}
	return ""
}

// Languages returns the loaded (code, display name) pairs in load order.
func (r *Resolver) Languages() []Language {
	r.ensureInit()
	return r.store.Languages()
}

// SupportedLanguages returns the loaded codes in load order.
func (r *Resolver) SupportedLanguages() []string {
	r.ensureInit()
	return r.store.Codes()
}

// Keys returns every key resolvable without a placeholder, sorted.
func (r *Resolver) Keys() []string {
	r.ensureInit()

	seen := make(map[string]struct{})
	for _, record := range []*LanguageRecord{r.current.Load(), r.store.Fallback()} {
		if record == nil {
			continue
		}
		for key := range record.Translations {
			seen[key] = struct{}{}
		}
	}

	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// OnLanguageChanged registers fn for language switches. Handlers run on the
// switching goroutine after the switch is visible, so they may call Get.
func (r *Resolver) OnLanguageChanged(fn ChangeHandler) func() {
	return r.notifier.Subscribe(fn)
}

func (r *Resolver) persist(code string) {
	if r.opts.Preferences == nil {
		return
	}
	if err := r.opts.Preferences.Set(context.Background(), r.opts.PreferenceKey, code); err != nil {
		r.logger.LogError(err)
	}
}

func codeOf(record *LanguageRecord) string {
	if record == nil {
		return ""
	}
	return record.Code
}
