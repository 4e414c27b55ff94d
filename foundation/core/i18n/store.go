// File: store.go
// Title: Runtime Language Store
// Description: Discovers packaged "<prefix><code>.json" resources, decodes
//              them into immutable language records and keeps the record
//              with the default code as fallback.

package i18n

import (
	"bytes"
	"context"
	"encoding/json"
	"io/fs"
	"path"
	"strings"
	"sync"

	mdwerror "github.com/msto63/mdwloc/foundation/core/error"
	mdwlog "github.com/msto63/mdwloc/foundation/core/log"
)

const (
	// DefaultPrefix is the resource name prefix in front of the language code.
	DefaultPrefix = "lang_"

	// DefaultExtension is the resource name suffix after the language code.
	DefaultExtension = ".json"

	// DefaultCode is the code of the fallback language.
	DefaultCode = "en"
)

// LanguageRecord is one loaded language. It is never modified after load.
type LanguageRecord struct {
	Code         string
	DisplayName  string
	Translations map[string]string
}

// Lookup returns the translation for key.
func (r *LanguageRecord) Lookup(key string) (string, bool) {
	if r == nil {
		return "", false
	}
	value, ok := r.Translations[key]
	return value, ok
}

// Language is a (code, display name) pair as exposed to selection UIs.
type Language struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
}

// StoreOptions configures a Store. Zero values select the defaults.
type StoreOptions struct {
	// Dir is the directory inside the file system that holds the resources.
	Dir string

	Prefix      string
	Extension   string
	DefaultCode string

	Logger *mdwlog.Logger
}

// Store holds every language loaded from one file system.
type Store struct {
	fsys   fs.FS
	opts   StoreOptions
	logger *mdwlog.Logger

	once     sync.Once
	loadErr  error
	records  []*LanguageRecord
	fallback *LanguageRecord
}

// resourceFile is the on-disk layout of one language resource.
type resourceFile struct {
	Metadata *struct {
		Language string `json:"language"`
	} `json:"metadata"`
	Translations map[string]string `json:"translations"`
}

// NewStore creates a store over fsys. Nothing is read until LoadAll.
func NewStore(fsys fs.FS, opts StoreOptions) *Store {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	if opts.Extension == "" {
		opts.Extension = DefaultExtension
	}
	if opts.DefaultCode == "" {
		opts.DefaultCode = DefaultCode
	}

	return &Store{
		fsys:   fsys,
		opts:   opts,
		logger: mdwlog.OrDefault(opts.Logger).WithName("i18n.store"),
	}
}

// LoadAll reads every matching resource exactly once. Broken resources are
// logged and skipped. The error is non-nil only when no language at all could
// be loaded or ctx was cancelled during the first call; later calls return
// the same result.
func (s *Store) LoadAll(ctx context.Context) error {
	s.once.Do(func() {
		s.loadErr = s.load(ctx)
	})
	return s.loadErr
}

func (s *Store) load(ctx context.Context) error {
	if s.fsys == nil {
		return mdwerror.New("no language resources configured").
			WithCode(mdwerror.CodeNoLanguagesLoaded).
			WithOperation("i18n.LoadAll")
	}

	timer := s.logger.StartTimer("load languages").WithLevel(mdwlog.LevelDebug)
	defer timer.Stop()

	names, err := fs.Glob(s.fsys, path.Join(s.opts.Dir, s.opts.Prefix+"*"+s.opts.Extension))
	if err != nil {
		return mdwerror.Wrap(err, "failed to enumerate language resources").
			WithCode(mdwerror.CodeResourceLoadFailed).
			WithOperation("i18n.LoadAll")
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return mdwerror.Wrap(err, "loading languages cancelled").
				WithOperation("i18n.LoadAll")
		}

		record, err := s.loadResource(name)
		if err != nil {
			s.logger.ErrorWithErr("language resource skipped", err, mdwlog.Fields{
				"resource":   name,
				"error_code": mdwerror.GetCode(err),
			})
			continue
		}

		if existing := s.find(record.Code); existing != nil {
			s.logger.Warn("duplicate language resource ignored", mdwlog.Fields{
				"resource": name,
				"language": record.Code,
				"kept":     existing.Code,
			})
			continue
		}

		s.records = append(s.records, record)
		if strings.EqualFold(record.Code, s.opts.DefaultCode) {
			s.fallback = record
		}
	}

	if len(s.records) == 0 {
		return mdwerror.New("no language resources could be loaded").
			WithCode(mdwerror.CodeNoLanguagesLoaded).
			WithOperation("i18n.LoadAll").
			WithDetail("dir", s.opts.Dir)
	}

	if s.fallback == nil {
		s.logger.Warn("fallback language not loaded", mdwlog.Fields{
			"language": s.opts.DefaultCode,
		})
	}

	s.logger.Info("languages loaded", mdwlog.Fields{
		"count":    len(s.records),
		"fallback": s.opts.DefaultCode,
	})
	return nil
}

func (s *Store) loadResource(name string) (*LanguageRecord, error) {
	fail := func(cause error, message string) error {
		e := mdwerror.New(message)
		if cause != nil {
			e = mdwerror.Wrap(cause, message)
		}
		return e.WithCode(mdwerror.CodeResourceLoadFailed).
			WithOperation("i18n.loadResource").
			WithDetail("resource", name)
	}

	base := path.Base(name)
	code := strings.TrimSuffix(strings.TrimPrefix(base, s.opts.Prefix), s.opts.Extension)
	if code == "" {
		return nil, fail(nil, "language code is empty")
	}

	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return nil, fail(err, "failed to read language resource")
	}

	var file resourceFile
	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&file); err != nil {
		return nil, fail(err, "failed to decode language resource")
	}
	if file.Metadata == nil || strings.TrimSpace(file.Metadata.Language) == "" {
		return nil, fail(nil, "metadata.language is missing")
	}
	if file.Translations == nil {
		return nil, fail(nil, "translations section is missing")
	}

	return &LanguageRecord{
		Code:         code,
		DisplayName:  file.Metadata.Language,
		Translations: file.Translations,
	}, nil
}

// Languages returns the loaded (code, display name) pairs in load order.
func (s *Store) Languages() []Language {
	languages := make([]Language, 0, len(s.records))
	for _, r := range s.records {
		languages = append(languages, Language{Code: r.Code, DisplayName: r.DisplayName})
	}
	return languages
}

// Codes returns the loaded language codes in load order.
func (s *Store) Codes() []string {
	codes := make([]string, 0, len(s.records))
	for _, r := range s.records {
		codes = append(codes, r.Code)
	}
	return codes
}

// Record returns the record for code, compared case-insensitively.
func (s *Store) Record(code string) (*LanguageRecord, bool) {
	r := s.find(code)
	return r, r != nil
}

// Fallback returns the default-code record or nil if it was not loaded.
func (s *Store) Fallback() *LanguageRecord {
	return s.fallback
}

// DefaultCode returns the configured fallback code.
func (s *Store) DefaultCode() string {
	return s.opts.DefaultCode
}

// IndexOf returns the load-order index of code or -1.
func (s *Store) IndexOf(code string) int {
	for i, r := range s.records {
		if strings.EqualFold(r.Code, code) {
			return i
		}
	}
	return -1
}

// Len returns the number of loaded languages.
func (s *Store) Len() int {
	return len(s.records)
}

func (s *Store) find(code string) *LanguageRecord {
	if i := s.IndexOf(code); i >= 0 {
		return s.records[i]
	}
	return nil
}
