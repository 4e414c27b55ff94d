// File: testing_test.go
// Title: Shared Test Fixtures

package i18n

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"testing/fstest"

	mdwlog "github.com/msto63/mdwloc/foundation/core/log"
)

const (
	englishResource = `{"metadata": {"language": "English"}, "translations": {"a": "A", "hello": "Hello"}}`
	frenchResource  = `{"metadata": {"language": "Français"}, "translations": {}}`
	germanResource  = `{"metadata": {"language": "Deutsch"}, "translations": {"hello": "Hallo"}}`
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"lang_de.json": {Data: []byte(germanResource)},
		"lang_en.json": {Data: []byte(englishResource)},
		"lang_fr.json": {Data: []byte(frenchResource)},
	}
}

// bufferLogger returns a JSON logger writing into the returned buffer.
func bufferLogger() (*mdwlog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return mdwlog.NewWithConfig(mdwlog.Config{
		Level:  mdwlog.LevelDebug,
		Format: mdwlog.FormatJSON,
		Output: buf,
	}), buf
}

func noEnv(string) string { return "" }

func newTestResolver(t *testing.T, fsys fstest.MapFS, prefs PreferenceStore) *Resolver {
	t.Helper()
	store := NewStore(fsys, StoreOptions{Logger: mdwlog.Discard()})
	return NewResolver(store, ResolverOptions{
		Preferences: prefs,
		Getenv:      noEnv,
		Logger:      mdwlog.Discard(),
	})
}

// memoryPrefs is a minimal PreferenceStore for tests.
type memoryPrefs struct {
	mu     sync.Mutex
	values map[string]string
	sets   int
}

func newMemoryPrefs(values map[string]string) *memoryPrefs {
	if values == nil {
		values = make(map[string]string)
	}
	return &memoryPrefs{values: values}
}

func (m *memoryPrefs) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryPrefs) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.sets++
	return nil
}
