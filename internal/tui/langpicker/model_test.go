package langpicker

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/msto63/mdwloc/assets"
	"github.com/msto63/mdwloc/foundation/core/i18n"
	mdwlog "github.com/msto63/mdwloc/foundation/core/log"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	store := i18n.NewStore(assets.Languages, i18n.StoreOptions{Logger: mdwlog.Discard()})
	resolver := i18n.NewResolver(store, i18n.ResolverOptions{
		Getenv: func(string) string { return "" },
		Logger: mdwlog.Discard(),
	})
	m := New(Config{Resolver: resolver})
	t.Cleanup(m.Close)
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func loadedModel(t *testing.T) Model {
	t.Helper()
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(t, m, m.loadLanguages())
	return m
}

func TestModel_LoadLanguages(t *testing.T) {
	m := loadedModel(t)

	if m.loading {
		t.Error("still loading after languagesLoadedMsg")
	}
	if len(m.languages) != 4 {
		t.Fatalf("languages = %d, want 4", len(m.languages))
	}
	if m.current != "en" {
		t.Errorf("current = %q, want en", m.current)
	}
	if m.languages[m.cursor].Code != "en" {
		t.Errorf("cursor on %q, want en", m.languages[m.cursor].Code)
	}
	if !strings.Contains(m.viewport.View(), "app.name") {
		t.Error("viewport does not list translation keys")
	}
}

func TestModel_CursorBounds(t *testing.T) {
	m := loadedModel(t)

	for i := 0; i < 10; i++ {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d after moving up, want 0", m.cursor)
	}

	for i := 0; i < 10; i++ {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != len(m.languages)-1 {
		t.Errorf("cursor = %d after moving down, want %d", m.cursor, len(m.languages)-1)
	}
}

func TestModel_ApplySwitchesLanguage(t *testing.T) {
	m := loadedModel(t)

	// Load order is de, en, es, fr.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.languages[m.cursor].Code != "de" {
		t.Fatalf("cursor on %q, want de", m.languages[m.cursor].Code)
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter returned no command")
	}
	result, ok := cmd().(switchResultMsg)
	if !ok {
		t.Fatal("apply command did not return switchResultMsg")
	}
	if result.err != nil {
		t.Fatalf("switch failed: %v", result.err)
	}

	changed, ok := m.waitForChange().(languageChangedMsg)
	if !ok {
		t.Fatal("no language-changed notification received")
	}
	if changed.code != "de" {
		t.Errorf("notified code = %q, want de", changed.code)
	}

	m, _ = update(t, m, changed)
	if m.current != "de" {
		t.Errorf("current = %q, want de", m.current)
	}
	if !strings.Contains(m.status, "Deutsch") {
		t.Errorf("status = %q, want it to name Deutsch", m.status)
	}
	if m.resolver.CurrentLanguage() != "de" {
		t.Errorf("resolver language = %q, want de", m.resolver.CurrentLanguage())
	}
}

func TestModel_ApplyIgnoredWhileLoading(t *testing.T) {
	m := newTestModel(t)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("enter while loading returned a command")
	}
}

func TestModel_Quit(t *testing.T) {
	m := loadedModel(t)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestModel_View(t *testing.T) {
	m := loadedModel(t)

	view := m.View()
	for _, want := range []string{"Language preview", "English", "Deutsch"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
