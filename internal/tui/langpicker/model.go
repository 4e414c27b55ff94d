// ============================================================================
// mdwloc - Localization Compiler and Runtime
// ============================================================================
//
// Package:     langpicker
// Description: Bubbletea model previewing runtime languages and translations
// License:     MIT
// ============================================================================

package langpicker

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/mdwloc/foundation/core/i18n"
)

const (
	headerHeight = 3
	footerHeight = 2
	listWidth    = 30

	// changeBuffer bounds the notifications queued between two Update calls.
	changeBuffer = 16
)

// Config holds preview configuration
type Config struct {
	Resolver *i18n.Resolver
}

// Model is the Bubbletea model for the language preview
type Model struct {
	// State
	width   int
	height  int
	ready   bool
	loading bool
	err     error
	status  string

	// Components
	viewport viewport.Model
	spinner  spinner.Model

	// Language state
	resolver  *i18n.Resolver
	languages []i18n.Language
	cursor    int
	current   string

	changes     chan string
	unsubscribe func()
}

// New creates a preview model bound to the resolver. The model subscribes to
// language changes immediately; call Close when the program has finished.
func New(cfg Config) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	changes := make(chan string, changeBuffer)
	unsubscribe := cfg.Resolver.OnLanguageChanged(func(code string) {
		select {
		case changes <- code:
		default:
		}
	})

	return Model{
		loading:     true,
		spinner:     sp,
		resolver:    cfg.Resolver,
		changes:     changes,
		unsubscribe: unsubscribe,
	}
}

// Close releases the language-changed subscription.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadLanguages,
		m.waitForChange,
		tea.EnterAltScreen,
	)
}

// loadLanguages initializes the resolver off the UI goroutine
func (m Model) loadLanguages() tea.Msg {
	m.resolver.Init(context.Background())
	return languagesLoadedMsg{
		languages: m.resolver.Languages(),
		current:   m.resolver.CurrentLanguage(),
	}
}

// waitForChange blocks until the resolver reports a switch
func (m Model) waitForChange() tea.Msg {
	code, ok := <-m.changes
	if !ok {
		return nil
	}
	return languageChangedMsg{code: code}
}

// applyLanguage switches the resolver to the language at index
func (m Model) applyLanguage(index int) tea.Cmd {
	return func() tea.Msg {
		return switchResultMsg{err: m.resolver.SetLanguageByIndex(index)}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpWidth := max(msg.Width-listWidth-8, 10)
		vpHeight := max(msg.Height-headerHeight-footerHeight-4, 3)

		if !m.ready {
			m.viewport = viewport.New(vpWidth, vpHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = vpWidth
			m.viewport.Height = vpHeight
		}
		m.updateViewportContent()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case languagesLoadedMsg:
		m.loading = false
		m.languages = msg.languages
		m.current = msg.current
		m.cursor = m.indexOf(msg.current)
		m.updateViewportContent()

	case languageChangedMsg:
		m.current = msg.code
		m.status = fmt.Sprintf("%s %s", m.resolver.Get("preview.switched"), m.displayName(msg.code))
		m.err = nil
		m.updateViewportContent()
		cmds = append(cmds, m.waitForChange)

	case switchResultMsg:
		if msg.err != nil {
			m.err = msg.err
		}
	}

	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.languages)-1 {
			m.cursor++
		}
		return m, nil

	case "enter", " ":
		if m.loading || len(m.languages) == 0 {
			return m, nil
		}
		return m, m.applyLanguage(m.cursor)

	case "pgup":
		m.viewport.ViewUp()
		return m, nil

	case "pgdown":
		m.viewport.ViewDown()
		return m, nil

	case "g":
		m.viewport.GotoTop()
		return m, nil

	case "G":
		m.viewport.GotoBottom()
		return m, nil
	}

	return m, nil
}

// updateViewportContent renders every key with its value in the current language
func (m *Model) updateViewportContent() {
	if !m.ready || m.loading {
		return
	}

	keys := m.resolver.Keys()
	width := 0
	for _, key := range keys {
		width = max(width, len(key))
	}

	var b strings.Builder
	for _, key := range keys {
		value := m.resolver.Get(key)
		b.WriteString(KeyStyle.Render(fmt.Sprintf("%-*s", width, key)))
		b.WriteString("  ")
		if value == i18n.Placeholder(key) {
			b.WriteString(PlaceholderStyle.Render(value))
		} else {
			b.WriteString(ValueStyle.Render(value))
		}
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return m.spinner.View() + " " + m.resolver.Get("preview.loading")
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderLanguageList(), m.renderTranslations()))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render(m.resolver.Get("preview.help")))

	return b.String()
}

// renderHeader renders the title and current language
func (m Model) renderHeader() string {
	title := TitleStyle.Render(m.resolver.Get("preview.title"))
	current := SubHeaderStyle.Render(fmt.Sprintf("%s: %s (%s)",
		m.resolver.Get("preview.current"), m.displayName(m.current), m.current))

	header := lipgloss.JoinHorizontal(lipgloss.Center, title, strings.Repeat(" ", 3), current)
	return TitlePanelStyle.Width(max(m.width-4, 0)).Render(header)
}

// renderLanguageList renders the selectable languages
func (m Model) renderLanguageList() string {
	var b strings.Builder
	b.WriteString(PanelTitleStyle.Render(m.resolver.Get("preview.languages")))
	b.WriteString("\n")

	if m.loading {
		b.WriteString(m.spinner.View())
	}

	for i, lang := range m.languages {
		marker := IconInactive
		if strings.EqualFold(lang.Code, m.current) {
			marker = ActiveMarkerStyle.Render(IconActive)
		}
		line := fmt.Sprintf("%s%s  %s", marker, lang.Code, lang.DisplayName)
		if i == m.cursor {
			b.WriteString(SelectedItemStyle.Render(IconCursor + line))
		} else {
			b.WriteString(ItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return ListPanelStyle.Width(listWidth).Height(m.viewport.Height + 1).Render(b.String())
}

// renderTranslations renders the translation viewport
func (m Model) renderTranslations() string {
	content := PanelTitleStyle.Render(m.resolver.Get("preview.translations")) + "\n" + m.viewport.View()
	return TranslationPanelStyle.Width(m.viewport.Width + 2).Render(content)
}

// renderStatusBar renders the status line
func (m Model) renderStatusBar() string {
	var status string
	switch {
	case m.err != nil:
		status = StatusErrorStyle.Render(m.err.Error())
	case m.loading:
		status = m.spinner.View() + " " + m.resolver.Get("preview.loading")
	case m.status != "":
		status = StatusOKStyle.Render(m.status)
	}
	return StatusBarStyle.Width(max(m.width-2, 0)).Render(status)
}

func (m Model) indexOf(code string) int {
	for i, lang := range m.languages {
		if strings.EqualFold(lang.Code, code) {
			return i
		}
	}
	return 0
}

func (m Model) displayName(code string) string {
	for _, lang := range m.languages {
		if strings.EqualFold(lang.Code, code) {
			return lang.DisplayName
		}
	}
	return code
}

// Run starts the preview program and blocks until it exits.
func Run(cfg Config) error {
	m := New(cfg)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
