// Package app is the interactive terminal form: pick an action, fill its
// fields, read the generated URL and copy it.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-jobform/pkg/clipboard"
	"github.com/goliatone/go-jobform/pkg/form"
	"github.com/goliatone/go-jobform/pkg/session"
	"github.com/goliatone/go-jobform/pkg/urlbuilder"
)

type step int

const (
	stepAction step = iota
	stepField
	stepResult
)

type optionItem struct {
	title string
	desc  string
	value string
}

func (i optionItem) Title() string       { return i.title }
func (i optionItem) Description() string { return i.desc }
func (i optionItem) FilterValue() string { return i.title }

// revertMsg fires when the copy acknowledgement should be withdrawn. Only the
// message carrying the latest generation has an effect.
type revertMsg struct {
	gen uint64
}

// copiedMsg reports the outcome of a clipboard write started from the result
// step. url is the URL that was written.
type copiedMsg struct {
	url string
	gen uint64
	err error
}

var (
	styleTitle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	styleSubtitle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	styleError    = lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true)
	stylePrompt   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	styleURL      = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
	styleButton   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
)

// Model is the bubbletea model driving a session.
type Model struct {
	ctx     context.Context
	session *session.Session

	step          step
	list          list.Model
	input         textinput.Model
	fieldIdx      int
	validationErr string
	cancelled     bool
	width         int
	height        int
}

// New builds the model. The copy button defaults to the system clipboard with
// reverts driven by the program loop; options may override it but must keep
// clipboard.ManualRevert so label changes stay on the event loop.
func New(ctx context.Context, options ...session.Option) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	opts := append([]session.Option{
		session.WithCopyButton(clipboard.NewButton(clipboard.System(), clipboard.ManualRevert())),
	}, options...)

	m := Model{
		ctx:     ctx,
		session: session.New(opts...),
	}
	m.showActions()
	return m
}

// Run starts the program on the terminal and returns the last generated URL,
// empty when the operator quit before generating one.
func Run(ctx context.Context, options ...session.Option) (string, error) {
	prog := tea.NewProgram(New(ctx, options...), tea.WithAltScreen(), tea.WithContext(ctx))
	result, err := prog.Run()
	if err != nil {
		return "", err
	}
	final, ok := result.(Model)
	if !ok {
		return "", errors.New("app: program returned an unexpected model")
	}
	if final.cancelled {
		return "", nil
	}
	return final.session.URL(), nil
}

// Session exposes the underlying session.
func (m Model) Session() *session.Session {
	return m.session
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applySize()
		return m, nil
	case revertMsg:
		m.session.CopyButton().Revert(msg.gen)
		return m, nil
	case copiedMsg:
		return m.copied(msg)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		case "esc":
			if m.step != stepAction {
				m.session.Select("")
				m.showActions()
				return m, nil
			}
		}
		switch m.step {
		case stepAction:
			return m.updateActions(msg)
		case stepField:
			return m.updateField(msg)
		case stepResult:
			return m.updateResult(msg)
		}
	}

	return m.forward(msg)
}

func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.step == stepField && !m.currentIsSelect() {
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	if m.step != stepResult {
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m Model) updateActions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.cancelled = true
		return m, tea.Quit
	case "enter":
		item, ok := m.list.SelectedItem().(optionItem)
		if !ok {
			return m, nil
		}
		m.session.Select(item.value)
		m.fieldIdx = 0
		return m.enterField()
	}
	return m.forward(msg)
}

func (m Model) updateField(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type != tea.KeyEnter {
		return m.forward(msg)
	}

	control := m.currentControl()
	var value string
	if control.IsSelect() {
		item, ok := m.list.SelectedItem().(optionItem)
		if !ok {
			return m, nil
		}
		value = item.value
	} else {
		value = m.input.Value()
	}
	if value == "" {
		m.validationErr = missingMessage(control)
		return m, nil
	}
	if err := m.session.Set(control.Name, value); err != nil {
		m.validationErr = err.Error()
		return m, nil
	}
	m.fieldIdx++
	return m.enterField()
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "c":
		url := m.session.URL()
		if url == "" {
			return m, nil
		}
		ctx, copyURL := m.ctx, m.session.Copier()
		return m, func() tea.Msg {
			gen, err := copyURL(ctx)
			return copiedMsg{url: url, gen: gen, err: err}
		}
	case "e":
		m.fieldIdx = 0
		return m.enterField()
	case "enter", "q":
		return m, tea.Quit
	}
	return m, nil
}

// copied applies a finished clipboard write and schedules the label revert.
func (m Model) copied(msg copiedMsg) (tea.Model, tea.Cmd) {
	button := m.session.CopyButton()
	if msg.url != m.session.URL() {
		// the URL was discarded while the write was in flight
		button.Revert(msg.gen)
		return m, nil
	}
	if msg.err != nil {
		var copyErr *clipboard.CopyError
		if errors.As(msg.err, &copyErr) {
			m.validationErr = copyErr.Message()
		} else {
			m.validationErr = msg.err.Error()
		}
		return m, nil
	}
	m.validationErr = ""
	if msg.gen == 0 {
		return m, nil
	}
	gen := msg.gen
	return m, tea.Tick(button.Delay(), func(time.Time) tea.Msg {
		return revertMsg{gen: gen}
	})
}

// enterField moves to the control at fieldIdx, or generates once every
// control has a value.
func (m Model) enterField() (tea.Model, tea.Cmd) {
	m.validationErr = ""
	controls := m.session.Form().Controls()
	if m.fieldIdx >= len(controls) {
		return m.generate()
	}

	m.step = stepField
	control := controls[m.fieldIdx]
	if control.IsSelect() {
		items := make([]list.Item, 0, len(control.Options))
		selected := 0
		for i, choice := range control.Choices() {
			items = append(items, optionItem{title: choice.Caption, value: choice.Value})
			if choice.Value == control.Value {
				selected = i
			}
		}
		m.list = newList(control.Label, items)
		m.list.Select(selected)
		m.applySize()
		return m, nil
	}

	m.input = textinput.New()
	m.input.Prompt = stylePrompt.Render("> ")
	m.input.Placeholder = control.Placeholder
	m.input.SetValue(control.Value)
	m.input.Focus()
	m.applySize()
	return m, textinput.Blink
}

func (m Model) generate() (tea.Model, tea.Cmd) {
	_, err := m.session.Generate()
	if err != nil {
		var missing *urlbuilder.MissingFieldError
		if errors.As(err, &missing) {
			for i, control := range m.session.Form().Controls() {
				if control.Name == missing.Name {
					m.fieldIdx = i
					break
				}
			}
			next, cmd := m.enterField()
			nm := next.(Model)
			nm.validationErr = missing.Message()
			return nm, cmd
		}
		m.validationErr = err.Error()
		return m, nil
	}
	m.step = stepResult
	return m, nil
}

func (m Model) View() string {
	var header string
	if m.validationErr != "" {
		header = styleError.Render(m.validationErr) + "\n\n"
	}

	switch m.step {
	case stepField:
		control := m.currentControl()
		progress := styleSubtitle.Render(fmt.Sprintf("%s · field %d of %d", m.session.ActionID(), m.fieldIdx+1, m.session.Form().Len()))
		if control.IsSelect() {
			return header + progress + "\n\n" + m.list.View() + "\n\n" + stylePrompt.Render("Use ↑/↓ to move, Enter to select, Esc to change action.")
		}
		return header + progress + "\n\n" + styleTitle.Render(control.Label) + "\n\n" + m.input.View() + "\n\n" + stylePrompt.Render("Press Enter to continue, Esc to change action.")
	case stepResult:
		var b strings.Builder
		b.WriteString(header)
		b.WriteString(styleTitle.Render(m.session.ActionID()))
		b.WriteString("\n\n")
		b.WriteString(styleURL.Render(m.session.URL()))
		b.WriteString("\n\n")
		if m.session.CopyVisible() {
			b.WriteString(styleButton.Render("[c] " + m.session.CopyLabel()))
			b.WriteString("  ")
		}
		b.WriteString(stylePrompt.Render("[e] edit  [esc] change action  [enter] quit"))
		return b.String()
	default:
		return header + m.list.View() + "\n\n" + stylePrompt.Render("Use ↑/↓ to move, Enter to select, q to quit.")
	}
}

func (m *Model) showActions() {
	m.step = stepAction
	m.fieldIdx = 0
	m.validationErr = ""
	actions := m.session.Registry().Actions()
	items := make([]list.Item, 0, len(actions))
	for _, action := range actions {
		items = append(items, optionItem{title: action.ID, desc: action.Description, value: action.ID})
	}
	m.list = newList("Select action", items)
	m.applySize()
}

func (m Model) currentControl() form.Control {
	controls := m.session.Form().Controls()
	if m.fieldIdx < 0 || m.fieldIdx >= len(controls) {
		return form.Control{}
	}
	return controls[m.fieldIdx]
}

func (m Model) currentIsSelect() bool {
	return m.currentControl().IsSelect()
}

func (m *Model) applySize() {
	if m.width > 0 && m.height > 0 {
		m.list.SetSize(m.width, m.height-4)
		m.input.Width = m.width - 4
	}
}

func newList(title string, items []list.Item) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("252"))
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(lipgloss.Color("205")).Bold(true)
	delegate.Styles.NormalDesc = delegate.Styles.NormalDesc.Foreground(lipgloss.Color("244")).Italic(true)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(lipgloss.Color("212")).Italic(true)
	l := list.New(items, delegate, 80, 20)
	l.Title = styleTitle.Render(title)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(false)
	l.KeyMap.Quit.SetEnabled(false)
	return l
}

func missingMessage(control form.Control) string {
	return (&urlbuilder.MissingFieldError{Name: control.Name, Label: control.Label}).Message()
}
