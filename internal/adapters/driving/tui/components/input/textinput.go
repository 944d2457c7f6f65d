// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/servilink/servilink-cli/internal/adapters/driving/tui/styles"
)

// Field wraps a bubbles textinput with a label and form styling.
type Field struct {
	textinput textinput.Model
	label     string
	styles    *styles.Styles
	width     int
}

// NewField creates a new labelled input. It starts blurred.
func NewField(s *styles.Styles, label, placeholder string) *Field {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 40

	return &Field{
		textinput: ti,
		label:     label,
		styles:    s,
		width:     50,
	}
}

// NewPasswordField creates an input that masks what is typed.
func NewPasswordField(s *styles.Styles, label string) *Field {
	f := NewField(s, label, "")
	f.textinput.EchoMode = textinput.EchoPassword
	f.textinput.EchoCharacter = '•'
	return f
}

// Init initialises the input.
func (f *Field) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (f *Field) Update(msg tea.Msg) (*Field, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the label and the input.
func (f *Field) View() string {
	labelStyle := f.styles.Muted
	if f.textinput.Focused() {
		labelStyle = f.styles.Title
	}
	label := labelStyle.Width(14).Render(f.label + ":")
	input := f.styles.InputField.Render(f.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, input)
}

// Label returns the field label.
func (f *Field) Label() string {
	return f.label
}

// Value returns the current input value.
func (f *Field) Value() string {
	return f.textinput.Value()
}

// SetValue sets the input value.
func (f *Field) SetValue(value string) {
	f.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (f *Field) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *Field) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the input is focused.
func (f *Field) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sets the width of the input.
func (f *Field) SetWidth(width int) {
	f.width = width
	// Account for label and padding
	f.textinput.Width = max(width-20, 20)
}

// Width returns the current width.
func (f *Field) Width() int {
	return f.width
}

// Reset clears the input.
func (f *Field) Reset() {
	f.textinput.Reset()
}

// Form is an ordered set of fields with a single focused entry.
type Form struct {
	fields []*Field
	focus  int
}

// NewForm creates a form and focuses its first field.
func NewForm(fields ...*Field) *Form {
	f := &Form{fields: fields}
	if len(fields) > 0 {
		fields[0].Focus()
	}
	return f
}

// Fields returns the fields in order.
func (f *Form) Fields() []*Field {
	return f.fields
}

// Focused returns the index of the focused field.
func (f *Form) Focused() int {
	return f.focus
}

// Current returns the focused field, or nil for an empty form.
func (f *Form) Current() *Field {
	if len(f.fields) == 0 {
		return nil
	}
	return f.fields[f.focus]
}

// Next moves focus to the following field, wrapping around.
func (f *Form) Next() tea.Cmd {
	return f.move(1)
}

// Prev moves focus to the preceding field, wrapping around.
func (f *Form) Prev() tea.Cmd {
	return f.move(-1)
}

func (f *Form) move(delta int) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	f.fields[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.fields)) % len(f.fields)
	return f.fields[f.focus].Focus()
}

// Update forwards a message to the focused field.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	cur := f.Current()
	if cur == nil {
		return nil
	}
	_, cmd := cur.Update(msg)
	return cmd
}

// View renders every field on its own line.
func (f *Form) View() string {
	rows := make([]string, 0, len(f.fields))
	for _, field := range f.fields {
		rows = append(rows, field.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// SetWidth resizes every field.
func (f *Form) SetWidth(width int) {
	for _, field := range f.fields {
		field.SetWidth(width)
	}
}

// Blur removes focus from all fields.
func (f *Form) Blur() {
	for _, field := range f.fields {
		field.Blur()
	}
}

// FocusCurrent restores focus to the current field.
func (f *Form) FocusCurrent() tea.Cmd {
	if cur := f.Current(); cur != nil {
		return cur.Focus()
	}
	return nil
}

// Reset clears every field and focuses the first one.
func (f *Form) Reset() tea.Cmd {
	for _, field := range f.fields {
		field.Reset()
		field.Blur()
	}
	f.focus = 0
	return f.FocusCurrent()
}
