package nft

import (
	"charm-approve-tui/styles"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	nameHelp      = "The name is public and will most often be shown along with your NFT."
	attributeHelp = "Attributes help describe your NFT. They are public and will most often be shown along with your NFT."
)

// Attribute is one type/value row
type Attribute struct {
	Name  string
	Value string
}

// CancelMsg asks the parent to leave the screen
type CancelMsg struct{}

// ContinueMsg carries the form contents. Nothing is minted.
type ContinueMsg struct {
	MediaPath   string
	Name        string
	Description string
	Attributes  []Attribute
}

// MediaSelectedMsg reports the chosen media path
type MediaSelectedMsg struct {
	Path string
}

type keyMap struct {
	Next    key.Binding
	Prev    key.Binding
	AddAttr key.Binding
	Submit  key.Binding
	Cancel  key.Binding
}

var keys = keyMap{
	Next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
	Prev:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev")),
	AddAttr: key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "add attribute")),
	Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}

type attrRow struct {
	name  textinput.Model
	value textinput.Model
}

// Model is the create-NFT form
type Model struct {
	media       textinput.Model
	name        textinput.Model
	description textarea.Model
	attrs       []attrRow

	// focus walks media, name, description, each attribute name/value,
	// then the add, cancel and continue buttons
	focus int
	width int
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = ""
	in.TextStyle = lipgloss.NewStyle().Foreground(styles.CText)
	in.Cursor.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)
	in.CharLimit = limit
	in.Width = 32
	return in
}

func newAttrRow() attrRow {
	n := newInput("Type", 40)
	n.Width = 16
	v := newInput("Value", 80)
	v.Width = 24
	return attrRow{name: n, value: v}
}

// New creates the form with one empty attribute row
func New() Model {
	desc := textarea.New()
	desc.Placeholder = "Enter description"
	desc.ShowLineNumbers = false
	desc.SetHeight(4)
	desc.SetWidth(48)
	desc.CharLimit = 1000

	m := Model{
		media:       newInput("Path to a photo or video", 256),
		name:        newInput("Name of your NFT", 100),
		description: desc,
		attrs:       []attrRow{newAttrRow()},
	}
	m.media.Width = 48
	m.applyFocus()
	return m
}

func (m Model) fieldCount() int { return 3 + 2*len(m.attrs) }

func (m Model) addSlot() int      { return m.fieldCount() }
func (m Model) cancelSlot() int   { return m.fieldCount() + 1 }
func (m Model) continueSlot() int { return m.fieldCount() + 2 }

// Attributes returns the current rows in order
func (m Model) Attributes() []Attribute {
	out := make([]Attribute, len(m.attrs))
	for i, r := range m.attrs {
		out[i] = Attribute{Name: strings.TrimSpace(r.name.Value()), Value: strings.TrimSpace(r.value.Value())}
	}
	return out
}

// Focused returns the focus slot
func (m Model) Focused() int { return m.focus }

// Editing reports whether a text field has focus, so parents can hold back
// single-letter hotkeys.
func (m Model) Editing() bool { return m.focus < m.fieldCount() }

// SetWidth adapts the inputs to the terminal width
func (m *Model) SetWidth(w int) {
	m.width = w
	if w > 20 {
		m.description.SetWidth(min(w-12, 72))
	}
}

func (m *Model) applyFocus() {
	m.media.Blur()
	m.name.Blur()
	m.description.Blur()
	for i := range m.attrs {
		m.attrs[i].name.Blur()
		m.attrs[i].value.Blur()
	}

	switch {
	case m.focus == 0:
		m.media.Focus()
	case m.focus == 1:
		m.name.Focus()
	case m.focus == 2:
		m.description.Focus()
	case m.focus < m.fieldCount():
		idx := m.focus - 3
		if idx%2 == 0 {
			m.attrs[idx/2].name.Focus()
		} else {
			m.attrs[idx/2].value.Focus()
		}
	}
}

func (m *Model) move(delta int) {
	slots := m.continueSlot() + 1
	m.focus = (m.focus + delta + slots) % slots
	m.applyFocus()
}

// addAttribute appends an empty row and focuses its name
func (m *Model) addAttribute() {
	m.attrs = append(m.attrs, newAttrRow())
	m.focus = m.fieldCount() - 2
	m.applyFocus()
}

func (m Model) contents() ContinueMsg {
	return ContinueMsg{
		MediaPath:   strings.TrimSpace(m.media.Value()),
		Name:        strings.TrimSpace(m.name.Value()),
		Description: strings.TrimSpace(m.description.Value()),
		Attributes:  m.Attributes(),
	}
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, keys.Cancel):
			return m, emit(CancelMsg{})
		case key.Matches(k, keys.Next):
			m.move(1)
			return m, nil
		case key.Matches(k, keys.Prev):
			m.move(-1)
			return m, nil
		case key.Matches(k, keys.AddAttr):
			m.addAttribute()
			return m, nil
		case key.Matches(k, keys.Submit):
			switch m.focus {
			case 0:
				path := strings.TrimSpace(m.media.Value())
				if path == "" {
					return m, nil
				}
				return m, emit(MediaSelectedMsg{Path: path})
			case 2:
				// newline in the description
			case m.addSlot():
				m.addAttribute()
				return m, nil
			case m.cancelSlot():
				return m, emit(CancelMsg{})
			case m.continueSlot():
				return m, emit(m.contents())
			default:
				m.move(1)
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch {
	case m.focus == 0:
		m.media, cmd = m.media.Update(msg)
	case m.focus == 1:
		m.name, cmd = m.name.Update(msg)
	case m.focus == 2:
		m.description, cmd = m.description.Update(msg)
	case m.focus < m.fieldCount():
		idx := m.focus - 3
		r := &m.attrs[idx/2]
		if idx%2 == 0 {
			r.name, cmd = r.name.Update(msg)
		} else {
			r.value, cmd = r.value.Update(msg)
		}
	}
	return m, cmd
}

func label(s string, focused bool) string {
	st := styles.LabelStyle
	if focused {
		st = lipgloss.NewStyle().Foreground(styles.CAccent).Bold(true)
	}
	return st.Render(s)
}

func field(view string, focused bool) string {
	border := styles.CBorder
	if focused {
		border = styles.CAccent
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(view)
}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Create NFT") + "\n\n")

	b.WriteString(label("Media", m.focus == 0) + "\n")
	b.WriteString(styles.LabelStyle.Render("Drag a photo, video or browse files from your computer.") + "\n")
	b.WriteString(field(m.media.View(), m.focus == 0) + "\n\n")

	b.WriteString(label("Name", m.focus == 1) + " " + styles.LabelStyle.Render("ⓘ "+nameHelp) + "\n")
	b.WriteString(field(m.name.View(), m.focus == 1) + "\n\n")

	b.WriteString(label("Description", m.focus == 2) + "\n")
	b.WriteString(field(m.description.View(), m.focus == 2) + "\n\n")

	b.WriteString(label("Attributes", m.focus >= 3 && m.focus < m.fieldCount()) + " " + styles.LabelStyle.Render("ⓘ "+attributeHelp) + "\n")
	for i, r := range m.attrs {
		nameSlot := 3 + 2*i
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			field(r.name.View(), m.focus == nameSlot),
			" ",
			field(r.value.View(), m.focus == nameSlot+1),
		) + "\n")
	}

	add := styles.LabelStyle.Render("+ Add Attribute")
	if m.focus == m.addSlot() {
		add = lipgloss.NewStyle().Foreground(styles.CAccent).Underline(true).Render("+ Add Attribute")
	}
	b.WriteString(add + "\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		styles.Button("Cancel", m.focus == m.cancelSlot()),
		"  ",
		styles.Button("Continue", m.focus == m.continueSlot()),
	))
	return b.String()
}

// Nav returns the navigation bar for the create-NFT view
func Nav(width int) string {
	left := strings.Join([]string{
		styles.Key(keys.Next.Help().Key) + " " + keys.Next.Help().Desc,
		styles.Key(keys.Prev.Help().Key) + " " + keys.Prev.Help().Desc,
		styles.Key(keys.AddAttr.Help().Key) + " " + keys.AddAttr.Help().Desc,
		styles.Key(keys.Submit.Help().Key) + " " + keys.Submit.Help().Desc,
		styles.Key(keys.Cancel.Help().Key) + " " + keys.Cancel.Help().Desc,
	}, "   ")
	return styles.NavStyle.Width(width).Render(left)
}
