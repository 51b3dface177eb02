// Package tui provides the BubbleTea-based live stack monitor.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/staxbar/internal/dbus"
)

// Mode represents the current UI mode.
type Mode int

const (
	ModeList Mode = iota
	ModeDetail
	ModeHelp
)

// Model is the main monitor model. It shows the live message stack, top of
// stack first, and refreshes on every TextPushed or TextPopped signal.
type Model struct {
	client *dbus.Client
	events <-chan dbus.TextEvent

	mode Mode

	list     list.Model
	viewport viewport.Model
	help     help.Model

	messages []dbus.StackMessage
	selected *dbus.StackMessage

	width  int
	height int
	ready  bool

	keys KeyMap

	statusMsg string
	statusErr bool
}

// stackItem wraps a stack message for the list component.
type stackItem struct {
	message dbus.StackMessage
	index   int
}

func (i stackItem) Title() string {
	text := i.message.Text
	if text == "" {
		text = "(empty message)"
	}
	if i.index == 0 {
		return "▶ " + text
	}
	return "  " + text
}

func (i stackItem) Description() string {
	return fmt.Sprintf("  context %d, message %d", i.message.ContextID, i.message.MessageID)
}

func (i stackItem) FilterValue() string {
	return i.message.Text
}

// New creates a monitor model. The events channel comes from
// Client.Subscribe and may be nil for a one-shot view.
func New(client *dbus.Client, events <-chan dbus.TextEvent) Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Status Stack"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()

	return Model{
		client: client,
		events: events,
		mode:   ModeList,
		list:   l,
		help:   help.New(),
		keys:   DefaultKeyMap(),
	}
}

// Init loads the stack and starts listening for bus signals.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchStack, m.waitForEvent)
}

type stackMsg struct {
	messages []dbus.StackMessage
	err      error
}

type eventMsg dbus.TextEvent

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

// fetchStack reads the current stack from the daemon.
func (m Model) fetchStack() tea.Msg {
	messages, err := m.client.Messages()
	return stackMsg{messages: messages, err: err}
}

// waitForEvent blocks until the next TextPushed/TextPopped signal.
func (m Model) waitForEvent() tea.Msg {
	if m.events == nil {
		return nil
	}
	event, ok := <-m.events
	if !ok {
		return nil
	}
	return eventMsg(event)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		m.list.SetSize(msg.Width, msg.Height-2)
		m.viewport = viewport.New(msg.Width, msg.Height-4)
		m.viewport.YPosition = 2
		return m, nil

	case stackMsg:
		if msg.err != nil {
			return m, status("Failed to read stack: "+msg.err.Error(), true)
		}
		m.messages = msg.messages
		m.list.SetItems(m.buildListItems())
		return m, nil

	case eventMsg:
		// Any signal means the stack changed; refetch and keep listening.
		return m, tea.Batch(m.fetchStack, m.waitForEvent)

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil
	}

	switch m.mode {
	case ModeList:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	case ModeDetail:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func status(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		if m.mode == ModeHelp {
			m.mode = ModeList
		} else {
			m.mode = ModeHelp
		}
		return m, nil
	}

	switch m.mode {
	case ModeList:
		return m.handleListKey(msg)
	case ModeDetail:
		if key.Matches(msg, m.keys.Back) {
			m.mode = ModeList
			m.selected = nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case ModeHelp:
		if key.Matches(msg, m.keys.Back) {
			m.mode = ModeList
		}
		return m, nil
	}

	return m, nil
}

// handleListKey handles keys in list mode.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		if item, ok := m.list.SelectedItem().(stackItem); ok {
			m.selected = &item.message
			m.mode = ModeDetail
			m.viewport.SetContent(m.renderDetail(item.message))
			m.viewport.GotoTop()
		}
		return m, nil

	case key.Matches(msg, m.keys.Pop):
		if item, ok := m.list.SelectedItem().(stackItem); ok {
			if err := m.client.Pop(item.message.ContextID); err != nil {
				return m, status("Pop failed: "+err.Error(), true)
			}
			return m, tea.Batch(m.fetchStack,
				status(fmt.Sprintf("Popped context %d", item.message.ContextID), false))
		}
		return m, nil

	case key.Matches(msg, m.keys.Remove):
		if item, ok := m.list.SelectedItem().(stackItem); ok {
			if err := m.client.Remove(item.message.ContextID, item.message.MessageID); err != nil {
				return m, status("Remove failed: "+err.Error(), true)
			}
			return m, tea.Batch(m.fetchStack,
				status(fmt.Sprintf("Removed message %d", item.message.MessageID), false))
		}
		return m, nil

	case key.Matches(msg, m.keys.RemoveAll):
		if item, ok := m.list.SelectedItem().(stackItem); ok {
			if err := m.client.RemoveAll(item.message.ContextID); err != nil {
				return m, status("RemoveAll failed: "+err.Error(), true)
			}
			return m, tea.Batch(m.fetchStack,
				status(fmt.Sprintf("Removed all for context %d", item.message.ContextID), false))
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.fetchStack
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// buildListItems converts the stack to list items, top of stack first.
func (m Model) buildListItems() []list.Item {
	items := make([]list.Item, 0, len(m.messages))
	for i, message := range m.messages {
		items = append(items, stackItem{message: message, index: i})
	}
	return items
}

// renderDetail renders a message as YAML for the detail view.
func (m Model) renderDetail(message dbus.StackMessage) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12"))

	data, err := yaml.Marshal(message)
	if err != nil {
		return "failed to render message: " + err.Error()
	}

	return titleStyle.Render(fmt.Sprintf("Message %d", message.MessageID)) +
		"\n\n" + string(data)
}

// View renders the UI.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	var body string
	switch m.mode {
	case ModeDetail:
		body = m.viewport.View()
	case ModeHelp:
		body = m.viewHelp()
	default:
		body = m.list.View()
	}

	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	if m.statusErr {
		statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	}

	statusLine := m.help.View(m.keys)
	if m.statusMsg != "" {
		statusLine = statusStyle.Render(m.statusMsg)
	}

	return body + "\n" + statusLine
}

func (m Model) viewHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8"))

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	s := titleStyle.Render("Keyboard Shortcuts") + "\n\n"

	s += sectionStyle.Render("Navigation") + "\n"
	s += keyStyle.Render("  j/k, ↑/↓") + "     Move up/down\n"
	s += keyStyle.Render("  enter") + "        View message details\n"
	s += "\n"

	s += sectionStyle.Render("Actions") + "\n"
	s += keyStyle.Render("  p") + "            Pop selected message's context\n"
	s += keyStyle.Render("  d") + "            Remove selected message\n"
	s += keyStyle.Render("  D") + "            Remove all messages for context\n"
	s += keyStyle.Render("  r") + "            Refresh\n"
	s += "\n"

	s += sectionStyle.Render("General") + "\n"
	s += keyStyle.Render("  ?") + "            Toggle this help\n"
	s += keyStyle.Render("  esc") + "          Back\n"
	s += keyStyle.Render("  q") + "            Quit\n"

	return s
}

// Run connects a subscription and runs the monitor until quit.
func Run(client *dbus.Client) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := client.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to stack signals: %w", err)
	}

	m := New(client, events)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
