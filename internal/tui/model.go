package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docrag/internal/domain"
)

// Answerer is the TUI-facing subset of the question pipeline.
type Answerer interface {
	Answer(question string) (domain.Answer, error)
}

type exchange struct {
	question string
	answer   domain.Answer
	failed   string
}

// Model is the Bubble Tea model for the interactive chat session.
type Model struct {
	service Answerer
	input   textinput.Model
	view    viewport.Model
	history []exchange
	summary string
	status  string
	ready   bool
	busy    bool
}

// New creates a chat model. summary describes the loaded document and is
// shown in the header.
func New(service Answerer, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about the document and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		service: service,
		input:   ti,
		view:    vp,
		summary: summary,
		status:  "Document loaded. Ask away.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := historyBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 3 + qh + 1 // header, summary, status, input frame, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.view.Width = maxInt(20, msg.Width)
		m.view.Height = maxInt(3, vh-rh)
		m.view.SetContent(m.renderHistory())
		m.view.GotoBottom()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" && !m.busy {
				m.busy = true
				m.status = "Thinking..."
				ex := exchange{question: q}
				ans, err := m.service.Answer(q)
				if err != nil {
					ex.failed = err.Error()
					ex.answer = ans
					m.status = "Error: " + err.Error()
				} else {
					ex.answer = ans
					m.status = fmt.Sprintf("Answered from %d chunks", len(ans.Retrieved))
				}
				m.history = append(m.history, ex)
				m.input.SetValue("")
				m.busy = false
				m.view.SetContent(m.renderHistory())
				m.view.GotoBottom()
				return m, nil
			}
		case "up":
			m.view.LineUp(1)
			return m, nil
		case "down":
			m.view.LineDown(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("DocRAG Chat")
	summary := summaryStyle.Render(m.summary)
	history := historyBoxStyle.Render(m.view.View())
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + summary + "\n" + history + "\n" + input + "\n" + status
}

func (m Model) renderHistory() string {
	if len(m.history) == 0 {
		return "No questions yet."
	}
	var b strings.Builder
	for i, ex := range m.history {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(questionStyle.Render("You: " + ex.question))
		b.WriteString("\n")
		if ex.failed != "" {
			b.WriteString(errorStyle.Render("Failed: " + ex.failed))
		} else {
			b.WriteString(ex.answer.Text)
		}
		for _, r := range ex.answer.Retrieved {
			b.WriteString("\n")
			b.WriteString(sourceStyle.Render(
				fmt.Sprintf("  [Page %d, Section: %s] %.0f%%", r.Page, r.Section, r.Score*100)))
		}
	}
	return b.String()
}

var (
	historyBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	summaryStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	questionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	sourceStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
