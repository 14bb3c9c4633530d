// Package tui is the chat interface over the answer chain. It consumes only
// the stable Answer contract plus the reasoning splitter; everything with
// algorithmic weight lives below it.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"creditrust/internal/domain"
	"creditrust/internal/reasoning"
	"creditrust/internal/service"
)

// AnswerPort is the TUI-facing subset of the RAG service.
type AnswerPort interface {
	Answer(ctx context.Context, query, categoryFilter string) domain.Answer
}

const evidencePreviewChars = 400

// exchange is one question with its processed response.
type exchange struct {
	question  string
	answer    string
	reasoning string
	evidence  []domain.Document
}

type answerMsg struct {
	question string
	result   domain.Answer
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	svc           AnswerPort
	input         textinput.Model
	viewport      viewport.Model
	history       []exchange
	categories    []string
	catIdx        int
	status        string
	waiting       bool
	showReasoning bool
	showEvidence  bool
	ready         bool
}

// New creates a chat model. categories are the product filters the user may
// cycle through; the all-categories sentinel is always first.
func New(svc AnswerPort, categories []string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question about the complaints"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	cats := append([]string{service.AllCategories}, categories...)
	return Model{
		svc:        svc,
		input:      ti,
		viewport:   vp,
		categories: cats,
		status:     "Ready. Tab cycles product filter, ctrl+r reasoning, ctrl+e evidence.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + qh + 1 // header, filter line, input frame, status
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-th)
		m.viewport.SetContent(m.renderTranscript())
		return m, nil
	case answerMsg:
		thinking, answer, _ := reasoning.Split(msg.result.Result)
		m.history = append(m.history, exchange{
			question:  msg.question,
			answer:    answer,
			reasoning: thinking,
			evidence:  msg.result.SourceDocuments,
		})
		m.waiting = false
		m.status = fmt.Sprintf("Answered with %d evidence documents.", len(msg.result.SourceDocuments))
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" && !m.waiting {
				m.waiting = true
				m.status = "Analyzing complaints..."
				m.input.SetValue("")
				filter := m.categories[m.catIdx]
				svc := m.svc
				return m, func() tea.Msg {
					return answerMsg{question: q, result: svc.Answer(context.Background(), q, filter)}
				}
			}
		case "tab":
			m.catIdx = (m.catIdx + 1) % len(m.categories)
			m.status = "Filter: " + m.categories[m.catIdx]
			return m, nil
		case "ctrl+r":
			m.showReasoning = !m.showReasoning
			m.viewport.SetContent(m.renderTranscript())
			return m, nil
		case "ctrl+e":
			m.showEvidence = !m.showEvidence
			m.viewport.SetContent(m.renderTranscript())
			return m, nil
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		case "down":
			m.viewport.LineDown(1)
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
	header := lipgloss.NewStyle().Bold(true).Render("CrediTrust Complaint Intelligence")
	filter := dimStyle.Render("Filter: " + m.categories[m.catIdx])
	transcript := transcriptStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + filter + "\n" + transcript + "\n" + input + "\n" + status
}

func (m Model) renderTranscript() string {
	if len(m.history) == 0 {
		return "No questions asked yet."
	}
	var sb strings.Builder
	for i, ex := range m.history {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(userStyle.Render("You: "+ex.question) + "\n")
		if m.showReasoning && ex.reasoning != "" {
			sb.WriteString(dimStyle.Render("Reasoning: "+ex.reasoning) + "\n")
		}
		sb.WriteString(ex.answer)
		if m.showEvidence && len(ex.evidence) > 0 {
			for j, doc := range ex.evidence {
				sb.WriteString("\n" + dimStyle.Render(fmt.Sprintf("Evidence #%d [%s]: %s",
					j+1, doc.Metadata[domain.MetaProduct], preview(doc.Content))))
			}
		}
	}
	return sb.String()
}

func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= evidencePreviewChars {
		return content
	}
	return string(runes[:evidencePreviewChars]) + "..."
}

var (
	transcriptStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	userStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
