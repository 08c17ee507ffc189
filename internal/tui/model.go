package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/okhlin/cloze/internal/model"
	"github.com/okhlin/cloze/internal/session"
	statsPkg "github.com/okhlin/cloze/internal/stats"
	"github.com/okhlin/cloze/internal/store"
)

type inputMode int

const (
	modeAnswer inputMode = iota
	modeJump
)

var (
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	sentenceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	correctStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	wrongStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

type wordStat struct {
	correct   int
	incorrect int
}

// Model implements the Bubble Tea drill UI around a practice session.
type Model struct {
	sess   *session.Session
	store  *store.Store
	source string

	input textinput.Model
	mode  inputMode

	width  int
	height int

	feedback string
	done     bool

	startedAt  time.Time
	startIndex int
	correct    int
	incorrect  int
	wordStats  map[string]*wordStat
}

// NewModel constructs the drill UI. store may be nil when history recording
// is unavailable.
func NewModel(sess *session.Session, st *store.Store, source string) *Model {
	input := textinput.New()
	input.Prompt = ": "
	input.Focus()

	m := &Model{
		sess:       sess,
		store:      st,
		source:     source,
		input:      input,
		startedAt:  time.Now(),
		startIndex: sess.Index(),
		wordStats:  map[string]*wordStat{},
	}
	if sess.Present() == session.StateFinished {
		m.done = true
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.done {
		return tea.Quit
	}
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.sess.HandleInput("q")
			m.finishRun()
			return m, tea.Quit
		case tea.KeyEnter:
			return m, m.handleSubmit()
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleSubmit() tea.Cmd {
	value := m.input.Value()
	m.input.SetValue("")

	if m.mode == modeJump {
		m.mode = modeAnswer
		m.input.Prompt = ": "
		if err := m.sess.Jump(value); err != nil {
			m.feedback = infoStyle.Render(err.Error())
			return nil
		}
		m.feedback = ""
		return m.presentNext()
	}

	if strings.ToLower(strings.TrimSpace(value)) == "g" {
		m.mode = modeJump
		m.input.Prompt = fmt.Sprintf("jump to (1-%d): ", m.sess.Total())
		return nil
	}

	out := m.sess.HandleInput(value)
	if out.PersistErr != nil {
		logErrf("failed to persist progress: %v\n", out.PersistErr)
	}
	switch out.Kind {
	case session.OutcomeQuit:
		m.finishRun()
		return tea.Quit
	case session.OutcomeCorrect:
		m.correct++
		m.wordEntry(out.Answer).correct++
		m.feedback = correctStyle.Render(out.Sentence)
		return m.presentNext()
	case session.OutcomeIncorrect:
		m.incorrect++
		m.wordEntry(out.Answer).incorrect++
		m.feedback = wrongStyle.Render(out.Answer)
	case session.OutcomePrevious:
		m.feedback = infoStyle.Render(fmt.Sprintf("Previous: %s\nMissing word: %s", out.Sentence, out.Answer))
	case session.OutcomeNoPrevious:
		m.feedback = infoStyle.Render("No previous sentence yet.")
	}
	return nil
}

func (m *Model) presentNext() tea.Cmd {
	if m.sess.Present() == session.StateFinished {
		m.done = true
		m.finishRun()
		return tea.Quit
	}
	return nil
}

func (m *Model) wordEntry(word string) *wordStat {
	entry, ok := m.wordStats[word]
	if !ok {
		entry = &wordStat{}
		m.wordStats[word] = entry
	}
	return entry
}

func (m *Model) finishRun() {
	if m.store == nil || m.correct+m.incorrect == 0 {
		return
	}
	endedAt := time.Now()
	stats := model.RunStats{
		StartedAt:  m.startedAt,
		EndedAt:    endedAt,
		Source:     m.source,
		Sentences:  m.sess.Total(),
		StartIndex: m.startIndex,
		EndIndex:   m.sess.Index(),
		Correct:    m.correct,
		Incorrect:  m.incorrect,
	}
	words := make([]model.WordStat, 0, len(m.wordStats))
	for word, entry := range m.wordStats {
		words = append(words, model.WordStat{
			Word:      word,
			Correct:   entry.correct,
			Incorrect: entry.incorrect,
		})
	}
	if _, err := m.store.InsertRun(context.Background(), stats, words); err != nil {
		logErrf("failed to save run: %v\n", err)
	}
	m.store = nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.done {
		return m.renderDone()
	}
	if m.sess.State() == session.StateTerminated {
		return m.renderDone()
	}

	contentWidth := m.width
	if contentWidth > 0 {
		contentWidth = int(float64(m.width) * 0.80)
		if contentWidth < 10 {
			contentWidth = 10
		}
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("=== %d/%d ===", m.sess.Position(), m.sess.Total())))
	b.WriteString("\n\n")
	b.WriteString(sentenceStyle.Render(wrapText(m.sess.Drill().Blanked, contentWidth)))
	b.WriteString("\n\n")
	if m.feedback != "" {
		b.WriteString(m.feedback)
		b.WriteString("\n\n")
	}
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *Model) renderFooter() string {
	segments := []string{"q quit", "p previous", "g jump"}
	if total := m.correct + m.incorrect; total > 0 {
		segments = append(segments, fmt.Sprintf("Accuracy %.1f%%", statsPkg.Accuracy(m.correct, m.incorrect)*100))
	}
	return footerStyle.Render(strings.Join(segments, "  ·  "))
}

func (m *Model) renderDone() string {
	var b strings.Builder
	if m.done {
		b.WriteString("Practice complete.\n")
	} else {
		b.WriteString("Practice stopped.\n")
	}
	if total := m.correct + m.incorrect; total > 0 {
		b.WriteString(fmt.Sprintf("Answered %d drills at %.1f%% accuracy.\n",
			total, statsPkg.Accuracy(m.correct, m.incorrect)*100))
	}
	return b.String()
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
