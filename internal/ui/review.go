package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"warden/internal/lint"
	"warden/internal/session"
	"warden/internal/source"
	"warden/internal/window"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	currentStyle = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("1"))
	otherStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	fixStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	helpStyle    = lipgloss.NewStyle().Faint(true)
)

// ReviewModel is the interactive pass over a finding session: cycle with
// n/p, apply with a, dismiss with d, ignore a whole rule with i. The model
// owns the working copy of the text; every applied suggestion re-snapshots
// it and confirms the edit with the real replacement length.
type ReviewModel struct {
	text    *source.Text
	sess    *session.Session
	prog    progress.Model
	initial int
	applied int
	status  string
	done    bool
	err     error
}

// NewReviewModel builds the model over a session and its text snapshot.
func NewReviewModel(text *source.Text, sess *session.Session) *ReviewModel {
	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 40
	return &ReviewModel{text: text, sess: sess, prog: prog, initial: sess.Len()}
}

// Text returns the working text after the review, for writing back.
func (m *ReviewModel) Text() *source.Text {
	return m.text
}

// AppliedCount reports how many suggestions were applied.
func (m *ReviewModel) AppliedCount() int {
	return m.applied
}

// Err returns the first internal failure encountered, if any.
func (m *ReviewModel) Err() error {
	return m.err
}

func (m *ReviewModel) Init() tea.Cmd {
	return nil
}

func (m *ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "esc", "ctrl+c":
		m.done = true
		return m, tea.Quit
	case "n", "right", "tab":
		m.sess.Next()
		m.status = ""
	case "p", "left", "shift+tab":
		m.sess.Prev()
		m.status = ""
	case "a", "enter":
		m.applyCurrent()
	case "d":
		m.dismissCurrent()
	case "i":
		m.ignoreCurrentRule()
	}
	if m.sess.Len() == 0 {
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// applyCurrent drives the full edit contract: request, perform the
// replacement on the working text, confirm with the applied scalar length.
func (m *ReviewModel) applyCurrent() {
	cur, ok := m.sess.Current()
	if !ok {
		return
	}
	req, ok := m.sess.RequestEdit(cur)
	if !ok {
		m.status = "nothing to apply"
		return
	}
	edited, ok := m.text.Replace(req.Span, req.Replacement)
	if !ok {
		m.sess.CancelEdit()
		m.status = "span is stale, not applying"
		return
	}
	next, err := source.NewText(edited)
	if err != nil {
		m.sess.CancelEdit()
		m.err = err
		return
	}
	m.text = next
	appliedText, _ := source.NewText(req.Replacement)
	m.sess.ConfirmEdit(int64(appliedText.ScalarCount()))
	m.applied++
	m.status = "applied"
}

func (m *ReviewModel) dismissCurrent() {
	cur, ok := m.sess.Current()
	if !ok {
		return
	}
	key := cur.Ref().Key()
	m.sess.RemoveMatching(func(ref lint.Ref) bool {
		return ref.Key() == key
	})
	m.status = "dismissed"
}

func (m *ReviewModel) ignoreCurrentRule() {
	cur, ok := m.sess.Current()
	if !ok || cur.Err == nil {
		m.status = "only grammar findings carry a rule"
		return
	}
	rule := cur.Err.RuleID
	n := m.sess.RemoveMatching(func(ref lint.Ref) bool {
		e, isErr := ref.(*lint.Error)
		return isErr && e.RuleID == rule
	})
	m.status = fmt.Sprintf("ignored rule %s (%d findings)", rule, n)
}

func (m *ReviewModel) View() string {
	if m.done {
		return ""
	}
	cur, ok := m.sess.Current()
	if !ok {
		return "no findings\n"
	}

	idx, total := m.sess.Position()
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("finding %d of %d", idx+1, total)))
	if m.initial > 0 {
		resolved := float64(m.initial-total) / float64(m.initial)
		b.WriteString("  ")
		b.WriteString(m.prog.ViewAs(resolved))
	}
	b.WriteString("\n\n")

	if win, okWin := window.Extract(m.text, cur.Ref(), m.sess.Refs(), window.Options{}); okWin {
		b.WriteString("  ")
		b.WriteString(renderWindow(win))
		b.WriteString("\n\n")
	}

	switch {
	case cur.Err != nil:
		b.WriteString(messageStyle.Render(fmt.Sprintf("%s %s: %s", cur.Err.Severity, cur.Err.Cat, cur.Err.Message)))
		b.WriteString("\n")
		for _, s := range cur.Err.Suggestions {
			b.WriteString(fixStyle.Render("  fix: " + s))
			b.WriteString("\n")
		}
	case cur.Sugg != nil:
		b.WriteString(messageStyle.Render("STYLE: " + cur.Sugg.Explanation))
		b.WriteString("\n")
		b.WriteString(fixStyle.Render("  fix: " + cur.Sugg.Replacement))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("n/p navigate - a apply - d dismiss - i ignore rule - q quit"))
	b.WriteString("\n")
	return b.String()
}

// renderWindow styles the highlight ranges inside the window text. Ranges
// are byte offsets into the text and never overlap.
func renderWindow(win *window.Window) string {
	if len(win.Highlights) == 0 {
		return win.Text
	}
	var b strings.Builder
	pos := 0
	for _, h := range win.Highlights {
		if h.Start < pos {
			continue
		}
		b.WriteString(win.Text[pos:h.Start])
		segment := win.Text[h.Start:h.End]
		if h.Current {
			b.WriteString(currentStyle.Render(segment))
		} else {
			b.WriteString(otherStyle.Render(segment))
		}
		pos = h.End
	}
	b.WriteString(win.Text[pos:])
	return b.String()
}
