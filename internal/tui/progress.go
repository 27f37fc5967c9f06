// Package tui drives a bubbletea progress bar off a channel a background
// goroutine reports on, the way internal/scraper/progress.go drives one off
// a channel of per-item ProgressUpdate values. Here the channel instead
// carries the coarse-grained suspension points a chip operation passes
// through (one Driver method call per step: reset, ID read, unlock, data
// transfer), matching the ACK-poll / ZS01 packet-delay waits described in
// spec.md §5/§9 — the worker sleeps through those waits inside lib/chipio,
// this package only animates the fact that it is doing so.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Step is one named unit of work in a Run. Label is shown while Run executes
// and after it completes/fails.
type Step struct {
	Label string
	Run   func() error
}

// stepUpdate is sent on the internal channel after each Step finishes.
type stepUpdate struct {
	index int
	err   error
}

type doneMsg struct{}

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// Run executes steps in order on a background goroutine, rendering a
// bubbletea progress bar that advances one step at a time, and returns the
// error of the first step that failed (steps after a failure are skipped),
// or nil if every step succeeded.
func Run(title string, steps []Step) error {
	updates := make(chan stepUpdate)

	go func() {
		defer close(updates)
		for i, step := range steps {
			err := step.Run()
			updates <- stepUpdate{index: i, err: err}
			if err != nil {
				return
			}
		}
	}()

	m := newModel(title, steps, updates)
	p := tea.NewProgram(m)
	final, err := p.Run()
	if err != nil {
		return err
	}

	result := final.(model)
	return result.failure
}

type model struct {
	title    string
	steps    []Step
	current  int
	done     bool
	failure  error
	updates  <-chan stepUpdate
	spinner  spinner.Model
	progress progress.Model
}

func newModel(title string, steps []Step, updates <-chan stepUpdate) model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return model{
		title:    title,
		steps:    steps,
		updates:  updates,
		spinner:  s,
		progress: progress.New(progress.WithDefaultGradient()),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForUpdate(m.updates))
}

func waitForUpdate(ch <-chan stepUpdate) tea.Cmd {
	return func() tea.Msg {
		u, ok := <-ch
		if !ok {
			return doneMsg{}
		}
		return u
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case progress.FrameMsg:
		p, cmd := m.progress.Update(msg)
		m.progress = p.(progress.Model)
		return m, cmd
	case stepUpdate:
		m.current = msg.index + 1
		if msg.err != nil {
			m.failure = msg.err
			m.done = true
			return m, tea.Quit
		}
		if m.current >= len(m.steps) {
			m.done = true
			return m, tea.Quit
		}
		return m, waitForUpdate(m.updates)
	case doneMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	if m.done {
		if m.failure != nil {
			return fmt.Sprintf("%s %s\n", failStyle.Render("!"), m.failure)
		}
		return fmt.Sprintf("%s %s\n", okStyle.Render("done"), labelStyle.Render(m.title))
	}

	label := "starting"
	if m.current < len(m.steps) {
		label = m.steps[m.current].Label
	}

	pct := float64(m.current) / float64(len(m.steps))
	return fmt.Sprintf("%s %s %s  %s\n",
		m.spinner.View(),
		labelStyle.Render(m.title+":"),
		label,
		m.progress.ViewAs(pct),
	)
}
