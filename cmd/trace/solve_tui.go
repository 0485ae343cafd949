package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"finaltrace/cmd/trace/ui"
	"finaltrace/internal/engine"
	"finaltrace/internal/puzzle"
)

// solveModel is the interactive solve prompt: type an answer, submit, read
// the engine's message, repeat until solved or aborted.
type solveModel struct {
	ctx      context.Context
	engine   *engine.Engine
	puzzle   string
	input    textinput.Model
	attempts int
	message  string
	solved   bool
	quitting bool
	err      error
}

// attemptResultMsg carries one attempt outcome back into the update loop.
type attemptResultMsg struct {
	result puzzle.Result
	err    error
}

func newSolveModel(ctx context.Context, eng *engine.Engine, name string) solveModel {
	ti := textinput.New()
	ti.Placeholder = "answer (int, hex, or text)"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 48

	return solveModel{
		ctx:    ctx,
		engine: eng,
		puzzle: name,
		input:  ti,
	}
}

func (m solveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m solveModel) attemptCmd(raw string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.engine.Attempt(m.ctx, m.puzzle, puzzle.ParseAnswer(raw))
		return attemptResultMsg{result: res, err: err}
	}
}

func (m solveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			raw := m.input.Value()
			if raw == "" {
				return m, nil
			}
			m.input.Reset()
			m.attempts++
			return m, m.attemptCmd(raw)
		}

	case attemptResultMsg:
		if msg.err != nil {
			m.err = msg.err
			m.quitting = true
			return m, tea.Quit
		}
		m.message = msg.result.Message
		if msg.result.Solved {
			m.solved = true
			return m, tea.Quit
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m solveModel) View() string {
	if m.err != nil {
		return ui.ErrorStyle.Render(fmt.Sprintf("error: %v", m.err)) + "\n"
	}

	s := ui.TitleStyle.Render(fmt.Sprintf("Solving %s", m.puzzle)) + "\n\n"
	if m.message != "" {
		if m.solved {
			s += ui.SuccessStyle.Render(m.message) + "\n"
		} else {
			s += ui.WarningStyle.Render(m.message) + "\n"
		}
	}
	if m.solved {
		s += fmt.Sprintf("\nSolved in %d attempt(s).\n", m.attempts)
		return s
	}
	if m.quitting {
		s += fmt.Sprintf("\nGave up after %d attempt(s).\n", m.attempts)
		return s
	}

	s += "\n" + m.input.View() + "\n"
	s += ui.MutedStyle.Render("enter to submit, esc to give up") + "\n"
	return s
}

// runSolveTUI drives the interactive prompt and reports the final state.
func runSolveTUI(ctx context.Context, eng *engine.Engine, name string) error {
	p := tea.NewProgram(newSolveModel(ctx, eng, name))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("interactive solve failed: %w", err)
	}
	if m, ok := final.(solveModel); ok && m.err != nil {
		return m.err
	}
	return nil
}
