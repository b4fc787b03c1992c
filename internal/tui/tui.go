// Package tui provides a Bubble Tea terminal user interface for songripper.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/songripper/internal/app"
	"github.com/handiism/songripper/internal/download"
	"github.com/handiism/songripper/internal/library"
	"github.com/handiism/songripper/internal/model"
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateRipping
	StateReview
	StateError
)

// maxLogs is how many progress lines the ripping view keeps.
const maxLogs = 10

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   download.ProgressLevel
}

// pendingPrompt is a duplicate question waiting for y or n.
type pendingPrompt struct {
	prompt library.DuplicatePrompt
	reply  chan bool
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	app       *app.App
	logs      []LogEntry
	err       error

	// Review
	tracks   []model.Track
	cursor   int
	selected map[string]bool
	status   string
	busy     bool

	// Rip and approval plumbing
	ctx     context.Context
	cancel  context.CancelFunc
	events  chan download.ProgressEvent
	prompts chan pendingPrompt
	prompt  *pendingPrompt

	width  int
	height int
}

// NewModel creates a new TUI model driving a.
func NewModel(a *app.App) Model {
	ti := textinput.New()
	ti.Placeholder = "https://www.youtube.com/playlist?list=..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		app:       a,
		selected:  make(map[string]bool),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init initializes the model. Anything already staged opens the review.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.loadStaged(true))
}

// Message types
type (
	// ProgressMsg is sent for every rip progress event.
	ProgressMsg struct {
		Event download.ProgressEvent
	}

	// RipDoneMsg is sent when a rip finishes.
	RipDoneMsg struct {
		Summary download.Summary
		Err     error
	}

	// StagedMsg carries a fresh staging listing.
	StagedMsg struct {
		Tracks []model.Track
		Err    error
		// Open switches to the review when anything is staged.
		Open bool
	}

	// PromptMsg asks whether a look-alike should replace library tracks.
	PromptMsg struct {
		prompt pendingPrompt
	}

	// ActionDoneMsg reports an approval or deletion.
	ActionDoneMsg struct {
		Status string
		Err    error
	}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancel()
			m.declinePrompt()
			return m, tea.Quit
		}
		switch m.state {
		case StateInput:
			if cmd, handled := m.updateInput(msg); handled {
				return m, cmd
			}
		case StateRipping:
			if msg.String() == "esc" {
				m.cancel()
			}
			return m, nil
		case StateReview:
			return m.updateReview(msg)
		case StateError:
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "n", "r":
				m.toInput()
				return m, m.loadStaged(false)
			}
			return m, nil
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		m.logs = append(m.logs, LogEntry{Message: msg.Event.Message, Level: msg.Event.Level})
		if len(m.logs) > maxLogs {
			m.logs = m.logs[len(m.logs)-maxLogs:]
		}
		cmds = append(cmds, waitForEvent(m.events))

	case RipDoneMsg:
		m.events = nil
		switch {
		case errors.Is(msg.Err, context.Canceled) || m.ctx.Err() != nil:
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		case msg.Err != nil && len(msg.Summary.Staged) == 0:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateReview
			m.status = fmt.Sprintf("Staged %d of %d item(s)", len(msg.Summary.Staged), msg.Summary.Items)
			if msg.Err != nil {
				m.status += fmt.Sprintf(" - %d failed: %v", msg.Summary.Failed, msg.Err)
			}
			cmds = append(cmds, m.loadStaged(false))
		}

	case StagedMsg:
		if msg.Err != nil {
			m.status = "Could not read staging: " + msg.Err.Error()
			break
		}
		m.tracks = albumOrder(msg.Tracks)
		m.pruneSelection()
		if m.cursor >= len(m.tracks) {
			m.cursor = max(len(m.tracks)-1, 0)
		}
		if msg.Open && len(m.tracks) > 0 && m.state == StateInput {
			m.state = StateReview
			m.textInput.Blur()
		}

	case PromptMsg:
		p := msg.prompt
		m.prompt = &p

	case ActionDoneMsg:
		m.busy = false
		m.prompt = nil
		m.prompts = nil
		m.status = msg.Status
		if msg.Err != nil {
			m.status = fmt.Sprintf("%s (errors: %v)", msg.Status, msg.Err)
		}
		cmds = append(cmds, m.loadStaged(false))
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "esc":
		return tea.Quit, true
	case "tab":
		if len(m.tracks) > 0 {
			m.state = StateReview
			m.textInput.Blur()
			return nil, true
		}
	case "enter":
		url := m.textInput.Value()
		if url == "" {
			return nil, true
		}
		m.state = StateRipping
		m.logs = nil
		m.err = nil
		m.events = make(chan download.ProgressEvent, 64)
		return tea.Batch(m.rip(url), waitForEvent(m.events), m.spinner.Tick), true
	}
	return nil, false
}

func (m Model) updateReview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompt != nil {
		switch msg.String() {
		case "y", "Y":
			m.prompt.reply <- true
		case "n", "N", "esc", "enter":
			m.prompt.reply <- false
		default:
			return m, nil
		}
		m.prompt = nil
		return m, waitForPrompt(m.prompts)
	}
	if m.busy {
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tracks)-1 {
			m.cursor++
		}
	case " ":
		if m.cursor < len(m.tracks) {
			p := m.tracks[m.cursor].Path
			if m.selected[p] {
				delete(m.selected, p)
			} else {
				m.selected[p] = true
			}
		}
	case "enter":
		paths := m.selectedPaths()
		if len(paths) == 0 {
			m.status = "Nothing selected"
			return m, nil
		}
		m.busy = true
		return m, m.approveSelected(paths)
	case "a":
		m.busy = true
		return m, m.approveAll()
	case "c":
		m.busy = true
		m.prompts = make(chan pendingPrompt)
		return m, tea.Batch(m.approveWithChecks(m.prompts), waitForPrompt(m.prompts))
	case "x":
		m.busy = true
		return m, m.deleteStaging()
	case "r":
		return m, m.loadStaged(false)
	case "n":
		m.toInput()
		return m, textinput.Blink
	}
	return m, nil
}

func (m *Model) toInput() {
	m.state = StateInput
	m.err = nil
	m.logs = nil
	m.status = ""
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.textInput.SetValue("")
	m.textInput.Focus()
}

// declinePrompt answers an open duplicate question with no so the approval
// goroutine can finish.
func (m *Model) declinePrompt() {
	if m.prompt != nil {
		select {
		case m.prompt.reply <- false:
		default:
		}
		m.prompt = nil
	}
}

// albumOrder reorders tracks so that each album's tracks are adjacent, the
// order in which renderTracks draws them.
func albumOrder(tracks []model.Track) []model.Track {
	out := make([]model.Track, 0, len(tracks))
	for _, album := range model.GroupAlbums(tracks) {
		out = append(out, album.Tracks...)
	}
	return out
}

func (m Model) selectedPaths() []string {
	var paths []string
	for _, t := range m.tracks {
		if m.selected[t.Path] {
			paths = append(paths, t.Path)
		}
	}
	return paths
}

func (m *Model) pruneSelection() {
	present := make(map[string]bool, len(m.tracks))
	for _, t := range m.tracks {
		present[t.Path] = true
	}
	for p := range m.selected {
		if !present[p] {
			delete(m.selected, p)
		}
	}
}

// rip runs the playlist rip in the background, forwarding progress events.
func (m Model) rip(url string) tea.Cmd {
	ctx, a, events := m.ctx, m.app, m.events
	return func() tea.Msg {
		summary, err := a.Rip(ctx, url, func(e download.ProgressEvent) {
			select {
			case events <- e:
			case <-ctx.Done():
			}
		})
		close(events)
		return RipDoneMsg{Summary: summary, Err: err}
	}
}

func waitForEvent(events <-chan download.ProgressEvent) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return nil
		}
		return ProgressMsg{Event: e}
	}
}

func (m Model) loadStaged(open bool) tea.Cmd {
	a := m.app
	return func() tea.Msg {
		tracks, err := a.ListStaged()
		return StagedMsg{Tracks: tracks, Err: err, Open: open}
	}
}

func (m Model) approveSelected(paths []string) tea.Cmd {
	a := m.app
	return func() tea.Msg {
		n, err := a.ApproveSelected(paths)
		return ActionDoneMsg{Status: fmt.Sprintf("Approved %d track(s)", n), Err: err}
	}
}

func (m Model) approveAll() tea.Cmd {
	a := m.app
	return func() tea.Msg {
		done, err := a.ApproveAll()
		if !done {
			return ActionDoneMsg{Status: "Nothing staged", Err: err}
		}
		return ActionDoneMsg{Status: "Approved everything", Err: err}
	}
}

// approveWithChecks runs the checked approval, sending each duplicate
// question over prompts and blocking until the view answers it.
func (m Model) approveWithChecks(prompts chan pendingPrompt) tea.Cmd {
	a := m.app
	return func() tea.Msg {
		report, err := a.ApproveWithChecks(func(p library.DuplicatePrompt) bool {
			reply := make(chan bool, 1)
			prompts <- pendingPrompt{prompt: p, reply: reply}
			return <-reply
		})
		close(prompts)
		return ActionDoneMsg{
			Status: fmt.Sprintf("Approved %d, skipped %d", len(report.Approved), len(report.Skipped)),
			Err:    err,
		}
	}
}

func waitForPrompt(prompts <-chan pendingPrompt) tea.Cmd {
	if prompts == nil {
		return nil
	}
	return func() tea.Msg {
		p, ok := <-prompts
		if !ok {
			return nil
		}
		return PromptMsg{prompt: p}
	}
}

func (m Model) deleteStaging() tea.Cmd {
	a := m.app
	return func() tea.Msg {
		deleted, err := a.DeleteStaging()
		if !deleted {
			return ActionDoneMsg{Status: "Nothing staged", Err: err}
		}
		return ActionDoneMsg{Status: "Staging deleted", Err: err}
	}
}

// Run starts the TUI application.
func Run(a *app.App) error {
	p := tea.NewProgram(NewModel(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
