package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/songripper/internal/download"
	"github.com/handiism/songripper/internal/model"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	albumStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))
)

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("♫ songripper"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Rip playlists, review, approve"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateRipping:
		b.WriteString(m.viewRipping())
	case StateReview:
		b.WriteString(m.viewReview())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.helpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter playlist or video URL:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	settings := m.app.Settings()
	b.WriteString(dimStyle.Render(fmt.Sprintf("Staging: %s", settings.StagingDir())))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Library: %s", settings.Paths.LibraryDir)))
	b.WriteString("\n")
	if len(m.tracks) > 0 {
		b.WriteString("\n")
		b.WriteString(infoStyle.Render(fmt.Sprintf("%d track(s) already staged (tab to review)", len(m.tracks))))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewRipping() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Ripping " + m.textInput.Value()))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewReview() string {
	var b strings.Builder

	if len(m.tracks) == 0 {
		b.WriteString(boxStyle.Render("Staging is empty."))
		b.WriteString("\n")
	} else {
		b.WriteString(successStyle.Render(fmt.Sprintf("%d staged track(s), %d selected", len(m.tracks), len(m.selected))))
		b.WriteString("\n\n")
		b.WriteString(m.renderTracks())
	}

	if m.prompt != nil {
		b.WriteString("\n")
		b.WriteString(m.renderPrompt())
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(infoStyle.Render(m.status))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderTracks() string {
	var b strings.Builder

	i := 0
	for _, album := range model.GroupAlbums(m.tracks) {
		b.WriteString(albumStyle.Render(album.Artist + " / " + album.Title))
		b.WriteString("\n")
		for _, t := range album.Tracks {
			pointer := "  "
			if i == m.cursor {
				pointer = cursorStyle.Render("> ")
			}
			check := "[ ]"
			if m.selected[t.Path] {
				check = "[x]"
			}
			art := ""
			if t.Cover == nil {
				art = dimStyle.Render(" (no art)")
			}
			fmt.Fprintf(&b, "%s%s %s%s\n", pointer, check, trackLabel(t), art)
			i++
		}
	}

	return b.String()
}

// trackLabel shows the number prefix of the file next to the title.
func trackLabel(t model.Track) string {
	stem := strings.TrimSuffix(filepath.Base(t.Path), filepath.Ext(t.Path))
	prefix, _ := model.SplitNumberPrefix(stem)
	return prefix + t.Title
}

func (m Model) renderPrompt() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Possible duplicates for %s:\n", filepath.Base(m.prompt.prompt.Candidate))
	for _, match := range m.prompt.prompt.Matches {
		fmt.Fprintf(&b, " - %s\n", filepath.Base(match))
	}
	b.WriteString("Overwrite with new file? [y/N]")

	return boxStyle.BorderForeground(lipgloss.Color("#FFE66D")).Render(b.String())
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
		b.WriteString("\n")
	}
	if len(m.logs) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderLogs())
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case download.LevelError:
			style = errorStyle
			prefix = "✗"
		case download.LevelWarning:
			style = warningStyle
			prefix = "!"
		case download.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case download.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) helpText() string {
	switch m.state {
	case StateInput:
		return "enter: rip • tab: review staged • esc: quit"
	case StateRipping:
		return "esc: cancel"
	case StateReview:
		if m.prompt != nil {
			return "y: overwrite • n: skip"
		}
		return "space: select • enter: approve selected • a: approve all • c: approve with checks • x: delete staging • n: new rip • q: quit"
	case StateError:
		return "n: new rip • q: quit"
	}
	return ""
}
