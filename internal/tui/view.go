package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"logoline/internal/history"
	"logoline/internal/playback"
	"logoline/internal/render"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF5555"))
)

// View renders the current state to a string.
func (a *App) View() string {
	if a.showIndex {
		return lipgloss.JoinVertical(lipgloss.Left,
			headerStyle.Render("⬡ LOGOLINE"),
			a.indexMenu.View(),
			dimStyle.MarginTop(1).Render("Enter → jump to snapshot    Esc → close"),
		)
	}

	sections := []string{
		headerStyle.Render("⬡ LOGOLINE"),
		a.renderImagePane(),
	}
	if a.play.ShowControls {
		sections = append(sections, a.renderControls())
	}
	sections = append(sections, a.renderStatusLine())
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	if a.statusMsg != "" {
		sections = append(sections, dimStyle.Render(a.statusMsg))
	}
	return strings.Join(sections, "\n")
}

func (a *App) renderImagePane() string {
	payload := render.PayloadAt(a.status.History, a.play.Cursor)
	return paneStyle.Render(render.Image(payload, a.cfg.ImageWidth))
}

func (a *App) renderControls() string {
	length := a.historyLen()
	sliderMax := playback.SliderMax(length)

	indicator := "⏸ paused"
	if a.play.Playing {
		indicator = "▶ playing"
	}

	percent := 0.0
	if sliderMax > 0 {
		percent = float64(a.play.Cursor) / float64(sliderMax)
		if percent < 0 {
			percent = 0
		}
		if percent > 1 {
			percent = 1
		}
	}

	timeLabel := ""
	if a.play.Cursor >= 0 && a.play.Cursor < length {
		timeLabel = a.status.History[a.play.Cursor].Time
	}

	lines := []string{
		indicator,
		fmt.Sprintf("%s %s %d/%d",
			labelStyle.Render("Timeline"),
			a.slider.ViewAs(percent),
			min(a.play.Cursor, sliderMax),
			sliderMax,
		),
	}
	if timeLabel != "" {
		lines = append(lines, dimStyle.Render(timeLabel))
	}
	lines = append(lines, dimStyle.Render("space play/pause · ←/→ scrub · i index · s save · c controls · q quit"))
	return strings.Join(lines, "\n")
}

func (a *App) renderStatusLine() string {
	switch a.status.Phase {
	case history.PhaseLoading:
		return fmt.Sprintf("%s Loading", a.loading.View())
	case history.PhaseFailure:
		return errorStyle.Render("Error!")
	default:
		line := fmt.Sprintf("%d snapshot(s)", a.historyLen())
		if !a.lastFetched.IsZero() {
			line += dimStyle.Render(fmt.Sprintf(" · fetched %s", humanize.Time(a.lastFetched)))
		}
		return line
	}
}

func (a *App) renderLogPanel() string {
	if a.book == nil {
		return ""
	}
	lines := a.book.Tail(4)
	if len(lines) == 0 {
		return ""
	}
	head := labelStyle.Render("LOG")
	body := dimStyle.Render(strings.Join(lines, "\n"))
	return paneStyle.Render(fmt.Sprintf("%s\n%s", head, body))
}
