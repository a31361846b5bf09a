// internal/tui/app.go
//
// The logoline viewer. It uses bubbletea, which follows The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// Update runs to completion for one message before the next is processed,
// so the fetch result, the timer ticks, and user input never interleave
// within a single state transition.

package tui

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"logoline/internal/config"
	"logoline/internal/history"
	"logoline/internal/logbook"
	"logoline/internal/playback"
)

// fetchResultMsg delivers one completed history fetch. Two in-flight fetches
// resolve independently; the last one to arrive wins.
type fetchResultMsg struct {
	result history.FetchResult
}

// advanceTickMsg fires from the playback timer while playing.
type advanceTickMsg struct{}

// refreshTickMsg fires from the slow re-fetch timer, regardless of play state.
type refreshTickMsg struct{}

// indexResultMsg delivers the timestamp index for the browser overlay.
type indexResultMsg struct {
	entries []history.IndexEntry
	err     error
}

// exportResultMsg reports a snapshot written to disk.
type exportResultMsg struct {
	path string
	err  error
}

// App is the viewer model. In bubbletea, this holds ALL the state.
type App struct {
	cfg    *config.Config
	client *history.Client
	book   *logbook.Logbook

	status history.FetchStatus
	play   playback.State

	slider    progress.Model
	loading   spinner.Model
	indexMenu list.Model
	showIndex bool

	statusMsg   string
	lastFetched time.Time

	width  int
	height int
}

// indexItem implements list.Item for the timestamp browser.
type indexItem struct {
	position int
	label    string
}

func (i indexItem) Title() string       { return i.label }
func (i indexItem) Description() string { return fmt.Sprintf("position %d", i.position) }
func (i indexItem) FilterValue() string { return i.label }

// NewApp creates the viewer model. The play and showControls startup options
// normally come from the configured URL's query string; command-line flags
// may override them before they reach here.
func NewApp(cfg *config.Config, opts playback.Options, book *logbook.Logbook) *App {
	clientOpts := []history.Option{}
	if cfg.FetchLimit > 0 {
		clientOpts = append(clientOpts, history.WithLimit(cfg.FetchLimit))
	}

	slider := progress.New(progress.WithDefaultGradient())
	slider.ShowPercentage = false

	loading := spinner.New(spinner.WithSpinner(spinner.Dot))

	indexMenu := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	indexMenu.Title = "Snapshot Index"
	indexMenu.SetShowStatusBar(false)
	indexMenu.SetFilteringEnabled(false)

	app := &App{
		cfg:       cfg,
		client:    history.NewClient(cfg.URL, clientOpts...),
		book:      book,
		status:    history.Loading(),
		play:      playback.New(opts),
		slider:    slider,
		loading:   loading,
		indexMenu: indexMenu,
	}
	if book != nil {
		book.Info("session opened · url=%s play=%t controls=%t", cfg.URL, opts.Play, opts.ShowControls)
	}
	return app
}

// Init issues the initial fetch and starts the timers.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.fetchCmd(), a.scheduleRefresh(), a.loading.Tick}
	if a.play.Playing {
		cmds = append(cmds, a.scheduleAdvance())
	}
	return tea.Batch(cmds...)
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.slider.Width = max(10, min(msg.Width-20, 60))
		a.indexMenu.SetSize(max(0, msg.Width-6), max(0, msg.Height-10))
		return a, nil

	case fetchResultMsg:
		a.status = history.Apply(a.status, msg.result)
		if msg.result.Err != nil {
			a.logWarn("fetch failed: %v", msg.result.Err)
		} else {
			a.lastFetched = time.Now()
		}
		return a, nil

	case advanceTickMsg:
		if !a.play.Playing {
			// Timer raced a pause; let it die without rescheduling.
			return a, nil
		}
		a.play = a.play.Advance(a.historyLen())
		return a, a.scheduleAdvance()

	case refreshTickMsg:
		return a, tea.Batch(a.fetchCmd(), a.scheduleRefresh())

	case indexResultMsg:
		if msg.err != nil {
			a.statusMsg = "Error!"
			a.logWarn("fetch index failed: %v", msg.err)
			return a, nil
		}
		items := make([]list.Item, len(msg.entries))
		for i, entry := range msg.entries {
			items[i] = indexItem{position: i, label: entry.Time}
		}
		a.indexMenu.SetItems(items)
		if cursor := a.play.Cursor; cursor >= 0 && cursor < len(items) {
			a.indexMenu.Select(cursor)
		}
		a.showIndex = true
		return a, nil

	case exportResultMsg:
		if msg.err != nil {
			a.statusMsg = "Export failed"
			a.logError("export failed: %v", msg.err)
		} else {
			a.statusMsg = fmt.Sprintf("Saved %s", msg.path)
			a.logInfo("exported %s", msg.path)
		}
		return a, nil

	case spinner.TickMsg:
		if a.status.Phase != history.PhaseLoading {
			return a, nil
		}
		var cmd tea.Cmd
		a.loading, cmd = a.loading.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if a.showIndex {
		var cmd tea.Cmd
		a.indexMenu, cmd = a.indexMenu.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.showIndex {
		return a.handleIndexKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		a.logInfo("session closed")
		return a, tea.Quit

	case " ", "space":
		a.play = a.play.TogglePlaying()
		if a.play.Playing {
			return a, a.scheduleAdvance()
		}
		return a, nil

	case "right", "l":
		a.scrubTo(float64(a.play.Cursor + 1))
		return a, nil

	case "left", "h":
		a.scrubTo(float64(a.play.Cursor - 1))
		return a, nil

	case "home", "g":
		a.scrubTo(0)
		return a, nil

	case "end", "G":
		a.scrubTo(float64(playback.SliderMax(a.historyLen())))
		return a, nil

	case "c":
		a.play = a.play.ToggleControls()
		return a, nil

	case "r":
		a.statusMsg = "Refreshing..."
		return a, a.fetchCmd()

	case "i":
		return a, a.fetchIndexCmd()

	case "s":
		return a, a.exportCmd()
	}
	return a, nil
}

func (a *App) handleIndexKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "i", "q":
		a.showIndex = false
		return a, nil
	case "enter":
		if item, ok := a.indexMenu.SelectedItem().(indexItem); ok {
			a.play = a.play.SetCursor(float64(item.position))
		}
		a.showIndex = false
		return a, nil
	case "ctrl+c":
		return a, tea.Quit
	}
	var cmd tea.Cmd
	a.indexMenu, cmd = a.indexMenu.Update(msg)
	return a, cmd
}

// scrubTo moves the cursor the way the slider would: clamped to its own
// min/max bounds.
func (a *App) scrubTo(position float64) {
	limit := float64(playback.SliderMax(a.historyLen()))
	if position < 0 {
		position = 0
	}
	if position > limit {
		position = limit
	}
	a.play = a.play.SetCursor(position)
}

func (a *App) historyLen() int {
	return len(a.status.History)
}

func (a *App) fetchCmd() tea.Cmd {
	client := a.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), history.DefaultTimeout)
		defer cancel()
		return fetchResultMsg{result: client.Fetch(ctx)}
	}
}

func (a *App) fetchIndexCmd() tea.Cmd {
	client := a.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), history.DefaultTimeout)
		defer cancel()
		entries, err := client.FetchIndex(ctx)
		return indexResultMsg{entries: entries, err: err}
	}
}

// exportCmd writes the currently displayed snapshot to the working
// directory as a PNG.
func (a *App) exportCmd() tea.Cmd {
	if a.play.Cursor < 0 || a.play.Cursor >= a.historyLen() {
		a.statusMsg = "Nothing to export"
		return nil
	}
	snap := a.status.History[a.play.Cursor]
	return func() tea.Msg {
		raw, err := base64.StdEncoding.DecodeString(snap.Logo)
		if err != nil {
			return exportResultMsg{err: fmt.Errorf("decode snapshot %s: %w", snap.Time, err)}
		}
		name := fmt.Sprintf("logoline-%s.png", sanitizeLabel(snap.Time))
		if err := os.WriteFile(name, raw, 0o644); err != nil {
			return exportResultMsg{err: err}
		}
		return exportResultMsg{path: name}
	}
}

func (a *App) scheduleAdvance() tea.Cmd {
	return tea.Tick(a.cfg.AdvanceInterval(), func(time.Time) tea.Msg {
		return advanceTickMsg{}
	})
}

func (a *App) scheduleRefresh() tea.Cmd {
	return tea.Tick(a.cfg.RefreshInterval(), func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

func (a *App) logInfo(format string, args ...any) {
	if a.book == nil {
		return
	}
	a.book.Info(format, args...)
}

func (a *App) logWarn(format string, args ...any) {
	if a.book == nil {
		return
	}
	a.book.Warn(format, args...)
}

func (a *App) logError(format string, args ...any) {
	if a.book == nil {
		return
	}
	a.book.Error(format, args...)
}

// sanitizeLabel makes a timestamp label safe to use in a file name.
func sanitizeLabel(label string) string {
	replacer := strings.NewReplacer(":", "-", "/", "-", " ", "_")
	return replacer.Replace(label)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
