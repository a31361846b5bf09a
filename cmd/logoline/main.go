// cmd/logoline/main.go
//
// Entry point for the logoline viewer. It loads configuration, resolves the
// startup playback options from the history URL's query string (flags win),
// and runs the bubbletea program until the user quits.

package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"logoline/internal/config"
	"logoline/internal/logbook"
	"logoline/internal/playback"
	"logoline/internal/tui"
)

func main() {
	configPath := flag.String("config", config.DefaultFile, "path to the YAML config file")
	urlFlag := flag.String("url", "", "history service URL (overrides config)")
	playFlag := flag.Bool("play", false, "start playing immediately")
	controlsFlag := flag.Bool("controls", true, "show the playback controls")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *urlFlag != "" {
		cfg.URL = *urlFlag
	}

	opts := playback.ParseOptions(cfg.URL)
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "play":
			opts.Play = *playFlag
		case "controls":
			opts.ShowControls = *controlsFlag
		}
	})

	logPath := cfg.LogFile
	if logPath == "" {
		logPath = logbook.DefaultPath()
	}
	book, err := logbook.New(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		tui.NewApp(cfg, opts, book),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running viewer: %v\n", err)
		os.Exit(1)
	}
}
