// textfit is an auto-scaling text display for the terminal.
//
// It presents an editing surface that continuously re-selects the
// largest font size at which the current text, word-wrapped, still fits
// the visible area, and animates toward that size. Sizes are computed
// against real font metrics (an OpenType file, or the embedded Go
// Regular face) and the terminal's pixel geometry.
//
// Usage:
//
//	textfit [flags]
//
// Flags:
//
//	-config string   Path to configuration file (default: XDG search)
//	-font string     Path to a TTF/OTF font file (default: embedded Go Regular)
//	-min-size int    Smallest searchable font size (0 = from config)
//	-max-size int    Largest searchable font size (0 = from config)
//	-wrap            Wrap stdin to the terminal grid and exit
//	-verbose         Enable debug logging
//	-version         Print version and exit
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"gitlab.com/tinyland/lab/textfit/pkg/config"
	"gitlab.com/tinyland/lab/textfit/pkg/fit"
	"gitlab.com/tinyland/lab/textfit/pkg/metrics"
	"gitlab.com/tinyland/lab/textfit/pkg/metrics/cell"
	"gitlab.com/tinyland/lab/textfit/pkg/metrics/opentype"
	"gitlab.com/tinyland/lab/textfit/pkg/termpix"
	"gitlab.com/tinyland/lab/textfit/pkg/tui"
	"gitlab.com/tinyland/lab/textfit/pkg/wrap"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		fontPath    = flag.String("font", "", "Path to a TTF/OTF font file")
		minSize     = flag.Int("min-size", 0, "Smallest searchable font size (0 = from config)")
		maxSize     = flag.Int("max-size", 0, "Largest searchable font size (0 = from config)")
		wrapStdin   = flag.Bool("wrap", false, "Wrap stdin to the terminal grid and exit")
		verbose     = flag.Bool("verbose", false, "Enable debug logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("textfit %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Flags win over file and environment.
	if *fontPath != "" {
		cfg.Font.Path = *fontPath
	}
	if *minSize > 0 {
		cfg.Fit.MinSize = *minSize
	}
	if *maxSize > 0 {
		cfg.Fit.MaxSize = *maxSize
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	if *wrapStdin {
		if err := runWrap(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		return
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "textfit needs a terminal; pipe through -wrap for headless use")
		os.Exit(1)
	}

	logger, closeLog, err := setupLogging(cfg, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	provider, err := opentype.Load(cfg.Font.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load font: %v\n", err)
		os.Exit(1)
	}

	solver := fit.NewSolver(cfg.Font.Family, provider)
	solver.Bounds = cfg.Bounds()
	solver.Margin = cfg.Fit.SafetyMargin
	solver.Default = cfg.Fit.DefaultSize

	geom := termpix.Detect()
	logger.Info("starting",
		"font", cfg.Font.Family,
		"bounds", fmt.Sprintf("[%d,%d]", solver.Bounds.Min, solver.Bounds.Max),
		"cell", fmt.Sprintf("%dx%d", geom.CellWidth, geom.CellHeight))

	model := tui.New(tui.Options{
		Solver:     solver,
		Geometry:   geom,
		Padding:    cfg.Fit.Padding,
		Debounce:   cfg.DebounceWindow(),
		Transition: cfg.TransitionDuration(),
		Logger:     logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		os.Exit(1)
	}
}

// loadConfig resolves the configuration, preferring an explicit path
// over the XDG search.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// setupLogging opens the configured log file and builds a slog logger on
// it. The TUI owns the terminal, so nothing is ever logged to stderr
// once the program is up.
func setupLogging(cfg *config.Config, verbose bool) (*slog.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(cfg.General.LogFile), 0755); err != nil {
		return nil, nil, err
	}
	logFile, err := os.OpenFile(cfg.General.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	level := logLevel(cfg.General.LogLevel)
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		Level: level,
	}))
	return logger, func() { logFile.Close() }, nil
}

// logLevel maps a config level name to its slog level. Validate has
// already rejected anything else.
func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// runWrap reads stdin and prints it word-wrapped to the invoking
// terminal's grid, one simulated line per output line.
func runWrap(cfg *config.Config) error {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	cols, rows, err := termpix.Size()
	if err != nil {
		cols, rows = 80, 24
	}

	geom := termpix.Detect()
	provider := cell.New(float64(geom.CellWidth), float64(geom.CellHeight))
	vp := geom.Viewport(cols, rows, 0)

	font := metrics.FontSpec{Family: cfg.Font.Family}
	for _, line := range wrap.Lines(string(data), font, vp.Width, provider) {
		fmt.Println(line)
	}
	return nil
}
