package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/term"

	"github.com/tuikit/scrollview/content"
	"github.com/tuikit/scrollview/internal/app"
	"github.com/tuikit/scrollview/internal/config"
	"github.com/tuikit/scrollview/internal/logging"
	"github.com/tuikit/scrollview/internal/safego"
)

// Version info set by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	execCmd := flag.String("exec", "", "stream the output of a command instead of a file")
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("scrollview %s (commit: %s, built: %s)\n", version, commit, date)
		return
	}
	if flag.NArg() > 1 {
		usage()
		os.Exit(2)
	}
	if !term.IsTerminal(os.Stdin.Fd()) || !term.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "scrollview is interactive; run it from a terminal")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Paths.EnsureDirectories(); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directories: %v\n", err)
		os.Exit(1)
	}
	if err := logging.Initialize(cfg.Paths.LogRoot, logging.LevelDebug); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not initialize logging: %v\n", err)
	}
	defer logging.Close()

	logging.Info("Starting scrollview")

	doc, title, cleanup, err := buildContent(*execCmd, flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	a := app.New(cfg, doc, title)
	startPprof()

	p := tea.NewProgram(
		a,
		tea.WithFilter(mouseEventFilter),
	)

	// Live documents repaint through the program's message queue.
	if w, ok := doc.(content.Watchable); ok {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := w.Watch(ctx, func() {
			p.Send(app.ContentChangedMsg{})
		}); err != nil {
			logging.Warn("content watch unavailable: %v", err)
		}
	}

	if _, err := p.Run(); err != nil {
		logging.Error("App exited with error: %v", err)
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		a.Shutdown()
		os.Exit(1)
	}
	a.Shutdown()

	logging.Info("scrollview shutdown complete")
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: scrollview [flags] [file]

Scrollable viewport demo. With no file, a generated sample document is shown.

Flags:
  -exec 'cmd args'   stream the output of a command
  -version           print version and exit
`)
}

// buildContent picks the document: a streamed command, a watched file, or the
// built-in sample.
func buildContent(execCmd, path string) (content.Content, string, func(), error) {
	if execCmd != "" {
		fields := strings.Fields(execCmd)
		if len(fields) == 0 {
			return nil, "", nil, fmt.Errorf("empty -exec command")
		}
		c, err := content.StartCommand(fields[0], fields[1:]...)
		if err != nil {
			return nil, "", nil, err
		}
		return c, execCmd, func() { c.Close() }, nil
	}
	if path != "" {
		f, err := content.OpenFile(path)
		if err != nil {
			return nil, "", nil, err
		}
		return f, filepath.Base(path), func() {}, nil
	}
	return sampleDocument(), "sample", func() {}, nil
}

// sampleDocument generates a document wide and tall enough to exercise both
// scroll axes.
func sampleDocument() *content.Buffer {
	b := content.NewBuffer("")
	for i := 0; i < 500; i++ {
		line := fmt.Sprintf("%4d  %s", i, strings.Repeat("the quick brown fox jumps over the lazy dog  ", 1+i%4))
		b.Append(line)
	}
	return b
}

var (
	lastMouseMotionEvent   time.Time
	lastMouseWheelEvent    time.Time
	lastMouseX, lastMouseY int
)

// mouseEventFilter rate-limits motion and wheel input before it reaches the
// model, keeping redraw cost bounded on fast terminals.
func mouseEventFilter(m tea.Model, msg tea.Msg) tea.Msg {
	switch msg := msg.(type) {
	case tea.MouseMotionMsg:
		// Always allow if position changed
		if msg.X != lastMouseX || msg.Y != lastMouseY {
			lastMouseX = msg.X
			lastMouseY = msg.Y
			lastMouseMotionEvent = time.Now()
			return msg
		}
		// Same position - apply time throttle
		now := time.Now()
		if now.Sub(lastMouseMotionEvent) < 15*time.Millisecond {
			return nil
		}
		lastMouseMotionEvent = now
	case tea.MouseWheelMsg:
		now := time.Now()
		if now.Sub(lastMouseWheelEvent) < 15*time.Millisecond {
			return nil
		}
		lastMouseWheelEvent = now
	}
	return msg
}

func startPprof() {
	raw := strings.TrimSpace(os.Getenv("SCROLLVIEW_PPROF"))
	if raw == "" {
		return
	}
	switch strings.ToLower(raw) {
	case "0", "false", "no":
		return
	}

	addr := raw
	if raw == "1" || strings.ToLower(raw) == "true" {
		addr = "127.0.0.1:6060"
	} else if _, err := strconv.Atoi(raw); err == nil {
		addr = "127.0.0.1:" + raw
	}

	safego.Go("pprof", func() {
		logging.Info("pprof listening on %s", addr)
		if err := http.ListenAndServe(addr, nil); err != nil {
			logging.Warn("pprof server stopped: %v", err)
		}
	})
}
