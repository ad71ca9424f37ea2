// Package app wires the snippet store, expansion engine, and terminal
// screen into a running editor session.
package app

import (
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/snipstorm/internal/config"
	"github.com/dshills/snipstorm/internal/config/watcher"
	"github.com/dshills/snipstorm/internal/engine"
	"github.com/dshills/snipstorm/internal/engine/buffer"
	"github.com/dshills/snipstorm/internal/input/key"
	"github.com/dshills/snipstorm/internal/notify"
	"github.com/dshills/snipstorm/internal/plugin/luasrc"
)

// Config configures an Application.
type Config struct {
	// SettingsPath is the snippet settings file. Empty disables settings
	// persistence and watching.
	SettingsPath string
	// ScriptPath is an optional Lua script providing additional snippets.
	ScriptPath string
	// FilePath is an optional file to open in the editor buffer.
	FilePath string
	// LogOutput is where logs are written. Defaults to os.Stderr.
	LogOutput io.Writer
	// LogLevel is the minimum log level.
	LogLevel LogLevel
	// Screen overrides the terminal screen. Used by tests; when nil a
	// real terminal screen is allocated in Run.
	Screen tcell.Screen
}

// Application owns the editor session: the document buffer, the snippet
// store, and the terminal screen.
type Application struct {
	cfg     Config
	logger  *Logger
	store   *config.Store
	engine  *engine.Engine
	status  *notify.Memory
	watcher *watcher.Watcher
	screen  tcell.Screen
	topLine uint32
	quit    bool
}

// New creates an Application from the given configuration. The settings
// file and opened file are read eagerly; the screen is not touched until
// Run.
func New(cfg Config) (*Application, error) {
	logger := NewLogger(cfg.LogOutput, cfg.LogLevel)

	a := &Application{
		cfg:    cfg,
		logger: logger,
		status: &notify.Memory{},
	}

	storeOpts := []config.StoreOption{
		config.WithErrorHandler(func(err error) {
			logger.WithComponent("config").Warn("snippet source error: %v", err)
		}),
	}
	if cfg.SettingsPath != "" {
		storeOpts = append(storeOpts, config.WithPath(cfg.SettingsPath))
	}
	a.store = config.NewStore(storeOpts...)

	if cfg.SettingsPath != "" {
		if err := a.store.Load(); err != nil {
			return nil, fmt.Errorf("load settings: %w", err)
		}
	}
	if cfg.ScriptPath != "" {
		a.store.AddSource(luasrc.New(cfg.ScriptPath))
	}

	buf := buffer.New()
	if cfg.FilePath != "" {
		data, err := os.ReadFile(cfg.FilePath)
		switch {
		case err == nil:
			buf = buffer.FromString(string(data))
		case os.IsNotExist(err):
			logger.Info("new file %s", cfg.FilePath)
		default:
			return nil, fmt.Errorf("open %s: %w", cfg.FilePath, err)
		}
	}

	sink := notify.Multi{
		a.status,
		notify.Func(func(msg notify.Message) {
			logger.WithComponent("engine").Info("%s", msg.Text)
		}),
	}
	a.engine = engine.New(buf, a.store,
		engine.WithSink(sink),
		engine.WithCompletionKey(a.store.CompletionKey()),
	)
	a.engine.SetCursor(buf.Len())

	return a, nil
}

// Store returns the application's snippet store.
func (a *Application) Store() *config.Store {
	return a.store
}

// Engine returns the expansion engine.
func (a *Application) Engine() *engine.Engine {
	return a.engine
}

// Status returns the notification sink holding expansion messages.
func (a *Application) Status() *notify.Memory {
	return a.status
}

// Run initializes the screen, starts the settings watcher, and processes
// events until quit. It blocks until the session ends.
func (a *Application) Run() error {
	screen := a.cfg.Screen
	if screen == nil {
		var err error
		screen, err = tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("create screen: %w", err)
		}
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	a.screen = screen
	defer screen.Fini()

	if a.cfg.SettingsPath != "" {
		w, err := watcher.New(a.cfg.SettingsPath, a.reloadSettings)
		if err != nil {
			a.logger.Warn("settings watcher unavailable: %v", err)
		} else {
			a.watcher = w
			defer w.Close()
		}
	}

	a.logger.Info("session started")
	a.render()

	for !a.quit {
		ev := screen.PollEvent()
		if ev == nil {
			break
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			a.handleKey(ev)
		case *tcell.EventResize:
			screen.Sync()
		}
		a.render()
	}

	a.logger.Info("session ended")
	return nil
}

// reloadSettings is invoked from the watcher goroutine when the settings
// file changes on disk.
func (a *Application) reloadSettings() {
	if err := a.store.Load(); err != nil {
		a.logger.Warn("settings reload failed: %v", err)
		return
	}
	a.logger.Info("settings reloaded from %s", a.store.Path())
}

func (a *Application) handleKey(tev *tcell.EventKey) {
	ev := translateKey(tev)

	// Session commands take precedence over editing.
	if ev.Key == key.KeyRune && ev.Modifiers == key.ModCtrl {
		switch ev.Rune {
		case 'q':
			a.quit = true
			return
		case 's':
			a.saveFile()
			return
		}
	}

	// Completion key changes only apply on reload, so refresh before
	// each dispatch.
	a.engine.SetCompletionKey(a.store.CompletionKey())
	if _, ok := a.engine.HandleKey(ev); ok {
		return
	}

	switch ev.Key {
	case key.KeyRune:
		if ev.IsChar() && !ev.IsModified() {
			if err := a.engine.InsertText(string(ev.Rune)); err != nil {
				a.logger.Error("insert: %v", err)
			}
		}
	case key.KeySpace:
		if err := a.engine.InsertText(" "); err != nil {
			a.logger.Error("insert: %v", err)
		}
	case key.KeyEnter:
		if err := a.engine.InsertNewline(); err != nil {
			a.logger.Error("insert: %v", err)
		}
	case key.KeyTab:
		if err := a.engine.InsertText("\t"); err != nil {
			a.logger.Error("insert: %v", err)
		}
	case key.KeyBackspace:
		if err := a.engine.DeleteBackward(); err != nil {
			a.logger.Error("delete: %v", err)
		}
	case key.KeyLeft:
		a.engine.MoveLeft()
	case key.KeyRight:
		a.engine.MoveRight()
	case key.KeyUp:
		a.engine.MoveUp()
	case key.KeyDown:
		a.engine.MoveDown()
	case key.KeyHome:
		a.engine.MoveLineStart()
	case key.KeyEnd:
		a.engine.MoveLineEnd()
	}
}

func (a *Application) saveFile() {
	if a.cfg.FilePath == "" {
		a.status.Notify(notify.NewMessage("no file to save"))
		return
	}
	if err := os.WriteFile(a.cfg.FilePath, []byte(a.engine.Buffer().Text()), 0o644); err != nil {
		a.logger.Error("save %s: %v", a.cfg.FilePath, err)
		a.status.Notify(notify.NewMessage(fmt.Sprintf("save failed: %v", err)))
		return
	}
	a.status.Notify(notify.NewMessage(fmt.Sprintf("saved %s", a.cfg.FilePath)))
}

// render draws the buffer and status line. The last screen row is
// reserved for status.
func (a *Application) render() {
	if a.screen == nil {
		return
	}
	width, height := a.screen.Size()
	if width == 0 || height == 0 {
		return
	}
	a.screen.Clear()

	buf := a.engine.Buffer()
	cursor := buf.OffsetToPoint(a.engine.Cursor())

	textRows := height - 1
	if textRows < 1 {
		textRows = 1
	}
	a.scrollTo(cursor.Line, uint32(textRows))

	style := tcell.StyleDefault
	for row := 0; row < textRows; row++ {
		line := a.topLine + uint32(row)
		if line >= buf.LineCount() {
			break
		}
		drawText(a.screen, 0, row, width, buf.LineText(line), style)
	}

	statusStyle := tcell.StyleDefault.Reverse(true)
	status := fmt.Sprintf(" %d:%d", cursor.Line+1, cursor.Column+1)
	if msg, ok := a.status.Last(); ok {
		status += "  " + msg.Text
	}
	drawText(a.screen, 0, height-1, width, padRight(status, width), statusStyle)

	if cursor.Line >= a.topLine {
		a.screen.ShowCursor(int(cursor.Column), int(cursor.Line-a.topLine))
	}
	a.screen.Show()
}

// scrollTo adjusts the top line so the cursor line is visible within a
// viewport of the given height.
func (a *Application) scrollTo(line, height uint32) {
	if line < a.topLine {
		a.topLine = line
	} else if line >= a.topLine+height {
		a.topLine = line - height + 1
	}
}

func drawText(s tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		if col >= x+maxWidth {
			break
		}
		s.SetContent(col, y, r, nil, style)
		col++
	}
}

func padRight(s string, width int) string {
	for len(s) < width {
		s += " "
	}
	return s
}
