// Package tui provides the BubbleTea-based terminal user interface.
package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tomatone/internal/config"
	"tomatone/internal/session"
	"tomatone/internal/timer"
)

// SoundController reacts to timer state changes. *audio.Controller
// implements it.
type SoundController interface {
	Sync(mode timer.Mode, running, noiseOn bool)
	Completed()
	Close()
}

// CompletionNotifier announces finished intervals. *notify.Notifier
// implements it.
type CompletionNotifier interface {
	IntervalComplete(mode timer.Mode)
}

// Mode represents the current UI mode.
type Mode int

const (
	ModeTimer Mode = iota
	ModeHelp
)

// Model is the main TUI model.
type Model struct {
	cfg      *config.Config
	engine   *timer.Engine
	sound    SoundController
	notifier CompletionNotifier
	log      *session.Log
	logger   *slog.Logger

	// Current UI mode
	mode Mode

	// Noise toggle, user-controlled; consulted by the sound controller
	noiseOn bool

	width  int
	height int
	ready  bool

	// Key bindings
	keys KeyMap

	// Status message
	statusMsg string
	statusErr bool
}

// New creates a new TUI model.
func New(cfg *config.Config, sound SoundController, notifier CompletionNotifier) Model {
	return Model{
		cfg:      cfg,
		engine:   timer.NewEngine(),
		sound:    sound,
		notifier: notifier,
		log:      session.NewLog(),
		logger:   slog.Default(),
		mode:     ModeTimer,
		noiseOn:  cfg.TUI.NoiseDefault,
		keys:     DefaultKeyMap(),
	}
}

type tickMsg time.Time

// tick schedules the next one-second tick. The loop runs for the lifetime
// of the program; the engine ignores ticks while not running.
func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type statusUpdateMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

type copyResultMsg struct {
	err error
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		return m.handleTick()

	case statusUpdateMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			return m, status("Copy failed: "+msg.err.Error(), true)
		}
		return m, status("Session summary copied to clipboard", false)
	}

	return m, nil
}

// status returns a command that sets a transient status message.
func status(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusUpdateMsg{text: text, isErr: isErr}
	}
}

// handleTick advances the countdown by one second and fans out completion.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	completed := m.engine.Tick()
	if !completed {
		return m, tick()
	}

	finishedMode := m.engine.Mode()

	// Completion fan-out: noise off, chime, desktop notification, log entry.
	m.sound.Completed()
	if m.notifier != nil {
		m.notifier.IntervalComplete(finishedMode)
	}
	if _, err := m.log.Add(finishedMode); err != nil {
		m.logger.Debug("failed to record completed interval", "error", err)
	}

	var text string
	if finishedMode == timer.ModeWork {
		text = "Pomodoro complete — time for a break"
	} else {
		text = "Break over — back to work"
	}
	return m, tea.Batch(tick(), status(text, false))
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.sound.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		if m.mode == ModeHelp {
			m.mode = ModeTimer
		} else {
			m.mode = ModeHelp
		}
		return m, nil
	}

	if m.mode == ModeHelp {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Work):
		// Starting while running is an implicit reset into the new mode
		m.engine.Start(timer.ModeWork)
		m.syncSound()
		return m, status("Work interval started", false)

	case key.Matches(msg, m.keys.Break):
		m.engine.Start(timer.ModeBreak)
		m.syncSound()
		return m, status("Break interval started", false)

	case key.Matches(msg, m.keys.StartPause):
		if m.engine.Running() {
			m.engine.Pause()
			m.syncSound()
			return m, status("Paused", false)
		}
		if m.engine.Remaining() == 0 {
			// Finished countdown: space starts a fresh one in the same mode
			m.engine.Start(m.engine.Mode())
		} else {
			m.engine.Resume()
		}
		m.syncSound()
		return m, status("Running", false)

	case key.Matches(msg, m.keys.Reset):
		m.engine.Reset()
		m.syncSound()
		return m, status("Reset", false)

	case key.Matches(msg, m.keys.ToggleNoise):
		m.noiseOn = !m.noiseOn
		m.syncSound()
		if m.noiseOn {
			return m, status("White noise on", false)
		}
		return m, status("White noise off", false)

	case key.Matches(msg, m.keys.CopyYAML):
		data, err := m.log.MarshalYAML()
		if err != nil {
			return m, status("Failed to marshal YAML: "+err.Error(), true)
		}
		return m, m.copyToClipboard(string(data))
	}

	return m, nil
}

// syncSound reconciles the noise bed with the current timer state.
func (m Model) syncSound() {
	m.sound.Sync(m.engine.Mode(), m.engine.Running(), m.noiseOn)
}

// copyToClipboard copies text to the system clipboard.
func (m Model) copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		err := copyText(text, m.cfg)
		return copyResultMsg{err: err}
	}
}

// Engine exposes the countdown engine for tests.
func (m Model) Engine() *timer.Engine {
	return m.engine
}

// NoiseOn reports the state of the white-noise toggle.
func (m Model) NoiseOn() bool {
	return m.noiseOn
}

// Log exposes the session log for tests.
func (m Model) Log() *session.Log {
	return m.log
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.mode == ModeHelp {
		return m.viewHelp()
	}
	return m.viewTimer()
}

func (m Model) viewTimer() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12"))

	clockStyle := lipgloss.NewStyle().
		Bold(true).
		Padding(1, 4).
		Border(lipgloss.RoundedBorder())

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8"))

	var s string
	s += titleStyle.Render("tomatone") + "\n\n"
	s += clockStyle.Render(m.engine.Clock()) + "\n\n"

	// Mode and state line
	state := "stopped"
	if m.engine.Running() {
		state = "running"
	} else if m.engine.Paused() {
		state = "paused"
	}
	s += labelStyle.Render("Mode: ") + m.engine.Mode().String() +
		labelStyle.Render("  State: ") + state + "\n"

	noise := "off"
	if m.noiseOn {
		noise = "on"
	}
	s += labelStyle.Render("White noise: ") + noise + "\n"

	// Session tally
	if m.log.Count() > 0 {
		s += "\n" + labelStyle.Render(fmt.Sprintf("Completed: %d work, %d break",
			m.log.CountMode(timer.ModeWork), m.log.CountMode(timer.ModeBreak)))
		if last := m.log.Last(); last != nil {
			s += labelStyle.Render("  Last: ") + last.RelativeTime()
		}
		s += "\n"
	}

	// Status bar or keybind bar
	if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
		if m.statusErr {
			statusStyle = statusStyle.Foreground(lipgloss.Color("9"))
		}
		s += "\n" + statusStyle.Render(m.statusMsg)
	} else if m.cfg.TUI.ShowKeybinds {
		s += "\n" + m.buildKeybindBar(m.width)
	}

	return s
}

func (m Model) viewHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8"))

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	s := titleStyle.Render("Keyboard Shortcuts") + "\n\n"

	s += sectionStyle.Render("Intervals") + "\n"
	s += keyStyle.Render("  w") + "            Start 25-minute work interval\n"
	s += keyStyle.Render("  b") + "            Start 5-minute break\n"
	s += keyStyle.Render("  space") + "        Pause / resume\n"
	s += keyStyle.Render("  r") + "            Reset current interval\n"
	s += "\n"

	s += sectionStyle.Render("Sound") + "\n"
	s += keyStyle.Render("  n") + "            Toggle white noise (work intervals only)\n"
	s += "\n"

	s += sectionStyle.Render("Session") + "\n"
	s += keyStyle.Render("  y") + "            Copy session summary as YAML\n"
	s += "\n"

	s += sectionStyle.Render("General") + "\n"
	s += keyStyle.Render("  ?") + "            Toggle this help\n"
	s += keyStyle.Render("  q") + "            Quit\n"

	s += "\n" + sectionStyle.Render("Press ? to return")

	return s
}

// keybind represents a single keybind with priority for the status bar.
type keybind struct {
	key      string
	desc     string
	priority int // lower = more important (shown first)
}

// buildKeybindBar builds a keybind bar that fits within the given width.
func (m Model) buildKeybindBar(width int) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	binds := []keybind{
		{"w", "work", 1},
		{"b", "break", 2},
		{"space", "pause", 3},
		{"r", "reset", 4},
		{"n", "noise", 5},
		{"y", "copy", 6},
		{"?", "help", 7},
		{"q", "quit", 8},
	}

	// Build the bar, adding keybinds until we run out of space
	const separator = "  "
	result := ""
	plainLen := 0
	for _, b := range binds {
		item := keyStyle.Render(b.key) + " " + b.desc
		plainItem := b.key + " " + b.desc

		testLen := plainLen + len(plainItem)
		if plainLen > 0 {
			testLen += len(separator)
		}
		if width > 0 && testLen > width {
			break
		}

		if result != "" {
			result += separator
			plainLen += len(separator)
		}
		result += item
		plainLen += len(plainItem)
	}

	return style.Render(result)
}

// RunOptions configures the TUI.
type RunOptions struct {
	Config   *config.Config
	Sound    SoundController
	Notifier CompletionNotifier
}

// Run starts the TUI with the given options.
func Run(opts RunOptions) error {
	m := New(opts.Config, opts.Sound, opts.Notifier)
	p := tea.NewProgram(m, tea.WithAltScreen())

	_, err := p.Run()
	return err
}
