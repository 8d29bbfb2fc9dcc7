package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/cfgl/lang"
	"github.com/ardnew/cfgl/log"
)

const (
	evalPrompt    = "➜ "
	commandPrefix = ":"
	defaultWidth  = 80
)

// commands are the REPL commands, entered with [commandPrefix].
var commands = []struct{ name, help string }{
	{"help", "Print this help"},
	{"vars", "List variables"},
	{"funcs", "List functions"},
	{"reload", "Reload the source document"},
	{"edit", "Edit the source document in $EDITOR and reload it"},
	{"clear", "Clear screen"},
	{"quit", "Exit"},
}

func commandNames() []string {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.name
	}

	return names
}

func helpMessage() string {
	var b strings.Builder

	b.WriteString("\nCommands:\n\n")

	for _, c := range commands {
		fmt.Fprintf(&b, "  %s%-8s %s\n", commandPrefix, c.name, c.help)
	}

	b.WriteString(`
Usage:
  Type an expression to evaluate it; the ?[ ] delimiters are optional
  Top-level scalars of the source document are variables
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates, Esc to cancel
  Use Up/Down arrows for history navigation
  Press Ctrl+C on empty line or Ctrl+D to exit
`)

	return b.String()
}

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle      = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4")).
			Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)

	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	currentParamStyle  = lipgloss.NewStyle().
				Foreground(lipgloss.Color("3")).
				Bold(true)
)

// formatCommand formats the echo of a submitted line.
func formatCommand(input string) string {
	return promptStyle.Render(evalPrompt) + inputStyle.Render(input)
}

// Options configures [Run].
type Options struct {
	Source  string // document providing variables; empty for none
	History string // history file; empty keeps history in memory
	Logger  log.Logger
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	session      *session
	logger       log.Logger
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	wordStart    int           // rune offset of current word start
	wordEnd      int           // rune offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	quitting     bool
}

// Run loads the variables of the source document and starts the REPL. It
// returns when the user quits or ctx is canceled.
func Run(ctx context.Context, opts Options) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	opts.Logger.TraceContext(ctx, "repl start",
		slog.String("source", opts.Source),
		slog.String("history", opts.History),
	)

	s := &session{source: opts.Source, logger: opts.Logger}
	if err := s.load(ctx); err != nil {
		return err
	}

	history := NewHistory(opts.History)
	if err := history.Load(); err != nil {
		opts.Logger.WarnContext(ctx, "could not load history", slog.Any("error", err))
	}

	_, err = tea.NewProgram(
		newModel(ctx, s, history, opts.Logger),
		tea.WithContext(ctx),
	).Run()

	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}

	return err
}

func newModel(
	ctx context.Context,
	s *session,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(evalPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		session:    s,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - lipgloss.Width(evalPrompt) - 2

		return m, nil

	case editDoneMsg:
		if msg.err != nil {
			return m, tea.Println(errorStyle.Render("error: " + msg.err.Error()))
		}

		return m, m.reload()
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	input := []rune(m.input.Value())
	call := detectFunctionCall(input, m.input.Position())

	switch {
	case m.historyIdx < m.history.Len():
		b.WriteString(hintStyle.Render(fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())))

	case strings.TrimSpace(string(input)) == "":
		b.WriteString(hintStyle.Render(
			"Type an expression, or " + commandPrefix + "help for commands"))

	case m.tabActive || (len(m.matches) > 0 && !call.inCall):
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width))

	case call.inCall:
		if hint := signatureHint(call.name, call.argIndex); hint != "" {
			b.WriteString(hint)
		} else {
			b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width))
		}
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if m.tabActive && len(m.matches) > 0 {
			// Lock in the current candidate without executing.
			m.tabActive = false
			refreshMatches(&m, true)

			return m, nil
		}

		return m.executeInput()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyPrev(), nil

	case tea.KeyDown:
		return m.historyNext(), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)
		}

		return m, nil

	case tea.KeyRunes, tea.KeySpace:
		// Any typed character ends tab-cycling on the current candidate.
		m.tabActive = false
		m.historyIdx = m.history.Len()

		var cmd tea.Cmd

		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// Any other key (backspace, delete, arrows, etc.) recomputes matches
	// without auto-confirming.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycle moves the selected candidate by step, starting tab-cycling if it is
// not active. A single candidate is completed immediately.
func (m model) cycle(step int) model {
	switch n := len(m.matches); {
	case n == 0:
		return m

	case n == 1:
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m

	case m.tabActive:
		m.suggIdx = (m.suggIdx + step + n) % n

	default:
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if step < 0 {
			m.suggIdx = n - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m
}

// replaceCurrentWord replaces the current word in the input with replacement
// and moves the cursor after it.
func replaceCurrentWord(m *model, replacement string) {
	input := []rune(m.input.Value())
	start, end := min(m.wordStart, len(input)), min(m.wordEnd, len(input))

	n := len([]rune(replacement))

	m.input.SetValue(string(input[:start]) + replacement + string(input[end:]))
	m.input.SetCursor(start + n)

	m.wordEnd = start + n
}

// refreshMatches recomputes the matches for the current input. When
// autoConfirm is set and the typed word already equals the only candidate,
// the completion is accepted.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	input := []rune(m.input.Value())
	if string(input[m.wordStart:m.wordEnd]) == m.matches[0].Str {
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.input.SetValue("")
	m.matches = nil
	m.tabActive = false

	if err := m.history.Add(input); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "could not save history", slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	echo := tea.Println(formatCommand(input))

	if name, ok := strings.CutPrefix(input, commandPrefix); ok {
		return m.executeCommand(echo, strings.TrimSpace(name))
	}

	result, err := m.session.eval(m.ctxFunc(), input)

	m.logger.TraceContext(m.ctxFunc(), "repl eval",
		slog.String("input", input),
		slog.Bool("ok", err == nil),
	)

	if err != nil {
		return m, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+err.Error())))
	}

	return m, tea.Sequence(echo, tea.Println(resultStyle.Render(result)))
}

func (m model) executeCommand(echo tea.Cmd, name string) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl command", slog.String("command", name))

	switch name {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo, tea.Println(helpMessage()))

	case "v", "vars":
		return m, tea.Sequence(echo, tea.Println(m.listVariables()))

	case "f", "funcs":
		return m, tea.Sequence(echo, tea.Println(listFunctions()))

	case "r", "reload":
		return m, tea.Sequence(echo, m.reload())

	case "e", "edit":
		if m.session.source == "" {
			return m, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+ErrNoSource.Error())))
		}

		return m, tea.Sequence(echo, editSource(m.session.source))

	case "c", "clear":
		return m, tea.ClearScreen

	default:
		return m, tea.Sequence(echo, tea.Println(errorStyle.Render(
			"unknown command: "+name+" (try "+commandPrefix+"help)")))
	}
}

// reload rereads the source document. The previous variables stay in effect
// if it no longer decodes.
func (m model) reload() tea.Cmd {
	if err := m.session.load(m.ctxFunc()); err != nil {
		return tea.Println(errorStyle.Render("error: " + err.Error()))
	}

	return tea.Println(resultStyle.Render(
		fmt.Sprintf("loaded %d variables", m.session.vars.Len())))
}

func (m model) listVariables() string {
	if m.session.vars.Len() == 0 {
		return hintStyle.Render("  (no variables)")
	}

	var b strings.Builder

	for name, value := range m.session.vars.All() {
		fmt.Fprintf(&b, "  %s %s\n", name, hintStyle.Render("= "+lang.Render(value)))
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func listFunctions() string {
	var b strings.Builder

	for _, name := range lang.Functions() {
		signature, _, _ := lang.FunctionSignature(name)
		b.WriteString("  " + signature + "\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func (m model) historyPrev() model {
	if m.historyIdx == 0 {
		return m
	}

	m.historyIdx--

	return m.showHistory()
}

func (m model) historyNext() model {
	if m.historyIdx >= m.history.Len()-1 {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)

		return m
	}

	m.historyIdx++

	return m.showHistory()
}

func (m model) showHistory() model {
	line, err := m.history.Entry(m.historyIdx)
	if err != nil {
		return m
	}

	m.tabActive = false
	m.input.SetValue(line)
	m.input.SetCursor(len([]rune(line)))
	refreshMatches(&m, false)

	return m
}
