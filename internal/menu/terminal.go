package menu

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Terminal implements UI with inline Bubble Tea prompts. The zero value is not
// usable; construct it with NewTerminal.
type Terminal struct {
	input  io.Reader // nil selects os.Stdin
	output io.Writer // nil selects os.Stdout
	keys   keyMap
	styles styles
}

// NewTerminal builds a Terminal bound to the process stdin/stdout.
func NewTerminal() *Terminal {
	return &Terminal{
		keys:   defaultKeyMap(),
		styles: defaultStyles(),
	}
}

func (t *Terminal) out() io.Writer {
	if t.output != nil {
		return t.output
	}
	return os.Stdout
}

func (t *Terminal) program(m tea.Model, opts ...tea.ProgramOption) *tea.Program {
	if t.input != nil {
		opts = append(opts, tea.WithInput(t.input))
	}
	if t.output != nil {
		opts = append(opts, tea.WithOutput(t.output))
	}
	return tea.NewProgram(m, opts...)
}

// Select implements UI.
func (t *Terminal) Select(prompt string, choices []string) (string, error) {
	if err := validateChoices(choices); err != nil {
		return "", err
	}
	final, err := t.program(newSelectModel(prompt, choices, t.keys, t.styles)).Run()
	if err != nil {
		return "", fmt.Errorf("run select prompt: %w", err)
	}
	m, ok := final.(selectModel)
	if !ok {
		return "", fmt.Errorf("unexpected select model %T", final)
	}
	if m.cancelled {
		return "", ErrCancelled
	}
	return m.choice, nil
}

// Input implements UI.
func (t *Terminal) Input(prompt string) (string, error) {
	final, err := t.program(newInputModel(prompt, t.keys, t.styles)).Run()
	if err != nil {
		return "", fmt.Errorf("run input prompt: %w", err)
	}
	m, ok := final.(inputModel)
	if !ok {
		return "", fmt.Errorf("unexpected input model %T", final)
	}
	if m.cancelled {
		return "", ErrCancelled
	}
	return strings.TrimSpace(m.text.Value()), nil
}

// Confirm implements UI.
func (t *Terminal) Confirm(prompt string) (bool, error) {
	final, err := t.program(newConfirmModel(prompt, t.keys, t.styles)).Run()
	if err != nil {
		return false, fmt.Errorf("run confirm prompt: %w", err)
	}
	m, ok := final.(confirmModel)
	if !ok {
		return false, fmt.Errorf("unexpected confirm model %T", final)
	}
	if m.cancelled {
		return false, ErrCancelled
	}
	return m.answer, nil
}

// Ack implements UI.
func (t *Terminal) Ack(message string) {
	if message != "" {
		t.Say(message)
	}
	_, _ = t.program(newAckModel(t.styles)).Run()
}

// Say implements UI.
func (t *Terminal) Say(message string) {
	fmt.Fprintln(t.out(), message)
}

// Warn implements UI.
func (t *Terminal) Warn(message string) {
	fmt.Fprintln(t.out(), t.styles.ErrorLine.Render(message))
}

// Busy implements UI. The spinner renders until fn returns; fn runs on the
// Bubble Tea command goroutine, so it must not touch the terminal itself.
func (t *Terminal) Busy(label string, fn func() error) error {
	run := func() tea.Msg {
		return busyDoneMsg{err: fn()}
	}
	final, err := t.program(newBusyModel(label, run), tea.WithInput(nil)).Run()
	if err != nil {
		return fmt.Errorf("run busy spinner: %w", err)
	}
	m, ok := final.(busyModel)
	if !ok {
		return fmt.Errorf("unexpected busy model %T", final)
	}
	return m.err
}

// selectModel renders a single-choice menu. Left/right jump straight to the
// previous/next page rows when the choice list carries them, mirroring the
// arrow-key pagination of the original prompt widget.
type selectModel struct {
	keys    keyMap
	styles  styles
	prompt  string
	choices []string

	cursor    int
	prevIdx   int // index of the previous-page row, -1 when absent
	nextIdx   int // index of the next-page row, -1 when absent
	choice    string
	cancelled bool
	done      bool
}

func newSelectModel(prompt string, choices []string, keys keyMap, st styles) selectModel {
	m := selectModel{
		keys:    keys,
		styles:  st,
		prompt:  prompt,
		choices: choices,
		prevIdx: -1,
		nextIdx: -1,
	}
	for i, choice := range choices {
		if strings.Contains(choice, "Previous Page") {
			m.prevIdx = i
		}
		if strings.Contains(choice, "Next Page") {
			m.nextIdx = i
		}
	}
	return m
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.cursor = (m.cursor - 1 + len(m.choices)) % len(m.choices)
	case key.Matches(keyMsg, m.keys.Down):
		m.cursor = (m.cursor + 1) % len(m.choices)
	case key.Matches(keyMsg, m.keys.Left):
		if m.prevIdx >= 0 {
			m.choice = m.choices[m.prevIdx]
			m.done = true
			return m, tea.Quit
		}
	case key.Matches(keyMsg, m.keys.Right):
		if m.nextIdx >= 0 {
			m.choice = m.choices[m.nextIdx]
			m.done = true
			return m, tea.Quit
		}
	case key.Matches(keyMsg, m.keys.Confirm):
		m.choice = m.choices[m.cursor]
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Cancel):
		m.cancelled = true
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m selectModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.Prompt.Render(m.prompt))
	b.WriteString("\n\n")
	for i, choice := range m.choices {
		if isHeaderRow(choice) {
			b.WriteString("  " + m.styles.Header.Render(choice) + "\n")
			continue
		}
		if i == m.cursor {
			b.WriteString(m.styles.Cursor.Render("→") + " " + m.styles.Selected.Render(choice) + "\n")
		} else {
			b.WriteString("  " + m.styles.Choice.Render(choice) + "\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Dim.Render("↑/↓ select · ←/→ pages · enter confirm · esc back"))
	b.WriteString("\n")
	return b.String()
}

func isHeaderRow(choice string) bool {
	return strings.HasPrefix(choice, "--- ") && strings.HasSuffix(choice, " ---")
}

// inputModel reads one line of text.
type inputModel struct {
	keys      keyMap
	styles    styles
	prompt    string
	text      textinput.Model
	cancelled bool
	done      bool
}

func newInputModel(prompt string, keys keyMap, st styles) inputModel {
	text := textinput.New()
	text.Focus()
	text.Prompt = "> "
	return inputModel{
		keys:   keys,
		styles: st,
		prompt: prompt,
		text:   text,
	}
}

func (m inputModel) Init() tea.Cmd { return textinput.Blink }

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			m.done = true
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.text, cmd = m.text.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done {
		return ""
	}
	return m.styles.Prompt.Render(m.prompt) + "\n" + m.text.View() + "\n"
}

// confirmModel asks a yes/no question; enter means no, matching the original
// prompts that default to the safe answer.
type confirmModel struct {
	keys      keyMap
	styles    styles
	prompt    string
	answer    bool
	cancelled bool
	done      bool
}

func newConfirmModel(prompt string, keys keyMap, st styles) confirmModel {
	return confirmModel{keys: keys, styles: st, prompt: prompt}
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Yes):
		m.answer = true
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.No), key.Matches(keyMsg, m.keys.Confirm):
		m.answer = false
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Cancel):
		m.cancelled = true
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	return m.styles.Prompt.Render(m.prompt) + m.styles.Dim.Render(" [y/N] ") + "\n"
}

// ackModel waits for a keypress so the operator can read the output above it.
type ackModel struct {
	styles styles
	done   bool
}

func newAckModel(st styles) ackModel {
	return ackModel{styles: st}
}

func (m ackModel) Init() tea.Cmd { return nil }

func (m ackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m ackModel) View() string {
	if m.done {
		return ""
	}
	return m.styles.Dim.Render("Press any key to continue...") + "\n"
}

type busyDoneMsg struct {
	err error
}

// busyModel shows a spinner while a blocking call runs.
type busyModel struct {
	spinner spinner.Model
	label   string
	run     tea.Cmd
	err     error
	done    bool
}

func newBusyModel(label string, run tea.Cmd) busyModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)
	return busyModel{
		spinner: s,
		label:   label,
		run:     run,
	}
}

func (m busyModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m busyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case busyDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m busyModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}
