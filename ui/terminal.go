package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/logrusorgru/aurora"
	runewidth "github.com/mattn/go-runewidth"
	indent "github.com/openconfig/goyang/pkg/indent"
	"golang.org/x/term"
)

const (
	indentUnit   = "  "
	sectionWidth = 50
	promptMark   = "> "
	echoMark     = "→ "
)

var borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

// TerminalUI is the wallet's interactive console. Panels opened from a menu
// are printed through Indent so balances and holdings sit under their
// asset's section.
type TerminalUI struct {
	depth   int
	out     io.Writer
	in      *bufio.Reader
	au      aurora.Aurora
	animate bool
}

// NewTerminalUI enables colours and the spinner animation only when stdout
// is a terminal, so piped output stays plain.
func NewTerminalUI() *TerminalUI {
	tty := term.IsTerminal(int(os.Stdout.Fd()))
	return NewTerminalUIWithIO(os.Stdout, os.Stdin, tty)
}

func NewTerminalUIWithIO(out io.Writer, in io.Reader, tty bool) *TerminalUI {
	return &TerminalUI{
		out:     out,
		in:      bufio.NewReader(in),
		au:      aurora.NewAurora(tty),
		animate: tty,
	}
}

func (u *TerminalUI) margin() string {
	return strings.Repeat(indentUnit, u.depth)
}

func (u *TerminalUI) println(line string) {
	fmt.Fprintf(u.out, "%s%s\n", u.margin(), line)
}

func (u *TerminalUI) paint(sev Severity, text string) string {
	switch sev {
	case SeveritySuccess:
		return u.au.Green(text).String()
	case SeverityWarn:
		return u.au.Yellow(text).String()
	case SeverityError:
		return u.au.Red(text).String()
	case SeverityCritical:
		return u.au.Bold(text).String()
	}
	return text
}

func (u *TerminalUI) say(sev Severity, format string, args []any) {
	u.println(u.paint(sev, fmt.Sprintf(format, args...)))
}

func (u *TerminalUI) Style(t StyledText) string { return u.paint(t.Severity, t.Text) }

func (u *TerminalUI) Info(format string, args ...any)    { u.say(SeverityInfo, format, args) }
func (u *TerminalUI) Success(format string, args ...any) { u.say(SeveritySuccess, format, args) }
func (u *TerminalUI) Warn(format string, args ...any)    { u.say(SeverityWarn, format, args) }
func (u *TerminalUI) Error(format string, args ...any)   { u.say(SeverityError, format, args) }
func (u *TerminalUI) Critical(format string, args ...any) {
	u.say(SeverityCritical, format, args)
}

// Section centres title in a bar of '=' between blank lines:
//
//	==================== USDC ====================
//
// Token names may be wide runes, so the bar is sized on display width.
func (u *TerminalUI) Section(title string) {
	titled := " " + title + " "
	bars := max(sectionWidth-runewidth.StringWidth(titled), 6)
	left := bars / 2
	fmt.Fprintf(u.out, "\n%s%s%s%s\n\n",
		u.margin(), strings.Repeat("=", left), titled, strings.Repeat("=", bars-left))
}

// Interpret echoes one level deeper than the prompt it answers.
func (u *TerminalUI) Interpret(value string) {
	fmt.Fprintf(u.out, "%s%s%s%s\n", u.margin(), indentUnit, echoMark, u.au.Cyan(value).String())
}

// Ask stops at EOF and returns what was read so far, so a closed stdin
// cannot spin the prompt loop.
func (u *TerminalUI) Ask(validate func(string) error) string {
	for {
		fmt.Fprint(u.out, u.margin()+promptMark)
		line, readErr := u.in.ReadString('\n')
		input := strings.TrimRight(line, "\r\n")
		if validate == nil || readErr != nil {
			return input
		}
		err := validate(input)
		if err == nil {
			return input
		}
		u.Error("%s", err)
	}
}

func yesNo(s string) (answer string, err error) {
	answer = strings.ToLower(strings.TrimSpace(s))
	switch answer {
	case "", "y", "n":
		return answer, nil
	}
	return "", fmt.Errorf("please enter y or n")
}

// Confirm takes an empty answer as the default.
func (u *TerminalUI) Confirm(prompt string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	u.Info("%s %s", prompt, hint)
	answer, _ := yesNo(u.Ask(func(s string) error {
		_, err := yesNo(s)
		return err
	}))
	if answer == "" {
		return defaultYes
	}
	return answer == "y"
}

// Choose picks the last option when input ends, which the menus use for
// quit or back.
func (u *TerminalUI) Choose(prompt string, options []string) int {
	for i, opt := range options {
		u.Info("%d. %s", i+1, opt)
	}
	u.Info("%s [1-%d]", prompt, len(options))
	pick := func(s string) (int, error) {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < 1 || n > len(options) {
			return 0, fmt.Errorf("please enter a number between 1 and %d", len(options))
		}
		return n - 1, nil
	}
	idx, err := pick(u.Ask(func(s string) error {
		_, err := pick(s)
		return err
	}))
	if err != nil {
		// stdin closed
		return len(options) - 1
	}
	return idx
}

func (u *TerminalUI) KeyValue(rows [][2]string) {
	width := 0
	for _, r := range rows {
		width = max(width, len(r[0]))
	}
	for _, r := range rows {
		u.println(fmt.Sprintf("%-*s  %s", width, r[0], r[1]))
	}
}

func (u *TerminalUI) Table(headers []string, rows [][]string) {
	u.TableWithGroups(headers, [][][]string{rows})
}

// TableWithGroups draws one box for all groups with a rule between them.
// The asset list uses it to keep tokens apart from collections.
func (u *TerminalUI) TableWithGroups(headers []string, groups [][][]string) {
	if len(groups) == 0 {
		return
	}
	g := newGrid(headers, groups)
	u.println(g.rule("┌", "┬", "┐"))
	if len(headers) > 0 {
		u.println(g.row(headers))
		u.println(g.rule("├", "┼", "┤"))
	}
	for i, rows := range groups {
		if i > 0 {
			u.println(g.rule("├", "┼", "┤"))
		}
		for _, r := range rows {
			u.println(g.row(r))
		}
	}
	u.println(g.rule("└", "┴", "┘"))
}

// grid holds the column widths of a table. Widths are measured on the
// visible text so styled cells line up with plain ones.
type grid struct {
	widths []int
}

func cellWidth(s string) int {
	return runewidth.StringWidth(ansi.Strip(s))
}

func newGrid(headers []string, groups [][][]string) grid {
	ncols := len(headers)
	for _, rows := range groups {
		for _, r := range rows {
			ncols = max(ncols, len(r))
		}
	}
	g := grid{widths: make([]int, ncols)}
	g.fit(headers)
	for _, rows := range groups {
		for _, r := range rows {
			g.fit(r)
		}
	}
	return g
}

func (g grid) fit(cells []string) {
	for i, c := range cells {
		g.widths[i] = max(g.widths[i], cellWidth(c))
	}
}

func (g grid) rule(left, mid, right string) string {
	parts := make([]string, len(g.widths))
	for i, w := range g.widths {
		parts[i] = strings.Repeat("─", w+2)
	}
	return borderStyle.Render(left + strings.Join(parts, mid) + right)
}

func (g grid) row(cells []string) string {
	sep := borderStyle.Render("│")
	var b strings.Builder
	b.WriteString(sep)
	for i, w := range g.widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteString(" " + cell + strings.Repeat(" ", w-cellWidth(cell)) + " ")
		b.WriteString(sep)
	}
	return b.String()
}

// Spinner prints msg once instead of animating when output is not a
// terminal.
func (u *TerminalUI) Spinner(msg string) func() {
	if !u.animate {
		u.println(msg)
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 80*time.Millisecond, spinner.WithWriter(u.out))
	s.Prefix = u.margin()
	s.Suffix = " " + msg
	s.Start()
	return func() {
		s.Stop()
		// the spinner clears its line without a newline
		fmt.Fprintln(u.out)
	}
}

func (u *TerminalUI) Indent() UI {
	child := *u
	child.depth++
	return &child
}

// Writer is for free-form blocks such as call data dumps. Every line gets
// the current margin.
func (u *TerminalUI) Writer() io.Writer {
	if u.depth == 0 {
		return u.out
	}
	return indent.NewWriter(u.out, u.margin())
}
