package ui

import "io"

// Severity is the visual weight of a piece of inline text.
type Severity uint8

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarn
	SeverityError
	SeverityCritical
)

// StyledText is a value to embed in a line with a colour picked by
// Severity.
type StyledText struct {
	Text     string
	Severity Severity
}

// Named renders a known name in green and an unknown one in red.
func Named(name string) StyledText {
	if name == "" || name == "unknown" {
		return StyledText{Text: "unknown", Severity: SeverityError}
	}
	return StyledText{Text: name, Severity: SeveritySuccess}
}

// UI is everything the commands need from the terminal. TerminalUI is the
// real one; RecordingUI captures output and serves scripted input in tests.
//
// A child from Indent shares the parent's reader and writer, so scripted
// input keeps its order across nested panels:
//
//	u.Section("Apes (APE)")
//	RenderHoldings(u.Indent(), snapshot)
//	to := u.Ask(nil)
//	u.Interpret("0xfB69...d359 (bob)")
type UI interface {
	// Style colours t. Without colour support the text comes back as is.
	Style(t StyledText) string

	Info(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)
	// Error only prints; the caller decides whether to stop.
	Error(format string, args ...any)
	// Critical is for the lines a user must not miss around a transfer,
	// such as who pays whom and the tx hash.
	Critical(format string, args ...any)

	// Section prints "===== title =====".
	Section(title string)
	// KeyValue prints label/value rows with the values aligned.
	KeyValue(rows [][2]string)
	Table(headers []string, rows [][]string)
	// TableWithGroups separates each group of rows with a rule.
	TableWithGroups(headers []string, groups [][][]string)

	// Spinner runs until the returned stop function is called.
	Spinner(msg string) func()

	// Interpret echoes what an input was understood as, right after Ask.
	Interpret(value string)

	// Ask reads a line after a "> " prompt until validate accepts it. A nil
	// validate accepts anything.
	Ask(validate func(string) error) string
	Confirm(prompt string, defaultYes bool) bool
	// Choose returns the 0-based index of the picked option.
	Choose(prompt string, options []string) int

	Indent() UI
	// Writer prefixes every line with the current indentation. Call data
	// dumps go through it.
	Writer() io.Writer
}
