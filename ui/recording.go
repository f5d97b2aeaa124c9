package ui

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	indent "github.com/openconfig/goyang/pkg/indent"
)

// Entry is one recorded UI call. Value is the formatted text, or the input
// served for Ask.
type Entry struct {
	Method string
	Value  string
}

// script is shared by a RecordingUI and every child from Indent, so nested
// panels consume one input queue and append to one log.
type script struct {
	mu      sync.Mutex
	log     []Entry
	inputs  []string
	next    int
	written bytes.Buffer
}

// RecordingUI captures every call in a log and serves scripted inputs in
// order to Ask, Confirm and Choose. Running out of inputs panics so a wrong
// script fails loudly.
type RecordingUI struct {
	s     *script
	depth int
}

func NewRecordingUI(inputs ...string) *RecordingUI {
	return &RecordingUI{s: &script{inputs: inputs}}
}

func (r *RecordingUI) record(method, value string) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.log = append(r.s.log, Entry{Method: method, Value: value})
}

func (r *RecordingUI) take(caller string) string {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.next >= len(r.s.inputs) {
		panic(fmt.Sprintf("RecordingUI: %s wants input but all %d scripted inputs are used", caller, len(r.s.inputs)))
	}
	in := r.s.inputs[r.s.next]
	r.s.next++
	return in
}

func (r *RecordingUI) Style(t StyledText) string { return t.Text }

func (r *RecordingUI) Info(format string, args ...any) {
	r.record("Info", fmt.Sprintf(format, args...))
}
func (r *RecordingUI) Success(format string, args ...any) {
	r.record("Success", fmt.Sprintf(format, args...))
}
func (r *RecordingUI) Warn(format string, args ...any) {
	r.record("Warn", fmt.Sprintf(format, args...))
}
func (r *RecordingUI) Error(format string, args ...any) {
	r.record("Error", fmt.Sprintf(format, args...))
}
func (r *RecordingUI) Critical(format string, args ...any) {
	r.record("Critical", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Section(title string)   { r.record("Section", title) }
func (r *RecordingUI) Interpret(value string) { r.record("Interpret", value) }

// KeyValue records one "label: value" entry per row.
func (r *RecordingUI) KeyValue(rows [][2]string) {
	for _, row := range rows {
		r.record("KeyValue", row[0]+": "+row[1])
	}
}

func (r *RecordingUI) Table(headers []string, rows [][]string) {
	r.TableWithGroups(headers, [][][]string{rows})
}

// TableWithGroups records cells joined by " | ", with a TableDivider entry
// where the terminal draws a rule between groups.
func (r *RecordingUI) TableWithGroups(headers []string, groups [][][]string) {
	if len(headers) > 0 {
		r.record("TableHeader", strings.Join(headers, " | "))
	}
	for i, rows := range groups {
		if i > 0 {
			r.record("TableDivider", "")
		}
		for _, row := range rows {
			r.record("TableRow", strings.Join(row, " | "))
		}
	}
}

func (r *RecordingUI) Spinner(msg string) func() {
	r.record("Spinner", msg)
	return func() {}
}

// Ask panics when the scripted input fails validate: there is nobody to
// correct it.
func (r *RecordingUI) Ask(validate func(string) error) string {
	in := r.take("Ask")
	r.record("Ask", in)
	if validate != nil {
		if err := validate(in); err != nil {
			panic(fmt.Sprintf("RecordingUI: scripted input %q was rejected: %s", in, err))
		}
	}
	return in
}

// Confirm accepts "y" or "yes". An empty answer is defaultYes.
func (r *RecordingUI) Confirm(prompt string, defaultYes bool) bool {
	r.record("Confirm", prompt)
	switch strings.ToLower(strings.TrimSpace(r.take("Confirm"))) {
	case "":
		return defaultYes
	case "y", "yes":
		return true
	}
	return false
}

// Choose takes a 1-based number or the option text, in any case.
func (r *RecordingUI) Choose(prompt string, options []string) int {
	r.record("Choose", prompt)
	in := r.take("Choose")
	if n, err := strconv.Atoi(strings.TrimSpace(in)); err == nil && n >= 1 && n <= len(options) {
		return n - 1
	}
	for i, opt := range options {
		if strings.EqualFold(in, opt) {
			return i
		}
	}
	panic(fmt.Sprintf("RecordingUI: %q matches none of %v for %q", in, options, prompt))
}

func (r *RecordingUI) Indent() UI {
	return &RecordingUI{s: r.s, depth: r.depth + 1}
}

// Writer indents the way TerminalUI does, so Output shows nesting.
func (r *RecordingUI) Writer() io.Writer {
	w := &lockedWriter{s: r.s}
	if r.depth == 0 {
		return w
	}
	return indent.NewWriter(w, strings.Repeat(indentUnit, r.depth))
}

type lockedWriter struct{ s *script }

func (w *lockedWriter) Write(p []byte) (int, error) {
	w.s.mu.Lock()
	defer w.s.mu.Unlock()
	return w.s.written.Write(p)
}

func (r *RecordingUI) Entries() []Entry {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]Entry(nil), r.s.log...)
}

// Values returns the values recorded by one method, in order.
func (r *RecordingUI) Values(method string) []string {
	var out []string
	for _, e := range r.Entries() {
		if e.Method == method {
			out = append(out, e.Value)
		}
	}
	return out
}

func (r *RecordingUI) InfoMessages() []string     { return r.Values("Info") }
func (r *RecordingUI) ErrorMessages() []string    { return r.Values("Error") }
func (r *RecordingUI) CriticalMessages() []string { return r.Values("Critical") }

// HasMessage reports whether any entry contains substr, ignoring case.
func (r *RecordingUI) HasMessage(substr string) bool {
	substr = strings.ToLower(substr)
	for _, e := range r.Entries() {
		if strings.Contains(strings.ToLower(e.Value), substr) {
			return true
		}
	}
	return false
}

// Output is everything written through Writer.
func (r *RecordingUI) Output() string {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.written.String()
}
