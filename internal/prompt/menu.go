// Package prompt asks the user to pick one option from a list. A Chooser is
// injected wherever a command needs a choice, so commands run the same against
// a terminal menu, piped input, or a test script.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

// ErrCancelled is returned when the user backs out of a menu.
var ErrCancelled = errors.New("cancelled by user")

// ErrNoOptions is returned for a menu with nothing to choose from.
var ErrNoOptions = errors.New("no options to choose from")

// Labels with special meaning in menus.
const (
	Current = "CURRENT"
	// Default marks the option picked when the user just hits enter.
	Default = "DEFAULT"
)

// Flag marks every option it matches with a label, e.g. "Nethack-3.4.4.pkg (DEFAULT)".
type Flag struct {
	Label string
	Match func(option string) bool
}

// Menu is a list of options, optionally expandable to a longer list.
type Menu struct {
	Options  []string
	Expanded []string
	Flags    []Flag
}

// Chooser returns one of the menu's options.
type Chooser interface {
	Choose(ctx context.Context, menu Menu) (string, error)
}

// New returns a full-screen chooser when both ends are terminals, and a
// line-oriented one otherwise.
func New(in, out *os.File) Chooser {
	if isatty.IsTerminal(in.Fd()) && isatty.IsTerminal(out.Fd()) {
		return &TeaChooser{In: in, Out: out}
	}
	return NewLineChooser(in, out)
}

// normalize falls back to the expanded list when the short list is empty.
func (m Menu) normalize() Menu {
	if len(m.Options) == 0 {
		m.Options, m.Expanded = m.Expanded, nil
	}
	return m
}

func (m Menu) expandable() bool { return len(m.Expanded) > 0 }

func (m Menu) defaultFlag() *Flag {
	for i := range m.Flags {
		if m.Flags[i].Label == Default {
			return &m.Flags[i]
		}
	}
	return nil
}

// defaultIndex returns the index of the last option flagged as the default, or -1.
func (m Menu) defaultIndex(options []string) int {
	flag := m.defaultFlag()
	if flag == nil {
		return -1
	}
	for i := len(options) - 1; i >= 0; i-- {
		if flag.Match(options[i]) {
			return i
		}
	}
	return -1
}

// Decorate appends " (LABEL)" to each option once per matching flag.
func Decorate(flags []Flag, options []string) []string {
	decorated := make([]string, len(options))
	for i, opt := range options {
		decorated[i] = opt
		for _, f := range flags {
			if f.Match(opt) {
				decorated[i] += " (" + f.Label + ")"
			}
		}
	}
	return decorated
}

// FormatOptions numbers options from zero with the numbers right-aligned.
func FormatOptions(options []string) string {
	width := len(strconv.Itoa(len(options))) + 1
	var b strings.Builder
	b.WriteByte('\n')
	for i, opt := range options {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%*d: %s", width, i, opt)
	}
	return b.String()
}

func instructions(expandable, hasDefault bool) string {
	lines := []string{"\nEnter a number to select from list."}
	if expandable {
		lines = append(lines, "Enter 'F' to expand the options list.")
	}
	if hasDefault {
		lines = append(lines, "Hit <Enter> to accept default choice.")
	}
	lines = append(lines, "Please choose an object: ")
	return strings.Join(lines, "\n")
}
