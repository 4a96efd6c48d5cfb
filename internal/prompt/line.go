package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// LineChooser prints a numbered list and reads the choice from a line of input.
type LineChooser struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLineChooser reads answers from in and writes menus to out.
func NewLineChooser(in io.Reader, out io.Writer) *LineChooser {
	return &LineChooser{in: bufio.NewReader(in), out: out}
}

// Choose repeats the question until it gets a valid answer. A number picks that
// option, "F" switches to the expanded list, and an empty line takes the default
// when one is flagged. End of input cancels.
func (c *LineChooser) Choose(ctx context.Context, menu Menu) (string, error) {
	menu = menu.normalize()
	if len(menu.Options) == 0 {
		return "", ErrNoOptions
	}
	options, expandable := menu.Options, menu.expandable()
	hasDefault := menu.defaultFlag() != nil

	fmt.Fprintln(c.out, FormatOptions(Decorate(menu.Flags, options)))
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		fmt.Fprint(c.out, instructions(expandable, hasDefault))

		line, err := c.in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			if errors.Is(err, io.EOF) {
				return "", ErrCancelled
			}
			return "", fmt.Errorf("failed to read choice: %w", err)
		}
		choice := strings.TrimRight(line, "\r\n")

		switch {
		case isIndex(choice, len(options)):
			n, _ := strconv.Atoi(choice)
			return options[n], nil
		case strings.EqualFold(choice, "F") && expandable:
			options, expandable = menu.Expanded, false
			fmt.Fprintln(c.out, FormatOptions(Decorate(menu.Flags, options)))
		case choice == "" && hasDefault:
			if i := menu.defaultIndex(options); i >= 0 {
				return options[i], nil
			}
		default:
			fmt.Fprintln(c.out, "Invalid choice!")
		}
	}
}

func isIndex(s string, n int) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	i, err := strconv.Atoi(s)
	return err == nil && i < n
}
