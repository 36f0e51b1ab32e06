// Package prompt abstracts interactive secret and line input so the vault
// engine and commands can be exercised without a terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Source supplies user input to the command layer. The vault engine itself
// only ever sees the byte buffers a Source produced.
type Source interface {
	// ReadPassword reads a secret without echoing it. The caller owns the
	// returned buffer and must wipe it after use.
	ReadPassword(label string) ([]byte, error)

	// ReadLine reads one line of non-secret input.
	ReadLine(label string) (string, error)

	// Confirm asks a yes/no question with a default answer.
	Confirm(label string, def bool) (bool, error)
}

// Terminal is the interactive Source backed by the controlling terminal.
// When stdin is not a terminal (piped input), it degrades to plain line
// reads so scripted use keeps working.
type Terminal struct {
	In  *os.File
	Out io.Writer

	// reader is shared across reads so piped multi-line input is not lost
	// to buffering.
	reader *bufio.Reader
}

// NewTerminal returns a Terminal on stdin/stderr. Prompts go to stderr so
// command output stays pipeable.
func NewTerminal() *Terminal {
	return &Terminal{In: os.Stdin, Out: os.Stderr}
}

// ReadPassword reads a secret with echo disabled.
func (t *Terminal) ReadPassword(label string) ([]byte, error) {
	fmt.Fprintf(t.Out, "%s: ", label)
	fd := int(t.In.Fd())
	if term.IsTerminal(fd) {
		password, err := term.ReadPassword(fd)
		fmt.Fprintln(t.Out)
		if err != nil {
			return nil, fmt.Errorf("prompt: failed to read password: %w", err)
		}
		return password, nil
	}

	// Piped input fallback.
	line, err := t.readLine()
	if err != nil {
		return nil, err
	}
	return []byte(line), nil
}

// ReadLine reads one line of input, trimming the trailing newline.
func (t *Terminal) ReadLine(label string) (string, error) {
	fmt.Fprintf(t.Out, "%s: ", label)
	return t.readLine()
}

// Confirm asks a [y/N] or [Y/n] question.
func (t *Terminal) Confirm(label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(t.Out, "%s [%s]: ", label, hint)
	line, err := t.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (t *Terminal) readLine() (string, error) {
	if t.reader == nil {
		t.reader = bufio.NewReader(t.In)
	}
	line, err := t.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("prompt: failed to read input: %w", err)
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// Static is a canned Source for tests: it replays queued answers.
type Static struct {
	Passwords []string
	Lines     []string
	Confirms  []bool
}

func (s *Static) ReadPassword(string) ([]byte, error) {
	if len(s.Passwords) == 0 {
		return nil, io.EOF
	}
	pw := s.Passwords[0]
	s.Passwords = s.Passwords[1:]
	return []byte(pw), nil
}

func (s *Static) ReadLine(string) (string, error) {
	if len(s.Lines) == 0 {
		return "", io.EOF
	}
	line := s.Lines[0]
	s.Lines = s.Lines[1:]
	return line, nil
}

func (s *Static) Confirm(string, bool) (bool, error) {
	if len(s.Confirms) == 0 {
		return false, io.EOF
	}
	c := s.Confirms[0]
	s.Confirms = s.Confirms[1:]
	return c, nil
}
