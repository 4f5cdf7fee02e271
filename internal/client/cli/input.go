package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints a password prompt to w and reads a password
// from the user's terminal without echo. A newline is printed after
// the read to keep the UI tidy.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPassword(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// errNotNumber is returned by the numeric prompts for input that does not
// parse.
var errNotNumber = errors.New("not a number")

// GetInt prompts for a whole number. An empty answer yields ok=false.
func GetInt(reader *bufio.Reader, prompt string, w io.Writer) (n int, ok bool, err error) {
	s, err := getSimpleText(reader, prompt, w)
	if err != nil || s == "" {
		return 0, false, err
	}
	n, err = strconv.Atoi(s)
	if err != nil {
		return 0, false, fmt.Errorf("%q: %w", s, errNotNumber)
	}
	return n, true, nil
}

// GetFloat prompts for an optional decimal number. An empty answer yields nil.
func GetFloat(reader *bufio.Reader, prompt string, w io.Writer) (*float64, error) {
	s, err := getSimpleText(reader, prompt, w)
	if err != nil || s == "" {
		return nil, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", s, errNotNumber)
	}
	return &f, nil
}

// GetOptional prompts for free text. An empty answer yields nil.
func GetOptional(reader *bufio.Reader, prompt string, w io.Writer) (*string, error) {
	s, err := getSimpleText(reader, prompt, w)
	if err != nil || s == "" {
		return nil, err
	}
	return &s, nil
}
