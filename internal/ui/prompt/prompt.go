// File: internal/ui/prompt/prompt.go
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Defines the interface for prompting the user for input
type Prompter interface {
	// Asks the user to type an exact value, such as the object key being deleted
	Confirm(message string, expectedValue string) (bool, error)
	// Asks a yes/no question; anything but y or yes is a no
	ConfirmYes(message string) (bool, error)
}

type StandardPrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// Creates a new StandardPrompter with the given input and output streams
func NewStandardPrompter(in io.Reader, out io.Writer) *StandardPrompter {
	return &StandardPrompter{
		reader: bufio.NewReader(in),
		writer: out,
	}
}

func (p *StandardPrompter) Confirm(message string, expectedValue string) (bool, error) {
	if expectedValue == "" {
		return false, fmt.Errorf("expected confirmation value cannot be empty")
	}

	fmt.Fprintln(p.writer, message)
	fmt.Fprintf(p.writer, "To confirm, type '%s': ", expectedValue)

	input, ok, err := p.readLine()
	if err != nil || !ok {
		return false, err
	}
	return input == expectedValue, nil
}

func (p *StandardPrompter) ConfirmYes(message string) (bool, error) {
	fmt.Fprintf(p.writer, "%s [y/N]: ", message)

	input, ok, err := p.readLine()
	if err != nil || !ok {
		return false, err
	}

	switch strings.ToLower(input) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Reads one trimmed line; ok is false when input ended before any text
func (p *StandardPrompter) readLine() (string, bool, error) {
	input, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			input = strings.TrimSpace(input)
			return input, input != "", nil
		}
		return "", false, fmt.Errorf("error reading user input: %w", err)
	}
	return strings.TrimSpace(input), true, nil
}
