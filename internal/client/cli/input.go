package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/devfolio/internal/common"
	"golang.org/x/term"
)

// readPassword reads without echo; tests replace it.
var readPassword = term.ReadPassword

// prompter asks questions on the REPL's own reader, so answers and commands
// share one buffer.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in *bufio.Reader, out io.Writer) *prompter {
	return &prompter{in: in, out: out}
}

// readLine returns one line without its terminator. A final line without a
// newline is returned as is; io.EOF is only reported when nothing was read.
func (p *prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Line prints "label: " and returns the trimmed answer.
func (p *prompter) Line(label string) (string, error) {
	if _, err := fmt.Fprintf(p.out, "%s: ", label); err != nil {
		return "", err
	}
	line, err := p.readLine()
	return strings.TrimSpace(line), err
}

// Secret reads a password from the terminal. The raw bytes are wiped before
// returning.
func (p *prompter) Secret(label string) (string, error) {
	if _, err := fmt.Fprintf(p.out, "%s: ", label); err != nil {
		return "", err
	}
	raw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	defer common.Wipe(raw)
	return string(raw), nil
}

// Text collects lines until an empty one or end of input.
func (p *prompter) Text(label string) (string, error) {
	if _, err := fmt.Fprintf(p.out, "%s (empty line to finish):\n", label); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, err := p.readLine()
		if errors.Is(err, io.EOF) || line == "" {
			break
		}
		if err != nil {
			return "", err
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// Confirm asks a y/n question. An empty answer yields def; anything other
// than y or yes is no.
func (p *prompter) Confirm(label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	answer, err := p.Line(fmt.Sprintf("%s [%s]", label, hint))
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
