package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// TerminalPrompter reads the email from a line of input and the password
// without echo when input is a terminal.
type TerminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

// NewTerminalPrompter prompts on out and reads from in.
func NewTerminalPrompter(in *os.File, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{in: bufio.NewReader(in), out: out, fd: int(in.Fd())}
}

func (p *TerminalPrompter) Credentials(ctx context.Context) (string, string, error) {
	fmt.Fprint(p.out, "What is your My Hours email address? ")
	email, err := p.readLine()
	if err != nil {
		return "", "", fmt.Errorf("failed to read email: %w", err)
	}
	if err := ValidateEmail(email); err != nil {
		return "", "", err
	}

	fmt.Fprint(p.out, "What is your My Hours password? ")
	var password string
	if term.IsTerminal(p.fd) {
		raw, err := term.ReadPassword(p.fd)
		fmt.Fprintln(p.out) // New line after password input
		if err != nil {
			return "", "", fmt.Errorf("failed to read password: %w", err)
		}
		password = string(raw)
	} else {
		password, err = p.readLine()
		if err != nil {
			return "", "", fmt.Errorf("failed to read password: %w", err)
		}
	}
	if password == "" {
		return "", "", fmt.Errorf("password cannot be empty")
	}
	return email, password, ctx.Err()
}

func (p *TerminalPrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
