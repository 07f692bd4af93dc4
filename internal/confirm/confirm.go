// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package confirm implements the yes/no gate shown before destructive
// operations.
package confirm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompt asks questions on out and reads answers from in.
type Prompt struct {
	in          io.Reader
	out         io.Writer
	assumeYes   bool
	interactive bool
}

// New returns a prompt. When interactive is false every question is
// declined unless assumeYes is set.
func New(in io.Reader, out io.Writer, interactive, assumeYes bool) *Prompt {
	return &Prompt{in: in, out: out, interactive: interactive, assumeYes: assumeYes}
}

// Stdin returns a prompt on the process's standard streams. Input that is
// not a terminal counts as non-interactive.
func Stdin(assumeYes bool) *Prompt {
	return New(os.Stdin, os.Stderr, term.IsTerminal(int(os.Stdin.Fd())), assumeYes)
}

// Confirm reports whether the operator accepted question. Accepted answers
// are "s", "sim", "y" and "yes" in any case.
func (p *Prompt) Confirm(question string) (bool, error) {
	if p.assumeYes {
		fmt.Fprintf(p.out, "%s (s/n): s (--yes)\n", question)
		return true, nil
	}
	if !p.interactive {
		fmt.Fprintf(p.out, "%s (s/n): n (stdin is not a terminal; pass --yes to proceed)\n", question)
		return false, nil
	}

	fmt.Fprintf(p.out, "%s (s/n): ", question)
	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	return Accepts(line), nil
}

// Accepts reports whether answer is an affirmative reply.
func Accepts(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "s", "sim", "y", "yes":
		return true
	}
	return false
}
