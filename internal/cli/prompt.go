package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("aborted")

// LineReader is the part of *readline.Instance the prompter needs.
type LineReader interface {
	Readline() (string, error)
	ReadPassword(prompt string) ([]byte, error)
	SetPrompt(prompt string)
	Close() error
}

// Prompter asks the user for values on an interactive terminal.
type Prompter struct {
	rl LineReader
}

// NewPrompter creates a Prompter backed by a readline instance on the terminal.
func NewPrompter() (*Prompter, error) {
	rl, err := readline.NewEx(&readline.Config{
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline instance: %w", err)
	}
	return &Prompter{rl: rl}, nil
}

// NewPrompterWithReader creates a Prompter reading from rl.
func NewPrompterWithReader(rl LineReader) *Prompter {
	return &Prompter{rl: rl}
}

// Close releases the terminal.
func (p *Prompter) Close() error {
	return p.rl.Close()
}

// Ask prints question and returns the answer. An empty answer yields def.
func (p *Prompter) Ask(question, def string) (string, error) {
	prompt := question + ": "
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]: ", question, def)
	}
	p.rl.SetPrompt(prompt)

	line, err := p.rl.Readline()
	if err != nil {
		return "", mapReadError(err)
	}

	answer := strings.TrimSpace(line)
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Confirm asks a yes/no question. An empty answer yields def.
func (p *Prompter) Confirm(question string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}

	for {
		answer, err := p.Ask(fmt.Sprintf("%s (%s)", question, hint), "")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}

// AskSecret reads a value without echoing it.
func (p *Prompter) AskSecret(question string) (string, error) {
	secret, err := p.rl.ReadPassword(question + ": ")
	if err != nil {
		return "", mapReadError(err)
	}
	return string(secret), nil
}

func mapReadError(err error) error {
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return ErrAborted
	}
	return err
}
