package containerizer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedType is returned when asked to build a project without a known type.
var ErrUnsupportedType = errors.New("project type not supported")

// maxOutputLines limits how much of the daemon's output is kept in an error.
const maxOutputLines = 20

// BuildError is returned when the image build fails.
type BuildError struct {
	Tag    string
	Output string // tail of the build log
	Err    error
}

func (e *BuildError) Error() string {
	return formatDaemonError(fmt.Sprintf("failed to build image %s", e.Tag), e.Err, e.Output)
}

func (e *BuildError) Unwrap() error { return e.Err }

// PushError is returned when logging in to the registry or pushing the image fails.
type PushError struct {
	Tag    string
	Stage  string // "login" or "push"
	Output string
	Err    error
}

func (e *PushError) Error() string {
	return formatDaemonError(fmt.Sprintf("failed to %s image %s", e.Stage, e.Tag), e.Err, e.Output)
}

func (e *PushError) Unwrap() error { return e.Err }

func formatDaemonError(prefix string, err error, output string) string {
	msg := fmt.Sprintf("%s: %v", prefix, err)
	if output != "" {
		msg += "\n" + output
	}
	return msg
}

// tail returns the last n lines of s.
func tail(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
