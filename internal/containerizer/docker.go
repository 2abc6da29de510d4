package containerizer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"racy/internal/template"
	"racy/pkg/logging"
)

const dockerSubsystem = "Docker"

// DockerRuntime implements ContainerRuntime using the Docker CLI
type DockerRuntime struct {
	binary    string
	templates *template.Engine
}

// execCommandContext is a variable to allow mocking in tests
var execCommandContext = exec.CommandContext

// lookPath is a variable to allow mocking in tests
var lookPath = exec.LookPath

// NewDockerRuntime creates a new Docker runtime instance. The daemon check runs
// under ctx.
func NewDockerRuntime(ctx context.Context, binary string) (*DockerRuntime, error) {
	// Check if docker is available
	path, err := lookPath(binary)
	if err != nil {
		return nil, fmt.Errorf("%s command not found in PATH: %w", binary, err)
	}

	// Check if docker daemon is accessible
	cmd := execCommandContext(ctx, path, "info")
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("docker daemon not accessible: %w", err)
	}

	return &DockerRuntime{binary: path, templates: template.New()}, nil
}

// Build streams the project directory, plus any generated Dockerfile, to "docker build"
// and returns the ID of the resulting image.
func (d *DockerRuntime) Build(ctx context.Context, req BuildRequest) (string, error) {
	if info, err := os.Stat(req.Dir); err != nil || !info.IsDir() {
		return "", fmt.Errorf("build context %s is not a directory", req.Dir)
	}

	gen, err := generateContext(d.templates, req)
	if err != nil {
		return "", err
	}

	logging.Info(dockerSubsystem, "Building %s image %s from %s", req.Type, req.Tag, req.Dir)

	pr, pw := io.Pipe()
	defer pr.Close()
	go func() {
		pw.CloseWithError(writeBuildContext(pw, req.Dir, gen))
	}()

	var output bytes.Buffer
	cmd := execCommandContext(ctx, d.binary, "build", "-t", req.Tag, "-")
	cmd.Stdin = pr
	out := teeOutput(&output, req.Output)
	cmd.Stdout = out
	cmd.Stderr = out

	if err := cmd.Run(); err != nil {
		return "", &BuildError{Tag: req.Tag, Output: tail(output.String(), maxOutputLines), Err: err}
	}

	id, err := d.imageID(ctx, req.Tag)
	if err != nil {
		return "", err
	}
	logging.Info(dockerSubsystem, "Built image %s (%s)", req.Tag, shortID(id))
	return id, nil
}

// Push logs in to the registry when credentials are given, then pushes the tag.
func (d *DockerRuntime) Push(ctx context.Context, req PushRequest) error {
	if req.Auth != nil {
		if err := d.login(ctx, req.Tag, req.Auth); err != nil {
			return err
		}
	}

	logging.Info(dockerSubsystem, "Pushing image %s", req.Tag)

	var output bytes.Buffer
	cmd := execCommandContext(ctx, d.binary, "push", req.Tag)
	out := teeOutput(&output, req.Output)
	cmd.Stdout = out
	cmd.Stderr = out

	if err := cmd.Run(); err != nil {
		return &PushError{Tag: req.Tag, Stage: "push", Output: tail(output.String(), maxOutputLines), Err: err}
	}
	return nil
}

func (d *DockerRuntime) login(ctx context.Context, tag string, auth *Auth) error {
	logging.Debug(dockerSubsystem, "Logging in to %s as %s", auth.ServerAddress, auth.Username)

	args := []string{"login", "--username", auth.Username, "--password-stdin"}
	if auth.ServerAddress != "" {
		args = append(args, auth.ServerAddress)
	}

	cmd := execCommandContext(ctx, d.binary, args...)
	cmd.Stdin = strings.NewReader(auth.Password)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return &PushError{Tag: tag, Stage: "login", Output: tail(string(output), maxOutputLines), Err: err}
	}
	return nil
}

// imageID reads back the ID the daemon assigned to tag.
func (d *DockerRuntime) imageID(ctx context.Context, tag string) (string, error) {
	cmd := execCommandContext(ctx, d.binary, "image", "inspect", "-f", "{{.Id}}", tag)
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to inspect image %s: %w", tag, err)
	}

	id := strings.TrimSpace(string(output))
	if id == "" {
		return "", fmt.Errorf("image %s has no ID", tag)
	}
	return id, nil
}

// teeOutput must be assigned to both Stdout and Stderr so exec serializes the writes.
func teeOutput(buf *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(buf, w)
}

func shortID(id string) string {
	id = strings.TrimPrefix(id, "sha256:")
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
