package containerizer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// RuntimeType defines the type of container runtime
type RuntimeType string

const (
	RuntimeTypeDocker RuntimeType = "docker"
	RuntimeTypePodman RuntimeType = "podman"
)

// NewContainerRuntime creates a container runtime for the given CLI binary.
// The runtime type is derived from the binary's base name.
func NewContainerRuntime(ctx context.Context, binary string) (ContainerRuntime, error) {
	if binary == "" {
		binary = string(RuntimeTypeDocker)
	}
	rt := RuntimeType(strings.ToLower(strings.TrimSuffix(filepath.Base(binary), ".exe")))

	switch rt {
	case RuntimeTypeDocker:
		return NewDockerRuntime(ctx, binary)
	case RuntimeTypePodman:
		// podman build does not accept a build context archive on stdin
		return nil, fmt.Errorf("podman runtime not yet implemented")
	default:
		return nil, fmt.Errorf("unsupported container runtime: %s", binary)
	}
}
