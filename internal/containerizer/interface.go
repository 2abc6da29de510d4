package containerizer

import (
	"context"
	"io"

	"racy/internal/project"
)

// ContainerRuntime defines the interface for container image operations
type ContainerRuntime interface {
	// Build turns a project directory into a tagged image and returns the image ID
	Build(ctx context.Context, req BuildRequest) (string, error)

	// Push uploads a tagged image, logging in first when auth is given
	Push(ctx context.Context, req PushRequest) error
}

// BuildRequest holds the configuration for building an image
type BuildRequest struct {
	Dir       string       // Project directory used as build context
	Type      project.Type // Decides which Dockerfile is generated
	Tag       string       // Image tag, e.g. registry.example.com/demo:1.0.0
	Port      int32        // Port the application listens on (NodeService only)
	BaseImage string       // Overrides the generated Dockerfile's FROM image
	Output    io.Writer    // Receives the build log; nil discards it
}

// PushRequest holds the configuration for pushing an image
type PushRequest struct {
	Tag    string    // Image tag to push
	Auth   *Auth     // Registry credentials; nil uses the daemon's stored credentials
	Output io.Writer // Receives the push log; nil discards it
}

// Auth holds the credentials for one registry
type Auth struct {
	ServerAddress string
	Username      string
	Password      string
}
