package registry

import (
	"fmt"
	"strings"

	"github.com/distribution/reference"
)

// Reference is a parsed image tag.
type Reference struct {
	// Registry is the registry host (e.g., "gcr.io", "localhost:5000").
	Registry string
	// Repository is the image path within the registry (e.g., "my-project/demo").
	Repository string
	// Tag is the image tag, "latest" when the tag had none.
	Tag string
}

// ParseTag parses an image tag such as "registry.example.com/demo:1.0.0".
// Tags without a registry host are normalized to Docker Hub.
func ParseTag(tag string) (*Reference, error) {
	ref, err := reference.ParseNormalizedNamed(tag)
	if err != nil {
		return nil, fmt.Errorf("invalid image tag %q: %w", tag, err)
	}

	r := &Reference{
		Registry:   reference.Domain(ref),
		Repository: reference.Path(ref),
		Tag:        "latest",
	}
	if tagged, ok := ref.(reference.Tagged); ok {
		r.Tag = tagged.Tag()
	}
	return r, nil
}

// String returns the full reference "registry/repository:tag".
func (r *Reference) String() string {
	return fmt.Sprintf("%s/%s:%s", r.Registry, r.Repository, r.Tag)
}

// IsCloudRegistry reports whether host is a Google registry that accepts
// OAuth access tokens (Container Registry or Artifact Registry).
func IsCloudRegistry(host string) bool {
	host = strings.ToLower(host)
	return host == "gcr.io" ||
		strings.HasSuffix(host, ".gcr.io") ||
		strings.HasSuffix(host, "-docker.pkg.dev")
}
