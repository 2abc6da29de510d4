package registry

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"racy/internal/containerizer"
	"racy/pkg/logging"
)

const (
	subsystem = "Registry"

	// CloudUsername is the user name Google registries expect with an access token.
	CloudUsername = "oauth2accesstoken"

	cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"
)

// defaultTokenSource is a variable to allow replacing the Google credential lookup in tests
var defaultTokenSource = google.DefaultTokenSource

// Credentials are the long-lived registry credentials from the configuration.
type Credentials struct {
	Username string
	Password string
}

// Pusher uploads an image; implemented by containerizer.ContainerRuntime.
type Pusher interface {
	Push(ctx context.Context, req containerizer.PushRequest) error
}

// Publisher pushes images, exchanging credentials for a short-lived token
// when the target is a Google registry.
type Publisher struct {
	pusher Pusher
}

// NewPublisher creates a Publisher that pushes through pusher.
func NewPublisher(pusher Pusher) *Publisher {
	return &Publisher{pusher: pusher}
}

// Push uploads tag. For Google registries the configured credentials are ignored
// and the ambient Google credentials are exchanged for an access token.
func (p *Publisher) Push(ctx context.Context, tag string, creds Credentials, output io.Writer) error {
	ref, err := ParseTag(tag)
	if err != nil {
		return err
	}

	auth, err := resolveAuth(ctx, ref, creds)
	if err != nil {
		return err
	}
	logging.Info(subsystem, "Publishing %s", ref.String())

	return p.pusher.Push(ctx, containerizer.PushRequest{
		Tag:    tag,
		Auth:   auth,
		Output: output,
	})
}

// resolveAuth returns the login for ref, or nil to rely on the daemon's stored credentials.
func resolveAuth(ctx context.Context, ref *Reference, creds Credentials) (*containerizer.Auth, error) {
	if IsCloudRegistry(ref.Registry) {
		token, err := cloudToken(ctx)
		if err != nil {
			return nil, err
		}
		logging.Debug(subsystem, "Using Google access token for %s", ref.Registry)
		return &containerizer.Auth{
			ServerAddress: ref.Registry,
			Username:      CloudUsername,
			Password:      token,
		}, nil
	}

	if creds.Username == "" {
		logging.Debug(subsystem, "No credentials configured for %s, using stored docker login", ref.Registry)
		return nil, nil
	}
	return &containerizer.Auth{
		ServerAddress: ref.Registry,
		Username:      creds.Username,
		Password:      creds.Password,
	}, nil
}

func cloudToken(ctx context.Context) (string, error) {
	ts, err := defaultTokenSource(ctx, cloudPlatformScope)
	if err != nil {
		return "", fmt.Errorf("failed to find Google credentials: %w", err)
	}
	return accessToken(ts)
}

func accessToken(ts oauth2.TokenSource) (string, error) {
	token, err := ts.Token()
	if err != nil {
		return "", fmt.Errorf("failed to obtain Google access token: %w", err)
	}
	if !token.Valid() {
		return "", fmt.Errorf("google returned an invalid access token")
	}
	return token.AccessToken, nil
}
