package cli

import (
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"racy/internal/config"
	"racy/internal/containerizer"
	"racy/internal/project"
)

func TestClassifyError(t *testing.T) {
	services := schema.GroupResource{Resource: "services"}

	tests := []struct {
		name string
		err  error
		want ErrorCategory
	}{
		{"nil", nil, ErrorGeneral},
		{"plain", errors.New("boom"), ErrorGeneral},
		{"build", &containerizer.BuildError{Tag: "demo:1", Err: errors.New("exit status 1")}, ErrorBuildPush},
		{"wrapped push", fmt.Errorf("publish: %w", &containerizer.PushError{Tag: "demo:1", Stage: "push", Err: errors.New("denied")}), ErrorBuildPush},
		{"configuration", config.ConfigurationError{FileName: ".env", Message: "failed to parse env file"}, ErrorConfig},
		{"validation", config.ValidationErrors{{Field: config.KeyReplicas, Message: "must be positive"}}, ErrorConfig},
		{"no project", fmt.Errorf("/tmp/x: %w", project.ErrNoProject), ErrorConfig},
		{"unauthorized", apierrors.NewUnauthorized("token expired"), ErrorAuth},
		{"forbidden", apierrors.NewForbidden(services, "demo", errors.New("rbac")), ErrorAuth},
		{"conflict", apierrors.NewConflict(services, "demo", errors.New("modified")), ErrorConflict},
		{"wrapped conflict", fmt.Errorf("deploy: %w", apierrors.NewConflict(services, "demo", errors.New("modified"))), ErrorConflict},
		{"not found", apierrors.NewNotFound(services, "demo"), ErrorGeneral},
		{"connection refused", errors.New("dial tcp 127.0.0.1:6443: connect: connection refused"), ErrorConnection},
		{"dns", &net.DNSError{Err: "no such host", Name: "cluster.example.com"}, ErrorConnection},
		{"tls", errors.New("tls: failed to verify certificate: x509: certificate signed by unknown authority"), ErrorConnection},
		{"timeout", &net.OpError{Op: "dial", Err: timeoutErr{}}, ErrorConnection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyError(tt.err))
		})
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "operation timed out" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestHint(t *testing.T) {
	assert.Empty(t, Hint(errors.New("boom")))
	assert.Contains(t, Hint(project.ErrNoProject), "racy-deploy init")
	assert.Contains(t, Hint(apierrors.NewUnauthorized("expired")), "namespace 'default'")
	assert.Contains(t, Hint(errors.New("connection refused")), "kubeconfig context")
}

func TestErrorCategory_String(t *testing.T) {
	assert.Equal(t, "Error", ErrorGeneral.String())
	assert.Equal(t, "Authorization error", ErrorAuth.String())
	assert.Equal(t, "Image error", ErrorBuildPush.String())
}
