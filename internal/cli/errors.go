package cli

import (
	"crypto/x509"
	"errors"
	"net"
	"net/url"
	"strings"

	apierrors "k8s.io/apimachinery/pkg/api/errors"

	"racy/internal/config"
	"racy/internal/containerizer"
	"racy/internal/project"
)

// ErrorCategory groups failures by what the user has to fix.
type ErrorCategory int

const (
	// ErrorGeneral is any failure without a more specific category.
	ErrorGeneral ErrorCategory = iota
	// ErrorConfig covers missing projects and invalid settings.
	ErrorConfig
	// ErrorAuth covers rejected cluster credentials and missing RBAC permissions.
	ErrorAuth
	// ErrorConflict covers concurrent modification of a cluster resource.
	ErrorConflict
	// ErrorBuildPush covers image build, registry login and push failures.
	ErrorBuildPush
	// ErrorConnection covers an unreachable cluster API server.
	ErrorConnection
)

// String returns a human-readable name for the category.
func (c ErrorCategory) String() string {
	switch c {
	case ErrorConfig:
		return "Configuration error"
	case ErrorAuth:
		return "Authorization error"
	case ErrorConflict:
		return "Conflict"
	case ErrorBuildPush:
		return "Image error"
	case ErrorConnection:
		return "Connection error"
	default:
		return "Error"
	}
}

// ClassifyError returns the category of err. Wrapped errors are inspected.
func ClassifyError(err error) ErrorCategory {
	if err == nil {
		return ErrorGeneral
	}

	var buildErr *containerizer.BuildError
	var pushErr *containerizer.PushError
	var configErr config.ConfigurationError
	var validationErrs config.ValidationErrors

	switch {
	case errors.As(err, &buildErr), errors.As(err, &pushErr):
		return ErrorBuildPush
	case errors.As(err, &configErr), errors.As(err, &validationErrs), errors.Is(err, project.ErrNoProject):
		return ErrorConfig
	case apierrors.IsUnauthorized(err), apierrors.IsForbidden(err):
		return ErrorAuth
	case apierrors.IsConflict(err):
		return ErrorConflict
	case isTLSError(err), isTimeoutError(err), isNetworkError(err):
		return ErrorConnection
	}
	return ErrorGeneral
}

// Hint returns a short suggestion for resolving err, or an empty string.
func Hint(err error) string {
	switch ClassifyError(err) {
	case ErrorConfig:
		return "Run 'racy-deploy init' in the project directory, or check the .env files"
	case ErrorAuth:
		return "Check the kubeconfig credentials and that the user may manage deployments and services in namespace 'default'"
	case ErrorConflict:
		return "The resource was changed concurrently; run the command again"
	case ErrorBuildPush:
		return "Check the build output above and the registry credentials"
	case ErrorConnection:
		return "Check that the cluster is reachable and the kubeconfig context is correct"
	}
	return ""
}

// isTLSError checks if the error is related to TLS/certificate issues.
func isTLSError(err error) bool {
	var certErr *x509.CertificateInvalidError
	var hostErr *x509.HostnameError
	var unknownAuthErr *x509.UnknownAuthorityError

	if errors.As(err, &certErr) || errors.As(err, &hostErr) || errors.As(err, &unknownAuthErr) {
		return true
	}

	errStr := err.Error()
	for _, keyword := range []string{"x509:", "tls:", "TLS handshake"} {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}
	return false
}

// isTimeoutError checks if the error is a timeout.
func isTimeoutError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}

	return strings.Contains(err.Error(), "i/o timeout")
}

// isNetworkError checks if the error indicates a network connectivity issue.
func isNetworkError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	errStr := err.Error()
	for _, keyword := range []string{
		"connection refused",
		"connection reset",
		"network is unreachable",
		"no route to host",
		"dial tcp",
	} {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}
	return false
}
