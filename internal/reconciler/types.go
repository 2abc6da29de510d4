package reconciler

import (
	"context"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
)

// Namespace is the only namespace racy-deploy manages.
const Namespace = "default"

const (
	// AppLabel is the label key correlating a Deployment, its pods and its Service.
	AppLabel = "app"

	// HostnameAnnotation asks external-dns to publish a record for the Service.
	HostnameAnnotation = "external-dns.alpha.kubernetes.io/hostname"

	// DefaultReplicas is used when a DeploymentSpec has no replica count.
	DefaultReplicas int32 = 1

	// DefaultPort is the container port and Service port used when none is set.
	DefaultPort int32 = 80
)

// EnvVar is a single container environment variable.
type EnvVar struct {
	Name  string
	Value string
}

// DeploymentSpec is the desired state of a project's Deployment.
type DeploymentSpec struct {
	// Name identifies both the Deployment and its Service.
	Name string

	// Image is the full image reference, registry path plus version.
	Image string

	// Replicas defaults to DefaultReplicas when zero.
	Replicas int32

	// Port is the container port; defaults to DefaultPort when zero.
	Port int32

	// Env is passed to the container in order.
	Env []EnvVar
}

// ServiceSpec is the desired state of a project's Service.
type ServiceSpec struct {
	Name string

	// Domain is the zone the external hostname is published in. Empty means no hostname.
	Domain string

	Port       int32
	TargetPort int32

	// ClusterIP and ResourceVersion are copied from the live Service on update.
	ClusterIP       string
	ResourceVersion string
}

// ClusterClient is the subset of the cluster API the reconciler needs.
// Implementations must return API errors unmodified so callers can classify them.
type ClusterClient interface {
	ListDeployments(ctx context.Context, namespace string) ([]appsv1.Deployment, error)
	CreateDeployment(ctx context.Context, namespace string, deployment *appsv1.Deployment) (*appsv1.Deployment, error)
	UpdateDeployment(ctx context.Context, namespace, name string, deployment *appsv1.Deployment) (*appsv1.Deployment, error)
	DeleteDeployment(ctx context.Context, namespace, name string) error

	ListServices(ctx context.Context, namespace string) ([]corev1.Service, error)
	CreateService(ctx context.Context, namespace string, service *corev1.Service) (*corev1.Service, error)
	UpdateService(ctx context.Context, namespace, name string, service *corev1.Service) (*corev1.Service, error)
	DeleteService(ctx context.Context, namespace, name string) error
}

// Operation is what the reconciler did to one resource.
type Operation string

const (
	// OperationNone indicates nothing was sent to the cluster.
	OperationNone Operation = "None"

	// OperationCreate indicates the resource did not exist and was created.
	OperationCreate Operation = "Create"

	// OperationUpdate indicates an existing resource was replaced.
	OperationUpdate Operation = "Update"

	// OperationDelete indicates the resource was deleted.
	OperationDelete Operation = "Delete"
)

// DeployResult holds the objects returned by the cluster after Deploy.
type DeployResult struct {
	Deployment          *appsv1.Deployment
	Service             *corev1.Service
	DeploymentOperation Operation
	ServiceOperation    Operation
}

// RemoveResult reports which halves of the pair Remove deleted.
type RemoveResult struct {
	Name                string
	DeploymentOperation Operation
	ServiceOperation    Operation
}
