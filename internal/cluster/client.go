package cluster

import (
	"context"
	"fmt"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"racy/internal/reconciler"
	"racy/pkg/logging"
)

const subsystem = "Cluster"

var _ reconciler.ClusterClient = (*Client)(nil)

// Client implements reconciler.ClusterClient on top of a controller-runtime client.
//
// API errors are returned as received so that callers can classify them with
// k8s.io/apimachinery/pkg/api/errors.
type Client struct {
	client client.Client
}

// NewScheme returns a scheme with the built-in Kubernetes types registered.
func NewScheme() *runtime.Scheme {
	scheme := runtime.NewScheme()
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
	return scheme
}

// New loads the kubeconfig and creates a Client for it.
//
// Args:
//   - kubeconfig: Path to a kubeconfig file, empty for automatic discovery
//   - kubeContext: Context to use, empty for the current context
//
// Returns:
//   - *Client: The cluster client
//   - error: Error if the configuration cannot be loaded or the client cannot be created
func New(kubeconfig, kubeContext string) (*Client, error) {
	cfg, err := LoadRESTConfig(kubeconfig, kubeContext)
	if err != nil {
		return nil, err
	}
	return NewForConfig(cfg)
}

// NewForConfig creates a Client for an existing REST configuration.
func NewForConfig(cfg *rest.Config) (*Client, error) {
	c, err := client.New(cfg, client.Options{
		Scheme: NewScheme(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Kubernetes client: %w", err)
	}
	return NewWithClient(c), nil
}

// NewWithClient wraps an existing controller-runtime client.
func NewWithClient(c client.Client) *Client {
	return &Client{client: c}
}

// ListDeployments lists all Deployments in namespace.
func (c *Client) ListDeployments(ctx context.Context, namespace string) ([]appsv1.Deployment, error) {
	list := &appsv1.DeploymentList{}
	if err := c.client.List(ctx, list, client.InNamespace(namespace)); err != nil {
		return nil, err
	}
	logging.Debug(subsystem, "Found %d deployments in %s", len(list.Items), namespace)
	return list.Items, nil
}

// CreateDeployment creates deployment in namespace and returns the stored object.
func (c *Client) CreateDeployment(ctx context.Context, namespace string, deployment *appsv1.Deployment) (*appsv1.Deployment, error) {
	obj := deployment.DeepCopy()
	obj.Namespace = namespace
	if err := c.client.Create(ctx, obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// UpdateDeployment replaces the Deployment called name with deployment.
func (c *Client) UpdateDeployment(ctx context.Context, namespace, name string, deployment *appsv1.Deployment) (*appsv1.Deployment, error) {
	obj := deployment.DeepCopy()
	obj.Namespace = namespace
	obj.Name = name
	if err := c.client.Update(ctx, obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// DeleteDeployment deletes the Deployment called name. A missing Deployment is not an error.
func (c *Client) DeleteDeployment(ctx context.Context, namespace, name string) error {
	obj := &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
		},
	}
	return client.IgnoreNotFound(c.client.Delete(ctx, obj, client.PropagationPolicy(metav1.DeletePropagationBackground)))
}

// ListServices lists all Services in namespace.
func (c *Client) ListServices(ctx context.Context, namespace string) ([]corev1.Service, error) {
	list := &corev1.ServiceList{}
	if err := c.client.List(ctx, list, client.InNamespace(namespace)); err != nil {
		return nil, err
	}
	logging.Debug(subsystem, "Found %d services in %s", len(list.Items), namespace)
	return list.Items, nil
}

// CreateService creates service in namespace and returns the stored object.
func (c *Client) CreateService(ctx context.Context, namespace string, service *corev1.Service) (*corev1.Service, error) {
	obj := service.DeepCopy()
	obj.Namespace = namespace
	if err := c.client.Create(ctx, obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// UpdateService replaces the Service called name with service.
// service must carry the live resource version and cluster IP.
func (c *Client) UpdateService(ctx context.Context, namespace, name string, service *corev1.Service) (*corev1.Service, error) {
	obj := service.DeepCopy()
	obj.Namespace = namespace
	obj.Name = name
	if err := c.client.Update(ctx, obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// DeleteService deletes the Service called name. A missing Service is not an error.
func (c *Client) DeleteService(ctx context.Context, namespace, name string) error {
	obj := &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
		},
	}
	return client.IgnoreNotFound(c.client.Delete(ctx, obj))
}
