package reconciler

import (
	"context"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"

	"racy/pkg/logging"
)

const subsystem = "Reconciler"

// Reconciler converges the Deployment and Service of a project towards the desired state.
// Each call is a single sequential pass; errors from the client are returned unmodified.
type Reconciler struct {
	client ClusterClient
}

// New creates a Reconciler that talks to the cluster through client.
func New(client ClusterClient) *Reconciler {
	return &Reconciler{client: client}
}

// Deploy creates or replaces the Deployment for desired, then creates or replaces the
// Service of the same name. An existing Deployment is overwritten without merging.
// An existing Service keeps its cluster IP and resource version.
func (r *Reconciler) Deploy(ctx context.Context, desired DeploymentSpec, domain string) (*DeployResult, error) {
	result := &DeployResult{}

	deployments, err := r.client.ListDeployments(ctx, Namespace)
	if err != nil {
		return nil, err
	}

	manifest := RenderDeployment(desired)
	if findDeployment(deployments, desired.Name) == nil {
		logging.Info(subsystem, "Creating deployment %s with image %s", desired.Name, desired.Image)
		result.Deployment, err = r.client.CreateDeployment(ctx, Namespace, manifest)
		result.DeploymentOperation = OperationCreate
	} else {
		logging.Info(subsystem, "Updating deployment %s with image %s", desired.Name, desired.Image)
		result.Deployment, err = r.client.UpdateDeployment(ctx, Namespace, desired.Name, manifest)
		result.DeploymentOperation = OperationUpdate
	}
	if err != nil {
		return nil, err
	}

	services, err := r.client.ListServices(ctx, Namespace)
	if err != nil {
		return nil, err
	}

	svcSpec := ServiceFor(desired, domain)
	if existing := findService(services, desired.Name); existing == nil {
		logging.Info(subsystem, "Creating service %s", desired.Name)
		result.Service, err = r.client.CreateService(ctx, Namespace, RenderService(svcSpec))
		result.ServiceOperation = OperationCreate
	} else {
		svcSpec.ClusterIP = existing.Spec.ClusterIP
		svcSpec.ResourceVersion = existing.ResourceVersion
		logging.Info(subsystem, "Updating service %s (resourceVersion %s)", desired.Name, svcSpec.ResourceVersion)
		result.Service, err = r.client.UpdateService(ctx, Namespace, desired.Name, RenderService(svcSpec))
		result.ServiceOperation = OperationUpdate
	}
	if err != nil {
		return nil, err
	}

	if domain == "" {
		logging.Debug(subsystem, "No domain configured, service %s has no external hostname", desired.Name)
	}
	return result, nil
}

// Remove deletes the Deployment and the Service called name if they exist.
// Missing resources are skipped, so removing an absent project is a no-op.
func (r *Reconciler) Remove(ctx context.Context, name string) (*RemoveResult, error) {
	result := &RemoveResult{
		Name:                name,
		DeploymentOperation: OperationNone,
		ServiceOperation:    OperationNone,
	}

	deployments, err := r.client.ListDeployments(ctx, Namespace)
	if err != nil {
		return nil, err
	}
	services, err := r.client.ListServices(ctx, Namespace)
	if err != nil {
		return nil, err
	}

	if findDeployment(deployments, name) != nil {
		logging.Info(subsystem, "Deleting deployment %s", name)
		if err := r.client.DeleteDeployment(ctx, Namespace, name); err != nil {
			return nil, err
		}
		result.DeploymentOperation = OperationDelete
	}

	if findService(services, name) != nil {
		logging.Info(subsystem, "Deleting service %s", name)
		if err := r.client.DeleteService(ctx, Namespace, name); err != nil {
			return nil, err
		}
		result.ServiceOperation = OperationDelete
	}

	if result.DeploymentOperation == OperationNone && result.ServiceOperation == OperationNone {
		logging.Info(subsystem, "Nothing to remove for %s", name)
	}
	return result, nil
}

func findDeployment(items []appsv1.Deployment, name string) *appsv1.Deployment {
	for i := range items {
		if items[i].Name == name {
			return &items[i]
		}
	}
	return nil
}

func findService(items []corev1.Service, name string) *corev1.Service {
	for i := range items {
		if items[i].Name == name {
			return &items[i]
		}
	}
	return nil
}
