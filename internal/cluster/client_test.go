package cluster

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"
	"sigs.k8s.io/controller-runtime/pkg/client/interceptor"

	"racy/internal/reconciler"
)

func newTestClient(objs ...client.Object) (*Client, client.Client) {
	k8sClient := fake.NewClientBuilder().WithScheme(NewScheme()).WithObjects(objs...).Build()
	return NewWithClient(k8sClient), k8sClient
}

func service(name, namespace, clusterIP string) *corev1.Service {
	return &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
		Spec: corev1.ServiceSpec{
			ClusterIP: clusterIP,
			Ports:     []corev1.ServicePort{{Port: 80}},
		},
	}
}

func deployment(name, namespace string) *appsv1.Deployment {
	return &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
	}
}

func TestListDeployments_FiltersNamespace(t *testing.T) {
	c, _ := newTestClient(
		deployment("demo", "default"),
		deployment("api", "default"),
		deployment("demo", "kube-system"),
	)

	items, err := c.ListDeployments(context.Background(), "default")
	require.NoError(t, err)

	var names []string
	for _, d := range items {
		assert.Equal(t, "default", d.Namespace)
		names = append(names, d.Name)
	}
	assert.ElementsMatch(t, []string{"demo", "api"}, names)
}

func TestCreateAndUpdateDeployment(t *testing.T) {
	c, k8sClient := newTestClient()
	ctx := context.Background()

	created, err := c.CreateDeployment(ctx, "default", reconciler.RenderDeployment(reconciler.DeploymentSpec{
		Name:  "demo",
		Image: "demo:1",
	}))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ResourceVersion)

	_, err = c.UpdateDeployment(ctx, "default", "demo", reconciler.RenderDeployment(reconciler.DeploymentSpec{
		Name:  "demo",
		Image: "demo:2",
	}))
	require.NoError(t, err)

	stored := &appsv1.Deployment{}
	require.NoError(t, k8sClient.Get(ctx, client.ObjectKey{Namespace: "default", Name: "demo"}, stored))
	assert.Equal(t, "demo:2", stored.Spec.Template.Spec.Containers[0].Image)
}

func TestCreateDeployment_DoesNotMutateInput(t *testing.T) {
	c, _ := newTestClient()
	manifest := reconciler.RenderDeployment(reconciler.DeploymentSpec{Name: "demo", Image: "demo:1"})

	_, err := c.CreateDeployment(context.Background(), "default", manifest)
	require.NoError(t, err)
	assert.Empty(t, manifest.ResourceVersion)
}

func TestCreateDeployment_AlreadyExists(t *testing.T) {
	c, _ := newTestClient(deployment("demo", "default"))

	_, err := c.CreateDeployment(context.Background(), "default", reconciler.RenderDeployment(reconciler.DeploymentSpec{
		Name:  "demo",
		Image: "demo:1",
	}))
	require.Error(t, err)
	assert.True(t, apierrors.IsAlreadyExists(err))
}

func TestUpdateService_StaleResourceVersion(t *testing.T) {
	c, _ := newTestClient(service("demo", "default", "10.0.0.5"))

	_, err := c.UpdateService(context.Background(), "default", "demo", reconciler.RenderService(reconciler.ServiceSpec{
		Name:            "demo",
		ClusterIP:       "10.0.0.5",
		ResourceVersion: "1",
	}))
	require.Error(t, err)
	assert.True(t, apierrors.IsConflict(err), "got %v", err)
}

func TestDelete_IgnoresNotFound(t *testing.T) {
	c, _ := newTestClient()
	ctx := context.Background()

	assert.NoError(t, c.DeleteDeployment(ctx, "default", "missing"))
	assert.NoError(t, c.DeleteService(ctx, "default", "missing"))
}

func TestDelete_RemovesObjects(t *testing.T) {
	c, k8sClient := newTestClient(deployment("demo", "default"), service("demo", "default", "10.0.0.5"))
	ctx := context.Background()

	require.NoError(t, c.DeleteDeployment(ctx, "default", "demo"))
	require.NoError(t, c.DeleteService(ctx, "default", "demo"))

	err := k8sClient.Get(ctx, client.ObjectKey{Namespace: "default", Name: "demo"}, &appsv1.Deployment{})
	assert.True(t, apierrors.IsNotFound(err))
	err = k8sClient.Get(ctx, client.ObjectKey{Namespace: "default", Name: "demo"}, &corev1.Service{})
	assert.True(t, apierrors.IsNotFound(err))
}

func TestErrorsAreNotWrapped(t *testing.T) {
	forbidden := apierrors.NewForbidden(schema.GroupResource{Resource: "services"}, "", errors.New("rbac"))
	boom := errors.New("boom")

	k8sClient := fake.NewClientBuilder().
		WithScheme(NewScheme()).
		WithInterceptorFuncs(interceptor.Funcs{
			List: func(ctx context.Context, c client.WithWatch, list client.ObjectList, opts ...client.ListOption) error {
				if _, ok := list.(*corev1.ServiceList); ok {
					return forbidden
				}
				return c.List(ctx, list, opts...)
			},
			Delete: func(ctx context.Context, c client.WithWatch, obj client.Object, opts ...client.DeleteOption) error {
				return boom
			},
		}).
		Build()
	c := NewWithClient(k8sClient)
	ctx := context.Background()

	_, err := c.ListDeployments(ctx, "default")
	require.NoError(t, err)

	_, err = c.ListServices(ctx, "default")
	assert.Same(t, forbidden, err)
	assert.True(t, apierrors.IsForbidden(err))

	assert.Same(t, boom, c.DeleteDeployment(ctx, "default", "demo"))
}

func TestReconcilerAgainstFakeCluster(t *testing.T) {
	c, k8sClient := newTestClient(service("demo", "default", "10.0.0.5"))
	ctx := context.Background()
	r := reconciler.New(c)

	result, err := r.Deploy(ctx, reconciler.DeploymentSpec{
		Name:  "demo",
		Image: "registry.example.com/demo:1.0.0",
	}, "svc.example.com")
	require.NoError(t, err)
	assert.Equal(t, reconciler.OperationCreate, result.DeploymentOperation)
	assert.Equal(t, reconciler.OperationUpdate, result.ServiceOperation)

	svc := &corev1.Service{}
	require.NoError(t, k8sClient.Get(ctx, client.ObjectKey{Namespace: "default", Name: "demo"}, svc))
	assert.Equal(t, "10.0.0.5", svc.Spec.ClusterIP)
	assert.Equal(t, "demo.svc.example.com.", svc.Annotations[reconciler.HostnameAnnotation])
	assert.Equal(t, corev1.ServiceTypeLoadBalancer, svc.Spec.Type)

	removed, err := r.Remove(ctx, "demo")
	require.NoError(t, err)
	assert.Equal(t, reconciler.OperationDelete, removed.DeploymentOperation)
	assert.Equal(t, reconciler.OperationDelete, removed.ServiceOperation)

	items, err := c.ListServices(ctx, "default")
	require.NoError(t, err)
	assert.Empty(t, items)
}
