package reconciler

import (
	"context"
	"fmt"
	"strconv"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
)

// call records one request made to the fake cluster.
type call struct {
	Verb      string
	Kind      string
	Namespace string
	Name      string
}

// fakeCluster is an in-memory ClusterClient that records every call.
// It assigns resource versions and cluster IPs the way the API server does.
type fakeCluster struct {
	deployments map[string]*appsv1.Deployment
	services    map[string]*corev1.Service
	calls       []call
	version     int

	// errs maps "verb/kind" (e.g. "update/Service") to the error that call returns.
	errs map[string]error

	// lastServiceUpdate is the manifest received by the last UpdateService call.
	lastServiceUpdate *corev1.Service
}

func newFakeCluster() *fakeCluster {
	return &fakeCluster{
		deployments: make(map[string]*appsv1.Deployment),
		services:    make(map[string]*corev1.Service),
		errs:        make(map[string]error),
	}
}

func (f *fakeCluster) failOn(verb, kind string, err error) {
	f.errs[verb+"/"+kind] = err
}

func (f *fakeCluster) record(verb, kind, namespace, name string) error {
	f.calls = append(f.calls, call{Verb: verb, Kind: kind, Namespace: namespace, Name: name})
	return f.errs[verb+"/"+kind]
}

func (f *fakeCluster) nextVersion() string {
	f.version++
	return strconv.Itoa(f.version)
}

// count returns how many calls matched verb and kind.
func (f *fakeCluster) count(verb, kind string) int {
	n := 0
	for _, c := range f.calls {
		if c.Verb == verb && c.Kind == kind {
			n++
		}
	}
	return n
}

// seedService stores a Service as if it had been created earlier.
func (f *fakeCluster) seedService(name, clusterIP, resourceVersion string) {
	svc := RenderService(ServiceSpec{Name: name})
	svc.Spec.ClusterIP = clusterIP
	svc.ResourceVersion = resourceVersion
	f.services[name] = svc
}

// seedDeployment stores a Deployment as if it had been created earlier.
func (f *fakeCluster) seedDeployment(name, image string) {
	d := RenderDeployment(DeploymentSpec{Name: name, Image: image})
	d.ResourceVersion = f.nextVersion()
	f.deployments[name] = d
}

func (f *fakeCluster) ListDeployments(_ context.Context, namespace string) ([]appsv1.Deployment, error) {
	if err := f.record("list", "Deployment", namespace, ""); err != nil {
		return nil, err
	}
	var items []appsv1.Deployment
	for _, d := range f.deployments {
		items = append(items, *d.DeepCopy())
	}
	return items, nil
}

func (f *fakeCluster) CreateDeployment(_ context.Context, namespace string, d *appsv1.Deployment) (*appsv1.Deployment, error) {
	if err := f.record("create", "Deployment", namespace, d.Name); err != nil {
		return nil, err
	}
	if _, ok := f.deployments[d.Name]; ok {
		return nil, fmt.Errorf("deployments %q already exists", d.Name)
	}
	stored := d.DeepCopy()
	stored.ResourceVersion = f.nextVersion()
	f.deployments[d.Name] = stored
	return stored.DeepCopy(), nil
}

func (f *fakeCluster) UpdateDeployment(_ context.Context, namespace, name string, d *appsv1.Deployment) (*appsv1.Deployment, error) {
	if err := f.record("update", "Deployment", namespace, name); err != nil {
		return nil, err
	}
	if _, ok := f.deployments[name]; !ok {
		return nil, fmt.Errorf("deployments %q not found", name)
	}
	stored := d.DeepCopy()
	stored.ResourceVersion = f.nextVersion()
	f.deployments[name] = stored
	return stored.DeepCopy(), nil
}

func (f *fakeCluster) DeleteDeployment(_ context.Context, namespace, name string) error {
	if err := f.record("delete", "Deployment", namespace, name); err != nil {
		return err
	}
	delete(f.deployments, name)
	return nil
}

func (f *fakeCluster) ListServices(_ context.Context, namespace string) ([]corev1.Service, error) {
	if err := f.record("list", "Service", namespace, ""); err != nil {
		return nil, err
	}
	var items []corev1.Service
	for _, s := range f.services {
		items = append(items, *s.DeepCopy())
	}
	return items, nil
}

func (f *fakeCluster) CreateService(_ context.Context, namespace string, s *corev1.Service) (*corev1.Service, error) {
	if err := f.record("create", "Service", namespace, s.Name); err != nil {
		return nil, err
	}
	if _, ok := f.services[s.Name]; ok {
		return nil, fmt.Errorf("services %q already exists", s.Name)
	}
	stored := s.DeepCopy()
	stored.ResourceVersion = f.nextVersion()
	stored.Spec.ClusterIP = fmt.Sprintf("10.0.0.%d", len(f.services)+10)
	f.services[s.Name] = stored
	return stored.DeepCopy(), nil
}

func (f *fakeCluster) UpdateService(_ context.Context, namespace, name string, s *corev1.Service) (*corev1.Service, error) {
	f.lastServiceUpdate = s.DeepCopy()
	if err := f.record("update", "Service", namespace, name); err != nil {
		return nil, err
	}
	current, ok := f.services[name]
	if !ok {
		return nil, fmt.Errorf("services %q not found", name)
	}
	if s.ResourceVersion != current.ResourceVersion {
		return nil, fmt.Errorf("services %q: the object has been modified", name)
	}
	if s.Spec.ClusterIP != current.Spec.ClusterIP {
		return nil, fmt.Errorf("services %q: spec.clusterIP: field is immutable", name)
	}
	stored := s.DeepCopy()
	stored.ResourceVersion = f.nextVersion()
	f.services[name] = stored
	return stored.DeepCopy(), nil
}

func (f *fakeCluster) DeleteService(_ context.Context, namespace, name string) error {
	if err := f.record("delete", "Service", namespace, name); err != nil {
		return err
	}
	delete(f.services, name)
	return nil
}
