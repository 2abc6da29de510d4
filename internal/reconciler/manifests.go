package reconciler

import (
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/utils/ptr"
)

// RenderDeployment builds the Deployment manifest for spec. The result depends only on spec.
func RenderDeployment(spec DeploymentSpec) *appsv1.Deployment {
	labels := appLabels(spec.Name)

	env := make([]corev1.EnvVar, 0, len(spec.Env))
	for _, e := range spec.Env {
		env = append(env, corev1.EnvVar{Name: e.Name, Value: e.Value})
	}

	return &appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "apps/v1",
			Kind:       "Deployment",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      spec.Name,
			Namespace: Namespace,
			Labels:    labels,
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: ptr.To(orDefault(spec.Replicas, DefaultReplicas)),
			Selector: &metav1.LabelSelector{
				MatchLabels: appLabels(spec.Name),
			},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels: appLabels(spec.Name),
				},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{
						{
							Name:  spec.Name,
							Image: spec.Image,
							Ports: []corev1.ContainerPort{
								{ContainerPort: orDefault(spec.Port, DefaultPort)},
							},
							Env: env,
						},
					},
				},
			},
		},
	}
}

// RenderService builds the Service manifest for spec. The hostname annotation is
// only set when a domain is given.
func RenderService(spec ServiceSpec) *corev1.Service {
	meta := metav1.ObjectMeta{
		Name:            spec.Name,
		Namespace:       Namespace,
		Labels:          appLabels(spec.Name),
		ResourceVersion: spec.ResourceVersion,
	}
	if hostname := Hostname(spec.Name, spec.Domain); hostname != "" {
		meta.Annotations = map[string]string{HostnameAnnotation: hostname}
	}

	return &corev1.Service{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Service",
		},
		ObjectMeta: meta,
		Spec: corev1.ServiceSpec{
			Type:      corev1.ServiceTypeLoadBalancer,
			Selector:  appLabels(spec.Name),
			ClusterIP: spec.ClusterIP,
			Ports: []corev1.ServicePort{
				{
					Port:       orDefault(spec.Port, DefaultPort),
					TargetPort: intstr.FromInt32(orDefault(spec.TargetPort, DefaultPort)),
				},
			},
		},
	}
}

// Hostname returns the fully qualified "<name>.<domain>." published for the Service,
// or "" when domain is empty.
func Hostname(name, domain string) string {
	if domain == "" {
		return ""
	}
	return name + "." + domain + "."
}

// ServiceFor returns the Service paired with desired: port 80 forwarding to the
// container port, published under domain.
func ServiceFor(desired DeploymentSpec, domain string) ServiceSpec {
	return ServiceSpec{
		Name:       desired.Name,
		Domain:     domain,
		Port:       DefaultPort,
		TargetPort: orDefault(desired.Port, DefaultPort),
	}
}

func appLabels(name string) map[string]string {
	return map[string]string{AppLabel: name}
}

func orDefault(v, def int32) int32 {
	if v == 0 {
		return def
	}
	return v
}
