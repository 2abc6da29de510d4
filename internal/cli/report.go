package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"racy/internal/reconciler"
	"racy/pkg/logging"
)

// ResourceStatus is one line of a command report.
type ResourceStatus struct {
	Kind            string `json:"kind" yaml:"kind"`
	Name            string `json:"name" yaml:"name"`
	Operation       string `json:"operation" yaml:"operation"`
	ResourceVersion string `json:"resourceVersion,omitempty" yaml:"resourceVersion,omitempty"`
	Details         string `json:"details,omitempty" yaml:"details,omitempty"`
}

// Report summarizes what a deploy or remove did to the cluster.
type Report struct {
	Project   string           `json:"project" yaml:"project"`
	Image     string           `json:"image,omitempty" yaml:"image,omitempty"`
	Hostname  string           `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	Resources []ResourceStatus `json:"resources" yaml:"resources"`
	// Run matches the "run" attribute of the log records of the invocation.
	Run string `json:"run,omitempty" yaml:"run,omitempty"`
}

// DeployReport builds the report for a successful deploy.
func DeployReport(name, image, domain string, result *reconciler.DeployResult) Report {
	report := Report{
		Project:  name,
		Image:    image,
		Hostname: reconciler.Hostname(name, domain),
		Run:      logging.RunID(),
	}

	deployment := ResourceStatus{Kind: "Deployment", Name: name, Operation: string(result.DeploymentOperation)}
	if d := result.Deployment; d != nil {
		deployment.ResourceVersion = d.ResourceVersion
		if d.Spec.Replicas != nil {
			deployment.Details = fmt.Sprintf("replicas=%d", *d.Spec.Replicas)
		}
	}

	service := ResourceStatus{Kind: "Service", Name: name, Operation: string(result.ServiceOperation)}
	if s := result.Service; s != nil {
		service.ResourceVersion = s.ResourceVersion
		var details []string
		if s.Spec.ClusterIP != "" {
			details = append(details, "clusterIP="+s.Spec.ClusterIP)
		}
		for _, ingress := range s.Status.LoadBalancer.Ingress {
			if ingress.IP != "" {
				details = append(details, "externalIP="+ingress.IP)
			}
			if ingress.Hostname != "" {
				details = append(details, "externalHost="+ingress.Hostname)
			}
		}
		service.Details = strings.Join(details, " ")
	}

	report.Resources = []ResourceStatus{deployment, service}
	return report
}

// RemoveReport builds the report for a remove.
func RemoveReport(result *reconciler.RemoveResult) Report {
	return Report{
		Project: result.Name,
		Resources: []ResourceStatus{
			{Kind: "Deployment", Name: result.Name, Operation: string(result.DeploymentOperation)},
			{Kind: "Service", Name: result.Name, Operation: string(result.ServiceOperation)},
		},
		Run: logging.RunID(),
	}
}

// PrintReport writes report to w in format.
func PrintReport(w io.Writer, format OutputFormat, report Report) error {
	if format != OutputFormatTable {
		return Print(w, format, report)
	}

	t := NewTable(w, "Kind", "Name", "Operation", "Resource Version", "Details")
	for _, r := range report.Resources {
		t.AppendRow(table.Row{r.Kind, r.Name, r.Operation, r.ResourceVersion, r.Details})
	}
	t.Render()

	if report.Image != "" {
		fmt.Fprintf(w, "\nImage:    %s\n", report.Image)
	}
	if report.Hostname != "" {
		fmt.Fprintf(w, "Hostname: %s\n", report.Hostname)
	}
	return nil
}
