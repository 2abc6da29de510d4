// Package reconciler converges a project's Deployment and Service towards the
// desired state computed on each invocation.
//
// # Overview
//
// A pass lists the Deployments in the managed namespace, creates or replaces the
// one named after the project, then does the same for the Service of the same name.
// The name is the only correlation key between the two objects; both carry the
// label app=<name> and the Service selects pods on it.
//
// Updates are full replacements. Fields of the live Deployment that the desired
// state does not set are dropped. The live Service's cluster IP and resource
// version are carried into the replacement because the API server rejects an
// update without them.
//
// # Errors
//
// The reconciler never retries, classifies or wraps client errors. A failure
// after the Deployment was applied leaves the Service untouched; running the
// pass again is the recovery path.
//
// # Usage
//
//	r := reconciler.New(clusterClient)
//	result, err := r.Deploy(ctx, reconciler.DeploymentSpec{
//	    Name:  "demo",
//	    Image: "registry.example.com/demo:1.0.0",
//	}, "svc.example.com")
package reconciler
