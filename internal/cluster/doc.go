// Package cluster talks to the Kubernetes API server on behalf of the reconciler.
//
// The client is created once per process from the kubeconfig (or the in-cluster
// service account) and injected into reconciler.New.
package cluster
