package cluster

import (
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"

	"racy/pkg/logging"
)

// inClusterConfig is a variable to allow replacing the service account lookup in tests
var inClusterConfig = rest.InClusterConfig

// LoadRESTConfig builds the REST configuration for the cluster.
//
// The kubeconfig is resolved in this order:
//  1. kubeconfig, when not empty
//  2. the KUBECONFIG environment variable
//  3. ~/.kube/config, if it exists
//  4. the in-cluster service account
//
// kubeContext selects a context other than the kubeconfig's current one.
func LoadRESTConfig(kubeconfig, kubeContext string) (*rest.Config, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeconfig != "" {
		rules.ExplicitPath = expandHome(kubeconfig)
	}

	if !hasKubeconfig(rules) {
		logging.Debug(subsystem, "No kubeconfig found, using in-cluster configuration")
		cfg, err := inClusterConfig()
		if err != nil {
			return nil, fmt.Errorf("no kubeconfig found and in-cluster config failed: %w", err)
		}
		return cfg, nil
	}

	overrides := &clientcmd.ConfigOverrides{}
	if kubeContext != "" {
		overrides.CurrentContext = kubeContext
	}

	cfg, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, overrides).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to build rest config from kubeconfig: %w", err)
	}
	logging.Debug(subsystem, "Using API server %s", cfg.Host)
	return cfg, nil
}

func hasKubeconfig(rules *clientcmd.ClientConfigLoadingRules) bool {
	if rules.ExplicitPath != "" {
		return true
	}
	candidates := filepath.SplitList(os.Getenv(clientcmd.RecommendedConfigPathEnvVar))
	if len(candidates) == 0 {
		candidates = []string{filepath.Join(homedir.HomeDir(), clientcmd.RecommendedHomeDir, clientcmd.RecommendedFileName)}
	}
	for _, p := range candidates {
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return true
		}
	}
	return false
}

func expandHome(p string) string {
	if len(p) > 1 && p[:2] == "~/" {
		return filepath.Join(homedir.HomeDir(), p[2:])
	}
	return p
}
