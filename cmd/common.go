package cmd

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"racy/internal/cluster"
	"racy/internal/config"
	"racy/internal/containerizer"
	"racy/internal/project"
	"racy/internal/reconciler"
	"racy/pkg/logging"
)

// Constructors for the external collaborators. Tests replace them with fakes.
var (
	newClusterClient = func(kubeconfig, kubeContext string) (reconciler.ClusterClient, error) {
		c, err := cluster.New(kubeconfig, kubeContext)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	newContainerRuntime = containerizer.NewContainerRuntime
)

// projectDir returns the directory argument, or the working directory.
func projectDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

// loadProject reads the configuration of dir and resolves the project in it.
func loadProject(dir string) (*project.Project, config.Settings, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, config.Settings{}, err
	}

	values, err := config.Load(abs)
	if err != nil {
		return nil, config.Settings{}, err
	}
	settings, err := config.ParseSettings(values)
	if err != nil {
		return nil, config.Settings{}, err
	}
	if settings.Verbose {
		logging.SetLevel(logging.LevelDebug)
	}

	p, err := project.Resolve(abs, settings)
	if err != nil {
		return nil, config.Settings{}, err
	}
	logging.Debug("CLI", "Resolved %s project %s in %s", p.Type, p.Name, p.Dir)
	return p, settings, nil
}

// deploymentSpec converts a project into the desired Deployment.
func deploymentSpec(p *project.Project) reconciler.DeploymentSpec {
	env := make([]reconciler.EnvVar, 0, len(p.Env))
	for _, e := range p.Env {
		env = append(env, reconciler.EnvVar{Name: e.Name, Value: e.Value})
	}
	return reconciler.DeploymentSpec{
		Name:     p.Name,
		Image:    p.ImageTag(),
		Replicas: p.Replicas,
		Port:     p.Port,
		Env:      env,
	}
}

// commandContext bounds a command by the --timeout flag.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
