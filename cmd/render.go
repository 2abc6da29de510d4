package cmd

import (
	"github.com/spf13/cobra"

	"racy/internal/cli"
	"racy/internal/reconciler"
)

func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render [dir]",
		Short: "Print the Deployment and Service manifests without applying them",
		Long: `Prints the manifests deploy would send to the cluster as a YAML stream.
The cluster is not contacted, so the cluster-assigned fields of an existing
Service (clusterIP, resourceVersion) are absent.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRender,
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	p, _, err := loadProject(projectDir(args))
	if err != nil {
		return err
	}

	desired := deploymentSpec(p)
	return cli.PrintManifests(cmd.OutOrStdout(),
		reconciler.RenderDeployment(desired),
		reconciler.RenderService(reconciler.ServiceFor(desired, p.Domain)),
	)
}
