package cmd

import (
	"github.com/spf13/cobra"

	"racy/internal/cli"
	"racy/internal/reconciler"
)

func newDeployCmd() *cobra.Command {
	var flags cli.CommandFlags

	cmd := &cobra.Command{
		Use:   "deploy [dir]",
		Short: "Create or update the Deployment and Service of the project",
		Long: `Creates or replaces the Deployment <name> running the project image and the
LoadBalancer Service <name> in namespace "default". When RACY_DOMAIN is set the
Service is annotated with the hostname <name>.<domain>. for external-dns.

The image is not built; run 'racy-deploy publish' first.`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return flags.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(cmd, args, &flags)
		},
	}
	cli.RegisterCommonFlags(cmd, &flags)
	return cmd
}

func runDeploy(cmd *cobra.Command, args []string, flags *cli.CommandFlags) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	notice := startUpdateCheck(ctx)

	p, settings, err := loadProject(projectDir(args))
	if err != nil {
		return err
	}

	client, err := newClusterClient(settings.Kubeconfig, settings.KubeContext)
	if err != nil {
		return err
	}

	desired := deploymentSpec(p)
	var result *reconciler.DeployResult
	err = cli.RunStep(cmd.ErrOrStderr(), flags.Quiet, "Deploying "+p.Name, func() error {
		var deployErr error
		result, deployErr = reconciler.New(client).Deploy(ctx, desired, p.Domain)
		return deployErr
	})
	if err != nil {
		return err
	}

	if err := cli.PrintReport(cmd.OutOrStdout(), flags.Format(), cli.DeployReport(p.Name, desired.Image, p.Domain, result)); err != nil {
		return err
	}
	printUpdateNotice(cmd.ErrOrStderr(), notice)
	return nil
}
