package cmd

import (
	"github.com/spf13/cobra"

	"racy/internal/cli"
	"racy/internal/reconciler"
)

func newRemoveCmd() *cobra.Command {
	var flags cli.CommandFlags

	cmd := &cobra.Command{
		Use:   "remove [dir]",
		Short: "Delete the Deployment and Service of the project",
		Long: `Deletes the Deployment and the Service named after the project from
namespace "default". Resources that do not exist are skipped, so removing a
project twice is not an error.`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return flags.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd, args, &flags)
		},
	}
	cli.RegisterCommonFlags(cmd, &flags)
	return cmd
}

func runRemove(cmd *cobra.Command, args []string, flags *cli.CommandFlags) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	p, settings, err := loadProject(projectDir(args))
	if err != nil {
		return err
	}

	client, err := newClusterClient(settings.Kubeconfig, settings.KubeContext)
	if err != nil {
		return err
	}

	var result *reconciler.RemoveResult
	err = cli.RunStep(cmd.ErrOrStderr(), flags.Quiet, "Removing "+p.Name, func() error {
		var removeErr error
		result, removeErr = reconciler.New(client).Remove(ctx, p.Name)
		return removeErr
	})
	if err != nil {
		return err
	}

	return cli.PrintReport(cmd.OutOrStdout(), flags.Format(), cli.RemoveReport(result))
}
