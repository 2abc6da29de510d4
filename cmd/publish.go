package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"racy/internal/cli"
	"racy/internal/containerizer"
	"racy/internal/project"
	"racy/internal/registry"
	"racy/pkg/logging"
)

func newPublishCmd() *cobra.Command {
	var flags cli.CommandFlags

	cmd := &cobra.Command{
		Use:   "publish [dir]",
		Short: "Build the project image and push it to the registry",
		Long: `Builds a container image for the project and tags it as
<RACY_TAG_PREFIX>/<name>:<version>. The image is pushed when a tag prefix is
configured. Google registries (gcr.io, *-docker.pkg.dev) authenticate with the
application default credentials.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(cmd, args, &flags)
		},
	}
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress progress indicators")
	return cmd
}

func runPublish(cmd *cobra.Command, args []string, flags *cli.CommandFlags) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	notice := startUpdateCheck(ctx)

	p, settings, err := loadProject(projectDir(args))
	if err != nil {
		return err
	}

	if p.Type == project.None {
		return fmt.Errorf("%s: %w", p.Dir, project.ErrNoProject)
	}

	runtime, err := newContainerRuntime(ctx, settings.Docker)
	if err != nil {
		return err
	}

	// Daemon output is mirrored only with debug logging; failures carry it in the error.
	var output io.Writer
	if verbose || settings.Verbose {
		output = cmd.ErrOrStderr()
	}

	tag := p.ImageTag()
	var imageID string
	err = cli.RunStep(cmd.ErrOrStderr(), flags.Quiet, "Building "+tag, func() error {
		var buildErr error
		imageID, buildErr = runtime.Build(ctx, containerizer.BuildRequest{
			Dir:    p.Dir,
			Type:   p.Type,
			Tag:    tag,
			Port:   p.Port,
			Output: output,
		})
		return buildErr
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Built %s (%s)\n", tag, imageID)

	if !p.Publishable() {
		logging.Debug("CLI", "No tag prefix configured, skipping push of %s", tag)
		fmt.Fprintln(cmd.OutOrStdout(), "No tag prefix configured, the image was not pushed")
		printUpdateNotice(cmd.ErrOrStderr(), notice)
		return nil
	}

	publisher := registry.NewPublisher(runtime)
	var creds registry.Credentials
	if settings.HasRegistryCredentials() {
		creds = registry.Credentials{Username: settings.Username, Password: settings.Password}
	}
	err = cli.RunStep(cmd.ErrOrStderr(), flags.Quiet, "Pushing "+tag, func() error {
		return publisher.Push(ctx, tag, creds, output)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Pushed %s\n", tag)

	printUpdateNotice(cmd.ErrOrStderr(), notice)
	return nil
}
