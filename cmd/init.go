package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"racy/internal/cli"
	"racy/internal/config"
	"racy/internal/project"
	"racy/internal/registry"
	"racy/pkg/logging"
)

// deployConfigFile is the env file written by init.
const deployConfigFile = ".env.deploy"

// prompter asks the questions of init; *cli.Prompter implements it.
type prompter interface {
	Ask(question, def string) (string, error)
	Confirm(question string, def bool) (bool, error)
	AskSecret(question string) (string, error)
	Close() error
}

// newPrompter is a variable to allow scripted answers in tests
var newPrompter = func() (prompter, error) {
	p, err := cli.NewPrompter()
	if err != nil {
		return nil, err
	}
	return p, nil
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Create the deployment configuration of a project",
		Long: `Detects the project type and asks for the registry and domain settings,
then writes them to .env.deploy in the project directory.

The command fails if .env.deploy already exists.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := filepath.Abs(projectDir(args))
	if err != nil {
		return err
	}

	path := filepath.Join(dir, deployConfigFile)
	if _, err := os.Stat(path); err == nil {
		return config.ConfigurationError{
			FilePath:    path,
			FileName:    deployConfigFile,
			Message:     "deployment config already exists",
			Suggestions: []string{"edit the file directly or remove it before running init again"},
		}
	}

	typ, err := project.Detect(dir)
	if err != nil {
		return err
	}
	if typ == project.None {
		return fmt.Errorf("%s: %w", dir, project.ErrNoProject)
	}
	name := strings.ToLower(filepath.Base(dir))
	fmt.Fprintf(cmd.OutOrStdout(), "Detected %s project %s\n", typ, name)

	p, err := newPrompter()
	if err != nil {
		return err
	}
	defer p.Close()

	values, err := askSettings(p, name)
	if err != nil {
		return err
	}
	values[config.KeyName] = name
	values[config.KeyVersion] = config.DefaultVersion
	values[config.KeyType] = typ.String()

	if err := config.Write(path, values); err != nil {
		return err
	}
	logging.Debug("CLI", "Wrote %d settings to %s", len(values), path)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

// askSettings collects the optional settings of a new project.
func askSettings(p prompter, name string) (map[string]string, error) {
	values := make(map[string]string)

	verbose, err := p.Confirm("Enable verbose output", false)
	if err != nil {
		return nil, err
	}
	values[config.KeyVerbose] = strconv.FormatBool(verbose)

	private, err := p.Confirm("Push images to a registry", false)
	if err != nil {
		return nil, err
	}
	if private {
		if err := askRegistry(p, name, values); err != nil {
			return nil, err
		}
	}

	domain, err := p.Ask("Domain for the service hostname (empty for none)", "")
	if err != nil {
		return nil, err
	}
	if domain != "" {
		values[config.KeyDomain] = strings.TrimSuffix(domain, ".")
	}
	return values, nil
}

func askRegistry(p prompter, name string, values map[string]string) error {
	prefix, err := p.Ask("Image tag prefix (e.g. registry.example.com/team)", "")
	if err != nil {
		return err
	}
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return errors.New("a tag prefix is required to push images")
	}

	ref, err := registry.ParseTag(prefix + "/" + name)
	if err != nil {
		return err
	}
	values[config.KeyTagPrefix] = prefix

	if registry.IsCloudRegistry(ref.Registry) {
		logging.Info("CLI", "%s uses Google application default credentials, skipping username and password", ref.Registry)
		return nil
	}

	username, err := p.Ask("Registry username (empty to use the docker credential store)", "")
	if err != nil {
		return err
	}
	if username == "" {
		return nil
	}
	password, err := p.AskSecret("Registry password")
	if err != nil {
		return err
	}
	values[config.KeyUsername] = username
	values[config.KeyPassword] = password
	return nil
}
