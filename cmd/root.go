package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"racy/internal/cli"
	"racy/pkg/logging"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeAuth indicates the cluster rejected the credentials or the user lacks permissions.
	ExitCodeAuth = 2
	// ExitCodeConflict indicates a resource was modified concurrently.
	ExitCodeConflict = 3
	// ExitCodeImage indicates the image build or push failed.
	ExitCodeImage = 4
)

const defaultTimeout = 5 * time.Minute

var (
	verbose  bool
	logLevel string
	timeout  time.Duration
)

// rootCmd represents the base command for the racy-deploy application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "racy-deploy",
	Short: "Build, publish and deploy a project to Kubernetes",
	Long: `racy-deploy detects whether a directory holds a static site, a Node.js
service or a project with its own Dockerfile, builds a container image for it,
pushes the image to a registry and creates or updates a Deployment and a
LoadBalancer Service for it in the cluster.

Settings are read from .env files in the project directory and from RACY_*
environment variables. Run 'racy-deploy init' to create them.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initLogging,
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "racy-deploy version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(getExitCode(err))
	}
}

// initLogging sets up logging from --log-level; --verbose always selects debug.
func initLogging(cmd *cobra.Command, args []string) error {
	level := logging.ParseLevel(logLevel)
	if verbose {
		level = logging.LevelDebug
	}
	logging.InitForCLI(level, cmd.ErrOrStderr())
	logging.Debug("CLI", "Running %s", cmd.CommandPath())
	return nil
}

// reportError logs err once, then writes a hint to w when one is known.
func reportError(w io.Writer, err error) {
	logging.Error("CLI", err, "Command failed")
	if hint := cli.Hint(err); hint != "" {
		fmt.Fprintf(w, "%s %s\n", text.FgYellow.Sprint("Hint:"), hint)
	}
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}

	switch cli.ClassifyError(err) {
	case cli.ErrorAuth:
		return ExitCodeAuth
	case cli.ErrorConflict:
		return ExitCodeConflict
	case cli.ErrorBuildPush:
		return ExitCodeImage
	default:
		return ExitCodeError
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", defaultTimeout, "Maximum duration of a command")

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newPublishCmd())
	rootCmd.AddCommand(newDeployCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
