package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"racy/pkg/logging"
)

const (
	// noUpdateCheckEnv disables the update notice after deploy and publish when set.
	noUpdateCheckEnv = "RACY_NO_UPDATE_CHECK"

	// noticeWait bounds how long a finished command waits for the update check.
	noticeWait = 500 * time.Millisecond
)

// releaseRepository is the GitHub repository (owner/repo) releases are published to.
// Builds without one cannot update themselves.
var releaseRepository string

// SetReleaseRepository sets the repository self-update and the update notice look at.
// Like the version, it is injected by the main package at build time.
func SetReleaseRepository(slug string) {
	releaseRepository = slug
}

// detectLatest is a variable to allow replacing the GitHub release lookup in tests
var detectLatest = func(ctx context.Context, slug string) (*selfupdate.Release, bool, error) {
	updater, err := selfupdate.NewUpdater(selfupdate.Config{})
	if err != nil {
		return nil, false, fmt.Errorf("failed to create updater: %w", err)
	}
	return updater.DetectLatest(ctx, selfupdate.ParseSlug(slug))
}

// newSelfUpdateCmd creates the Cobra command for the self-update functionality.
// This allows the application to update itself to the latest version from GitHub.
func newSelfUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "self-update",
		Short: "Update racy-deploy to the latest version",
		Long: `Checks for the latest release of racy-deploy on GitHub and
updates the current binary if a newer version is found.`,
		RunE: runSelfUpdate,
	}
}

// runSelfUpdate performs the self-update logic.
// It checks the current version against the latest GitHub release and updates if necessary.
func runSelfUpdate(cmd *cobra.Command, args []string) error {
	currentVersion := rootCmd.Version
	// Development builds do not follow semantic versioning.
	if currentVersion == "" || currentVersion == "dev" {
		return fmt.Errorf("cannot self-update a development version")
	}
	if releaseRepository == "" {
		return fmt.Errorf("self-update is not available: this build has no release repository")
	}

	out := cmd.OutOrStdout()
	ctx, cancel := commandContext(cmd)
	defer cancel()

	fmt.Fprintf(out, "Current version: %s\n", currentVersion)
	fmt.Fprintln(out, "Checking for updates...")

	latest, found, err := detectLatest(ctx, releaseRepository)
	if err != nil {
		return fmt.Errorf("error detecting latest version: %w", err)
	}
	if !found {
		return fmt.Errorf("latest release for %s could not be found", releaseRepository)
	}

	if !latest.GreaterThan(currentVersion) {
		fmt.Fprintln(out, "Current version is the latest.")
		return nil
	}

	fmt.Fprintf(out, "Found newer version: %s (published at %s)\n", latest.Version(), latest.PublishedAt)
	fmt.Fprintf(out, "Release notes:\n%s\n", latest.ReleaseNotes)

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}

	fmt.Fprintf(out, "Updating %s to version %s...\n", exe, latest.Version())

	updater, err := selfupdate.NewUpdater(selfupdate.Config{})
	if err != nil {
		return fmt.Errorf("failed to create updater: %w", err)
	}
	if err := updater.UpdateTo(ctx, latest, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	fmt.Fprintf(out, "Successfully updated to version %s\n", latest.Version())
	return nil
}

// startUpdateCheck looks up the latest release in the background.
// The channel receives the newer version, or is closed without a value.
func startUpdateCheck(ctx context.Context) <-chan string {
	notice := make(chan string, 1)

	currentVersion := rootCmd.Version
	if os.Getenv(noUpdateCheckEnv) != "" || releaseRepository == "" || currentVersion == "" || currentVersion == "dev" {
		close(notice)
		return notice
	}

	slug := releaseRepository
	go func() {
		defer close(notice)
		latest, found, err := detectLatest(ctx, slug)
		if err != nil {
			logging.Debug("CLI", "Update check failed: %v", err)
			return
		}
		if found && latest.GreaterThan(currentVersion) {
			notice <- latest.Version()
		}
	}()
	return notice
}

// printUpdateNotice prints the result of startUpdateCheck if it is ready in time.
func printUpdateNotice(w io.Writer, notice <-chan string) {
	select {
	case version, ok := <-notice:
		if ok {
			fmt.Fprintf(w, "%s racy-deploy %s is available, run 'racy-deploy self-update' to install it\n",
				text.FgYellow.Sprint("Notice:"), version)
		}
	case <-time.After(noticeWait):
		logging.Debug("CLI", "Update check still running, skipping notice")
	}
}
