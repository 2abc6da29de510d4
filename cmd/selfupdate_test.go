package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/creativeprojects/go-selfupdate"
)

func TestNewSelfUpdateCmd(t *testing.T) {
	selfUpdateCmd := newSelfUpdateCmd()

	if selfUpdateCmd.Use != "self-update" {
		t.Errorf("Expected Use to be 'self-update', got %s", selfUpdateCmd.Use)
	}
	if selfUpdateCmd.Long == "" {
		t.Error("Expected Long description to be set")
	}
	if selfUpdateCmd.RunE == nil {
		t.Error("Expected RunE function to be set")
	}
}

func TestRunSelfUpdateWithDevVersion(t *testing.T) {
	originalVersion := rootCmd.Version
	defer func() { rootCmd.Version = originalVersion }()

	for _, v := range []string{"dev", ""} {
		rootCmd.Version = v

		err := runSelfUpdate(newSelfUpdateCmd(), []string{})
		if err == nil {
			t.Fatalf("Expected error for version %q", v)
		}
		if !strings.Contains(err.Error(), "cannot self-update a development version") {
			t.Errorf("Expected specific error message, got: %s", err.Error())
		}
	}
}

// withReleaseRepository sets the release repository for the duration of a test.
func withReleaseRepository(t *testing.T, slug string) {
	t.Helper()
	original := releaseRepository
	SetReleaseRepository(slug)
	t.Cleanup(func() { releaseRepository = original })
}

func TestRunSelfUpdateWithoutReleaseRepository(t *testing.T) {
	originalVersion := rootCmd.Version
	originalDetect := detectLatest
	defer func() {
		rootCmd.Version = originalVersion
		detectLatest = originalDetect
	}()

	withReleaseRepository(t, "")
	rootCmd.Version = "1.0.0"
	detectLatest = func(ctx context.Context, slug string) (*selfupdate.Release, bool, error) {
		t.Fatal("Expected no release lookup")
		return nil, false, nil
	}

	err := runSelfUpdate(newSelfUpdateCmd(), nil)
	if err == nil || !strings.Contains(err.Error(), "no release repository") {
		t.Fatalf("Expected missing repository error, got %v", err)
	}
	if _, ok := <-startUpdateCheck(context.Background()); ok {
		t.Error("Expected no notice")
	}
}

func TestRunSelfUpdateReleaseNotFound(t *testing.T) {
	originalVersion := rootCmd.Version
	originalDetect := detectLatest
	defer func() {
		rootCmd.Version = originalVersion
		detectLatest = originalDetect
	}()

	withReleaseRepository(t, "example/racy-deploy")
	rootCmd.Version = "1.0.0"
	var gotSlug string
	detectLatest = func(ctx context.Context, slug string) (*selfupdate.Release, bool, error) {
		gotSlug = slug
		return nil, false, nil
	}

	cmd := newSelfUpdateCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	err := runSelfUpdate(cmd, nil)
	if err == nil || !strings.Contains(err.Error(), "example/racy-deploy could not be found") {
		t.Fatalf("Expected release not found error, got %v", err)
	}
	if gotSlug != "example/racy-deploy" {
		t.Errorf("Expected lookup in example/racy-deploy, got %q", gotSlug)
	}
	if !strings.Contains(buf.String(), "Current version: 1.0.0") {
		t.Errorf("Expected current version in output, got %q", buf.String())
	}
}

func TestStartUpdateCheck(t *testing.T) {
	originalVersion := rootCmd.Version
	originalDetect := detectLatest
	defer func() {
		rootCmd.Version = originalVersion
		detectLatest = originalDetect
	}()

	withReleaseRepository(t, "example/racy-deploy")
	calls := 0
	detectLatest = func(ctx context.Context, slug string) (*selfupdate.Release, bool, error) {
		calls++
		return nil, false, errors.New("rate limited")
	}

	t.Run("disabled by environment", func(t *testing.T) {
		t.Setenv(noUpdateCheckEnv, "1")
		rootCmd.Version = "1.0.0"

		if _, ok := <-startUpdateCheck(context.Background()); ok {
			t.Error("Expected no notice")
		}
	})

	t.Run("disabled for development builds", func(t *testing.T) {
		t.Setenv(noUpdateCheckEnv, "")
		rootCmd.Version = "dev"

		if _, ok := <-startUpdateCheck(context.Background()); ok {
			t.Error("Expected no notice")
		}
	})

	if calls != 0 {
		t.Errorf("Expected no release lookup, got %d", calls)
	}

	t.Run("lookup failure yields no notice", func(t *testing.T) {
		t.Setenv(noUpdateCheckEnv, "")
		rootCmd.Version = "1.0.0"

		if _, ok := <-startUpdateCheck(context.Background()); ok {
			t.Error("Expected no notice")
		}
		if calls != 1 {
			t.Errorf("Expected one release lookup, got %d", calls)
		}
	})
}

func TestPrintUpdateNotice(t *testing.T) {
	notice := make(chan string, 1)
	notice <- "1.2.0"
	close(notice)

	var buf bytes.Buffer
	printUpdateNotice(&buf, notice)
	if !strings.Contains(buf.String(), "racy-deploy 1.2.0 is available") {
		t.Errorf("Expected notice, got %q", buf.String())
	}

	closed := make(chan string)
	close(closed)
	buf.Reset()
	printUpdateNotice(&buf, closed)
	if buf.Len() != 0 {
		t.Errorf("Expected no output, got %q", buf.String())
	}
}
