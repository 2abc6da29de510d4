package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"racy/pkg/logging"
)

const (
	// DeployFileName is the file written by "init".
	DeployFileName = ".env.deploy"

	baseFileName = ".env"
	testStage    = "test"
)

// osEnviron is a variable to allow replacing the process environment in tests
var osEnviron = os.Environ

// Files returns the env files consulted for the given stage, lowest priority first.
func Files(stage string) []string {
	if stage == "" {
		stage = DefaultStage
	}

	files := []string{baseFileName}
	if stage != testStage {
		files = append(files, DeployFileName)
	}
	return append(files,
		fmt.Sprintf("%s.%s", baseFileName, stage),
		fmt.Sprintf("%s.%s.deploy", baseFileName, stage),
	)
}

// IsEnvFile reports whether name is one of the env files of any stage. These carry
// registry credentials and never belong in a build context.
func IsEnvFile(name string) bool {
	return name == baseFileName || strings.HasPrefix(name, baseFileName+".")
}

// Load reads the layered env files of dir and merges the process environment on top.
// Missing files are skipped. The stage is read from RACY_STAGE in the process environment.
func Load(dir string) (map[string]string, error) {
	values := make(map[string]string)
	processEnv := environment()

	for _, name := range Files(processEnv[KeyStage]) {
		path := filepath.Join(dir, name)

		fileValues, err := godotenv.Read(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				logging.Debug("ConfigLoader", "No %s found in %s", name, dir)
				continue
			}
			return nil, ConfigurationError{
				FilePath: path,
				FileName: name,
				Message:  "failed to parse env file",
				Details:  err.Error(),
			}
		}

		for k, v := range fileValues {
			values[k] = v
		}
		logging.Debug("ConfigLoader", "Loaded %d values from %s", len(fileValues), path)
	}

	for k, v := range processEnv {
		values[k] = v
	}

	return values, nil
}

// environment returns the process environment variables that belong to us.
func environment() map[string]string {
	env := make(map[string]string)
	for _, kv := range osEnviron() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !isRelevantKey(k) {
			continue
		}
		env[k] = v
	}
	return env
}

// isRelevantKey limits the process environment merged into the settings to our own keys.
func isRelevantKey(key string) bool {
	return strings.HasPrefix(key, keyPrefix)
}

// Write persists values as an env file at path. It fails if the file already exists.
func Write(path string, values map[string]string) error {
	content, err := godotenv.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to encode env file: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return ConfigurationError{
				FilePath:    path,
				FileName:    filepath.Base(path),
				Message:     "deployment config already exists",
				Suggestions: []string{"edit the file directly or remove it before running init again"},
			}
		}
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(content + "\n"); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	logging.Info("ConfigLoader", "Wrote %s", path)
	return nil
}
