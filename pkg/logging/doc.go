// Package logging provides the structured logger used by racy-deploy.
//
// This package is built on Go's standard slog package and gives every
// subsystem of the tool the same output format and level filtering.
//
// # Log Levels
//   - **Debug**: Detailed information, enabled with --verbose or RACY_VERBOSE
//   - **Info**: Progress of a build, push or reconciliation pass
//   - **Warn**: Recoverable problems (e.g. update check failed)
//   - **Error**: Failures that end the current command
//
// # Usage
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Reconciler", "Creating deployment %s", name)
//	logging.Debug("Config", "Loaded %s", path)
//	logging.Error("Publisher", err, "Push of %s failed", tag)
//
// Each record carries the subsystem and a "run" attribute holding a random
// identifier for the current invocation, so the records of one pass can be
// separated from others in shared log files.
//
// # Kubernetes client output
//
// InitForCLI also points controller-runtime's logr logger and client-go's
// klog at the same handler, so warnings from the cluster client share the
// tool's format and level filtering.
package logging
