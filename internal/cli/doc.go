// Package cli contains the terminal plumbing shared by the racy-deploy commands.
//
// It renders command results as kubectl-style tables or as JSON and YAML,
// shows a spinner while long steps such as image builds run, prompts for
// values during init, and classifies errors so the commands can print a
// hint and exit with a meaningful code.
//
// Output formats are selected with the shared --output flag:
//
//	racy-deploy deploy -o yaml
//	racy-deploy remove --output json
package cli
