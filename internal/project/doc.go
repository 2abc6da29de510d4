// Package project detects what kind of project a directory holds and resolves
// the metadata (name, version, image tag) that the builder and the reconciler need.
package project
