// Package registry publishes built images to their registry.
//
// Pushes to gcr.io, *.gcr.io and *-docker.pkg.dev log in as "oauth2accesstoken"
// with an access token obtained from Application Default Credentials. Other
// registries use the configured username and password, or the credentials
// already stored by "docker login" when none are configured.
package registry
