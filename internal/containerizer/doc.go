// Package containerizer builds and pushes container images through a container
// runtime CLI.
//
// # Core Components
//
// ContainerRuntime: Interface for the image operations racy-deploy needs
//   - Build: Turn a project directory into a tagged image
//   - Push: Upload a tagged image to its registry
//
// DockerRuntime: Implementation for the Docker CLI
//   - Streams the build context as a tar archive on stdin ("docker build -t <tag> -")
//   - Logs in with "docker login --password-stdin" before pushing when credentials are given
//   - Reads the image ID back with "docker image inspect"
//
// # Build Contexts
//
// The project type decides what is streamed:
//   - Static: the directory plus a generated nginx Dockerfile
//   - NodeService: the directory without node_modules, plus a generated Dockerfile
//     that installs production dependencies and runs "npm start" under dumb-init
//   - PrebuiltImage: the directory as-is, using its own Dockerfile
//
// Generated Dockerfiles are text templates rendered with the sprig function library.
//
// # Error Handling
//
// Failures reported by the daemon are returned as *BuildError or *PushError and
// carry the tail of the daemon's output.
package containerizer
