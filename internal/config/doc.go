// Package config loads and persists the deployment settings of a project.
//
// Settings live in dotenv-style files inside the project directory. Load reads
// the layered files below, lowest priority first, and lets process environment
// variables override every file value:
//
//	.env
//	.env.deploy               (skipped for the "test" stage)
//	.env.<stage>
//	.env.<stage>.deploy
//
// The stage is taken from RACY_STAGE and defaults to "development". Values may
// reference earlier variables of the same file or the process environment with
// ${VAR}; parsing and expansion are done by github.com/joho/godotenv.
//
// # Recognized keys
//
//	RACY_NAME          project name (default: directory name)
//	RACY_VERSION       image version (default: latest)
//	RACY_TAG_PREFIX    registry path the image tag is prefixed with
//	RACY_USERNAME      registry user
//	RACY_PASSWORD      registry password
//	RACY_DOMAIN        DNS domain used for the service hostname annotation
//	RACY_VERBOSE       debug logging
//	RACY_REPLICAS      deployment replica count (default: 1)
//	RACY_PORT          container and service port (default: 80)
//	RACY_KUBECONFIG    kubeconfig path
//	RACY_KUBE_CONTEXT  kubeconfig context
//	RACY_DOCKER        docker binary (default: docker)
//	RACY_ENV_<NAME>    container environment variable <NAME>
//
// Write persists a key/value map as a new env file; it never overwrites an
// existing file, which is how "racy-deploy init" protects earlier answers.
package config
