package config

const keyPrefix = "RACY_"

// Recognized keys.
const (
	KeyStage       = "RACY_STAGE"
	KeyName        = "RACY_NAME"
	KeyVersion     = "RACY_VERSION"
	KeyType        = "RACY_TYPE"
	KeyTagPrefix   = "RACY_TAG_PREFIX"
	KeyUsername    = "RACY_USERNAME"
	KeyPassword    = "RACY_PASSWORD"
	KeyDomain      = "RACY_DOMAIN"
	KeyVerbose     = "RACY_VERBOSE"
	KeyReplicas    = "RACY_REPLICAS"
	KeyPort        = "RACY_PORT"
	KeyKubeconfig  = "RACY_KUBECONFIG"
	KeyKubeContext = "RACY_KUBE_CONTEXT"
	KeyDocker      = "RACY_DOCKER"

	// EnvKeyPrefix marks keys that are passed to the container with the prefix stripped.
	EnvKeyPrefix = "RACY_ENV_"
)

// Settings is the typed view of the merged key/value configuration.
type Settings struct {
	Name        string
	Version     string
	Type        string // informational, written by init; detection always runs
	TagPrefix   string
	Username    string
	Password    string
	Domain      string
	Verbose     bool
	Replicas    int32
	Port        int32
	Kubeconfig  string
	KubeContext string
	Docker      string

	// Env holds container environment variables ordered by name.
	Env []EnvVar
}

// EnvVar is a single container environment variable.
type EnvVar struct {
	Name  string
	Value string
}

// HasRegistryCredentials reports whether a username was configured for the registry.
func (s Settings) HasRegistryCredentials() bool {
	return s.Username != ""
}
