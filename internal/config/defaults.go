package config

const (
	// DefaultStage is used when RACY_STAGE is not set.
	DefaultStage = "development"

	// DefaultVersion is the image version used when none is configured.
	DefaultVersion = "latest"

	// DefaultReplicas is the deployment replica count used when none is configured.
	DefaultReplicas int32 = 1

	// DefaultPort is the container and service port used when none is configured.
	DefaultPort int32 = 80

	// DefaultDocker is the docker binary looked up in PATH.
	DefaultDocker = "docker"
)

// GetDefaultSettings returns the settings used for keys that are absent.
func GetDefaultSettings() Settings {
	return Settings{
		Version:  DefaultVersion,
		Replicas: DefaultReplicas,
		Port:     DefaultPort,
		Docker:   DefaultDocker,
	}
}
