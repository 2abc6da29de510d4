package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

// ParseSettings converts the merged key/value configuration into Settings,
// applying defaults for absent keys. All invalid values are reported together.
func ParseSettings(values map[string]string) (Settings, error) {
	s := GetDefaultSettings()
	var errs ValidationErrors

	s.Name = strings.TrimSpace(values[KeyName])
	s.Type = strings.TrimSpace(values[KeyType])
	s.TagPrefix = strings.TrimSpace(values[KeyTagPrefix])
	s.Username = values[KeyUsername]
	s.Password = values[KeyPassword]
	s.Domain = strings.Trim(strings.TrimSpace(values[KeyDomain]), ".")
	s.Kubeconfig = strings.TrimSpace(values[KeyKubeconfig])
	s.KubeContext = strings.TrimSpace(values[KeyKubeContext])

	if v := strings.TrimSpace(values[KeyVersion]); v != "" {
		s.Version = v
	}
	if v := strings.TrimSpace(values[KeyDocker]); v != "" {
		s.Docker = v
	}

	if v := strings.TrimSpace(values[KeyVerbose]); v != "" {
		verbose, err := strconv.ParseBool(v)
		if err != nil {
			errs.Add(KeyVerbose, "must be a boolean", v)
		}
		s.Verbose = verbose
	}

	if v := strings.TrimSpace(values[KeyReplicas]); v != "" {
		n, err := parsePositiveInt32(v)
		if err != nil {
			errs.Add(KeyReplicas, err.Error(), v)
		} else {
			s.Replicas = n
		}
	}

	if v := strings.TrimSpace(values[KeyPort]); v != "" {
		n, err := parsePositiveInt32(v)
		if err != nil || n > 65535 {
			errs.Add(KeyPort, "must be a port number between 1 and 65535", v)
		} else {
			s.Port = n
		}
	}

	s.Env = containerEnv(values)

	if errs.HasErrors() {
		return Settings{}, errs
	}
	return s, nil
}

// containerEnv collects RACY_ENV_* keys, strips the prefix and orders them by name.
func containerEnv(values map[string]string) []EnvVar {
	var env []EnvVar
	for k, v := range values {
		name, ok := strings.CutPrefix(k, EnvKeyPrefix)
		if !ok || name == "" {
			continue
		}
		env = append(env, EnvVar{Name: name, Value: v})
	}
	sort.Slice(env, func(i, j int) bool { return env[i].Name < env[j].Name })
	return env
}

func parsePositiveInt32(v string) (int32, error) {
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("must be a positive integer")
	}
	return int32(n), nil
}
