package project

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"k8s.io/apimachinery/pkg/util/validation"

	"racy/internal/config"
	"racy/pkg/logging"
)

// Type is the kind of project found in a directory.
type Type int

const (
	// None means no supported project marker was found.
	None Type = iota
	// Static is a directory of files served as-is (has index.html).
	Static
	// NodeService is a Node.js application started with "npm start" (has package.json).
	NodeService
	// PrebuiltImage is a directory that carries its own Dockerfile.
	PrebuiltImage
)

// Marker files, checked in priority order.
const (
	StaticMarker   = "index.html"
	NodeMarker     = "package.json"
	PrebuiltMarker = "Dockerfile"
)

// String returns the name persisted in RACY_TYPE.
func (t Type) String() string {
	switch t {
	case Static:
		return "static"
	case NodeService:
		return "node"
	case PrebuiltImage:
		return "prebuilt"
	default:
		return "none"
	}
}

// ParseType is the inverse of String. Unknown names map to None.
func ParseType(s string) Type {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "static":
		return Static
	case "node", "nodejs":
		return NodeService
	case "prebuilt", "docker":
		return PrebuiltImage
	default:
		return None
	}
}

// ErrNoProject is returned when an image is needed but Detect finds nothing to build.
var ErrNoProject = errors.New("no index.html, package.json or Dockerfile found")

// Detect inspects dir for the marker files.
func Detect(dir string) (Type, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return None, fmt.Errorf("failed to inspect project directory: %w", err)
	}
	if !info.IsDir() {
		return None, fmt.Errorf("%s is not a directory", dir)
	}

	for _, candidate := range []struct {
		marker string
		typ    Type
	}{
		{StaticMarker, Static},
		{NodeMarker, NodeService},
		{PrebuiltMarker, PrebuiltImage},
	} {
		if fileExists(filepath.Join(dir, candidate.marker)) {
			logging.Debug("Project", "Found %s in %s, project type is %s", candidate.marker, dir, candidate.typ)
			return candidate.typ, nil
		}
	}
	return None, nil
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

// Project is the resolved metadata of one deployable directory.
type Project struct {
	Dir       string
	Name      string
	Version   string
	Type      Type
	TagPrefix string
	Domain    string
	Replicas  int32
	Port      int32
	Env       []config.EnvVar
}

// Resolve detects the project type of dir and combines it with settings.
// The name defaults to the base name of the directory. A directory without
// build markers resolves to type None: it can still be deployed or removed,
// only building an image needs a marker.
func Resolve(dir string, settings config.Settings) (*Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	typ, err := Detect(abs)
	if err != nil {
		return nil, err
	}
	if typ != None && settings.Type != "" && ParseType(settings.Type) != typ {
		logging.Warn("Project", "Configured type %q differs from detected type %s, using %s", settings.Type, typ, typ)
	}

	name := settings.Name
	if name == "" {
		name = strings.ToLower(filepath.Base(abs))
	}

	p := &Project{
		Dir:       abs,
		Name:      name,
		Version:   settings.Version,
		Type:      typ,
		TagPrefix: strings.TrimSuffix(settings.TagPrefix, "/"),
		Domain:    settings.Domain,
		Replicas:  settings.Replicas,
		Port:      settings.Port,
		Env:       settings.Env,
	}
	if p.Version == "" {
		p.Version = config.DefaultVersion
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks that the name is usable as a Kubernetes object name and label value.
func (p *Project) Validate() error {
	if msgs := validation.IsDNS1123Label(p.Name); len(msgs) > 0 {
		return fmt.Errorf("invalid project name %q: %s (set %s to override)", p.Name, strings.Join(msgs, "; "), config.KeyName)
	}
	if p.Version == "" {
		return fmt.Errorf("project %s has no version", p.Name)
	}
	return nil
}

// ImageTag returns <prefix>/<name>:<version>, or <name>:<version> without a prefix.
func (p *Project) ImageTag() string {
	return path.Join(p.TagPrefix, p.Name) + ":" + p.Version
}

// Publishable reports whether the image has a registry to be pushed to.
func (p *Project) Publishable() bool {
	return p.TagPrefix != ""
}
