package containerizer

import (
	"fmt"

	"racy/internal/project"
	"racy/internal/template"
)

const (
	defaultStaticImage = "nginx:alpine"
	defaultNodeImage   = "node:lts-alpine"
)

const staticDockerfile = `FROM {{ .BaseImage | default "` + defaultStaticImage + `" }}
COPY . /usr/share/nginx/html
`

const nodeDockerfile = `FROM {{ .BaseImage | default "` + defaultNodeImage + `" }}
STOPSIGNAL SIGINT
RUN apk add --no-cache dumb-init
WORKDIR /app
COPY package.json /app/
RUN npm install --production
COPY . /app
ENV PORT={{ .Port }}
EXPOSE {{ .Port }}
CMD ["dumb-init", "npm", "start"]
`

// generatedContext describes what is added to and left out of a project's build context.
type generatedContext struct {
	files   map[string][]byte
	exclude map[string]bool // top-level entries that are not streamed
}

// generateContext renders the files a project type needs on top of its own directory.
func generateContext(engine *template.Engine, req BuildRequest) (*generatedContext, error) {
	data := templateData(req)

	switch req.Type {
	case project.PrebuiltImage:
		return &generatedContext{}, nil

	case project.Static:
		dockerfile, err := engine.Render("Dockerfile", staticDockerfile, data)
		if err != nil {
			return nil, err
		}
		return &generatedContext{
			files:   map[string][]byte{"Dockerfile": []byte(dockerfile)},
			exclude: map[string]bool{"Dockerfile": true, ".dockerignore": true},
		}, nil

	case project.NodeService:
		if err := engine.ValidateContext([]string{"Port"}, data); err != nil {
			return nil, fmt.Errorf("node project: %w", err)
		}
		dockerfile, err := engine.Render("Dockerfile", nodeDockerfile, data)
		if err != nil {
			return nil, err
		}
		return &generatedContext{
			files: map[string][]byte{
				"Dockerfile":    []byte(dockerfile),
				".dockerignore": []byte("node_modules\n"),
			},
			exclude: map[string]bool{"Dockerfile": true, ".dockerignore": true, "node_modules": true},
		}, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, req.Type)
	}
}

// templateData returns the values the Dockerfile templates see. Unset request
// fields are left out so that templates fall back to their defaults.
func templateData(req BuildRequest) map[string]interface{} {
	values := map[string]interface{}{}
	if req.BaseImage != "" {
		values["BaseImage"] = req.BaseImage
	}
	if req.Port != 0 {
		values["Port"] = req.Port
	}
	return template.MergeContexts(map[string]interface{}{"BaseImage": ""}, values)
}
