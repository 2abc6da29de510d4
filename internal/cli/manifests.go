package cli

import (
	"fmt"
	"io"

	"sigs.k8s.io/yaml"
)

// PrintManifests writes objects as a multi-document YAML stream.
func PrintManifests(w io.Writer, objects ...interface{}) error {
	for i, obj := range objects {
		out, err := yaml.Marshal(obj)
		if err != nil {
			return fmt.Errorf("failed to encode manifest: %w", err)
		}
		if i > 0 {
			if _, err := fmt.Fprintln(w, "---"); err != nil {
				return err
			}
		}
		if _, err := w.Write(out); err != nil {
			return err
		}
	}
	return nil
}
