package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"racy/internal/reconciler"
)

func TestPrintManifests(t *testing.T) {
	desired := reconciler.DeploymentSpec{Name: "demo", Image: "demo:1"}

	var buf bytes.Buffer
	require.NoError(t, PrintManifests(&buf,
		reconciler.RenderDeployment(desired),
		reconciler.RenderService(reconciler.ServiceFor(desired, "example.org")),
	))

	docs := strings.Split(buf.String(), "---\n")
	require.Len(t, docs, 2)
	assert.Contains(t, docs[0], "kind: Deployment\n")
	assert.Contains(t, docs[1], "kind: Service\n")
	assert.Contains(t, docs[1], "external-dns.alpha.kubernetes.io/hostname: demo.example.org.\n")
}

func TestPrintManifests_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintManifests(&buf))
	assert.Empty(t, buf.String())
}
