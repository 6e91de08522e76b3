package get_diagnostics

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_TextFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.html")
	require.NoError(t, os.WriteFile(path, []byte("<div></span></div>"), 0o644))

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	me := &Handler{pattern: path, format: "text"}
	require.NoError(t, me.Run(context.Background(), cmd, afero.NewOsFs()))

	assert.Contains(t, out.String(), path)
	assert.Contains(t, out.String(), "error 1:6 Close tag </span> has no matching open tag")
}

func TestRun_CleanFileProducesNoOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "good.html")
	require.NoError(t, os.WriteFile(path, []byte("<div><p>x</p></div>"), 0o644))

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	me := &Handler{pattern: path, format: "text"}
	require.NoError(t, me.Run(context.Background(), cmd, afero.NewOsFs()))

	assert.Empty(t, out.String())
}

func TestRun_UnknownFormat(t *testing.T) {
	me := &Handler{pattern: "whatever", format: "yaml"}
	assert.Error(t, me.Run(context.Background(), &cobra.Command{}, afero.NewOsFs()))
}
