package scan

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_TextFormat(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "a.html", []byte("<div><span>x</span></div>"), 0o644))

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	me := &Handler{path: "a.html", format: "text"}
	require.NoError(t, me.Run(context.Background(), cmd, fs))

	assert.Contains(t, out.String(), "#2\t<div>\t1:1\t[0,25)")
	assert.Contains(t, out.String(), "#1\t<span>\t1:6\t[5,19)")
}

func TestRun_JSONFormat(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "a.html", []byte("<div>x</div>"), 0o644))

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	me := &Handler{path: "a.html", format: "json"}
	require.NoError(t, me.Run(context.Background(), cmd, fs))

	assert.Contains(t, out.String(), `"Name": "div"`)
}

func TestRun_UnknownFormat(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "a.html", []byte("<div>x</div>"), 0o644))

	me := &Handler{path: "a.html", format: "yaml"}
	assert.Error(t, me.Run(context.Background(), &cobra.Command{}, fs))
}

func TestRun_MissingFile(t *testing.T) {
	me := &Handler{path: "nope.html", format: "text"}
	assert.Error(t, me.Run(context.Background(), &cobra.Command{}, afero.NewMemMapFs()))
}
