package instrument

import (
	"context"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"

	"github.com/walteh/golivehtml"
	"github.com/walteh/golivehtml/pkg/document"
)

type Handler struct {
	pattern string
	outDir  string
}

func NewInstrumentCommand() *cobra.Command {
	me := &Handler{}

	cmd := &cobra.Command{
		Use:   "instrument [glob]",
		Short: "inject tag identity attributes into html files",
	}

	cmd.Flags().StringVarP(&me.outDir, "out-dir", "o", "", "write instrumented files here instead of stdout")
	cmd.Args = cobra.ExactArgs(1)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.pattern = args[0]
		return me.Run(cmd.Context(), cmd, afero.NewOsFs())
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context, cmd *cobra.Command, fs afero.Fs) error {
	matches, err := doublestar.FilepathGlob(me.pattern)
	if err != nil {
		return errors.Errorf("resolving glob %q: %w", me.pattern, err)
	}
	if len(matches) == 0 {
		return errors.Errorf("no files match %q", me.pattern)
	}

	if me.outDir != "" {
		if err := fs.MkdirAll(me.outDir, 0o755); err != nil {
			return errors.Errorf("creating %s: %w", me.outDir, err)
		}
	}

	in := golivehtml.New()

	var errs error
	for _, path := range matches {
		doc := document.NewFile(fs, path)

		html, err := in.GenerateInstrumentedHTML(ctx, doc)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}

		if me.outDir == "" {
			cmd.Print(html)
			continue
		}

		out := filepath.Join(me.outDir, filepath.Base(path))
		if err := afero.WriteFile(fs, out, []byte(html), 0o644); err != nil {
			errs = multierr.Append(errs, errors.Errorf("writing %s: %w", out, err))
			continue
		}
		zerolog.Ctx(ctx).Info().Str("in", path).Str("out", out).Msg("instrumented")
	}

	return errs
}
