package get_diagnostics

import (
	"context"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"

	"github.com/walteh/golivehtml/pkg/diagnostic"
	"github.com/walteh/golivehtml/pkg/document"
	"github.com/walteh/golivehtml/pkg/htmltok"
	"github.com/walteh/golivehtml/pkg/scanner"
)

type Handler struct {
	pattern string
	format  string // vscode, json, text
}

func NewGetDiagnosticsCommand() *cobra.Command {
	me := &Handler{}

	cmd := &cobra.Command{
		Use:   "get-diagnostics [glob]",
		Short: "report tolerated markup problems in html files",
	}

	cmd.Flags().StringVar(&me.format, "format", "text", "output format (vscode, json, text)")
	cmd.Args = cobra.ExactArgs(1)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.pattern = args[0]
		return me.Run(cmd.Context(), cmd, afero.NewOsFs())
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context, cmd *cobra.Command, fs afero.Fs) error {
	formatter, err := diagnostic.NewFormatter(me.format)
	if err != nil {
		return err
	}

	matches, err := doublestar.FilepathGlob(me.pattern)
	if err != nil {
		return errors.Errorf("resolving glob %q: %w", me.pattern, err)
	}
	if len(matches) == 0 {
		return errors.Errorf("no files match %q", me.pattern)
	}

	var errs error
	for _, path := range matches {
		doc := document.NewFile(fs, path)
		text, err := doc.Text()
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}

		_, issues := scanner.Scan(ctx, text, htmltok.Tokenize(ctx, text))

		diagnostics := diagnostic.FromScan(text, issues)
		if diagnostics.Empty() {
			continue
		}

		formatted, err := formatter.Format(diagnostics)
		if err != nil {
			errs = multierr.Append(errs, errors.Errorf("formatting diagnostics for %s: %w", path, err))
			continue
		}

		cmd.Printf("%s\n%s", path, formatted)
	}

	return errs
}
