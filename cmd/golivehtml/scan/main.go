package scan

import (
	"context"
	"encoding/json"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/golivehtml"
	"github.com/walteh/golivehtml/pkg/document"
	"github.com/walteh/golivehtml/pkg/position"
)

type Handler struct {
	path   string
	format string // text, json
}

func NewScanCommand() *cobra.Command {
	me := &Handler{}

	cmd := &cobra.Command{
		Use:   "scan [file]",
		Short: "print the tag spans of an html file",
	}

	cmd.Flags().StringVar(&me.format, "format", "text", "output format (text, json)")
	cmd.Args = cobra.ExactArgs(1)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.path = args[0]
		return me.Run(cmd.Context(), cmd, afero.NewOsFs())
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context, cmd *cobra.Command, fs afero.Fs) error {
	doc := document.NewFile(fs, me.path)

	in := golivehtml.New()
	spans, err := in.ScanDocument(ctx, doc)
	if err != nil {
		return errors.Errorf("scanning %s: %w", me.path, err)
	}

	switch me.format {
	case "json":
		data, err := json.MarshalIndent(spans, "", "  ")
		if err != nil {
			return errors.Errorf("encoding spans: %w", err)
		}
		cmd.Println(string(data))
	case "text":
		text, err := doc.Text()
		if err != nil {
			return errors.Errorf("reading %s: %w", me.path, err)
		}
		for _, span := range spans {
			line, col := position.NewBasicPosition(span.Name, span.Start).GetLineAndColumn(text)
			cmd.Printf("#%d\t<%s>\t%d:%d\t[%d,%d)\n", span.ID, span.Name, line+1, col+1, span.Start, span.End)
		}
	default:
		return errors.Errorf("unknown format %q", me.format)
	}

	return nil
}
