package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/eigerco/rngdao/pkg/serialization/codec"
)

// printer writes command results either as indented JSON or as text.
type printer struct {
	format string
	w      io.Writer
	codec  codec.Codec
}

func newPrinter(opts *RootOptions, cmd *cobra.Command) *printer {
	return &printer{
		format: opts.Output,
		w:      cmd.OutOrStdout(),
		codec:  &codec.JSONCodec{Indent: "  "},
	}
}

// print writes v as JSON, or calls text in text mode.
func (p *printer) print(v any, text func(w io.Writer)) error {
	if p.format == "json" {
		b, err := p.codec.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
		_, err = fmt.Fprintln(p.w, string(b))
		return err
	}
	text(p.w)
	return nil
}
