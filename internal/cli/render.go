package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/svgfx"
	"github.com/gogpu/svgfx/scene"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	output string // output path; defaults to the scene name with the format extension
	format string // png, bmp or tiff; defaults to the output extension
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <scene.toml>",
		Short: "Render a scene to an image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: scene name with format extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: png, bmp, tiff (default: from output extension, else png)")

	return cmd
}

// resolveOutput picks the output path and format from the flags.
func resolveOutput(input string, opts renderOpts) (string, svgfx.Format, error) {
	format := strings.ToLower(opts.format)
	if format == "" && opts.output != "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(opts.output)), ".")
		if format == "tif" {
			format = string(svgfx.FormatTIFF)
		}
	}
	if format == "" {
		format = string(svgfx.FormatPNG)
	}
	f := svgfx.Format(format)
	switch f {
	case svgfx.FormatPNG, svgfx.FormatBMP, svgfx.FormatTIFF:
	default:
		return "", "", fmt.Errorf("unsupported format %q (want png, bmp or tiff)", format)
	}

	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
	}
	return output, f, nil
}

func runRender(ctx context.Context, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	output, format, err := resolveOutput(input, opts)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	s, err := scene.Load(input)
	if err != nil {
		return err
	}
	logger.Debug("loaded scene", "path", input, "size", fmt.Sprintf("%dx%d", s.Width, s.Height),
		"elements", len(s.Elements), "filters", strings.Join(s.FilterIDs(), ","))
	for _, id := range s.FilterIDs() {
		if f := s.Filters[id]; !f.Valid() {
			logger.Warn("filter is invalid and will be skipped", "filter", id, "err", f.Err())
		}
	}

	pm, err := s.Render(ctx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := pm.Encode(&buf, format); err != nil {
		return err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil { //nolint:gosec // output images are not secret
		return err
	}
	prog.done("rendered", "output", output, "format", format)
	return nil
}
