// Package cli implements the svgfx command-line interface.
//
// # Commands
//
//   - render: paint a TOML scene to PNG, BMP or TIFF
//   - primitives: list the filter primitive types scenes may use
//
// All commands support --verbose (-v) for debug-level logging. The logger
// is installed as the svgfx library logger and passed to commands through
// context.Context.
package cli

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gogpu/svgfx"
)

const appName = "svgfx"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands
// registered. Running it installs the CLI logger as the library logger.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "svgfx renders SVG filter effects",
		Long:         `svgfx paints scenes of rectangles and images through SVG filter graphs (blur, color matrix, blend, composite, turbulence and more) and writes the result as an image.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			svgfx.SetLogger(slog.New(c.Logger))
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.primitivesCommand())

	return root
}
