// Package cli implements the gridsolve command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridsolve/pkg/errors"
	"github.com/matzehuels/gridsolve/pkg/grid"
	gio "github.com/matzehuels/gridsolve/pkg/io"
	"github.com/matzehuels/gridsolve/pkg/layout"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "gridsolve"

	strategyAuto     = "auto"
	strategySolve    = "solve"
	strategyFallback = "fallback"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Request Flags
// =============================================================================

// requestFlags lets a command take its arrangement either from a request
// file or inline through --array.
type requestFlags struct {
	array  string
	width  float64
	height float64
}

func (f *requestFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.array, "array", "a", "", `inline arrangement, rows separated by ';' (e.g. "1 1 2 2; 0 3 3 0")`)
	cmd.Flags().Float64Var(&f.width, "width", 0, "override figure width in inches")
	cmd.Flags().Float64Var(&f.height, "height", 0, "override figure height in inches")
	cmd.ValidArgsFunction = completeRequestFiles
}

// load reads the request named by args or built from --array. Size flags
// override whatever the request sets.
func (f requestFlags) load(args []string) (*gio.Request, error) {
	var req *gio.Request
	switch {
	case len(args) > 0:
		r, err := gio.ImportRequest(args[0])
		if err != nil {
			return nil, err
		}
		req = r
	case f.array != "":
		a, err := parseArray(f.array)
		if err != nil {
			return nil, err
		}
		req = &gio.Request{Array: a, Params: layout.DefaultParams()}
	default:
		return nil, fmt.Errorf("no arrangement: pass a request file or --array")
	}

	if f.width > 0 {
		req.Params.FigWidth = f.width
	}
	if f.height > 0 {
		req.Params.FigHeight = f.height
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// parseArray reads an arrangement written as rows separated by ';' or
// newlines, with cells separated by spaces or commas.
func parseArray(s string) (grid.Array, error) {
	var rows [][]int
	for _, line := range strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '\n' }) {
		fields := strings.FieldsFunc(line, func(r rune) bool { return r == ',' || unicode.IsSpace(r) })
		if len(fields) == 0 {
			continue
		}
		row := make([]int, len(fields))
		for i, field := range fields {
			v, err := strconv.Atoi(field)
			if err != nil {
				return nil, errors.New(errors.ErrCodeInvalidConfig, "array cell %q is not an integer", field)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	return grid.New(rows)
}

// =============================================================================
// Engine Flags
// =============================================================================

type engineFlags struct {
	strategy  string
	minExtent float64
}

func (f *engineFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.strategy, "strategy", strategyAuto, "positioning strategy: auto, solve, fallback")
	cmd.Flags().Float64Var(&f.minExtent, "min-extent", layout.DefaultMinExtent, "smallest track and subplot size in inches")
	_ = cmd.RegisterFlagCompletionFunc("strategy", completeStrategy)
}

// newEngine builds an engine that logs through the CLI logger.
func (c *CLI) newEngine(f engineFlags, extra ...layout.Option) (*layout.Engine, error) {
	opts := []layout.Option{
		layout.WithLogger(c.Logger),
		layout.WithMinExtent(f.minExtent),
	}
	switch f.strategy {
	case "", strategyAuto:
	case strategySolve:
		opts = append(opts, layout.ForceStrategy(layout.SolveStrategy{
			Builder: layout.Builder{MinExtent: f.minExtent},
		}))
	case strategyFallback:
		opts = append(opts, layout.ForceStrategy(layout.FallbackStrategy{}))
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown strategy %q: want auto, solve or fallback", f.strategy)
	}
	return layout.NewEngine(append(opts, extra...)...), nil
}

// =============================================================================
// Output Helpers
// =============================================================================

// toFile reports whether output names a file rather than stdout.
func toFile(output string) bool { return output != "" && output != "-" }

// writeOutput writes data to path, or to w when path is empty or "-".
func writeOutput(w io.Writer, path string, data []byte) error {
	if !toFile(path) {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	return strings.Split(s, ",")
}
