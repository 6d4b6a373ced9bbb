package cli

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridsolve/pkg/cache"
	"github.com/matzehuels/gridsolve/pkg/layout"
)

// exploreCommand creates the explore command for browsing a layout.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		req requestFlags
		eng engineFlags
	)

	cmd := &cobra.Command{
		Use:   "explore [request.toml]",
		Short: "Browse a layout interactively",
		Long: `Browse a layout interactively.

Step through subplots to see their rectangles and resize the figure to watch
floating subplots re-center. Layouts are cached, so returning to an earlier
size is answered without solving again.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := req.load(args)
			if err != nil {
				return err
			}

			rep := &report{}
			// The alternate screen owns the terminal, so engine warnings are
			// shown through the report instead of the logger.
			e, err := c.newEngine(eng,
				layout.WithHooks(rep),
				layout.WithCache(cache.NewMemoryCache(cache.DefaultMemoryEntries)),
				layout.WithLogger(log.New(io.Discard)),
			)
			if err != nil {
				return err
			}

			m := newExploreModel(e, rep, r.Array, r.Params)
			if m.err != nil {
				return m.err
			}
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return err
			}
			if fm, ok := final.(exploreModel); ok {
				loggerFromContext(cmd.Context()).Debug("explore finished",
					"width", fm.params.FigWidth, "height", fm.params.FigHeight, "selected", fm.Selected())
			}
			return nil
		},
	}

	req.register(cmd)
	eng.register(cmd)
	return cmd
}
