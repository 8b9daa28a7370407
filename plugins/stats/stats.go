// plugins/stats/stats.go
package stats

import (
	"fmt"
	"sort"

	"github.com/bethropolis/pixie/internal/color"
	"github.com/bethropolis/pixie/internal/plugin"
)

// Ensure Stats implements plugin.Plugin
var _ plugin.Plugin = (*Stats)(nil)

// Stats reports how much of the canvas is painted and with which colors.
type Stats struct {
	api plugin.EditorAPI
}

// New creates a new instance of the Stats plugin.
func New() *Stats {
	return &Stats{}
}

// Name returns the unique name of the plugin.
func (p *Stats) Name() string {
	return "stats"
}

// Initialize registers the :stats command.
func (p *Stats) Initialize(api plugin.EditorAPI) error {
	p.api = api
	if err := api.RegisterCommand("stats", p.executeStats); err != nil {
		return fmt.Errorf("failed to register 'stats' command: %w", err)
	}
	return nil
}

// Shutdown performs cleanup (nothing needed for this simple plugin).
func (p *Stats) Shutdown() error {
	return nil
}

// Summary is the result of one count.
type Summary struct {
	Cells    int
	Filled   int
	Distinct int
	Top      color.RGB // most used pen color, ties broken by hex order
	TopCount int
}

// Count walks the grid through the API.
func Count(api plugin.EditorAPI) (Summary, error) {
	n := api.GetGridSize()
	s := Summary{Cells: n * n}
	uses := make(map[color.RGB]int)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			rgb, filled, err := api.GetCell(r, c)
			if err != nil {
				return s, err
			}
			if !filled {
				continue
			}
			s.Filled++
			uses[rgb]++
		}
	}
	s.Distinct = len(uses)

	colors := make([]color.RGB, 0, len(uses))
	for k := range uses {
		colors = append(colors, k)
	}
	sort.Slice(colors, func(i, j int) bool {
		if uses[colors[i]] != uses[colors[j]] {
			return uses[colors[i]] > uses[colors[j]]
		}
		return colors[i].String() < colors[j].String()
	})
	if len(colors) > 0 {
		s.Top = colors[0]
		s.TopCount = uses[colors[0]]
	}
	return s, nil
}

func (p *Stats) executeStats(args []string) error {
	if p.api == nil {
		return fmt.Errorf("stats plugin not initialized with API")
	}
	s, err := Count(p.api)
	if err != nil {
		return err
	}
	if s.Filled == 0 {
		p.api.SetStatusMessage("Stats: 0/%d cells filled", s.Cells)
		return nil
	}
	p.api.SetStatusMessage("Stats: %d/%d cells filled, %d colors, top %s (%d)",
		s.Filled, s.Cells, s.Distinct, s.Top, s.TopCount)
	return nil
}
