package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/roomscatter/pkg/observability"
	"github.com/matzehuels/roomscatter/pkg/scatter"
	"github.com/matzehuels/roomscatter/pkg/scene"
)

// =============================================================================
// Messages
// =============================================================================

type categoryStartMsg struct {
	id     string
	target int
}

type commitMsg struct {
	category string
	tier     string
}

type rollbackMsg struct {
	category string
}

type categoryDoneMsg struct {
	id     string
	placed int
}

type runDoneMsg struct {
	result *scatter.Result
	err    error
}

// =============================================================================
// Hooks Bridge
// =============================================================================

// watchHooks forwards placement events into a running bubbletea program.
type watchHooks struct {
	observability.NoopPlacementHooks
	program *tea.Program
}

func (h *watchHooks) OnCategoryStart(_ context.Context, categoryID string, target int) {
	h.program.Send(categoryStartMsg{id: categoryID, target: target})
}

func (h *watchHooks) OnCategoryComplete(_ context.Context, categoryID string, placed, _ int, _ time.Duration) {
	h.program.Send(categoryDoneMsg{id: categoryID, placed: placed})
}

func (h *watchHooks) OnCommit(_ context.Context, categoryID, _, tier string) {
	h.program.Send(commitMsg{category: categoryID, tier: tier})
}

func (h *watchHooks) OnRollback(_ context.Context, categoryID, _ string) {
	h.program.Send(rollbackMsg{category: categoryID})
}

// =============================================================================
// WatchModel - Live placement progress
// =============================================================================

// categoryProgress is the live state for one category row.
type categoryProgress struct {
	id        string
	target    int
	placed    int
	rollbacks int
	tiers     map[string]int
	active    bool
	done      bool
}

// WatchModel is the bubbletea model showing live placement progress.
type WatchModel struct {
	rows   []*categoryProgress
	index  map[string]*categoryProgress
	result *scatter.Result
	err    error
}

// newWatchModel creates a watch model with one pending row per category.
func newWatchModel(categories []scatter.Category) WatchModel {
	m := WatchModel{index: make(map[string]*categoryProgress)}
	for _, cat := range categories {
		row := &categoryProgress{id: cat.ID, tiers: make(map[string]int)}
		m.rows = append(m.rows, row)
		m.index[cat.ID] = row
	}
	return m
}

func (m WatchModel) Init() tea.Cmd {
	return nil
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case categoryStartMsg:
		if row, ok := m.index[msg.id]; ok {
			row.target = msg.target
			row.active = true
		}
	case commitMsg:
		if row, ok := m.index[msg.category]; ok {
			row.placed++
			row.tiers[msg.tier]++
		}
	case rollbackMsg:
		if row, ok := m.index[msg.category]; ok {
			row.rollbacks++
		}
	case categoryDoneMsg:
		if row, ok := m.index[msg.id]; ok {
			row.placed = msg.placed
			row.active = false
			row.done = true
		}
	case runDoneMsg:
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m WatchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Placing objects"))
	b.WriteString("\n\n")

	for _, row := range m.rows {
		marker := StyleDim.Render("·")
		switch {
		case row.done:
			marker = styleIconSuccess.Render(iconSuccess)
		case row.active:
			marker = StyleHighlight.Render(iconArrow)
		}

		counts := fmt.Sprintf("%d/%d", row.placed, row.target)
		line := marker + " " + StyleValue.Render(row.id) + " " + StyleNumber.Render(counts)
		if row.rollbacks > 0 {
			line += " " + StyleWarning.Render(fmt.Sprintf("%d rolled back", row.rollbacks))
		}
		if n := row.tiers[scatter.TierForced.String()]; n > 0 {
			line += " " + StyleDim.Render(fmt.Sprintf("%d forced", n))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render("q quit"))
	b.WriteString("\n")
	return b.String()
}

// =============================================================================
// Runner
// =============================================================================

// runWatched runs the director under a live progress TUI and returns the run
// result once the program exits.
func runWatched(ctx context.Context, director *scatter.Director, region scene.Region, opts *scatter.Options) (*scatter.Result, error) {
	program := tea.NewProgram(newWatchModel(opts.Categories), tea.WithContext(ctx))

	observability.SetPlacementHooks(&watchHooks{program: program})
	defer observability.Reset()

	go func() {
		result, err := director.HandleRegionReady(ctx, region)
		program.Send(runDoneMsg{result: result, err: err})
	}()

	final, err := program.Run()
	if err != nil {
		return nil, err
	}

	m, ok := final.(WatchModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type %T", final)
	}
	if m.err != nil {
		return nil, m.err
	}
	if m.result == nil {
		return nil, context.Canceled
	}
	return m.result, nil
}
