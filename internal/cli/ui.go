package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/roomscatter/pkg/render/floorplan"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// =============================================================================
// File Output
// =============================================================================

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// =============================================================================
// Key-Value Output
// =============================================================================

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Stats Display
// =============================================================================

// printStats prints placement statistics on a single line.
func printStats(placed, attempts int, cached bool) {
	var parts []string
	if placed > 0 {
		parts = append(parts, fmt.Sprintf("%d placed", placed))
	}
	if attempts > 0 {
		parts = append(parts, fmt.Sprintf("%d attempts", attempts))
	}

	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}
	parts = append(parts, statusStyle.Render(status))

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Println(line)
}

// printCategoryLine prints one category's outcome, indented.
func printCategoryLine(id string, placed, target int, note string) {
	counts := fmt.Sprintf("%d/%d", placed, target)
	line := "  " + StyleValue.Render(id) + " " + StyleNumber.Render(counts)
	if note != "" {
		line += " " + StyleDim.Render(note)
	}
	fmt.Println(line)
}

// =============================================================================
// Plan Preview
// =============================================================================

// previewCols is the character width of the terminal floor-plan preview.
const previewCols = 48

var (
	stylePreviewFrame = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)

	previewStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(colorCyan),
		lipgloss.NewStyle().Foreground(colorGreen),
		lipgloss.NewStyle().Foreground(colorYellow),
		lipgloss.NewStyle().Foreground(colorBlue),
		lipgloss.NewStyle().Foreground(colorRed),
	}
)

// previewCell is one character cell of the rasterized floor plan.
type previewCell struct {
	mark rune
	cat  string
}

// previewGrid rasterizes the plan's item footprints onto a character grid.
// Each item stamps the first rune of its category ID; empty floor is '·'.
// Row height is halved because terminal cells are roughly twice as tall as
// they are wide.
func previewGrid(plan *floorplan.Plan, cols int) [][]previewCell {
	region := plan.Region
	rows := int(float64(cols) * region.Depth() / region.Width() / 2)
	if rows < 2 {
		rows = 2
	}
	grid := make([][]previewCell, rows)
	for r := range grid {
		grid[r] = make([]previewCell, cols)
		for c := range grid[r] {
			grid[r][c] = previewCell{mark: '·'}
		}
	}

	cellW := region.Width() / float64(cols)
	cellD := region.Depth() / float64(rows)
	for _, item := range plan.Items {
		lo, hi := item.Footprint.Min(), item.Footprint.Max()
		mark := '#'
		if item.CategoryID != "" {
			mark = []rune(item.CategoryID)[0]
		}
		c0 := clampCell(int((lo.X-region.Min.X)/cellW), cols)
		c1 := clampCell(int((hi.X-region.Min.X)/cellW), cols)
		r0 := clampCell(int((lo.Z-region.Min.Z)/cellD), rows)
		r1 := clampCell(int((hi.Z-region.Min.Z)/cellD), rows)
		for r := r0; r <= r1; r++ {
			for c := c0; c <= c1; c++ {
				grid[r][c] = previewCell{mark: mark, cat: item.CategoryID}
			}
		}
	}
	return grid
}

func clampCell(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// printPreview draws a coarse top-down view of the plan, one character per
// cell, categories colored in order of first appearance.
func printPreview(plan *floorplan.Plan) {
	styles := make(map[string]lipgloss.Style)
	lines := make([]string, 0, previewCols)
	for _, row := range previewGrid(plan, previewCols) {
		var line strings.Builder
		for _, cell := range row {
			if cell.cat == "" {
				line.WriteString(StyleDim.Render(string(cell.mark)))
				continue
			}
			st, ok := styles[cell.cat]
			if !ok {
				st = previewStyles[len(styles)%len(previewStyles)]
				styles[cell.cat] = st
			}
			line.WriteString(st.Render(string(cell.mark)))
		}
		lines = append(lines, line.String())
	}
	fmt.Println(stylePreviewFrame.Render(strings.Join(lines, "\n")))
}

// =============================================================================
// Commands & Next Steps
// =============================================================================

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Utilities
// =============================================================================

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}
