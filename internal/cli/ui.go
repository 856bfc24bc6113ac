package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/circlepack/pkg/pipeline"
)

// stdout receives all user-facing status lines. Logs go to stderr.
var stdout io.Writer = os.Stdout

// =============================================================================
// Palette
// =============================================================================

var (
	colorTeal  = lipgloss.Color("36")  // growing circles, numbers
	colorGreen = lipgloss.Color("35")  // success, cache hits
	colorAmber = lipgloss.Color("220") // warnings
	colorRed   = lipgloss.Color("167") // errors
	colorBlue  = lipgloss.Color("75")  // suggested commands
	colorWhite = lipgloss.Color("255") // paths
	colorGray  = lipgloss.Color("245") // labels, stopped circles
	colorDim   = lipgloss.Color("240") // secondary text
)

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorTeal)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorTeal)
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorAmber)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorTeal)

	styleWarning = lipgloss.NewStyle().Foreground(colorAmber)
	stylePath    = lipgloss.NewStyle().Foreground(colorWhite)
	styleLabel   = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleCached  = lipgloss.NewStyle().Foreground(colorGreen)
	styleFresh   = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"

	labelCached = "cached"
	labelFresh  = "fresh"
)

// =============================================================================
// Status Lines
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconWarning.Render(iconWarning)+" "+styleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints one written artifact.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+stylePath.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleLabel.Render(key)+" "+stylePath.Render(value))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Packing Statistics
// =============================================================================

// statsLine renders "N circles · N ticks · cached|fresh".
func statsLine(circles, ticks int, cached bool) string {
	sep := StyleDim.Render(" · ")
	label := styleFresh.Render(labelFresh)
	if cached {
		label = styleCached.Render(labelCached)
	}
	return "  " + strings.Join([]string{
		StyleDim.Render(strconv.Itoa(circles) + " circles"),
		StyleDim.Render(strconv.Itoa(ticks) + " ticks"),
		label,
	}, sep)
}

func printStats(circles, ticks int, cached bool) {
	fmt.Fprintln(stdout, statsLine(circles, ticks, cached))
}

// statsRows lists the figures shown by --stats.
func statsRows(res *pipeline.Result) [][]string {
	hash := res.SceneHash
	if len(hash) > 12 {
		hash = hash[:12]
	}
	return [][]string{
		{"circles", strconv.Itoa(res.Stats.Circles)},
		{"contacts", strconv.Itoa(res.Stats.Contacts)},
		{"ticks", strconv.Itoa(res.Stats.Ticks)},
		{"coverage", fmt.Sprintf("%.1f%%", res.Stats.Coverage*100)},
		{"largest", fmt.Sprintf("%.1f", res.Scene.MaxRadius())},
		{"pack", cacheLabel(res.Stats.PackTime, res.CacheInfo.PackHit)},
		{"render", cacheLabel(res.Stats.RenderTime, res.CacheInfo.RenderHit)},
		{"scene", hash},
	}
}

func printStatsTable(res *pipeline.Result) {
	header := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Stat", "Value").
		Rows(statsRows(res)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col == 1:
				return StyleNumber
			default:
				return StyleDim
			}
		})
	fmt.Fprintln(stdout, t.Render())
}

func cacheLabel(d time.Duration, cached bool) string {
	if cached {
		return labelCached
	}
	return d.Round(time.Millisecond).String()
}
