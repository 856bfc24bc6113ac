package cli

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/circlepack/pkg/pack"
	"github.com/matzehuels/circlepack/pkg/pipeline"
	"github.com/matzehuels/circlepack/pkg/scene"
)

const (
	defaultWatchEvery = 5
	miniatureCols     = 48
	miniatureRows     = 24
)

// Watch styles
var (
	watchGrowingStyle = lipgloss.NewStyle().Foreground(colorTeal)
	watchStoppedStyle = lipgloss.NewStyle().Foreground(colorGray)
	watchFrameStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
)

// watchCommand creates the watch command: a live terminal view of a packing.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		flags  optionFlags
		cflags cacheFlags
		output string
		every  int
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow a packing tick by tick in the terminal",
		Long: `Follow a packing tick by tick in the terminal.

The view shows the tick counter, how many circles exist and how many are
still growing, and a miniature of the region. Press q to stop early. When
the packing completes the requested formats are written as with 'pack'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			return c.runWatch(cmd.Context(), opts, cflags, output, every)
		},
	}

	flags.registerPack(cmd)
	flags.registerRender(cmd, true)
	cflags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().IntVar(&every, "every", defaultWatchEvery, "redraw every n ticks")

	return cmd
}

func (c *CLI) runWatch(ctx context.Context, opts pipeline.Options, cflags cacheFlags, output string, every int) error {
	// Log lines would tear the full-screen view.
	opts.Logger = log.New(io.Discard)
	// A cached packing has no ticks to show.
	opts.Refresh = true
	if err := opts.Validate(); err != nil {
		return err
	}
	if every <= 0 {
		every = 1
	}

	runner, err := c.newRunner(ctx, cflags)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	packCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newWatchModel(opts.Config.Size, opts.Seed)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithOutput(os.Stderr))

	packed := packInBackground(packCtx, runner, opts, every, p.Send)

	final, err := p.Run()
	// The pack may still be mid-tick; it must let go of the runner before
	// the deferred Close.
	cancel()
	<-packed
	if err != nil {
		return err
	}

	fm := final.(watchModel)
	if fm.err != nil {
		return fm.err
	}
	if fm.scene == nil {
		printWarning("Stopped at tick %d", fm.tick)
		return nil
	}

	artifacts, err := runner.Render(ctx, fm.scene, opts)
	if err != nil {
		return err
	}
	paths, err := writeArtifacts(basePath(output, exportBase(fm.scene)), opts.Formats, artifacts)
	if err != nil {
		return err
	}
	printSuccess("Packed %d circles", len(fm.scene.Circles))
	printStats(len(fm.scene.Circles), fm.scene.Ticks, false)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// packInBackground packs on its own goroutine, sending a tickMsg every n
// ticks and a final doneMsg. The returned channel closes once the pack has
// returned and nothing more will be sent.
func packInBackground(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, every int, send func(tea.Msg)) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		s, err := runner.Pack(ctx, opts, func(tick int, f *pack.Field, res pack.TickResult) {
			if tick%every == 0 || res.Complete {
				send(tickMsg{tick: tick, growing: res.Growing, circles: f.Snapshot()})
			}
		})
		send(doneMsg{scene: s, err: err})
	}()
	return done
}

// =============================================================================
// watchModel - live packing view
// =============================================================================

type tickMsg struct {
	tick    int
	growing int
	circles []pack.Circle
}

type doneMsg struct {
	scene *scene.Scene
	err   error
}

type watchModel struct {
	size    float64
	seed    uint64
	start   time.Time
	tick    int
	circles int
	growing int
	grid    []string
	scene   *scene.Scene
	err     error
}

func newWatchModel(size float64, seed uint64) watchModel {
	return watchModel{
		size:  size,
		seed:  seed,
		start: time.Now(),
		grid:  miniature(nil, size, miniatureCols, miniatureRows),
	}
}

func (m watchModel) Init() tea.Cmd {
	return nil
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tickMsg:
		m.tick = msg.tick
		m.growing = msg.growing
		m.circles = len(msg.circles)
		m.grid = miniature(msg.circles, m.size, miniatureCols, miniatureRows)
	case doneMsg:
		m.scene = msg.scene
		m.err = msg.err
		if msg.scene != nil {
			m.tick = msg.scene.Ticks
			m.circles = len(msg.scene.Circles)
			m.growing = 0
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("circlepack"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  seed %d  size %g", m.seed, m.size)))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  tick %s  circles %s  growing %s  %s\n",
		StyleNumber.Render(fmt.Sprintf("%d", m.tick)),
		StyleNumber.Render(fmt.Sprintf("%d", m.circles)),
		watchGrowingStyle.Render(fmt.Sprintf("%d", m.growing)),
		StyleDim.Render(time.Since(m.start).Round(100*time.Millisecond).String())))

	b.WriteString(watchFrameStyle.Render(styleGrid(m.grid)))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error())
	case m.scene != nil:
		b.WriteString(StyleSuccess.Render(iconSuccess + " complete"))
	default:
		b.WriteString(StyleDim.Render("q quit"))
	}
	b.WriteString("\n")
	return b.String()
}

// miniature maps circles onto a cols x rows character grid. A cell shows a
// circle when the cell center lies inside it; growing circles win over
// stopped ones so activity stays visible.
func miniature(circles []pack.Circle, size float64, cols, rows int) []string {
	cells := make([][]byte, rows)
	for r := range cells {
		cells[r] = []byte(strings.Repeat(" ", cols))
	}
	cw, ch := size/float64(cols), size/float64(rows)

	for _, c := range circles {
		c0 := max(0, int(math.Floor((c.Center.X-c.Radius)/cw)))
		c1 := min(cols-1, int(math.Floor((c.Center.X+c.Radius)/cw)))
		r0 := max(0, int(math.Floor((c.Center.Y-c.Radius)/ch)))
		r1 := min(rows-1, int(math.Floor((c.Center.Y+c.Radius)/ch)))
		mark := byte('o')
		if c.IsGrowing() {
			mark = '*'
		}
		for r := r0; r <= r1; r++ {
			for col := c0; col <= c1; col++ {
				p := pack.Point{X: (float64(col) + 0.5) * cw, Y: (float64(r) + 0.5) * ch}
				if p.Dist(c.Center) <= c.Radius && cells[r][col] != '*' {
					cells[r][col] = mark
				}
			}
		}
	}

	lines := make([]string, rows)
	for r, row := range cells {
		lines[r] = string(row)
	}
	return lines
}

func styleGrid(grid []string) string {
	var b strings.Builder
	for r, line := range grid {
		if r > 0 {
			b.WriteByte('\n')
		}
		for _, ch := range line {
			switch ch {
			case '*':
				b.WriteString(watchGrowingStyle.Render("*"))
			case 'o':
				b.WriteString(watchStoppedStyle.Render("o"))
			default:
				b.WriteRune(ch)
			}
		}
	}
	return b.String()
}
