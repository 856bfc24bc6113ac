package cli

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/circlepack/pkg/cache"
	"github.com/matzehuels/circlepack/pkg/pack"
	"github.com/matzehuels/circlepack/pkg/pipeline"
	"github.com/matzehuels/circlepack/pkg/scene"
)

func TestMiniature(t *testing.T) {
	stopped := pack.NewCircle(50, 50, 20)
	stopped.Stop()
	growing := pack.NewCircle(90, 10, 8)

	grid := miniature([]pack.Circle{stopped, growing}, 100, 10, 10)
	if len(grid) != 10 {
		t.Fatalf("rows = %d, want 10", len(grid))
	}
	for r, line := range grid {
		if len(line) != 10 {
			t.Fatalf("row %d has %d columns", r, len(line))
		}
	}
	// Cell (5,5) has center (55,55), inside the stopped circle.
	if grid[5][5] != 'o' {
		t.Errorf("center cell = %q, want 'o'\n%s", grid[5][5], strings.Join(grid, "\n"))
	}
	// Cell (9,1) has center (95,15), inside the growing circle.
	if grid[1][9] != '*' {
		t.Errorf("growing cell = %q, want '*'\n%s", grid[1][9], strings.Join(grid, "\n"))
	}
	if grid[9][0] != ' ' {
		t.Errorf("corner cell = %q, want blank", grid[9][0])
	}
}

func TestMiniatureClipsToGrid(t *testing.T) {
	big := pack.NewCircle(50, 50, 500)
	grid := miniature([]pack.Circle{big}, 100, 4, 4)
	for _, line := range grid {
		if line != "****" {
			t.Errorf("row = %q, want fully covered", line)
		}
	}
}

func TestWatchModelUpdate(t *testing.T) {
	m := newWatchModel(100, 42)

	next, cmd := m.Update(tickMsg{tick: 10, growing: 1, circles: []pack.Circle{pack.NewCircle(50, 50, 10)}})
	m = next.(watchModel)
	if cmd != nil {
		t.Error("tick message should not produce a command")
	}
	if m.tick != 10 || m.circles != 1 || m.growing != 1 {
		t.Errorf("model = tick %d circles %d growing %d", m.tick, m.circles, m.growing)
	}
	if view := m.View(); !strings.Contains(view, "tick") || !strings.Contains(view, "q quit") {
		t.Errorf("view missing status line:\n%s", view)
	}

	s := &scene.Scene{Ticks: 12, Circles: make([]scene.Circle, 3)}
	next, cmd = m.Update(doneMsg{scene: s})
	m = next.(watchModel)
	if cmd == nil {
		t.Fatal("done message should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("done command is not tea.Quit")
	}
	if m.tick != 12 || m.circles != 3 || m.growing != 0 {
		t.Errorf("model after done = tick %d circles %d growing %d", m.tick, m.circles, m.growing)
	}
	if !strings.Contains(m.View(), "complete") {
		t.Error("view should report completion")
	}
}

func TestWatchModelError(t *testing.T) {
	m := newWatchModel(100, 42)
	next, _ := m.Update(doneMsg{err: errors.New("tick limit reached")})
	if view := next.(watchModel).View(); !strings.Contains(view, "tick limit reached") {
		t.Errorf("view should show the error:\n%s", view)
	}
}

func TestWatchModelQuit(t *testing.T) {
	m := newWatchModel(100, 42)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q command is not tea.Quit")
	}
}

// closeTrackingCache records writes that arrive after Close.
type closeTrackingCache struct {
	cache.NullCache
	mu         sync.Mutex
	closed     bool
	lateWrites int
}

func (c *closeTrackingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		c.lateWrites++
	}
	return nil
}

func (c *closeTrackingCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func TestPackInBackgroundFinishesBeforeClose(t *testing.T) {
	tests := []struct {
		name   string
		quitAt int // tick at which the viewer quits; 0 lets the pack finish
	}{
		{"quit mid pack", 3},
		{"pack completes", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &closeTrackingCache{}
			runner := pipeline.NewRunner(c, nil, log.New(io.Discard))

			opts := pipeline.Options{Config: pack.DefaultConfig(), Seed: 7, Refresh: true}
			opts.Config.Size, opts.Config.Border, opts.Config.SeedRadius = 120, 8, 24
			opts.Config.MaxAttempts = 200
			opts.SetDefaults()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			var (
				mu   sync.Mutex
				msgs []tea.Msg
			)
			send := func(msg tea.Msg) {
				mu.Lock()
				msgs = append(msgs, msg)
				mu.Unlock()
				if tm, ok := msg.(tickMsg); ok && tm.tick == tt.quitAt {
					cancel()
				}
			}

			<-packInBackground(ctx, runner, opts, 1, send)
			runner.Close()

			mu.Lock()
			defer mu.Unlock()
			if len(msgs) == 0 {
				t.Fatal("no messages sent")
			}
			last, ok := msgs[len(msgs)-1].(doneMsg)
			if !ok {
				t.Fatalf("last message = %T, want doneMsg", msgs[len(msgs)-1])
			}
			if tt.quitAt > 0 && !errors.Is(last.err, context.Canceled) {
				t.Errorf("done error = %v, want context.Canceled", last.err)
			}
			if tt.quitAt == 0 && (last.err != nil || last.scene == nil) {
				t.Errorf("done = %+v, want a finished scene", last)
			}
			if c.lateWrites != 0 {
				t.Errorf("%d cache writes after Close", c.lateWrites)
			}
		})
	}
}
