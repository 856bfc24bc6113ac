package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/circlepack/pkg/pack"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// packSpinner animates while a packing runs and shows the latest tick
// reported by the pipeline. It stops by itself when ctx is cancelled.
type packSpinner struct {
	out     io.Writer
	message string
	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}

	mu      sync.Mutex
	status  string
	width   int
	stopOne sync.Once
}

func newPackSpinner(ctx context.Context, message string) *packSpinner {
	return newPackSpinnerTo(ctx, os.Stderr, message)
}

func newPackSpinnerTo(ctx context.Context, out io.Writer, message string) *packSpinner {
	sctx, cancel := context.WithCancel(ctx)
	return &packSpinner{
		out:     out,
		message: message,
		ctx:     sctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

// Start begins the animation in a goroutine.
func (s *packSpinner) Start() {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

// OnTick records the progress of a running packing. It matches
// pipeline.TickFunc and may be called from another goroutine.
func (s *packSpinner) OnTick(tick int, f *pack.Field, res pack.TickResult) {
	s.mu.Lock()
	s.status = fmt.Sprintf("tick %d · %d circles · %d growing", tick, f.Len(), res.Growing)
	s.mu.Unlock()
}

func (s *packSpinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := styleIconSpinner.Render(frame) + " " + StyleDim.Render(s.message)
	if s.status != "" {
		line += " " + StyleDim.Render(s.status)
	}
	// Pad over whatever the previous frame left behind.
	plain := lipgloss.Width(s.message+" "+s.status) + 2
	pad := ""
	if s.width > plain {
		pad = strings.Repeat(" ", s.width-plain)
	}
	s.width = max(s.width, plain)
	fmt.Fprintf(s.out, "\r%s%s", line, pad)
}

func (s *packSpinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.width))
	}
}

// Stop ends the animation and clears the line. Safe to call more than once.
func (s *packSpinner) Stop() {
	s.stopOne.Do(func() {
		s.cancel()
		<-s.stopped
	})
}

// StopWithError stops the spinner and prints message as an error.
func (s *packSpinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Status returns the last recorded progress line.
func (s *packSpinner) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}
