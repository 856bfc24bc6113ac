package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/circlepack/pkg/pack"
)

// syncBuffer guards a bytes.Buffer written by the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestPackSpinnerShowsTicks(t *testing.T) {
	var out syncBuffer
	s := newPackSpinnerTo(context.Background(), &out, "Packing circles...")

	f, err := pack.NewField(100, 10, 5)
	if err != nil {
		t.Fatal(err)
	}
	s.OnTick(7, f, pack.TickResult{Growing: 3})
	if got, want := s.Status(), "tick 7 · 1 circles · 3 growing"; got != want {
		t.Errorf("Status() = %q, want %q", got, want)
	}

	s.Start()
	time.Sleep(3 * spinnerInterval)
	s.Stop()

	if !strings.Contains(out.String(), "tick 7") {
		t.Errorf("spinner output missing status: %q", out.String())
	}
}

func TestPackSpinnerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newPackSpinnerTo(ctx, &syncBuffer{}, "Packing circles...")
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner still running after context cancellation")
	}
}

func TestPackSpinnerStopIsIdempotent(t *testing.T) {
	s := newPackSpinnerTo(context.Background(), &syncBuffer{}, "Packing circles...")
	s.Start()
	s.Stop()
	s.Stop()
	s.StopWithError("Packing failed")
}
