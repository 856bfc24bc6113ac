package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/circlepack/pkg/cache"
	"github.com/matzehuels/circlepack/pkg/pipeline"
	"github.com/matzehuels/circlepack/pkg/scene"
)

// captureStdout redirects status output for the duration of a test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

func TestStatsLine(t *testing.T) {
	tests := []struct {
		cached bool
		want   string
	}{
		{false, labelFresh},
		{true, labelCached},
	}
	for _, tt := range tests {
		line := statsLine(412, 977, tt.cached)
		for _, want := range []string{"412 circles", "977 ticks", tt.want} {
			if !strings.Contains(line, want) {
				t.Errorf("statsLine(cached=%v) = %q, missing %q", tt.cached, line, want)
			}
		}
	}
}

func TestStatsRows(t *testing.T) {
	res := &pipeline.Result{
		Scene:     &scene.Scene{Circles: []scene.Circle{{R: 3}, {R: 7.25}}},
		SceneHash: "0123456789abcdef",
		Stats: pipeline.Stats{
			Circles:  2,
			Contacts: 1,
			Ticks:    40,
			Coverage: 0.4567,
			PackTime: 1500 * time.Microsecond,
		},
		CacheInfo: pipeline.CacheInfo{RenderHit: true},
	}
	got := map[string]string{}
	for _, row := range statsRows(res) {
		got[row[0]] = row[1]
	}
	want := map[string]string{
		"circles":  "2",
		"contacts": "1",
		"ticks":    "40",
		"coverage": "45.7%",
		"largest":  "7.2",
		"pack":     "2ms",
		"render":   labelCached,
		"scene":    "0123456789ab",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("row %s = %q, want %q", k, got[k], v)
		}
	}
}

func TestPrintHelpersWriteToStdout(t *testing.T) {
	out := captureStdout(t)
	printSuccess("Packed %d circles", 3)
	printFile("art/out.svg")
	printKeyValue("addr", ":8080")
	for _, want := range []string{iconSuccess, "Packed 3 circles", "art/out.svg", ":8080"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output %q missing %q", out.String(), want)
		}
	}
}

func TestCacheCommands(t *testing.T) {
	out := captureStdout(t)
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	run := func(args ...string) {
		t.Helper()
		root := New(io.Discard, LogInfo).RootCommand()
		root.SetArgs(args)
		if err := root.ExecuteContext(context.Background()); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}

	run("cache", "clear")
	if !strings.Contains(out.String(), "Cache is empty") {
		t.Errorf("clear on missing dir: %q", out.String())
	}

	dir := filepath.Join(xdg, appName)
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, key := range []string{"scene:a", "artifact:b"} {
		if err := fc.Set(ctx, key, []byte("x"), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	out.Reset()
	run("cache", "clear", "--dry-run")
	if !strings.Contains(out.String(), "2 cached entries would be removed") {
		t.Errorf("dry run output: %q", out.String())
	}
	if n, _ := fc.Len(); n != 2 {
		t.Errorf("dry run removed entries, %d left", n)
	}

	out.Reset()
	run("cache", "clear")
	if !strings.Contains(out.String(), "Cleared 2 cached entries") {
		t.Errorf("clear output: %q", out.String())
	}
	if n, _ := fc.Len(); n != 0 {
		t.Errorf("%d entries left after clear", n)
	}

	out.Reset()
	run("cache", "path")
	if strings.TrimSpace(out.String()) != dir {
		t.Errorf("cache path = %q, want %q", out.String(), dir)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("cache dir: %v", err)
	}
}
