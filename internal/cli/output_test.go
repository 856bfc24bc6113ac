package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/circlepack/pkg/pack"
	"github.com/matzehuels/circlepack/pkg/scene"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, fallback, want string
	}{
		{"", "Packed_Circles-x", "Packed_Circles-x"},
		{"out", "fb", "out"},
		{"out.svg", "fb", "out"},
		{"art/out.png", "fb", "art/out"},
		{"out.contacts.svg", "fb", "out"},
		{"out.dot", "fb", "out"},
		{"out.pdf", "fb", "out.pdf"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.fallback); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.fallback, got, tt.want)
		}
	}
}

func TestInputBase(t *testing.T) {
	if got := inputBase("scenes/run.json"); got != "scenes/run" {
		t.Errorf("inputBase = %q", got)
	}
}

func TestExportBase(t *testing.T) {
	s := &scene.Scene{
		Config:    pack.DefaultConfig(),
		CreatedAt: time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC),
	}
	want := "Packed_Circles-MINSTEPS_4-MINRADIUS_12-MAXATTEMPTS_65536-PERFRAME_4-SIZE_540-BORDER_32-2026-01-02T15:04:05.000Z"
	if got := exportBase(s); got != want {
		t.Errorf("exportBase = %q, want %q", got, want)
	}
}

func TestWriteArtifacts(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "out")
	artifacts := map[string][]byte{
		"svg":   []byte("<svg/>"),
		"graph": []byte("<svg>graph</svg>"),
		"dot":   []byte("graph contacts {}"),
	}

	paths, err := writeArtifacts(base, []string{"graph", "png", "svg"}, artifacts)
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}
	want := []string{base + ".contacts.svg", base + ".svg"}
	if strings.Join(paths, ",") != strings.Join(want, ",") {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	data, err := os.ReadFile(base + ".svg")
	if err != nil || string(data) != "<svg/>" {
		t.Errorf("svg file = %q, %v", data, err)
	}
	if _, err := os.Stat(base + ".dot"); !os.IsNotExist(err) {
		t.Errorf("dot was not requested but written: %v", err)
	}
}
