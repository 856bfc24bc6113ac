package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/circlepack/pkg/errors"
	"github.com/matzehuels/circlepack/pkg/pipeline"
	"github.com/matzehuels/circlepack/pkg/render"
	"github.com/matzehuels/circlepack/pkg/scene"
)

// extensionOrder lists formats so that longer suffixes are tried first
// (".contacts.svg" before ".svg").
var extensionOrder = []string{
	pipeline.FormatGraph,
	pipeline.FormatSVG,
	pipeline.FormatPNG,
	pipeline.FormatJSON,
	pipeline.FormatDOT,
}

// basePath derives the base output path. A known format extension on
// output is stripped; an empty output falls back to fallback.
func basePath(output, fallback string) string {
	if output == "" {
		return fallback
	}
	for _, f := range extensionOrder {
		if ext := pipeline.Extension(f); strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// exportBase is the default base path of a packed scene, named after the
// reference sketch's export files.
func exportBase(s *scene.Scene) string {
	return render.ExportName(s.Config, render.NewRings(), s.CreatedAt)
}

// inputBase strips the extension from a scene file path.
func inputBase(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input))
}

// writeArtifacts writes each format of artifacts to base plus the format's
// extension, in the order given, and returns the paths written.
func writeArtifacts(base string, formats []string, artifacts map[string][]byte) ([]string, error) {
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "create output directory %s", dir)
		}
	}
	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		data, ok := artifacts[f]
		if !ok {
			continue
		}
		path := base + pipeline.Extension(f)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
