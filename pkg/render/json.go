package render

import "github.com/matzehuels/circlepack/pkg/scene"

// RenderJSON returns the scene file contents.
func RenderJSON(s *scene.Scene) ([]byte, error) {
	return scene.Marshal(s)
}
