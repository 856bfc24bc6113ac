// Package render turns packed scenes into artifacts.
//
// # Formats
//
//   - SVG ([RenderSVG]): one outline per ring, no fill, on a solid background
//   - PNG ([RenderPNG]): the same drawing rasterized with fogleman/gg
//   - JSON ([RenderJSON]): the scene itself
//   - DOT ([ToDOT]) and contact graph SVG ([RenderContactSVG]): which
//     circles stopped each other, laid out by Graphviz
//
// # Styles
//
// A [Style] decides which rings are drawn for each circle:
//
//   - [Simple]: a single outline per circle
//   - [Rings]: up to four concentric outlines two units apart for circles
//     larger than twelve units, a single outline otherwise
//   - [Sketch]: rings with a seeded hand-drawn wobble
//
// Every style is deterministic: the same scene and options always produce the
// same bytes, which is what lets the pipeline cache artifacts.
package render
