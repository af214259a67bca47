// Package drawsvg is a small helper layer over SVG markup held in a
// document: it creates path and ellipse primitives and mutates their
// geometry (rectangles, ellipses, arrows, freehand lines) without
// hand-written attribute strings.
//
// The work is split across sub-packages:
//   - svgdoc holds the element tree the shapes live in
//   - svgpath accumulates path data and models path operations
//   - svgdraw composes shapes in a drawing session
//   - svgicon, svgraster and svgpdf render a document to images and PDF
//
// This package only carries the logger shared by the sub-packages.
package drawsvg
