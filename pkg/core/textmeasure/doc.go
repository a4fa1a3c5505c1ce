// Package textmeasure maps a font and a string to the size of the rendered
// text.
//
// Three measurers are provided:
//
//   - [OpenType] rasterizes nothing but reads real glyph advances from the
//     embedded Go fonts through golang.org/x/image. Results are rounded to
//     whole units.
//   - [Approx] estimates width from a fixed per-character ratio. It needs no
//     font data and is fully predictable, which makes it the measurer of
//     choice for tests and for headless batch runs.
//   - [Cached] memoizes any other measurer in a bounded LRU cache.
//
// Every measurer returns the zero dimension for the empty string. Text may
// contain newlines; width is that of the widest line and height grows with
// the number of lines.
package textmeasure
