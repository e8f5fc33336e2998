// Package viz turns model state into drawings.
//
// Painters build a [Frame], a flat list of primitives in surface pixel
// coordinates. They read state and parameters only, so painting the same
// inputs twice yields the same frame. Anything that animates between
// frames, such as the attractor rotation, arrives through [View].
//
// A [Canvas] rasterizes a frame onto braille cells (2x4 dots per cell),
// keeping the brightest primitive per cell, and renders it with a [Theme].
package viz
