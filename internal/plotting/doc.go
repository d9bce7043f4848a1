// Package plotting renders the four chart types of the visualization
// pipeline as PNG files using gonum/plot.
//
// Every generator is a pure transformation of loaded entities plus an
// output location: it creates the output directory when absent,
// overwrites any existing file at the target path, and returns the
// written path. Multi-panel figures are composed by drawing individual
// plots onto sub-regions of one raster canvas.
package plotting
