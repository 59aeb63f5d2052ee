// Package viz renders trajectories in the terminal: asciigraph time
// series for finished runs, a braille canvas plus bubbletea program for
// live ones.
package viz
