// Package parallel runs independent shading work on a fixed set of
// goroutines.
//
// The software pipeline splits the rows covered by a triangle into bands
// and hands each band to a WorkerPool. Bands never overlap, so workers
// write disjoint pixels and need no locking on the render targets.
package parallel
