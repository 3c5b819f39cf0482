// Package pipeline runs the shading reference programs over triangles on
// the CPU.
//
// It is the host side of the programs: a vertex stage turns each Vertex
// into Varyings, triangles are rasterized with a top-left fill rule at pixel
// centers, varyings are interpolated with barycentric weights, and a
// fragment stage writes to a ColorTarget or a GBuffer. Fragments that are
// discarded write nothing and are counted in Stats.
//
// Basic usage:
//
//	p := pipeline.New()
//	defer p.Close()
//
//	target, _ := pipeline.NewColorTarget(256, 256)
//	target.Clear(pipeline.DefaultClearColor)
//
//	mesh := pipeline.Quad(shading.V2(-1, -1), shading.V2(1, 1))
//	stats, err := p.DrawColor(ctx, target, mesh,
//	    pipeline.PulseStage(t), pipeline.TexturedStage(tex))
//
// Rows of a triangle are split into bands and shaded on a worker pool.
// Triangles are processed in order, so later triangles overwrite earlier
// ones exactly as a GPU without depth testing would.
package pipeline
