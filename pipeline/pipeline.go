package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/terramine/shading"
	"github.com/terramine/shading/internal/parallel"
)

// ErrNilStage is returned when a draw is missing a stage or target.
var ErrNilStage = errors.New("pipeline: nil stage or target")

// Stats counts the work done by one draw.
type Stats struct {
	// Vertices is the number of vertex stage invocations.
	Vertices int

	// Triangles is the number of triangles rasterized.
	Triangles int

	// Skipped is the number of triangles dropped before rasterization:
	// degenerate, behind the eye, past the guard band, or covering no
	// pixel center.
	Skipped int

	// Fragments is the number of fragment stage invocations.
	Fragments int64

	// Written is the number of fragments that wrote to the target.
	Written int64

	// Discarded is the number of fragments that were discarded.
	Discarded int64
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("vertices", s.Vertices),
		slog.Int("triangles", s.Triangles),
		slog.Int("skipped", s.Skipped),
		slog.Int64("fragments", s.Fragments),
		slog.Int64("written", s.Written),
		slog.Int64("discarded", s.Discarded),
	)
}

// Pipeline runs vertex and fragment stages over meshes. A Pipeline may be
// used for many draws, one at a time or concurrently on different targets.
type Pipeline struct {
	pool       *parallel.WorkerPool
	bandHeight int
	logger     *slog.Logger
}

// New creates a pipeline and starts its worker pool.
func New(opts ...Option) *Pipeline {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Pipeline{
		pool:       parallel.NewWorkerPool(o.workers),
		bandHeight: o.bandHeight,
		logger:     o.logger,
	}
}

// Close stops the worker pool. Close is safe to call multiple times.
func (p *Pipeline) Close() {
	p.pool.Close()
}

// Workers returns the number of shading goroutines.
func (p *Pipeline) Workers() int {
	return p.pool.Workers()
}

func (p *Pipeline) log() *slog.Logger {
	if p.logger != nil {
		return p.logger
	}
	return shading.Logger()
}

// fragmentFunc shades pixel (x, y) and reports whether it wrote.
type fragmentFunc func(x, y int, in Varyings) bool

// DrawColor draws mesh into target.
func (p *Pipeline) DrawColor(ctx context.Context, target *ColorTarget, mesh Mesh, vs VertexStage, fs FragmentStage) (Stats, error) {
	if target == nil || vs == nil || fs == nil {
		return Stats{}, ErrNilStage
	}
	stats, err := p.draw(ctx, target.width, target.height, mesh, vs, func(x, y int, in Varyings) bool {
		c, ok := fs(in)
		if ok {
			target.set(x, y, c)
		}
		return ok
	})
	p.log().Debug("pipeline: color draw", "size", [2]int{target.width, target.height}, "stats", stats)
	return stats, err
}

// DrawSurface draws mesh into gbuf with the deferred surface program.
// The shader is validated before any vertex is processed.
func (p *Pipeline) DrawSurface(ctx context.Context, gbuf *GBuffer, mesh Mesh, vs VertexStage, shader *shading.SurfaceShader) (Stats, error) {
	if gbuf == nil || vs == nil || shader == nil {
		return Stats{}, ErrNilStage
	}
	if err := shader.Validate(); err != nil {
		return Stats{}, fmt.Errorf("pipeline: surface draw: %w", err)
	}
	stats, err := p.draw(ctx, gbuf.width, gbuf.height, mesh, vs, func(x, y int, in Varyings) bool {
		s, ok := shader.Shade(surfaceInput(in))
		if ok {
			gbuf.set(x, y, s)
		}
		return ok
	})
	p.log().Debug("pipeline: surface draw", "mode", shader.Mode, "stats", stats)
	return stats, err
}

func (p *Pipeline) draw(ctx context.Context, width, height int, mesh Mesh, vs VertexStage, frag fragmentFunc) (Stats, error) {
	var stats Stats
	if err := mesh.Validate(); err != nil {
		return stats, err
	}

	out := make([]Varyings, len(mesh))
	for i, v := range mesh {
		out[i] = vs(v)
	}
	stats.Vertices = len(mesh)

	var fragments, written, discarded atomic.Int64
	collect := func() {
		stats.Fragments = fragments.Load()
		stats.Written = written.Load()
		stats.Discarded = discarded.Load()
	}

	for i := 0; i < len(out); i += 3 {
		if err := ctx.Err(); err != nil {
			collect()
			return stats, err
		}

		tri, ok := setupTriangle(&out[i], &out[i+1], &out[i+2], width, height)
		if !ok {
			stats.Skipped++
			continue
		}
		stats.Triangles++

		p.pool.ForEachBand(tri.minY, tri.maxY+1, p.bandHeight, func(b parallel.Band) {
			var f, w, d int64
			for y := b.Y0; y < b.Y1; y++ {
				for x := tri.minX; x <= tri.maxX; x++ {
					l0, l1, l2, inside := tri.cover(x, y)
					if !inside {
						continue
					}
					in := interpolate(tri.vary[0], tri.vary[1], tri.vary[2], l0, l1, l2)
					in.Position.X = float32(x) + 0.5
					in.Position.Y = float32(y) + 0.5

					f++
					if frag(x, y, in) {
						w++
					} else {
						d++
					}
				}
			}
			fragments.Add(f)
			written.Add(w)
			discarded.Add(d)
		})
	}

	collect()
	return stats, nil
}
