package parallel

// Band is a half-open range of rows [Y0, Y1).
type Band struct {
	Y0, Y1 int
}

// Rows returns the number of rows in the band.
func (b Band) Rows() int {
	return b.Y1 - b.Y0
}

// SplitRows divides [y0, y1) into consecutive bands of at most height rows.
// It returns nil for an empty range. A height of 0 or less yields a single
// band.
func SplitRows(y0, y1, height int) []Band {
	if y1 <= y0 {
		return nil
	}
	if height <= 0 {
		return []Band{{Y0: y0, Y1: y1}}
	}

	bands := make([]Band, 0, (y1-y0+height-1)/height)
	for y := y0; y < y1; y += height {
		bands = append(bands, Band{Y0: y, Y1: min(y+height, y1)})
	}
	return bands
}

// ForEachBand splits [y0, y1) into bands and runs fn for each band on the
// pool, returning when all bands are done.
func (p *WorkerPool) ForEachBand(y0, y1, height int, fn func(Band)) {
	bands := SplitRows(y0, y1, height)
	work := make([]func(), len(bands))
	for i, b := range bands {
		work[i] = func() { fn(b) }
	}
	p.ExecuteAll(work)
}
