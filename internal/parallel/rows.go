package parallel

// minBandRows keeps bands large enough that scheduling stays cheap
// relative to the per-row work.
const minBandRows = 16

// Rows calls fn for consecutive row bands [y0, y1) covering [0, height)
// and returns when all bands are done. A nil pool runs fn once on the
// calling goroutine.
func Rows(p *WorkerPool, height int, fn func(y0, y1 int)) {
	if height <= 0 {
		return
	}
	if p == nil || p.Workers() == 1 || height <= minBandRows {
		fn(0, height)
		return
	}

	bands := min(p.Workers()*2, (height+minBandRows-1)/minBandRows)
	step := (height + bands - 1) / bands
	work := make([]func(), 0, bands)
	for y0 := 0; y0 < height; y0 += step {
		y1 := min(y0+step, height)
		work = append(work, func() { fn(y0, y1) })
	}
	p.ExecuteAll(work)
}
