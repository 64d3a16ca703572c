package transport

import "bytes"

// accumulator collects response bytes under a hard ceiling. The counter runs
// ahead of the buffer: once the running total passes the limit, Append
// reports false and nothing further is stored.
type accumulator struct {
	limit int64
	total int64
	buf   bytes.Buffer
}

func newAccumulator(limit int64) *accumulator {
	return &accumulator{limit: limit}
}

// Append adds a chunk and reports whether the ceiling still holds. A chunk
// that pushes the total past the limit is discarded entirely.
func (a *accumulator) Append(chunk []byte) bool {
	a.total += int64(len(chunk))
	if a.total > a.limit {
		return false
	}
	a.buf.Write(chunk)
	return true
}

// Bytes returns the accumulated body.
func (a *accumulator) Bytes() []byte { return a.buf.Bytes() }
