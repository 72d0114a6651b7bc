package fetch

import "sync/atomic"

// Fence serializes overlapping calls to the same view: each call takes a
// ticket at issuance, and a response is applied only when its ticket is still
// the most recently issued one. A slow early response that resolves after a
// later call is silently discarded, so visible state always reflects the
// latest request. There is no hard abort of the in-flight call; the outdated
// result is simply dropped.
type Fence struct {
	seq atomic.Uint64
}

// Issue assigns the next sequence number. Call once per request, before the
// request starts.
func (f *Fence) Issue() uint64 {
	return f.seq.Add(1)
}

// Latest reports whether ticket is still the most recently issued sequence
// number, i.e. whether the response it belongs to may be applied.
func (f *Fence) Latest(ticket uint64) bool {
	return f.seq.Load() == ticket
}
